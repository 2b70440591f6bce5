package family

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleChild  = "child"
)

// Group is the tenant boundary: every row in every collection belongs to
// exactly one family group.
type Group struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	InviteCode string             `bson:"invite_code" json:"invite_code"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Member doubles as the account row: credentials live here, and so does
// the per-user dashboard layout blob.
type Member struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID        primitive.ObjectID `bson:"family_id" json:"family_id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"password_hash" json:"-"`
	Role            string             `bson:"role" json:"role"`
	AvatarColor     string             `bson:"avatar_color" json:"avatar_color"`
	DashboardLayout []LayoutNode       `bson:"dashboard_layout,omitempty" json:"dashboard_layout,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// LayoutNode mirrors one widget of the drag-and-drop dashboard grid.
// Hidden nodes live in the dock; their dock coordinates are preserved.
type LayoutNode struct {
	ID     string `bson:"id" json:"id"`
	X      int    `bson:"x" json:"x"`
	Y      int    `bson:"y" json:"y"`
	W      int    `bson:"w" json:"w"`
	H      int    `bson:"h" json:"h"`
	Hidden bool   `bson:"hidden" json:"hidden"`
}
