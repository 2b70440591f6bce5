package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	KindExpiry     = "expiry"
	KindAutomation = "automation"
	KindSystem     = "system"
)

// Notification targets one member when UserID is set, otherwise the whole
// family.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID  `bson:"family_id" json:"family_id"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Kind      string              `bson:"kind" json:"kind"`
	Title     string              `bson:"title" json:"title"`
	Body      string              `bson:"body,omitempty" json:"body,omitempty"`
	IsRead    bool                `bson:"is_read" json:"is_read"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
