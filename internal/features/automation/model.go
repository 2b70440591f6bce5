package automation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule runs a small script whenever a matching change event fires. The
// script sees `table`, `event` and `row_id` and can set `notify`, `title`
// and `body` to raise a notification.
type Rule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID `bson:"family_id" json:"family_id"`
	Name      string             `bson:"name" json:"name"`
	Table     string             `bson:"table" json:"table"`
	Event     string             `bson:"event" json:"event"` // insert|update|delete|*
	Script    string             `bson:"script" json:"script"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
