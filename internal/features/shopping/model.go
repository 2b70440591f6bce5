package shopping

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID    primitive.ObjectID `bson:"family_id" json:"family_id"`
	Name        string             `bson:"name" json:"name"`
	Quantity    string             `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	IsUrgent    bool               `bson:"is_urgent" json:"is_urgent"`
	IsPurchased bool               `bson:"is_purchased" json:"is_purchased"`
	AddedBy     primitive.ObjectID `bson:"added_by" json:"added_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
