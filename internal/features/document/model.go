package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is an archived record (ID card, contract, warranty...) with an
// optional expiry and an optional stored file.
type Document struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID   primitive.ObjectID  `bson:"family_id" json:"family_id"`
	Title      string              `bson:"title" json:"title"`
	Category   string              `bson:"category,omitempty" json:"category,omitempty"`
	Owner      string              `bson:"owner,omitempty" json:"owner,omitempty"`
	ExpiryDate string              `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	FileID     *primitive.ObjectID `bson:"file_id,omitempty" json:"file_id,omitempty"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy  primitive.ObjectID  `bson:"created_by" json:"created_by"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
}

// ExpiryTitle is the calendar label: the owner rides along when known so
// "Scadenza Carta d'identità (Anna)" reads at a glance.
func (d *Document) ExpiryTitle() string {
	if d.Owner != "" {
		return "Scadenza " + d.Title + " (" + d.Owner + ")"
	}
	return "Scadenza " + d.Title
}
