package health

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medication is a recurring therapy. Times lists the daily intake times
// (HH:MM); an empty list means "as needed".
type Medication struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID  `bson:"family_id" json:"family_id"`
	MemberID  *primitive.ObjectID `bson:"member_id,omitempty" json:"member_id,omitempty"`
	Name      string              `bson:"name" json:"name"`
	Dosage    string              `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Times     []string            `bson:"times,omitempty" json:"times,omitempty"`
	StartDate string              `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   string              `bson:"end_date,omitempty" json:"end_date,omitempty"`
	IsActive  bool                `bson:"is_active" json:"is_active"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// ActiveOn reports whether the therapy covers the given local day.
func (m *Medication) ActiveOn(day string) bool {
	if !m.IsActive {
		return false
	}
	if m.StartDate != "" && day < m.StartDate {
		return false
	}
	if m.EndDate != "" && day > m.EndDate {
		return false
	}
	return true
}

// Profile is the per-member health sheet. One row per member, replaced
// wholesale on save.
type Profile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID          primitive.ObjectID `bson:"family_id" json:"family_id"`
	MemberID          primitive.ObjectID `bson:"member_id" json:"member_id"`
	BloodType         string             `bson:"blood_type,omitempty" json:"blood_type,omitempty"`
	Allergies         []string           `bson:"allergies,omitempty" json:"allergies,omitempty"`
	ChronicConditions []string           `bson:"chronic_conditions,omitempty" json:"chronic_conditions,omitempty"`
	PrimaryDoctor     string             `bson:"primary_doctor,omitempty" json:"primary_doctor,omitempty"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Measurement is a logged vital (weight, pressure, temperature...).
type Measurement struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID  `bson:"family_id" json:"family_id"`
	MemberID  *primitive.ObjectID `bson:"member_id,omitempty" json:"member_id,omitempty"`
	Kind      string              `bson:"kind" json:"kind"`
	Value     string              `bson:"value" json:"value"`
	Date      string              `bson:"date" json:"date"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
