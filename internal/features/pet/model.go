package pet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Pet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID `bson:"family_id" json:"family_id"`
	Name      string             `bson:"name" json:"name"`
	Species   string             `bson:"species,omitempty" json:"species,omitempty"`
	Breed     string             `bson:"breed,omitempty" json:"breed,omitempty"`
	BirthDate string             `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Microchip string             `bson:"microchip,omitempty" json:"microchip,omitempty"`
	Passport  string             `bson:"passport,omitempty" json:"passport,omitempty"`
	Weight    float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Vet       string             `bson:"vet,omitempty" json:"vet,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// MedicalRecord is an entry in the pet's health log (visit, exam, surgery).
type MedicalRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID    primitive.ObjectID `bson:"family_id" json:"family_id"`
	PetID       primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	RecordType  string             `bson:"record_type" json:"record_type"`
	Title       string             `bson:"title" json:"title"`
	RecordDate  string             `bson:"record_date" json:"record_date"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Reminder is a pet care deadline (vaccine, antiparasitic, grooming...).
// DueTime is optional; date-only reminders get the default anchor time on
// the calendar.
type Reminder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID     primitive.ObjectID `bson:"family_id" json:"family_id"`
	PetID        primitive.ObjectID `bson:"pet_id" json:"pet_id"`
	ReminderType string             `bson:"reminder_type" json:"reminder_type"`
	DueDate      string             `bson:"due_date" json:"due_date"`
	DueTime      string             `bson:"due_time,omitempty" json:"due_time,omitempty"`
	IsCompleted  bool               `bson:"is_completed" json:"is_completed"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
