package work

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift types. Working shifts carry start/end times; absence types are
// date-only and show up on the family calendar.
const (
	ShiftMorning   = "Mattina"
	ShiftAfternoon = "Pomeriggio"
	ShiftNight     = "Notte"
	ShiftLeave     = "Ferie"
	ShiftRest      = "Riposo"
	ShiftSick      = "Malattia"
	ShiftPermit    = "Permesso"
)

// absenceTypes are the shift types projected onto the calendar.
var absenceTypes = map[string]bool{
	ShiftLeave:  true,
	ShiftRest:   true,
	ShiftSick:   true,
	ShiftPermit: true,
}

func IsAbsence(shiftType string) bool { return absenceTypes[shiftType] }

var validTypes = map[string]bool{
	ShiftMorning:   true,
	ShiftAfternoon: true,
	ShiftNight:     true,
	ShiftLeave:     true,
	ShiftRest:      true,
	ShiftSick:      true,
	ShiftPermit:    true,
}

func IsValidType(shiftType string) bool { return validTypes[shiftType] }

// Default working hours per shift type, applied when the caller gives none.
var TimePresets = map[string][2]string{
	ShiftMorning:   {"06:00", "14:00"},
	ShiftAfternoon: {"14:00", "22:00"},
	ShiftNight:     {"22:00", "06:00"},
}

type Shift struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID  primitive.ObjectID `bson:"family_id" json:"family_id"`
	MemberID  primitive.ObjectID `bson:"member_id" json:"member_id"`
	Date      string             `bson:"date" json:"date"`
	ShiftType string             `bson:"shift_type" json:"shift_type"`
	StartTime string             `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime   string             `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
