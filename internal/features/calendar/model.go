package calendar

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event type names double as display labels, like the UI expects them.
const (
	TypeGeneric     = "Generico"
	TypeMedical     = "Visita Medica"
	TypeWork        = "Lavoro"
	TypeSchool      = "Scuola"
	TypeVehicleDue  = "Scadenza Veicolo"
	TypePetDue      = "Scadenza Pet"
	TypeDocumentDue = "Scadenza Documento"
	TypeLeave       = "Ferie"
	TypeRest        = "Riposo"
	TypeSick        = "Malattia"
	TypePermit      = "Permesso"
)

// Source discriminates where an event came from. Virtual events keep a
// synthetic id of the form {tag}-{rowID}[-{subKey}] on the wire, but code
// branches on this field, never on id prefixes.
type Source string

const (
	SourceCalendar Source = "calendar"
	SourceVehicle  Source = "vehicle"
	SourcePet      Source = "pet"
	SourceWork     Source = "work"
	SourceDocument Source = "doc"
)

// Event is the common shape every source normalizes into.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	EventType  string    `json:"event_type"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	IsVirtual  bool      `json:"is_virtual"`
	Source     Source    `json:"source"`
	// Detail carries the virtual subtitle (expiry kind, reminder type,
	// document category) shown by the dashboard card.
	Detail string `json:"detail,omitempty"`
}

// Row is a persisted calendar event.
type Row struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID   primitive.ObjectID  `bson:"family_id" json:"family_id"`
	Title      string              `bson:"title" json:"title"`
	EventType  string              `bson:"event_type" json:"event_type"`
	StartTime  time.Time           `bson:"start_time" json:"start_time"`
	EndTime    time.Time           `bson:"end_time" json:"end_time"`
	AssignedTo *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedBy  primitive.ObjectID  `bson:"created_by" json:"created_by"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
}

func (r *Row) ToEvent() Event {
	ev := Event{
		ID:        r.ID.Hex(),
		Title:     r.Title,
		EventType: r.EventType,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Source:    SourceCalendar,
	}
	if r.AssignedTo != nil {
		ev.AssignedTo = r.AssignedTo.Hex()
	}
	return ev
}

const dayLayout = "2006-01-02"

// LocalDay derives the grouping key (YYYY-MM-DD) from a timestamp in the
// family's timezone. Grouping and is-today/is-selected checks must share
// this helper or days mis-render near midnight.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// Color per event type, with a fallback for unrecognized types.
var typeColors = map[string]string{
	TypeGeneric:     "#9ca3af",
	TypeMedical:     "#f87171",
	TypeWork:        "#60a5fa",
	TypeSchool:      "#fb923c",
	TypeVehicleDue:  "#ef4444",
	TypePetDue:      "#f59e0b",
	TypeDocumentDue: "#ea580c",
	TypeLeave:       "#eab308",
	TypeRest:        "#22c55e",
	TypeSick:        "#f87171",
}

const fallbackColor = "#9ca3af"

func ColorFor(eventType string) string {
	if c, ok := typeColors[eventType]; ok {
		return c
	}
	return fallbackColor
}
