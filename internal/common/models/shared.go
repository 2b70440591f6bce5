package models

import (
	"time"
)

type ContextKey string

const (
	FamilyIDKey ContextKey = "family_id"
)

// ChangeEvent is the envelope published on the realtime channel after
// every successful mutation. Clients subscribed to the table re-run
// their own fetch; the payload is deliberately not the full row.
type ChangeEvent struct {
	Table    string `json:"table"`
	Event    string `json:"event"` // insert | update | delete
	RowID    string `json:"row_id"`
	FamilyID string `json:"family_id"`
}

const (
	ChangeInsert = "insert"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
	ChangeAll    = "*"
)

// Log is the record shape written by the async DB log writer.
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Level        string    `bson:"level" json:"level"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	FamilyID     string    `bson:"family_id,omitempty" json:"family_id,omitempty"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
