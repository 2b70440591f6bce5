package finance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction amounts are stored in cents to keep arithmetic exact.
type Transaction struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FamilyID    primitive.ObjectID  `bson:"family_id" json:"family_id"`
	Type        string              `bson:"type" json:"type"`
	AmountCents int64               `bson:"amount_cents" json:"amount_cents"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Date        string              `bson:"date" json:"date"`
	MemberID    *primitive.ObjectID `bson:"member_id,omitempty" json:"member_id,omitempty"`
	// ExternalRef marks rows imported from the bank feed and keeps the
	// import idempotent.
	ExternalRef string    `bson:"external_ref,omitempty" json:"external_ref,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// MonthSummary is the finance dashboard widget payload.
type MonthSummary struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	IncomeCents  int64            `json:"income_cents"`
	ExpenseCents int64            `json:"expense_cents"`
	BalanceCents int64            `json:"balance_cents"`
	ByCategory   map[string]int64 `json:"by_category"`
	Count        int              `json:"count"`
}
