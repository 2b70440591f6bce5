package vehicle

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expiry kinds, used as virtual-event detail and in renewal requests.
const (
	KindInsurance  = "Assicurazione"
	KindTax        = "Bollo"
	KindInspection = "Revisione"
	KindLPG        = "Bombola GPL"
)

// Vehicle deadline dates are stored as plain YYYY-MM-DD strings: they are
// date-only facts and must not shift across timezones.
type Vehicle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID       primitive.ObjectID `bson:"family_id" json:"family_id"`
	Name           string             `bson:"name" json:"name"`
	Plate          string             `bson:"plate,omitempty" json:"plate,omitempty"`
	Model          string             `bson:"model,omitempty" json:"model,omitempty"`
	Year           int                `bson:"year,omitempty" json:"year,omitempty"`
	IsGPL          bool               `bson:"is_gpl" json:"is_gpl"`
	InsuranceDate  string             `bson:"insurance_date,omitempty" json:"insurance_date,omitempty"`
	TaxDate        string             `bson:"tax_date,omitempty" json:"tax_date,omitempty"`
	InspectionDate string             `bson:"inspection_date,omitempty" json:"inspection_date,omitempty"`
	GPLDate        string             `bson:"gpl_date,omitempty" json:"gpl_date,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Deadlines lists the vehicle's active expiry dates in display order. The
// LPG certification only applies to gas-fitted vehicles.
func (v *Vehicle) Deadlines() []Deadline {
	var out []Deadline
	if v.InsuranceDate != "" {
		out = append(out, Deadline{Kind: KindInsurance, SubKey: "ins", Date: v.InsuranceDate})
	}
	if v.TaxDate != "" {
		out = append(out, Deadline{Kind: KindTax, SubKey: "tax", Date: v.TaxDate})
	}
	if v.InspectionDate != "" {
		out = append(out, Deadline{Kind: KindInspection, SubKey: "insp", Date: v.InspectionDate})
	}
	if v.IsGPL && v.GPLDate != "" {
		out = append(out, Deadline{Kind: KindLPG, SubKey: "gpl", Date: v.GPLDate})
	}
	return out
}

type Deadline struct {
	Kind   string `json:"kind"`
	SubKey string `json:"-"`
	Date   string `json:"date"`
}
