package health

import (
	"context"
	"fmt"
	"sort"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MedicationInput struct {
	MemberID  string   `json:"member_id"`
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Times     []string `json:"times"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	IsActive  bool     `json:"is_active"`
	Notes     string   `json:"notes"`
}

type MeasurementInput struct {
	MemberID string `json:"member_id"`
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

type ProfileInput struct {
	BloodType         string   `json:"blood_type"`
	Allergies         []string `json:"allergies"`
	ChronicConditions []string `json:"chronic_conditions"`
	PrimaryDoctor     string   `json:"primary_doctor"`
}

// Dose is one scheduled intake on the daily plan.
type Dose struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Time         string `json:"time"`
	MemberID     string `json:"member_id,omitempty"`
}

type HealthService interface {
	ListMedications(ctx context.Context, familyID string) ([]Medication, error)
	CreateMedication(ctx context.Context, familyID string, input MedicationInput) (*Medication, error)
	UpdateMedication(ctx context.Context, familyID, id string, input MedicationInput) error
	DeleteMedication(ctx context.Context, familyID, id string) error
	// DailyDoses builds the day's intake plan from active therapies,
	// sorted by time.
	DailyDoses(ctx context.Context, familyID string, now time.Time) ([]Dose, error)

	ListMeasurements(ctx context.Context, familyID string, limit int64) ([]Measurement, error)
	CreateMeasurement(ctx context.Context, familyID string, input MeasurementInput) (*Measurement, error)
	DeleteMeasurement(ctx context.Context, familyID, id string) error

	// Profile returns the member's health sheet; an empty sheet when none
	// was saved yet.
	Profile(ctx context.Context, familyID, memberID string) (*Profile, error)
	SaveProfile(ctx context.Context, familyID, memberID string, input ProfileInput) (*Profile, error)
}

type HealthServiceImpl struct {
	Medications  MedicationRepository
	Measurements MeasurementRepository
	Profiles     ProfileRepository
	Hub          *realtime.Hub
	Logger       *zap.Logger

	loc *time.Location
}

func NewHealthService(medications MedicationRepository, measurements MeasurementRepository, profiles ProfileRepository, hub *realtime.Hub, logger *zap.Logger, cfg *config.Config) HealthService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &HealthServiceImpl{
		Medications:  medications,
		Measurements: measurements,
		Profiles:     profiles,
		Hub:          hub,
		Logger:       logger,
		loc:          loc,
	}
}

func (s *HealthServiceImpl) ListMedications(ctx context.Context, familyID string) ([]Medication, error) {
	return s.Medications.FindByFamily(ctx, familyID)
}

func (s *HealthServiceImpl) CreateMedication(ctx context.Context, familyID string, input MedicationInput) (*Medication, error) {
	if err := validateMedication(input); err != nil {
		return nil, err
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	m := &Medication{
		FamilyID:  familyOID,
		Name:      input.Name,
		Dosage:    input.Dosage,
		Times:     input.Times,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  input.IsActive,
		Notes:     input.Notes,
	}
	if input.MemberID != "" {
		memberOID, err := primitive.ObjectIDFromHex(input.MemberID)
		if err != nil {
			return nil, err
		}
		m.MemberID = &memberOID
	}

	if err := s.Medications.Create(ctx, m); err != nil {
		return nil, err
	}

	s.publish("health_medications", models.ChangeInsert, m.ID.Hex(), familyID)
	return m, nil
}

func (s *HealthServiceImpl) UpdateMedication(ctx context.Context, familyID, id string, input MedicationInput) error {
	if _, err := s.ownedMedication(ctx, familyID, id); err != nil {
		return err
	}
	if err := validateMedication(input); err != nil {
		return err
	}

	updates := bson.M{
		"name":       input.Name,
		"dosage":     input.Dosage,
		"times":      input.Times,
		"start_date": input.StartDate,
		"end_date":   input.EndDate,
		"is_active":  input.IsActive,
		"notes":      input.Notes,
	}
	if input.MemberID != "" {
		memberOID, err := primitive.ObjectIDFromHex(input.MemberID)
		if err != nil {
			return err
		}
		updates["member_id"] = memberOID
	} else {
		updates["member_id"] = nil
	}

	if err := s.Medications.Update(ctx, id, updates); err != nil {
		return err
	}

	s.publish("health_medications", models.ChangeUpdate, id, familyID)
	return nil
}

func (s *HealthServiceImpl) DeleteMedication(ctx context.Context, familyID, id string) error {
	if _, err := s.ownedMedication(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Medications.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("health_medications", models.ChangeDelete, id, familyID)
	return nil
}

func (s *HealthServiceImpl) DailyDoses(ctx context.Context, familyID string, now time.Time) ([]Dose, error) {
	meds, err := s.Medications.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	day := calendar.LocalDay(now, s.loc)
	var doses []Dose
	for _, m := range meds {
		if !m.ActiveOn(day) {
			continue
		}
		for _, at := range m.Times {
			dose := Dose{
				MedicationID: m.ID.Hex(),
				Name:         m.Name,
				Dosage:       m.Dosage,
				Time:         at,
			}
			if m.MemberID != nil {
				dose.MemberID = m.MemberID.Hex()
			}
			doses = append(doses, dose)
		}
	}

	sort.SliceStable(doses, func(i, j int) bool { return doses[i].Time < doses[j].Time })
	return doses, nil
}

func (s *HealthServiceImpl) ListMeasurements(ctx context.Context, familyID string, limit int64) ([]Measurement, error) {
	return s.Measurements.FindByFamily(ctx, familyID, limit)
}

func (s *HealthServiceImpl) CreateMeasurement(ctx context.Context, familyID string, input MeasurementInput) (*Measurement, error) {
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	m := &Measurement{
		FamilyID: familyOID,
		Kind:     input.Kind,
		Value:    input.Value,
		Date:     input.Date,
		Notes:    input.Notes,
	}
	if input.MemberID != "" {
		memberOID, err := primitive.ObjectIDFromHex(input.MemberID)
		if err != nil {
			return nil, err
		}
		m.MemberID = &memberOID
	}

	if err := s.Measurements.Create(ctx, m); err != nil {
		return nil, err
	}

	s.publish("health_measurements", models.ChangeInsert, m.ID.Hex(), familyID)
	return m, nil
}

func (s *HealthServiceImpl) DeleteMeasurement(ctx context.Context, familyID, id string) error {
	m, err := s.Measurements.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.FamilyID.Hex() != familyID {
		return ErrMeasurementNotFound
	}
	if err := s.Measurements.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("health_measurements", models.ChangeDelete, id, familyID)
	return nil
}

func (s *HealthServiceImpl) Profile(ctx context.Context, familyID, memberID string) (*Profile, error) {
	p, err := s.Profiles.GetByMember(ctx, familyID, memberID)
	if err == ErrProfileNotFound {
		familyOID, oidErr := primitive.ObjectIDFromHex(familyID)
		if oidErr != nil {
			return nil, oidErr
		}
		memberOID, oidErr := primitive.ObjectIDFromHex(memberID)
		if oidErr != nil {
			return nil, oidErr
		}
		return &Profile{FamilyID: familyOID, MemberID: memberOID}, nil
	}
	return p, err
}

func (s *HealthServiceImpl) SaveProfile(ctx context.Context, familyID, memberID string, input ProfileInput) (*Profile, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	memberOID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		FamilyID:          familyOID,
		MemberID:          memberOID,
		BloodType:         input.BloodType,
		Allergies:         input.Allergies,
		ChronicConditions: input.ChronicConditions,
		PrimaryDoctor:     input.PrimaryDoctor,
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}

	s.publish("health_profiles", models.ChangeUpdate, memberID, familyID)
	return p, nil
}

func validateMedication(input MedicationInput) error {
	for _, at := range input.Times {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("invalid intake time %q: %w", at, err)
		}
	}
	for _, day := range []string{input.StartDate, input.EndDate} {
		if day == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return fmt.Errorf("invalid date %q: %w", day, err)
		}
	}
	return nil
}

func (s *HealthServiceImpl) ownedMedication(ctx context.Context, familyID, id string) (*Medication, error) {
	m, err := s.Medications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.FamilyID.Hex() != familyID {
		return nil, ErrMedicationNotFound
	}
	return m, nil
}

func (s *HealthServiceImpl) publish(table, event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    table,
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
