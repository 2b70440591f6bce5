package health

import (
	"context"
	"testing"
	"time"

	"casa360/internal/config"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeMedRepo struct {
	meds []Medication
}

func (f *fakeMedRepo) Create(ctx context.Context, m *Medication) error { return nil }
func (f *fakeMedRepo) Get(ctx context.Context, id string) (*Medication, error) {
	return nil, ErrMedicationNotFound
}
func (f *fakeMedRepo) FindByFamily(ctx context.Context, familyID string) ([]Medication, error) {
	return f.meds, nil
}
func (f *fakeMedRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeMedRepo) Delete(ctx context.Context, id string) error                 { return nil }

type fakeProfileRepo struct {
	saved *Profile
}

func (f *fakeProfileRepo) GetByMember(ctx context.Context, familyID, memberID string) (*Profile, error) {
	if f.saved == nil {
		return nil, ErrProfileNotFound
	}
	return f.saved, nil
}
func (f *fakeProfileRepo) Upsert(ctx context.Context, p *Profile) error {
	f.saved = p
	return nil
}

type fakeMeasureRepo struct{}

func (f *fakeMeasureRepo) Create(ctx context.Context, m *Measurement) error { return nil }
func (f *fakeMeasureRepo) Get(ctx context.Context, id string) (*Measurement, error) {
	return nil, ErrMeasurementNotFound
}
func (f *fakeMeasureRepo) FindByFamily(ctx context.Context, familyID string, limit int64) ([]Measurement, error) {
	return nil, nil
}
func (f *fakeMeasureRepo) Delete(ctx context.Context, id string) error { return nil }

func testService(meds MedicationRepository) HealthService {
	cfg := &config.Config{Timezone: "Europe/Rome", VirtualAnchor: "08:00"}
	return NewHealthService(meds, &fakeMeasureRepo{}, &fakeProfileRepo{}, realtime.NewHub(zap.NewNop()), zap.NewNop(), cfg)
}

func TestActiveOn(t *testing.T) {
	tests := []struct {
		med  Medication
		day  string
		want bool
	}{
		{Medication{IsActive: true}, "2025-03-10", true},
		{Medication{IsActive: false}, "2025-03-10", false},
		{Medication{IsActive: true, StartDate: "2025-03-15"}, "2025-03-10", false},
		{Medication{IsActive: true, StartDate: "2025-03-10"}, "2025-03-10", true},
		{Medication{IsActive: true, EndDate: "2025-03-09"}, "2025-03-10", false},
		{Medication{IsActive: true, StartDate: "2025-03-01", EndDate: "2025-03-31"}, "2025-03-10", true},
	}
	for i, tt := range tests {
		if got := tt.med.ActiveOn(tt.day); got != tt.want {
			t.Errorf("case %d: ActiveOn = %v, want %v", i, got, tt.want)
		}
	}
}

func TestDailyDosesSortedByTime(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	memberID := primitive.NewObjectID()
	repo := &fakeMedRepo{meds: []Medication{
		{ID: primitive.NewObjectID(), Name: "Eutirox", Dosage: "50mg", Times: []string{"08:00"}, IsActive: true, MemberID: &memberID},
		{ID: primitive.NewObjectID(), Name: "Antibiotico", Times: []string{"20:00", "06:00"}, IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Vecchia terapia", Times: []string{"12:00"}, IsActive: false},
		{ID: primitive.NewObjectID(), Name: "Al bisogno", IsActive: true}, // no scheduled times
	}}

	now := time.Date(2025, time.March, 10, 7, 0, 0, 0, loc)
	doses, err := testService(repo).DailyDoses(context.Background(), "fam", now)
	if err != nil {
		t.Fatalf("daily doses: %v", err)
	}

	want := []string{"06:00", "08:00", "20:00"}
	if len(doses) != len(want) {
		t.Fatalf("len = %d, want %d", len(doses), len(want))
	}
	for i, at := range want {
		if doses[i].Time != at {
			t.Errorf("doses[%d].Time = %s, want %s", i, doses[i].Time, at)
		}
	}
	if doses[1].Name != "Eutirox" || doses[1].MemberID != memberID.Hex() {
		t.Errorf("doses[1] = %+v", doses[1])
	}
}

func TestProfileDefaultsWhenUnsaved(t *testing.T) {
	svc := testService(&fakeMedRepo{})
	familyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	p, err := svc.Profile(context.Background(), familyID.Hex(), memberID.Hex())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.MemberID != memberID || p.BloodType != "" || len(p.Allergies) != 0 {
		t.Errorf("unsaved profile should be empty, got %+v", p)
	}

	saved, err := svc.SaveProfile(context.Background(), familyID.Hex(), memberID.Hex(), ProfileInput{
		BloodType: "0+",
		Allergies: []string{"polline"},
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if saved.BloodType != "0+" || len(saved.Allergies) != 1 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestMedicationValidation(t *testing.T) {
	svc := testService(&fakeMedRepo{})
	familyID := primitive.NewObjectID().Hex()

	if _, err := svc.CreateMedication(context.Background(), familyID, MedicationInput{
		Name: "Eutirox", Times: []string{"otto"},
	}); err == nil {
		t.Error("malformed time should be rejected")
	}
	if _, err := svc.CreateMedication(context.Background(), familyID, MedicationInput{
		Name: "Eutirox", StartDate: "marzo",
	}); err == nil {
		t.Error("malformed start date should be rejected")
	}
	if _, err := svc.CreateMedication(context.Background(), familyID, MedicationInput{
		Name: "Eutirox", Times: []string{"08:00"}, IsActive: true,
	}); err != nil {
		t.Errorf("valid input: %v", err)
	}
}
