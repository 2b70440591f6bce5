package vehicle

import (
	"context"
	"testing"
	"time"

	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepo struct {
	vehicles []Vehicle
}

func (f *fakeRepo) Create(ctx context.Context, v *Vehicle) error { return nil }
func (f *fakeRepo) Get(ctx context.Context, id string) (*Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID.Hex() == id {
			return &f.vehicles[i], nil
		}
	}
	return nil, ErrNotFound
}
func (f *fakeRepo) FindByFamily(ctx context.Context, familyID string) ([]Vehicle, error) {
	return f.vehicles, nil
}
func (f *fakeRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id string) error                 { return nil }

func testService(repo VehicleRepository) VehicleService {
	cfg := &config.Config{Timezone: "Europe/Rome", VirtualAnchor: "08:00"}
	return NewVehicleService(repo, realtime.NewHub(zap.NewNop()), zap.NewNop(), cfg)
}

func TestVirtualEventsProjectsDeadlines(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &fakeRepo{vehicles: []Vehicle{{
		ID:             id,
		Name:           "Panda",
		IsGPL:          true,
		InsuranceDate:  "2025-03-10",
		TaxDate:        "2025-03-20",
		InspectionDate: "2025-06-01", // outside the window
		GPLDate:        "2025-03-25",
	}}}

	events, err := testService(repo).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3 (inspection is out of window)", len(events))
	}

	byDetail := map[string]calendar.Event{}
	for _, ev := range events {
		byDetail[ev.Detail] = ev
	}

	ins, ok := byDetail[KindInsurance]
	if !ok {
		t.Fatal("missing insurance event")
	}
	if ins.Title != "Assicurazione Panda" {
		t.Errorf("title = %q", ins.Title)
	}
	if ins.EventType != calendar.TypeVehicleDue {
		t.Errorf("event type = %q", ins.EventType)
	}
	if !ins.IsVirtual || ins.Source != calendar.SourceVehicle {
		t.Errorf("virtual=%v source=%v", ins.IsVirtual, ins.Source)
	}
	if ins.ID != "v-"+id.Hex()+"-ins" {
		t.Errorf("id = %q", ins.ID)
	}

	loc, _ := time.LoadLocation("Europe/Rome")
	want := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)
	if !ins.StartTime.Equal(want) {
		t.Errorf("start = %v, want anchored 08:00", ins.StartTime)
	}
	if !ins.EndTime.Equal(want.Add(time.Hour)) {
		t.Errorf("end = %v, want start+1h", ins.EndTime)
	}

	if _, ok := byDetail[KindLPG]; !ok {
		t.Error("gas-fitted vehicle should project its LPG deadline")
	}
}

func TestVirtualEventsSkipsLPGWhenNotFitted(t *testing.T) {
	repo := &fakeRepo{vehicles: []Vehicle{{
		ID:      primitive.NewObjectID(),
		Name:    "Golf",
		IsGPL:   false,
		GPLDate: "2025-03-25", // stale data: date present, flag off
	}}}

	events, err := testService(repo).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("len = %d, want 0", len(events))
	}
}

func TestRenewValidation(t *testing.T) {
	familyID := primitive.NewObjectID()
	v := Vehicle{ID: primitive.NewObjectID(), FamilyID: familyID, Name: "Panda"}
	svc := testService(&fakeRepo{vehicles: []Vehicle{v}})

	if err := svc.Renew(context.Background(), familyID.Hex(), v.ID.Hex(), "Patente", "2026-01-01"); err != ErrUnknownKind {
		t.Errorf("unknown kind: err = %v, want ErrUnknownKind", err)
	}
	if err := svc.Renew(context.Background(), familyID.Hex(), v.ID.Hex(), KindTax, "next year"); err == nil {
		t.Error("malformed date should be rejected")
	}
	if err := svc.Renew(context.Background(), familyID.Hex(), v.ID.Hex(), KindTax, "2026-01-01"); err != nil {
		t.Errorf("valid renewal: %v", err)
	}
}
