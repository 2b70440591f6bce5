package pet

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

type fakePetRepo struct {
	pets []Pet
}

func (f *fakePetRepo) Create(ctx context.Context, p *Pet) error { return nil }
func (f *fakePetRepo) Get(ctx context.Context, id string) (*Pet, error) {
	for i := range f.pets {
		if f.pets[i].ID.Hex() == id {
			return &f.pets[i], nil
		}
	}
	return nil, ErrPetNotFound
}
func (f *fakePetRepo) FindByFamily(ctx context.Context, familyID string) ([]Pet, error) {
	return f.pets, nil
}
func (f *fakePetRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakePetRepo) Delete(ctx context.Context, id string) error                 { return nil }

type fakeReminderRepo struct {
	reminders []Reminder
}

func (f *fakeReminderRepo) Create(ctx context.Context, r *Reminder) error { return nil }
func (f *fakeReminderRepo) Get(ctx context.Context, id string) (*Reminder, error) {
	for i := range f.reminders {
		if f.reminders[i].ID.Hex() == id {
			return &f.reminders[i], nil
		}
	}
	return nil, ErrReminderNotFound
}
func (f *fakeReminderRepo) FindByFamily(ctx context.Context, familyID string) ([]Reminder, error) {
	return f.reminders, nil
}
func (f *fakeReminderRepo) FindPending(ctx context.Context, familyID, fromDay, toDay string) ([]Reminder, error) {
	var out []Reminder
	for _, r := range f.reminders {
		if !r.IsCompleted && r.DueDate >= fromDay && r.DueDate <= toDay {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeReminderRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeReminderRepo) Delete(ctx context.Context, id string) error                 { return nil }
func (f *fakeReminderRepo) DeleteByPet(ctx context.Context, petID string) error         { return nil }

type fakeMedicalRepo struct {
	records []MedicalRecord
}

func (f *fakeMedicalRepo) Create(ctx context.Context, r *MedicalRecord) error { return nil }
func (f *fakeMedicalRepo) Get(ctx context.Context, id string) (*MedicalRecord, error) {
	for i := range f.records {
		if f.records[i].ID.Hex() == id {
			return &f.records[i], nil
		}
	}
	return nil, ErrRecordNotFound
}
func (f *fakeMedicalRepo) FindByPet(ctx context.Context, petID string) ([]MedicalRecord, error) {
	return f.records, nil
}
func (f *fakeMedicalRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakeMedicalRepo) DeleteByPet(ctx context.Context, petID string) error  { return nil }

func testService(pets PetRepository, reminders ReminderRepository) PetService {
	cfg := &config.Config{Timezone: "Europe/Rome", VirtualAnchor: "08:00"}
	return NewPetService(pets, reminders, &fakeMedicalRepo{}, realtime.NewHub(zap.NewNop()), zap.NewNop(), cfg)
}

func TestVirtualEventsSkipsCompleted(t *testing.T) {
	petID := primitive.NewObjectID()
	pets := &fakePetRepo{pets: []Pet{{ID: petID, Name: "Fido"}}}
	reminders := &fakeReminderRepo{reminders: []Reminder{
		{ID: primitive.NewObjectID(), PetID: petID, ReminderType: "Vaccino", DueDate: "2025-03-10"},
		{ID: primitive.NewObjectID(), PetID: petID, ReminderType: "Antiparassitario", DueDate: "2025-03-12", IsCompleted: true},
	}}

	events, err := testService(pets, reminders).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1 (completed reminder must not appear)", len(events))
	}
	if events[0].Title != "Vaccino Fido" {
		t.Errorf("title = %q", events[0].Title)
	}
	if events[0].EventType != calendar.TypePetDue || events[0].Source != calendar.SourcePet {
		t.Errorf("type=%q source=%q", events[0].EventType, events[0].Source)
	}
}

func TestVirtualEventsTimeDefaulting(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	petID := primitive.NewObjectID()
	pets := &fakePetRepo{pets: []Pet{{ID: petID, Name: "Fido"}}}
	reminders := &fakeReminderRepo{reminders: []Reminder{
		{ID: primitive.NewObjectID(), PetID: petID, ReminderType: "Vaccino", DueDate: "2025-03-10", DueTime: "16:30"},
		{ID: primitive.NewObjectID(), PetID: petID, ReminderType: "Toelettatura", DueDate: "2025-03-11"},
	}}

	events, err := testService(pets, reminders).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}

	timed := time.Date(2025, time.March, 10, 16, 30, 0, 0, loc)
	if !events[0].StartTime.Equal(timed) {
		t.Errorf("timed reminder start = %v, want 16:30", events[0].StartTime)
	}
	anchored := time.Date(2025, time.March, 11, 8, 0, 0, 0, loc)
	if !events[1].StartTime.Equal(anchored) {
		t.Errorf("date-only reminder start = %v, want anchored 08:00", events[1].StartTime)
	}
}

func TestCreateReminderValidation(t *testing.T) {
	familyID := primitive.NewObjectID()
	petID := primitive.NewObjectID()
	pets := &fakePetRepo{pets: []Pet{{ID: petID, FamilyID: familyID, Name: "Fido"}}}
	svc := testService(pets, &fakeReminderRepo{})

	_, err := svc.CreateReminder(context.Background(), familyID.Hex(), ReminderInput{
		PetID: petID.Hex(), ReminderType: "Vaccino", DueDate: "soon",
	})
	if err == nil {
		t.Error("malformed due date should be rejected")
	}

	_, err = svc.CreateReminder(context.Background(), familyID.Hex(), ReminderInput{
		PetID: petID.Hex(), ReminderType: "Vaccino", DueDate: "2025-03-10", DueTime: "quarter past",
	})
	if err == nil {
		t.Error("malformed due time should be rejected")
	}

	_, err = svc.CreateReminder(context.Background(), familyID.Hex(), ReminderInput{
		PetID: primitive.NewObjectID().Hex(), ReminderType: "Vaccino", DueDate: "2025-03-10",
	})
	if err != ErrPetNotFound {
		t.Errorf("foreign pet: err = %v, want ErrPetNotFound", err)
	}
}
