package pet

import (
	"context"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PetInput struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	Microchip string  `json:"microchip"`
	Passport  string  `json:"passport"`
	Weight    float64 `json:"weight"`
	Vet       string  `json:"vet"`
	Notes     string  `json:"notes"`
}

type ReminderInput struct {
	PetID        string `json:"pet_id"`
	ReminderType string `json:"reminder_type"`
	DueDate      string `json:"due_date"`
	DueTime      string `json:"due_time"`
	Notes        string `json:"notes"`
}

type PetService interface {
	ListPets(ctx context.Context, familyID string) ([]Pet, error)
	CreatePet(ctx context.Context, familyID string, input PetInput) (*Pet, error)
	UpdatePet(ctx context.Context, familyID, id string, input PetInput) error
	DeletePet(ctx context.Context, familyID, id string) error

	ListReminders(ctx context.Context, familyID string) ([]Reminder, error)
	CreateReminder(ctx context.Context, familyID string, input ReminderInput) (*Reminder, error)
	SetCompleted(ctx context.Context, familyID, id string, completed bool) error
	DeleteReminder(ctx context.Context, familyID, id string) error

	ListMedical(ctx context.Context, familyID, petID string) ([]MedicalRecord, error)
	CreateMedical(ctx context.Context, familyID string, input MedicalInput) (*MedicalRecord, error)
	DeleteMedical(ctx context.Context, familyID, id string) error

	calendar.VirtualSource
}

type MedicalInput struct {
	PetID       string `json:"pet_id"`
	RecordType  string `json:"record_type"`
	Title       string `json:"title"`
	RecordDate  string `json:"record_date"`
	Description string `json:"description"`
}

type PetServiceImpl struct {
	Pets      PetRepository
	Reminders ReminderRepository
	Medical   MedicalRecordRepository
	Hub       *realtime.Hub
	Logger    *zap.Logger

	anchor string
	loc    *time.Location
}

func NewPetService(pets PetRepository, reminders ReminderRepository, medical MedicalRecordRepository, hub *realtime.Hub, logger *zap.Logger, cfg *config.Config) PetService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &PetServiceImpl{
		Pets:      pets,
		Reminders: reminders,
		Medical:   medical,
		Hub:       hub,
		Logger:    logger,
		anchor:    cfg.VirtualAnchor,
		loc:       loc,
	}
}

func (s *PetServiceImpl) Name() string { return "pet" }

// VirtualEvents projects pending reminders into timed events. Completed
// reminders never reach the calendar; a reminder without its own time uses
// the default anchor.
func (s *PetServiceImpl) VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]calendar.Event, error) {
	reminders, err := s.Reminders.FindPending(ctx, familyID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, nil
	}

	pets, err := s.Pets.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(pets))
	for _, p := range pets {
		names[p.ID.Hex()] = p.Name
	}

	var events []calendar.Event
	for _, rem := range reminders {
		at := rem.DueTime
		if at == "" {
			at = s.anchor
		}
		start, err := calendar.AnchorTime(rem.DueDate, at, s.loc)
		if err != nil {
			s.Logger.Warn("skipping malformed pet reminder",
				zap.String("reminder", rem.ID.Hex()), zap.String("date", rem.DueDate))
			continue
		}
		events = append(events, calendar.Event{
			ID:        calendar.SyntheticID(calendar.SourcePet, rem.ID.Hex(), ""),
			Title:     fmt.Sprintf("%s %s", rem.ReminderType, names[rem.PetID.Hex()]),
			EventType: calendar.TypePetDue,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsVirtual: true,
			Source:    calendar.SourcePet,
			Detail:    rem.ReminderType,
		})
	}
	return events, nil
}

func (s *PetServiceImpl) ListPets(ctx context.Context, familyID string) ([]Pet, error) {
	return s.Pets.FindByFamily(ctx, familyID)
}

func (s *PetServiceImpl) CreatePet(ctx context.Context, familyID string, input PetInput) (*Pet, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	p := &Pet{
		FamilyID:  familyOID,
		Name:      input.Name,
		Species:   input.Species,
		Breed:     input.Breed,
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		Microchip: input.Microchip,
		Passport:  input.Passport,
		Weight:    input.Weight,
		Vet:       input.Vet,
		Notes:     input.Notes,
	}
	if err := s.Pets.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publish("pets", models.ChangeInsert, p.ID.Hex(), familyID)
	return p, nil
}

func (s *PetServiceImpl) UpdatePet(ctx context.Context, familyID, id string, input PetInput) error {
	if _, err := s.ownedPet(ctx, familyID, id); err != nil {
		return err
	}

	err := s.Pets.Update(ctx, id, bson.M{
		"name":       input.Name,
		"species":    input.Species,
		"breed":      input.Breed,
		"birth_date": input.BirthDate,
		"gender":     input.Gender,
		"microchip":  input.Microchip,
		"passport":   input.Passport,
		"weight":     input.Weight,
		"vet":        input.Vet,
		"notes":      input.Notes,
	})
	if err != nil {
		return err
	}

	s.publish("pets", models.ChangeUpdate, id, familyID)
	return nil
}

// DeletePet removes the pet with its reminders and medical log.
func (s *PetServiceImpl) DeletePet(ctx context.Context, familyID, id string) error {
	if _, err := s.ownedPet(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Pets.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Reminders.DeleteByPet(ctx, id); err != nil {
		s.Logger.Error("failed to cascade reminder delete", zap.String("pet", id), zap.Error(err))
	}
	if err := s.Medical.DeleteByPet(ctx, id); err != nil {
		s.Logger.Error("failed to cascade medical record delete", zap.String("pet", id), zap.Error(err))
	}

	s.publish("pets", models.ChangeDelete, id, familyID)
	s.publish("pet_reminders", models.ChangeDelete, id, familyID)
	return nil
}

func (s *PetServiceImpl) ListReminders(ctx context.Context, familyID string) ([]Reminder, error) {
	return s.Reminders.FindByFamily(ctx, familyID)
}

func (s *PetServiceImpl) CreateReminder(ctx context.Context, familyID string, input ReminderInput) (*Reminder, error) {
	if _, err := time.Parse("2006-01-02", input.DueDate); err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	if input.DueTime != "" {
		if _, err := time.Parse("15:04", input.DueTime); err != nil {
			return nil, fmt.Errorf("invalid due time: %w", err)
		}
	}

	if _, err := s.ownedPet(ctx, familyID, input.PetID); err != nil {
		return nil, err
	}

	familyOID, _ := primitive.ObjectIDFromHex(familyID)
	petOID, err := primitive.ObjectIDFromHex(input.PetID)
	if err != nil {
		return nil, err
	}

	rem := &Reminder{
		FamilyID:     familyOID,
		PetID:        petOID,
		ReminderType: input.ReminderType,
		DueDate:      input.DueDate,
		DueTime:      input.DueTime,
		Notes:        input.Notes,
	}
	if err := s.Reminders.Create(ctx, rem); err != nil {
		return nil, err
	}

	s.publish("pet_reminders", models.ChangeInsert, rem.ID.Hex(), familyID)
	return rem, nil
}

func (s *PetServiceImpl) SetCompleted(ctx context.Context, familyID, id string, completed bool) error {
	if _, err := s.ownedReminder(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Reminders.Update(ctx, id, bson.M{"is_completed": completed}); err != nil {
		return err
	}

	s.publish("pet_reminders", models.ChangeUpdate, id, familyID)
	return nil
}

func (s *PetServiceImpl) DeleteReminder(ctx context.Context, familyID, id string) error {
	if _, err := s.ownedReminder(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Reminders.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("pet_reminders", models.ChangeDelete, id, familyID)
	return nil
}

func (s *PetServiceImpl) ListMedical(ctx context.Context, familyID, petID string) ([]MedicalRecord, error) {
	if _, err := s.ownedPet(ctx, familyID, petID); err != nil {
		return nil, err
	}
	return s.Medical.FindByPet(ctx, petID)
}

func (s *PetServiceImpl) CreateMedical(ctx context.Context, familyID string, input MedicalInput) (*MedicalRecord, error) {
	if _, err := time.Parse("2006-01-02", input.RecordDate); err != nil {
		return nil, fmt.Errorf("invalid record date: %w", err)
	}
	if _, err := s.ownedPet(ctx, familyID, input.PetID); err != nil {
		return nil, err
	}

	familyOID, _ := primitive.ObjectIDFromHex(familyID)
	petOID, err := primitive.ObjectIDFromHex(input.PetID)
	if err != nil {
		return nil, err
	}

	rec := &MedicalRecord{
		FamilyID:    familyOID,
		PetID:       petOID,
		RecordType:  input.RecordType,
		Title:       input.Title,
		RecordDate:  input.RecordDate,
		Description: input.Description,
	}
	if err := s.Medical.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.publish("pet_medical_records", models.ChangeInsert, rec.ID.Hex(), familyID)
	return rec, nil
}

func (s *PetServiceImpl) DeleteMedical(ctx context.Context, familyID, id string) error {
	rec, err := s.Medical.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.FamilyID.Hex() != familyID {
		return ErrRecordNotFound
	}
	if err := s.Medical.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("pet_medical_records", models.ChangeDelete, id, familyID)
	return nil
}

func (s *PetServiceImpl) ownedPet(ctx context.Context, familyID, id string) (*Pet, error) {
	p, err := s.Pets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.FamilyID.Hex() != familyID {
		return nil, ErrPetNotFound
	}
	return p, nil
}

func (s *PetServiceImpl) ownedReminder(ctx context.Context, familyID, id string) (*Reminder, error) {
	rem, err := s.Reminders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rem.FamilyID.Hex() != familyID {
		return nil, ErrReminderNotFound
	}
	return rem, nil
}

func (s *PetServiceImpl) publish(table, event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    table,
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
