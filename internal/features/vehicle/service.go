package vehicle

import (
	"context"
	"errors"
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

var ErrUnknownKind = errors.New("unknown expiry kind")

type VehicleInput struct {
	Name           string `json:"name"`
	Plate          string `json:"plate"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	IsGPL          bool   `json:"is_gpl"`
	InsuranceDate  string `json:"insurance_date"`
	TaxDate        string `json:"tax_date"`
	InspectionDate string `json:"inspection_date"`
	GPLDate        string `json:"gpl_date"`
	Notes          string `json:"notes"`
}

type VehicleService interface {
	List(ctx context.Context, familyID string) ([]Vehicle, error)
	Get(ctx context.Context, familyID, id string) (*Vehicle, error)
	Create(ctx context.Context, familyID string, input VehicleInput) (*Vehicle, error)
	Update(ctx context.Context, familyID, id string, input VehicleInput) error
	Renew(ctx context.Context, familyID, id, kind, newDate string) error
	Delete(ctx context.Context, familyID, id string) error

	calendar.VirtualSource
}

type VehicleServiceImpl struct {
	Repo   VehicleRepository
	Hub    *realtime.Hub
	Logger *zap.Logger

	anchor string
	loc    *time.Location
}

func NewVehicleService(repo VehicleRepository, hub *realtime.Hub, logger *zap.Logger, cfg *config.Config) VehicleService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &VehicleServiceImpl{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
		anchor: cfg.VirtualAnchor,
		loc:    loc,
	}
}

func (s *VehicleServiceImpl) Name() string { return "vehicle" }

// VirtualEvents projects every active deadline inside the window into a
// date-only event anchored at the configured time of day.
func (s *VehicleServiceImpl) VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]calendar.Event, error) {
	vehicles, err := s.Repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	var events []calendar.Event
	for i := range vehicles {
		v := &vehicles[i]
		for _, d := range v.Deadlines() {
			if !calendar.InWindow(d.Date, fromDay, toDay) {
				continue
			}
			start, err := calendar.AnchorTime(d.Date, s.anchor, s.loc)
			if err != nil {
				s.Logger.Warn("skipping malformed vehicle deadline",
					zap.String("vehicle", v.ID.Hex()), zap.String("date", d.Date))
				continue
			}
			events = append(events, calendar.Event{
				ID:        calendar.SyntheticID(calendar.SourceVehicle, v.ID.Hex(), d.SubKey),
				Title:     fmt.Sprintf("%s %s", d.Kind, v.Name),
				EventType: calendar.TypeVehicleDue,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				IsVirtual: true,
				Source:    calendar.SourceVehicle,
				Detail:    d.Kind,
			})
		}
	}
	return events, nil
}

func (s *VehicleServiceImpl) List(ctx context.Context, familyID string) ([]Vehicle, error) {
	return s.Repo.FindByFamily(ctx, familyID)
}

func (s *VehicleServiceImpl) Get(ctx context.Context, familyID, id string) (*Vehicle, error) {
	return s.owned(ctx, familyID, id)
}

func (s *VehicleServiceImpl) Create(ctx context.Context, familyID string, input VehicleInput) (*Vehicle, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	v := &Vehicle{
		FamilyID:       familyOID,
		Name:           input.Name,
		Plate:          input.Plate,
		Model:          input.Model,
		Year:           input.Year,
		IsGPL:          input.IsGPL,
		InsuranceDate:  input.InsuranceDate,
		TaxDate:        input.TaxDate,
		InspectionDate: input.InspectionDate,
		GPLDate:        input.GPLDate,
		Notes:          input.Notes,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.publish(models.ChangeInsert, v.ID.Hex(), familyID)
	return v, nil
}

func (s *VehicleServiceImpl) Update(ctx context.Context, familyID, id string, input VehicleInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}

	err := s.Repo.Update(ctx, id, bson.M{
		"name":            input.Name,
		"plate":           input.Plate,
		"model":           input.Model,
		"year":            input.Year,
		"is_gpl":          input.IsGPL,
		"insurance_date":  input.InsuranceDate,
		"tax_date":        input.TaxDate,
		"inspection_date": input.InspectionDate,
		"gpl_date":        input.GPLDate,
		"notes":           input.Notes,
	})
	if err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

// Renew moves one expiry date forward after the family handled it.
func (s *VehicleServiceImpl) Renew(ctx context.Context, familyID, id, kind, newDate string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", newDate); err != nil {
		return fmt.Errorf("invalid renewal date: %w", err)
	}

	field, ok := map[string]string{
		KindInsurance:  "insurance_date",
		KindTax:        "tax_date",
		KindInspection: "inspection_date",
		KindLPG:        "gpl_date",
	}[kind]
	if !ok {
		return ErrUnknownKind
	}

	if err := s.Repo.Update(ctx, id, bson.M{field: newDate}); err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *VehicleServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ChangeDelete, id, familyID)
	return nil
}

func (s *VehicleServiceImpl) owned(ctx context.Context, familyID, id string) (*Vehicle, error) {
	v, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *VehicleServiceImpl) publish(event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    "vehicles",
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
