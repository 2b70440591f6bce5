package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/config"
	"casa360/internal/features/family"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrVirtualReadOnly = errors.New("virtual events must be changed at their source")

// EventInput is the add/edit form payload. There is no end-time input:
// the end is always start plus the configured default duration.
type EventInput struct {
	Title      string `json:"title"`
	EventType  string `json:"event_type"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	AssignedTo string `json:"assigned_to"`
}

type CalendarService interface {
	MonthView(ctx context.Context, familyID string, year int, month time.Month, selectedDay string, now time.Time) (*MonthView, error)
	AggregateMonth(ctx context.Context, familyID string, year int, month time.Month) (*Aggregation, error)
	NextEvents(ctx context.Context, familyID string, now time.Time) (*NextEventCard, error)
	Create(ctx context.Context, familyID, userID string, input EventInput) (*Row, error)
	Update(ctx context.Context, familyID, id string, input EventInput) error
	Delete(ctx context.Context, familyID, id string) error
}

type CalendarServiceImpl struct {
	Repo       EventRepository
	Aggregator *Aggregator
	MemberRepo family.MemberRepository
	Hub        *realtime.Hub
	Logger     *zap.Logger

	loc      *time.Location
	duration time.Duration
}

func NewCalendarService(
	repo EventRepository,
	aggregator *Aggregator,
	memberRepo family.MemberRepository,
	hub *realtime.Hub,
	logger *zap.Logger,
	cfg *config.Config,
) CalendarService {
	return &CalendarServiceImpl{
		Repo:       repo,
		Aggregator: aggregator,
		MemberRepo: memberRepo,
		Hub:        hub,
		Logger:     logger,
		loc:        aggregator.Loc,
		duration:   cfg.EventDuration,
	}
}

func (s *CalendarServiceImpl) AggregateMonth(ctx context.Context, familyID string, year int, month time.Month) (*Aggregation, error) {
	return s.Aggregator.AggregateMonth(ctx, familyID, year, month)
}

func (s *CalendarServiceImpl) MonthView(ctx context.Context, familyID string, year int, month time.Month, selectedDay string, now time.Time) (*MonthView, error) {
	agg, err := s.Aggregator.AggregateMonth(ctx, familyID, year, month)
	if err != nil {
		return nil, err
	}

	names, err := s.memberNames(ctx, familyID)
	if err != nil {
		return nil, err
	}

	if selectedDay == "" {
		selectedDay = LocalDay(now, s.loc)
	}
	return BuildMonthView(agg, selectedDay, now, s.loc, names), nil
}

func (s *CalendarServiceImpl) NextEvents(ctx context.Context, familyID string, now time.Time) (*NextEventCard, error) {
	agg, err := s.Aggregator.AggregateDay(ctx, familyID, now)
	if err != nil {
		return nil, err
	}
	return BuildNextEventCard(agg, now, s.loc), nil
}

func (s *CalendarServiceImpl) Create(ctx context.Context, familyID, userID string, input EventInput) (*Row, error) {
	start, err := s.parseStart(input)
	if err != nil {
		return nil, err
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	row := &Row{
		FamilyID:  familyOID,
		Title:     input.Title,
		EventType: input.EventType,
		StartTime: start,
		EndTime:   start.Add(s.duration),
		CreatedBy: userOID,
	}
	if input.AssignedTo != "" {
		assigned, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return nil, err
		}
		row.AssignedTo = &assigned
	}

	if err := s.Repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "calendar_events",
		Event:    models.ChangeInsert,
		RowID:    row.ID.Hex(),
		FamilyID: familyID,
	})
	return row, nil
}

// Update preserves identity (family, creator) and only overwrites the
// mutable fields.
func (s *CalendarServiceImpl) Update(ctx context.Context, familyID, id string, input EventInput) error {
	row, err := s.owned(ctx, familyID, id)
	if err != nil {
		return err
	}

	start, err := s.parseStart(input)
	if err != nil {
		return err
	}

	updates := bson.M{
		"title":      input.Title,
		"event_type": input.EventType,
		"start_time": start,
		"end_time":   start.Add(s.duration),
	}
	if input.AssignedTo != "" {
		assigned, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return err
		}
		updates["assigned_to"] = assigned
	} else {
		updates["assigned_to"] = nil
	}

	if err := s.Repo.Update(ctx, id, updates); err != nil {
		return err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "calendar_events",
		Event:    models.ChangeUpdate,
		RowID:    row.ID.Hex(),
		FamilyID: familyID,
	})
	return nil
}

func (s *CalendarServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "calendar_events",
		Event:    models.ChangeDelete,
		RowID:    id,
		FamilyID: familyID,
	})
	return nil
}

func (s *CalendarServiceImpl) owned(ctx context.Context, familyID, id string) (*Row, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		// Synthetic ids ({tag}-{rowID}) never parse as object ids.
		return nil, ErrVirtualReadOnly
	}
	row, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return row, nil
}

func (s *CalendarServiceImpl) parseStart(input EventInput) (time.Time, error) {
	start, err := time.ParseInLocation(dayLayout+" 15:04", input.Date+" "+input.Time, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time: %w", err)
	}
	return start, nil
}

func (s *CalendarServiceImpl) memberNames(ctx context.Context, familyID string) (map[string]string, error) {
	members, err := s.MemberRepo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID.Hex()] = m.Name
	}
	return names, nil
}
