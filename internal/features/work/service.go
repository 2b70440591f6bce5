package work

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/features/family"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrInvalidShiftType = errors.New("invalid shift type")

type ShiftInput struct {
	MemberID  string `json:"member_id"`
	Date      string `json:"date"`
	ShiftType string `json:"shift_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

// WeekDay is one column of the week planner.
type WeekDay struct {
	Date   string  `json:"date"`
	Shifts []Shift `json:"shifts"`
}

// TimePreset is a start/end pair a member recently used, offered for quick
// re-entry in the shift editor.
type TimePreset struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ShiftService interface {
	Week(ctx context.Context, familyID string, anchor time.Time) ([]WeekDay, error)
	RecentPresets(ctx context.Context, familyID, memberID string) ([]TimePreset, error)
	Range(ctx context.Context, familyID, fromDay, toDay string) ([]Shift, error)
	Create(ctx context.Context, familyID string, input ShiftInput) (*Shift, error)
	// ReplaceDay swaps a member's shifts for one day with the given set.
	ReplaceDay(ctx context.Context, familyID, memberID, day string, inputs []ShiftInput) ([]Shift, error)
	Update(ctx context.Context, familyID, id string, input ShiftInput) error
	Delete(ctx context.Context, familyID, id string) error

	calendar.VirtualSource
}

type ShiftServiceImpl struct {
	Repo    ShiftRepository
	Members family.MemberRepository
	Hub     *realtime.Hub
	Logger  *zap.Logger

	anchor string
	loc    *time.Location
}

func NewShiftService(repo ShiftRepository, members family.MemberRepository, hub *realtime.Hub, logger *zap.Logger, cfg *config.Config) ShiftService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &ShiftServiceImpl{
		Repo:    repo,
		Members: members,
		Hub:     hub,
		Logger:  logger,
		anchor:  cfg.VirtualAnchor,
		loc:     loc,
	}
}

func (s *ShiftServiceImpl) Name() string { return "work" }

// VirtualEvents projects absences only. Working shifts stay on the week
// planner; leave, rest, sick days and permits concern the whole family and
// surface on the shared calendar.
func (s *ShiftServiceImpl) VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]calendar.Event, error) {
	shifts, err := s.Repo.FindRange(ctx, familyID, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	names, err := s.memberNames(ctx, familyID)
	if err != nil {
		return nil, err
	}

	var events []calendar.Event
	for _, shift := range shifts {
		if !IsAbsence(shift.ShiftType) {
			continue
		}
		start, err := calendar.AnchorTime(shift.Date, s.anchor, s.loc)
		if err != nil {
			s.Logger.Warn("skipping malformed shift date",
				zap.String("shift", shift.ID.Hex()), zap.String("date", shift.Date))
			continue
		}
		events = append(events, calendar.Event{
			ID:        calendar.SyntheticID(calendar.SourceWork, shift.ID.Hex(), ""),
			Title:     fmt.Sprintf("%s %s", shift.ShiftType, names[shift.MemberID.Hex()]),
			EventType: shift.ShiftType,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsVirtual: true,
			Source:    calendar.SourceWork,
			Detail:    shift.ShiftType,
		})
	}
	return events, nil
}

// Week returns the Monday-first week containing the anchor date.
func (s *ShiftServiceImpl) Week(ctx context.Context, familyID string, anchor time.Time) ([]WeekDay, error) {
	local := anchor.In(s.loc)
	monday := local.AddDate(0, 0, -((int(local.Weekday()) + 6) % 7))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, s.loc)

	fromDay := calendar.LocalDay(monday, s.loc)
	toDay := calendar.LocalDay(monday.AddDate(0, 0, 6), s.loc)

	shifts, err := s.Repo.FindRange(ctx, familyID, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]Shift)
	for _, shift := range shifts {
		byDay[shift.Date] = append(byDay[shift.Date], shift)
	}

	week := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := calendar.LocalDay(monday.AddDate(0, 0, i), s.loc)
		week = append(week, WeekDay{Date: day, Shifts: byDay[day]})
	}
	return week, nil
}

// RecentPresets collects the distinct start/end pairs of the member's latest
// timed shifts, newest first.
func (s *ShiftServiceImpl) RecentPresets(ctx context.Context, familyID, memberID string) ([]TimePreset, error) {
	shifts, err := s.Repo.FindRecentByMember(ctx, familyID, memberID, 30)
	if err != nil {
		return nil, err
	}

	seen := make(map[TimePreset]bool)
	presets := make([]TimePreset, 0, 5)
	for _, shift := range shifts {
		if shift.StartTime == "" || shift.EndTime == "" {
			continue
		}
		p := TimePreset{StartTime: shift.StartTime, EndTime: shift.EndTime}
		if seen[p] {
			continue
		}
		seen[p] = true
		presets = append(presets, p)
		if len(presets) == 5 {
			break
		}
	}
	return presets, nil
}

func (s *ShiftServiceImpl) Range(ctx context.Context, familyID, fromDay, toDay string) ([]Shift, error) {
	return s.Repo.FindRange(ctx, familyID, fromDay, toDay)
}

func (s *ShiftServiceImpl) Create(ctx context.Context, familyID string, input ShiftInput) (*Shift, error) {
	shift, err := s.build(familyID, input)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.publish(models.ChangeInsert, shift.ID.Hex(), familyID)
	return shift, nil
}

func (s *ShiftServiceImpl) ReplaceDay(ctx context.Context, familyID, memberID, day string, inputs []ShiftInput) ([]Shift, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid day: %w", err)
	}

	shifts := make([]*Shift, 0, len(inputs))
	for _, input := range inputs {
		input.MemberID = memberID
		input.Date = day
		shift, err := s.build(familyID, input)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := s.Repo.DeleteByMemberDay(ctx, familyID, memberID, day); err != nil {
		return nil, err
	}
	out := make([]Shift, 0, len(shifts))
	for _, shift := range shifts {
		if err := s.Repo.Create(ctx, shift); err != nil {
			return nil, err
		}
		out = append(out, *shift)
	}

	s.publish(models.ChangeUpdate, memberID, familyID)
	return out, nil
}

func (s *ShiftServiceImpl) Update(ctx context.Context, familyID, id string, input ShiftInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}

	shift, err := s.build(familyID, input)
	if err != nil {
		return err
	}

	err = s.Repo.Update(ctx, id, bson.M{
		"member_id":  shift.MemberID,
		"date":       shift.Date,
		"shift_type": shift.ShiftType,
		"start_time": shift.StartTime,
		"end_time":   shift.EndTime,
		"notes":      shift.Notes,
	})
	if err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *ShiftServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ChangeDelete, id, familyID)
	return nil
}

// build validates the input and fills time presets for working shifts.
func (s *ShiftServiceImpl) build(familyID string, input ShiftInput) (*Shift, error) {
	if !IsValidType(input.ShiftType) {
		return nil, ErrInvalidShiftType
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	memberOID, err := primitive.ObjectIDFromHex(input.MemberID)
	if err != nil {
		return nil, err
	}

	shift := &Shift{
		FamilyID:  familyOID,
		MemberID:  memberOID,
		Date:      input.Date,
		ShiftType: input.ShiftType,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Notes:     input.Notes,
	}

	if preset, ok := TimePresets[shift.ShiftType]; ok && shift.StartTime == "" && shift.EndTime == "" {
		shift.StartTime, shift.EndTime = preset[0], preset[1]
	}
	if IsAbsence(shift.ShiftType) {
		shift.StartTime, shift.EndTime = "", ""
	}
	return shift, nil
}

func (s *ShiftServiceImpl) owned(ctx context.Context, familyID, id string) (*Shift, error) {
	shift, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return shift, nil
}

func (s *ShiftServiceImpl) memberNames(ctx context.Context, familyID string) (map[string]string, error) {
	members, err := s.Members.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID.Hex()] = m.Name
	}
	return names, nil
}

func (s *ShiftServiceImpl) publish(event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    "work_shifts",
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
