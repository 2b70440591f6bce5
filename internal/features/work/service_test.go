package work

import (
	"context"
	"testing"
	"time"

	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/features/family"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeShiftRepo struct {
	shifts  []Shift
	created []Shift
	cleared []string
}

func (f *fakeShiftRepo) Create(ctx context.Context, s *Shift) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.created = append(f.created, *s)
	return nil
}
func (f *fakeShiftRepo) Get(ctx context.Context, id string) (*Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID.Hex() == id {
			return &f.shifts[i], nil
		}
	}
	return nil, ErrNotFound
}
func (f *fakeShiftRepo) FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Shift, error) {
	var out []Shift
	for _, s := range f.shifts {
		if s.Date >= fromDay && s.Date <= toDay {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeShiftRepo) FindRecentByMember(ctx context.Context, familyID, memberID string, limit int64) ([]Shift, error) {
	var out []Shift
	for i := len(f.shifts) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.shifts[i].MemberID.Hex() == memberID {
			out = append(out, f.shifts[i])
		}
	}
	return out, nil
}
func (f *fakeShiftRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error                 { return nil }
func (f *fakeShiftRepo) DeleteByMemberDay(ctx context.Context, familyID, memberID, day string) error {
	f.cleared = append(f.cleared, memberID+"/"+day)
	return nil
}

type fakeMemberRepo struct {
	members []family.Member
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *family.Member) error { return nil }
func (f *fakeMemberRepo) Get(ctx context.Context, id string) (*family.Member, error) {
	return nil, family.ErrNotFound
}
func (f *fakeMemberRepo) FindByEmail(ctx context.Context, email string) (*family.Member, error) {
	return nil, family.ErrNotFound
}
func (f *fakeMemberRepo) FindByFamily(ctx context.Context, familyID string) ([]family.Member, error) {
	return f.members, nil
}
func (f *fakeMemberRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeMemberRepo) Delete(ctx context.Context, id string) error                 { return nil }
func (f *fakeMemberRepo) CountAdmins(ctx context.Context, familyID string) (int64, error) {
	return 1, nil
}
func (f *fakeMemberRepo) SaveLayout(ctx context.Context, memberID string, layout []family.LayoutNode) error {
	return nil
}
func (f *fakeMemberRepo) GetLayout(ctx context.Context, memberID string) ([]family.LayoutNode, error) {
	return nil, nil
}

func testService(repo ShiftRepository, members family.MemberRepository) ShiftService {
	cfg := &config.Config{Timezone: "Europe/Rome", VirtualAnchor: "08:00"}
	return NewShiftService(repo, members, realtime.NewHub(zap.NewNop()), zap.NewNop(), cfg)
}

func TestVirtualEventsAbsencesOnly(t *testing.T) {
	memberID := primitive.NewObjectID()
	repo := &fakeShiftRepo{shifts: []Shift{
		{ID: primitive.NewObjectID(), MemberID: memberID, Date: "2025-03-10", ShiftType: ShiftMorning},
		{ID: primitive.NewObjectID(), MemberID: memberID, Date: "2025-03-11", ShiftType: ShiftLeave},
		{ID: primitive.NewObjectID(), MemberID: memberID, Date: "2025-03-12", ShiftType: ShiftSick},
	}}
	members := &fakeMemberRepo{members: []family.Member{{ID: memberID, Name: "Anna"}}}

	events, err := testService(repo, members).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2 (working shifts stay off the calendar)", len(events))
	}

	if events[0].Title != "Ferie Anna" {
		t.Errorf("title = %q", events[0].Title)
	}
	// Absence events carry the shift type itself, not a generic label.
	if events[0].EventType != ShiftLeave || events[1].EventType != ShiftSick {
		t.Errorf("event types = %q, %q", events[0].EventType, events[1].EventType)
	}
	if events[0].Source != calendar.SourceWork || !events[0].IsVirtual {
		t.Errorf("source=%v virtual=%v", events[0].Source, events[0].IsVirtual)
	}

	loc, _ := time.LoadLocation("Europe/Rome")
	want := time.Date(2025, time.March, 11, 8, 0, 0, 0, loc)
	if !events[0].StartTime.Equal(want) {
		t.Errorf("start = %v, want anchored 08:00", events[0].StartTime)
	}
}

func TestCreateAppliesPresets(t *testing.T) {
	familyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	repo := &fakeShiftRepo{}
	svc := testService(repo, &fakeMemberRepo{})

	shift, err := svc.Create(context.Background(), familyID.Hex(), ShiftInput{
		MemberID: memberID.Hex(), Date: "2025-03-10", ShiftType: ShiftMorning,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if shift.StartTime != "06:00" || shift.EndTime != "14:00" {
		t.Errorf("preset times = %s-%s, want 06:00-14:00", shift.StartTime, shift.EndTime)
	}

	custom, err := svc.Create(context.Background(), familyID.Hex(), ShiftInput{
		MemberID: memberID.Hex(), Date: "2025-03-10", ShiftType: ShiftMorning,
		StartTime: "07:00", EndTime: "15:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if custom.StartTime != "07:00" {
		t.Errorf("explicit times must win over the preset, got %s", custom.StartTime)
	}

	absence, err := svc.Create(context.Background(), familyID.Hex(), ShiftInput{
		MemberID: memberID.Hex(), Date: "2025-03-11", ShiftType: ShiftLeave,
		StartTime: "09:00", EndTime: "17:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if absence.StartTime != "" || absence.EndTime != "" {
		t.Errorf("absences are date-only, got %s-%s", absence.StartTime, absence.EndTime)
	}

	if _, err := svc.Create(context.Background(), familyID.Hex(), ShiftInput{
		MemberID: memberID.Hex(), Date: "2025-03-10", ShiftType: "Straordinario",
	}); err != ErrInvalidShiftType {
		t.Errorf("unknown type: err = %v, want ErrInvalidShiftType", err)
	}
}

func TestReplaceDayClearsBeforeInsert(t *testing.T) {
	familyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	repo := &fakeShiftRepo{}
	svc := testService(repo, &fakeMemberRepo{})

	out, err := svc.ReplaceDay(context.Background(), familyID.Hex(), memberID.Hex(), "2025-03-10", []ShiftInput{
		{ShiftType: ShiftMorning},
		{ShiftType: ShiftNight},
	})
	if err != nil {
		t.Fatalf("replace day: %v", err)
	}
	if len(repo.cleared) != 1 || repo.cleared[0] != memberID.Hex()+"/2025-03-10" {
		t.Errorf("cleared = %v", repo.cleared)
	}
	if len(out) != 2 || len(repo.created) != 2 {
		t.Fatalf("created %d/%d shifts, want 2", len(out), len(repo.created))
	}
	for _, shift := range out {
		if shift.Date != "2025-03-10" || shift.MemberID != memberID {
			t.Errorf("shift not pinned to the day/member: %+v", shift)
		}
	}
}

func TestRecentPresetsDedupesNewestFirst(t *testing.T) {
	memberID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	repo := &fakeShiftRepo{shifts: []Shift{
		{ID: primitive.NewObjectID(), MemberID: memberID, ShiftType: ShiftMorning, StartTime: "06:00", EndTime: "14:00"},
		{ID: primitive.NewObjectID(), MemberID: other, ShiftType: ShiftMorning, StartTime: "05:00", EndTime: "13:00"},
		{ID: primitive.NewObjectID(), MemberID: memberID, ShiftType: ShiftLeave},
		{ID: primitive.NewObjectID(), MemberID: memberID, ShiftType: ShiftMorning, StartTime: "06:00", EndTime: "14:00"},
		{ID: primitive.NewObjectID(), MemberID: memberID, ShiftType: ShiftAfternoon, StartTime: "14:00", EndTime: "22:00"},
	}}
	svc := testService(repo, &fakeMemberRepo{})

	presets, err := svc.RecentPresets(context.Background(), "fam", memberID.Hex())
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	want := []TimePreset{
		{StartTime: "14:00", EndTime: "22:00"},
		{StartTime: "06:00", EndTime: "14:00"},
	}
	if len(presets) != len(want) {
		t.Fatalf("presets = %v, want %v", presets, want)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %v, want %v", i, presets[i], want[i])
		}
	}
}

func TestWeekIsMondayFirst(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := testService(repo, &fakeMemberRepo{})
	loc, _ := time.LoadLocation("Europe/Rome")

	// Wednesday March 12, 2025.
	week, err := svc.Week(context.Background(), "fam", time.Date(2025, time.March, 12, 15, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("len = %d, want 7", len(week))
	}
	if week[0].Date != "2025-03-10" || week[6].Date != "2025-03-16" {
		t.Errorf("week = %s..%s, want 2025-03-10..2025-03-16", week[0].Date, week[6].Date)
	}
}
