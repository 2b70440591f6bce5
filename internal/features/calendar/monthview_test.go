package calendar

import (
	"testing"
	"time"
)

func dayAgg(loc *time.Location, events map[string][]Event) *Aggregation {
	agg := &Aggregation{
		Year:  2025,
		Month: 3,
		From:  "2025-02-01",
		To:    "2025-04-30",
		Days:  events,
	}
	for _, evs := range events {
		agg.Total += len(evs)
	}
	return agg
}

func TestBuildMonthViewMondayFirst(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, loc)

	tests := []struct {
		year   int
		month  int
		blanks int
	}{
		{2025, 3, 5},  // March 2025 starts on Saturday
		{2025, 9, 0},  // September 2025 starts on Monday
		{2025, 6, 6},  // June 2025 starts on Sunday
		{2025, 12, 0}, // December 2025 starts on Monday
	}
	for _, tt := range tests {
		agg := &Aggregation{Year: tt.year, Month: tt.month, Days: map[string][]Event{}}
		view := BuildMonthView(agg, "", now, loc, nil)
		if view.LeadingBlanks != tt.blanks {
			t.Errorf("%d-%02d leading blanks = %d, want %d", tt.year, tt.month, view.LeadingBlanks, tt.blanks)
		}
	}
}

func TestBuildMonthViewDotsCap(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, loc)

	busy := make([]Event, 5)
	for i := range busy {
		busy[i] = Event{EventType: TypeGeneric, StartTime: time.Date(2025, time.March, 10, 9+i, 0, 0, 0, loc)}
	}
	agg := dayAgg(loc, map[string][]Event{"2025-03-10": busy})

	view := BuildMonthView(agg, "2025-03-10", now, loc, nil)
	for _, cell := range view.Cells {
		if cell.Date == "2025-03-10" {
			if len(cell.Dots) != 3 {
				t.Errorf("dots = %d, want 3", len(cell.Dots))
			}
			return
		}
	}
	t.Fatal("cell for 2025-03-10 not found")
}

func TestBuildMonthViewTodayAndSelectedSimultaneous(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, loc)
	agg := dayAgg(loc, map[string][]Event{})

	view := BuildMonthView(agg, "2025-03-15", now, loc, nil)
	found := false
	for _, cell := range view.Cells {
		if cell.Date == "2025-03-15" {
			found = true
			if !cell.IsToday || !cell.IsSelected {
				t.Errorf("today=%v selected=%v, want both true", cell.IsToday, cell.IsSelected)
			}
		} else if cell.IsToday || cell.IsSelected {
			t.Errorf("cell %s should be neither today nor selected", cell.Date)
		}
	}
	if !found {
		t.Fatal("cell for 2025-03-15 not found")
	}
}

func TestBuildDayListSortedAscending(t *testing.T) {
	loc := mustLoc(t)
	at := func(h, m int) time.Time {
		return time.Date(2025, time.March, 10, h, m, 0, 0, loc)
	}
	events := []Event{
		{Title: "Afternoon", Source: SourceCalendar, StartTime: at(14, 0)},
		{Title: "Morning", Source: SourceCalendar, StartTime: at(9, 30)},
		{Title: "Night", Source: SourceCalendar, StartTime: at(22, 0)},
	}

	list := BuildDayList(events, loc, nil)
	want := []string{"Morning", "Afternoon", "Night"}
	times := []string{"09:30", "14:00", "22:00"}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i := range want {
		if list[i].Title != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Title, want[i])
		}
		if list[i].DisplayTime != times[i] {
			t.Errorf("list[%d] time = %s, want %s", i, list[i].DisplayTime, times[i])
		}
	}
}

func TestBuildDayListDecoration(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)
	events := []Event{
		{Title: "Own", Source: SourceCalendar, StartTime: start, AssignedTo: "m1"},
		{Title: "Bollo Panda", Source: SourceVehicle, IsVirtual: true, StartTime: start},
		{Title: "Vaccino Fido", Source: SourcePet, IsVirtual: true, StartTime: start.Add(2 * time.Hour)},
	}
	names := map[string]string{"m1": "Anna"}

	list := BuildDayList(events, loc, names)

	if !list[0].CanEdit || list[0].SourceTag != "" {
		t.Errorf("persisted event: can_edit=%v tag=%q", list[0].CanEdit, list[0].SourceTag)
	}
	if list[0].AvatarInitial != "A" {
		t.Errorf("avatar = %q, want A", list[0].AvatarInitial)
	}

	if list[1].CanEdit {
		t.Error("vehicle expiry must not be editable")
	}
	if list[1].SourceTag != "Veicoli" {
		t.Errorf("vehicle tag = %q, want Veicoli", list[1].SourceTag)
	}
	if list[1].DisplayTime != "Tutto il giorno" {
		t.Errorf("vehicle time = %q, want all-day label", list[1].DisplayTime)
	}
	if list[1].AvatarInitial != "F" {
		t.Errorf("unassigned avatar = %q, want F", list[1].AvatarInitial)
	}

	if list[2].SourceTag != "Pet" || list[2].DisplayTime != "10:00" {
		t.Errorf("pet row tag=%q time=%q", list[2].SourceTag, list[2].DisplayTime)
	}
}

func TestColorFor(t *testing.T) {
	if ColorFor(TypeMedical) != "#f87171" {
		t.Errorf("medical color = %s", ColorFor(TypeMedical))
	}
	if ColorFor("Qualcosa di nuovo") != fallbackColor {
		t.Errorf("unknown type should fall back, got %s", ColorFor("Qualcosa di nuovo"))
	}
}
