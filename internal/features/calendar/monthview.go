package calendar

import (
	"sort"
	"time"
)

const maxIndicatorDots = 3

// DayCell is one non-blank cell of the month grid.
type DayCell struct {
	Day        int      `json:"day"`
	Date       string   `json:"date"`
	Dots       []string `json:"dots"` // indicator colors, truncated at three
	IsToday    bool     `json:"is_today"`
	IsSelected bool     `json:"is_selected"`
}

// MonthView is the render model of the calendar page: the Monday-first
// grid plus the detail list of the selected day.
type MonthView struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	From          string       `json:"from"`
	To            string       `json:"to"`
	LeadingBlanks int          `json:"leading_blanks"`
	Cells         []DayCell    `json:"cells"`
	SelectedDay   string       `json:"selected_day"`
	DayEvents     []DayEvent   `json:"day_events"`
	Total         int          `json:"total"`
}

// DayEvent is one row of the selected-day list.
type DayEvent struct {
	Event
	DisplayTime   string `json:"display_time"`
	AvatarInitial string `json:"avatar_initial"`
	SourceTag     string `json:"source_tag,omitempty"` // read-only origin label for virtual rows
	CanEdit       bool   `json:"can_edit"`
}

// Read-only origin labels, matching the UI's chips.
var sourceTags = map[Source]string{
	SourcePet:      "Pet",
	SourceWork:     "Turni",
	SourceDocument: "Archivio",
	SourceVehicle:  "Veicoli",
}

// BuildMonthView lays out the viewed month. Week start is Monday: the
// native Sunday=0 weekday is rotated so Monday=0..Sunday=6 before the
// leading blank count is computed. IsToday and IsSelected are simultaneous,
// non-exclusive states.
func BuildMonthView(agg *Aggregation, selectedDay string, now time.Time, loc *time.Location, memberNames map[string]string) *MonthView {
	year, month := agg.Year, time.Month(agg.Month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	todayStr := LocalDay(now, loc)

	view := &MonthView{
		Year:          year,
		Month:         int(month),
		From:          agg.From,
		To:            agg.To,
		LeadingBlanks: (int(first.Weekday()) + 6) % 7,
		SelectedDay:   selectedDay,
		Total:         agg.Total,
	}

	for day := 1; day <= daysInMonth; day++ {
		date := LocalDay(time.Date(year, month, day, 0, 0, 0, 0, loc), loc)
		cell := DayCell{
			Day:        day,
			Date:       date,
			Dots:       []string{},
			IsToday:    date == todayStr,
			IsSelected: date == selectedDay,
		}
		for i, ev := range agg.Days[date] {
			if i == maxIndicatorDots {
				break
			}
			cell.Dots = append(cell.Dots, ColorFor(ev.EventType))
		}
		view.Cells = append(view.Cells, cell)
	}

	view.DayEvents = BuildDayList(agg.Days[selectedDay], loc, memberNames)
	return view
}

// BuildDayList sorts a day's events ascending by start time and decorates
// them for display. Virtual events are never editable or deletable through
// this view; they carry the tag of their originating module instead.
func BuildDayList(events []Event, loc *time.Location, memberNames map[string]string) []DayEvent {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	list := make([]DayEvent, 0, len(sorted))
	for _, ev := range sorted {
		de := DayEvent{
			Event:         ev,
			DisplayTime:   ev.StartTime.In(loc).Format("15:04"),
			AvatarInitial: "F", // generic family glyph when unassigned
			CanEdit:       ev.Source == SourceCalendar,
		}
		// Vehicle expiries are date-only: they get the all-day treatment.
		if ev.Source == SourceVehicle {
			de.DisplayTime = "Tutto il giorno"
		}
		if ev.IsVirtual {
			de.SourceTag = sourceTags[ev.Source]
		}
		if name, ok := memberNames[ev.AssignedTo]; ok && name != "" {
			de.AvatarInitial = string([]rune(name)[0])
		}
		list = append(list, de)
	}
	return list
}
