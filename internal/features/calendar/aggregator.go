package calendar

import (
	"context"
	"fmt"
	"time"
)

// VirtualSource projects rows of a non-calendar module (vehicles, pet
// reminders, work shifts, documents) into Events for an inclusive local-day
// window [fromDay, toDay] (YYYY-MM-DD).
type VirtualSource interface {
	Name() string
	VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]Event, error)
}

// Aggregation is one month-wide merge of all sources, grouped by local day.
// Year/Month/From/To echo the request so a client can discard responses
// that no longer match its latest navigation.
type Aggregation struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	From  string            `json:"from"`
	To    string            `json:"to"`
	Days  map[string][]Event `json:"days"`
	Total int               `json:"total"`
}

// Aggregator merges persisted calendar rows with every virtual source.
type Aggregator struct {
	Events  EventRepository
	Sources []VirtualSource
	Loc     *time.Location
}

func NewAggregator(events EventRepository, sources []VirtualSource, loc *time.Location) *Aggregator {
	return &Aggregator{Events: events, Sources: sources, Loc: loc}
}

// AggregateMonth builds the map for the month-wide window: first day of the
// previous month through the last day of the next month, inclusive. The
// wide window supports lookahead/lookbehind without re-fetching on every
// page flip.
func (a *Aggregator) AggregateMonth(ctx context.Context, familyID string, year int, month time.Month) (*Aggregation, error) {
	from := time.Date(year, month-1, 1, 0, 0, 0, 0, a.Loc)
	// Day zero of month+2 is the last day of the following month.
	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, a.Loc)
	until := lastDay.AddDate(0, 0, 1) // exclusive upper bound for the row fetch

	agg, err := a.aggregate(ctx, familyID, from, until, LocalDay(from, a.Loc), LocalDay(lastDay, a.Loc))
	if err != nil {
		return nil, err
	}
	agg.Year = year
	agg.Month = int(month)
	return agg, nil
}

// AggregateDay is the single-day variant used by the dashboard selector.
func (a *Aggregator) AggregateDay(ctx context.Context, familyID string, day time.Time) (*Aggregation, error) {
	start := time.Date(day.In(a.Loc).Year(), day.In(a.Loc).Month(), day.In(a.Loc).Day(), 0, 0, 0, 0, a.Loc)
	dayStr := LocalDay(start, a.Loc)

	agg, err := a.aggregate(ctx, familyID, start, start.AddDate(0, 0, 1), dayStr, dayStr)
	if err != nil {
		return nil, err
	}
	agg.Year = start.Year()
	agg.Month = int(start.Month())
	return agg, nil
}

// aggregate runs the whole pipeline. Any source failing aborts the merge:
// a half-merged calendar is worse than an explicit error.
func (a *Aggregator) aggregate(ctx context.Context, familyID string, from, until time.Time, fromDay, toDay string) (*Aggregation, error) {
	rows, err := a.Events.FindRange(ctx, familyID, from, until)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}

	events := make([]Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].ToEvent())
	}

	for _, src := range a.Sources {
		virtual, err := src.VirtualEvents(ctx, familyID, fromDay, toDay)
		if err != nil {
			return nil, fmt.Errorf("fetch %s events: %w", src.Name(), err)
		}
		events = append(events, virtual...)
	}

	agg := &Aggregation{
		From: fromDay,
		To:   toDay,
		Days: make(map[string][]Event),
	}
	for _, ev := range events {
		day := LocalDay(ev.StartTime, a.Loc)
		agg.Days[day] = append(agg.Days[day], ev)
		agg.Total++
	}

	return agg, nil
}

// SyntheticID builds the wire id of a virtual event: {tag}-{rowID}[-{subKey}].
func SyntheticID(source Source, rowID, subKey string) string {
	tag := map[Source]string{
		SourceVehicle:  "v",
		SourcePet:      "p",
		SourceWork:     "w",
		SourceDocument: "d",
	}[source]
	if subKey == "" {
		return fmt.Sprintf("%s-%s", tag, rowID)
	}
	return fmt.Sprintf("%s-%s-%s", tag, rowID, subKey)
}

// InWindow reports whether a day string falls inside the inclusive window.
// Day strings compare lexicographically because of the fixed layout.
func InWindow(day, fromDay, toDay string) bool {
	return day != "" && day >= fromDay && day <= toDay
}

// AnchorTime places a date-only value at the configured anchor (08:00 by
// default) in the family's timezone.
func AnchorTime(day string, anchor string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout+" 15:04", day+" "+anchor, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad anchor date %q: %w", day, err)
	}
	return t, nil
}
