package calendar

import (
	"sort"
	"time"
)

const maxNextEvents = 3

// NextEventItem is one row of the dashboard summary card.
type NextEventItem struct {
	Event
	DisplayTime string `json:"display_time"`
	Subtitle    string `json:"subtitle"`
}

// NextEventCard is the dashboard "next event" widget model. When no event
// is still ahead but the day did produce events, CatchUp is set and Events
// holds the chronologically-last ones, most recent first, for end-of-day
// review.
type NextEventCard struct {
	Events  []NextEventItem `json:"events"`
	CatchUp bool            `json:"catch_up"`
	Empty   bool            `json:"empty"`
	Module  string          `json:"module,omitempty"` // owner of the nearest event, for click routing
}

var sourceModules = map[Source]string{
	SourceCalendar: "calendario",
	SourceVehicle:  "veicoli",
	SourcePet:      "animali",
	SourceWork:     "lavoro",
	SourceDocument: "documenti",
}

// BuildNextEventCard classifies today's events against the current instant.
// Date-only virtual events (everything virtual except pet reminders, which
// carry their own time) stay "future" for the whole day.
func BuildNextEventCard(agg *Aggregation, now time.Time, loc *time.Location) *NextEventCard {
	today := agg.Days[LocalDay(now, loc)]

	all := make([]Event, len(today))
	copy(all, today)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})

	var future []Event
	for _, ev := range all {
		if ev.IsVirtual && ev.Source != SourcePet {
			future = append(future, ev)
			continue
		}
		if !ev.StartTime.Before(now) {
			future = append(future, ev)
		}
	}

	card := &NextEventCard{}

	picked := future
	if len(picked) > maxNextEvents {
		picked = picked[:maxNextEvents]
	}

	if len(picked) == 0 && len(all) > 0 {
		// Catch-up display: last three already-past events, reversed.
		card.CatchUp = true
		start := len(all) - maxNextEvents
		if start < 0 {
			start = 0
		}
		tail := all[start:]
		for i := len(tail) - 1; i >= 0; i-- {
			picked = append(picked, tail[i])
		}
	}

	if len(picked) == 0 {
		card.Empty = true
		return card
	}

	for _, ev := range picked {
		item := NextEventItem{
			Event:       ev,
			DisplayTime: ev.StartTime.In(loc).Format("15:04"),
			Subtitle:    ev.EventType,
		}
		if ev.IsVirtual {
			item.Subtitle = ev.Detail
			if ev.Source != SourcePet {
				item.DisplayTime = "Oggi"
			}
		}
		card.Events = append(card.Events, item)
	}

	card.Module = sourceModules[picked[0].Source]
	return card
}
