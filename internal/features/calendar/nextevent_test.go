package calendar

import (
	"testing"
	"time"
)

func todayAgg(loc *time.Location, day string, events ...Event) *Aggregation {
	return &Aggregation{Days: map[string][]Event{day: events}, Total: len(events)}
}

func TestNextEventSkipsPast(t *testing.T) {
	loc := mustLoc(t)
	at := func(h int) time.Time { return time.Date(2025, time.March, 10, h, 0, 0, 0, loc) }
	now := at(10)

	agg := todayAgg(loc, "2025-03-10",
		Event{Title: "Early", Source: SourceCalendar, StartTime: at(8)},
		Event{Title: "Late", Source: SourceCalendar, StartTime: at(23)},
	)

	card := BuildNextEventCard(agg, now, loc)
	if card.CatchUp || card.Empty {
		t.Fatalf("catch_up=%v empty=%v, want neither", card.CatchUp, card.Empty)
	}
	if len(card.Events) != 1 || card.Events[0].Title != "Late" {
		t.Fatalf("events = %+v, want only Late", card.Events)
	}
	if card.Events[0].DisplayTime != "23:00" {
		t.Errorf("display time = %s, want 23:00", card.Events[0].DisplayTime)
	}
	if card.Module != "calendario" {
		t.Errorf("module = %s, want calendario", card.Module)
	}
}

func TestNextEventCapsAtThree(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)

	var events []Event
	for h := 9; h <= 13; h++ {
		events = append(events, Event{
			Title:     time.Date(2025, time.March, 10, h, 0, 0, 0, loc).Format("15:04"),
			Source:    SourceCalendar,
			StartTime: time.Date(2025, time.March, 10, h, 0, 0, 0, loc),
		})
	}

	card := BuildNextEventCard(todayAgg(loc, "2025-03-10", events...), now, loc)
	if len(card.Events) != 3 {
		t.Fatalf("len = %d, want 3", len(card.Events))
	}
	if card.Events[0].Title != "09:00" || card.Events[2].Title != "11:00" {
		t.Errorf("picked %s..%s, want the three nearest", card.Events[0].Title, card.Events[2].Title)
	}
}

func TestNextEventCatchUpReversed(t *testing.T) {
	loc := mustLoc(t)
	at := func(h int) time.Time { return time.Date(2025, time.March, 10, h, 0, 0, 0, loc) }
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, loc)

	agg := todayAgg(loc, "2025-03-10",
		Event{Title: "One", Source: SourceCalendar, StartTime: at(9)},
		Event{Title: "Two", Source: SourceCalendar, StartTime: at(12)},
		Event{Title: "Three", Source: SourceCalendar, StartTime: at(15)},
		Event{Title: "Four", Source: SourceCalendar, StartTime: at(18)},
	)

	card := BuildNextEventCard(agg, now, loc)
	if !card.CatchUp {
		t.Fatal("want catch-up mode")
	}
	want := []string{"Four", "Three", "Two"}
	if len(card.Events) != len(want) {
		t.Fatalf("len = %d, want %d", len(card.Events), len(want))
	}
	for i := range want {
		if card.Events[i].Title != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, card.Events[i].Title, want[i])
		}
	}
}

func TestNextEventAllDayVirtualAlwaysFuture(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 10, 23, 0, 0, 0, loc)

	agg := todayAgg(loc, "2025-03-10",
		Event{
			Title:     "Assicurazione Panda",
			Source:    SourceVehicle,
			IsVirtual: true,
			Detail:    "Assicurazione",
			StartTime: time.Date(2025, time.March, 10, 8, 0, 0, 0, loc),
		},
	)

	card := BuildNextEventCard(agg, now, loc)
	if card.CatchUp {
		t.Fatal("date-only expiry must stay ahead all day, not fall into catch-up")
	}
	if len(card.Events) != 1 {
		t.Fatalf("len = %d, want 1", len(card.Events))
	}
	if card.Events[0].DisplayTime != "Oggi" {
		t.Errorf("display time = %s, want Oggi", card.Events[0].DisplayTime)
	}
	if card.Events[0].Subtitle != "Assicurazione" {
		t.Errorf("subtitle = %s, want the expiry kind", card.Events[0].Subtitle)
	}
	if card.Module != "veicoli" {
		t.Errorf("module = %s, want veicoli", card.Module)
	}
}

func TestNextEventPetReminderUsesItsTime(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)

	agg := todayAgg(loc, "2025-03-10",
		Event{
			Title:     "Vaccino Fido",
			Source:    SourcePet,
			IsVirtual: true,
			StartTime: time.Date(2025, time.March, 10, 9, 0, 0, 0, loc),
		},
	)

	// A timed pet reminder behaves like a real event: past is past.
	card := BuildNextEventCard(agg, now, loc)
	if !card.CatchUp {
		t.Fatal("past pet reminder should trigger catch-up, not stay pending")
	}
	if card.Events[0].DisplayTime != "09:00" {
		t.Errorf("display time = %s, want 09:00", card.Events[0].DisplayTime)
	}
}

func TestNextEventEmptyDay(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)

	card := BuildNextEventCard(todayAgg(loc, "2025-03-10"), now, loc)
	if !card.Empty || card.CatchUp || len(card.Events) != 0 {
		t.Fatalf("card = %+v, want empty", card)
	}
	if card.Module != "" {
		t.Errorf("module = %q, want empty", card.Module)
	}
}
