package realtime

import (
	"testing"

	"casa360/internal/common/models"

	"go.uber.org/zap"
)

func TestSubscribeReplacesFilter(t *testing.T) {
	c := NewClient(nil, "fam", "user")

	c.Subscribe("shopping_items", models.ChangeInsert)
	if !c.wants(models.ChangeEvent{Table: "shopping_items", Event: models.ChangeInsert}) {
		t.Error("insert subscription should match inserts")
	}
	if c.wants(models.ChangeEvent{Table: "shopping_items", Event: models.ChangeDelete}) {
		t.Error("insert subscription must not match deletes")
	}

	// A second subscribe on the same table replaces the filter outright.
	c.Subscribe("shopping_items", models.ChangeDelete)
	if c.wants(models.ChangeEvent{Table: "shopping_items", Event: models.ChangeInsert}) {
		t.Error("old filter should be gone after resubscribe")
	}
	if !c.wants(models.ChangeEvent{Table: "shopping_items", Event: models.ChangeDelete}) {
		t.Error("new filter should match")
	}

	c.Subscribe("calendar_events", "")
	if !c.wants(models.ChangeEvent{Table: "calendar_events", Event: models.ChangeUpdate}) {
		t.Error("empty filter defaults to all events")
	}

	c.Unsubscribe("shopping_items")
	if c.wants(models.ChangeEvent{Table: "shopping_items", Event: models.ChangeDelete}) {
		t.Error("unsubscribed table must not match")
	}
}

func TestObserversSeeEveryEvent(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var got []models.ChangeEvent
	hub.Observe(func(ev models.ChangeEvent) { got = append(got, ev) })

	hub.Publish(models.ChangeEvent{Table: "pets", Event: models.ChangeInsert, RowID: "a", FamilyID: "fam1"})
	hub.Publish(models.ChangeEvent{Table: "pets", Event: models.ChangeDelete, RowID: "b", FamilyID: "fam2"})

	if len(got) != 2 {
		t.Fatalf("observer saw %d events, want 2", len(got))
	}
	if got[0].RowID != "a" || got[1].FamilyID != "fam2" {
		t.Errorf("events = %+v", got)
	}
}
