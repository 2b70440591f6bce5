package document

import (
	"context"
	"testing"

	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeDocRepo struct {
	docs []Document
}

func (f *fakeDocRepo) Create(ctx context.Context, d *Document) error { return nil }
func (f *fakeDocRepo) Get(ctx context.Context, id string) (*Document, error) {
	for i := range f.docs {
		if f.docs[i].ID.Hex() == id {
			return &f.docs[i], nil
		}
	}
	return nil, ErrNotFound
}
func (f *fakeDocRepo) FindByFamily(ctx context.Context, familyID string) ([]Document, error) {
	return f.docs, nil
}
func (f *fakeDocRepo) FindExpiring(ctx context.Context, familyID, fromDay, toDay string) ([]Document, error) {
	var out []Document
	for _, d := range f.docs {
		if d.ExpiryDate != "" && d.ExpiryDate >= fromDay && d.ExpiryDate <= toDay {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeDocRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeDocRepo) Delete(ctx context.Context, id string) error                 { return nil }

func testService(repo DocumentRepository) DocumentService {
	cfg := &config.Config{Timezone: "Europe/Rome", VirtualAnchor: "08:00"}
	return NewDocumentService(repo, realtime.NewHub(zap.NewNop()), zap.NewNop(), cfg)
}

func TestVirtualEventsTitles(t *testing.T) {
	repo := &fakeDocRepo{docs: []Document{
		{ID: primitive.NewObjectID(), Title: "Carta d'identità", Owner: "Anna", Category: "Identità", ExpiryDate: "2025-03-10"},
		{ID: primitive.NewObjectID(), Title: "Contratto affitto", ExpiryDate: "2025-03-20"},
		{ID: primitive.NewObjectID(), Title: "Garanzia TV"}, // no expiry, never projected
	}}

	events, err := testService(repo).VirtualEvents(context.Background(), "fam", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("virtual events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}

	if events[0].Title != "Scadenza Carta d'identità (Anna)" {
		t.Errorf("owned title = %q", events[0].Title)
	}
	if events[1].Title != "Scadenza Contratto affitto" {
		t.Errorf("ownerless title = %q", events[1].Title)
	}
	for _, ev := range events {
		if ev.EventType != calendar.TypeDocumentDue || ev.Source != calendar.SourceDocument || !ev.IsVirtual {
			t.Errorf("bad projection: %+v", ev)
		}
	}
	if events[0].Detail != "Identità" {
		t.Errorf("detail = %q, want the category", events[0].Detail)
	}
}
