package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeEventRepo struct {
	rows []Row
	err  error
}

func (f *fakeEventRepo) Create(ctx context.Context, row *Row) error { return f.err }
func (f *fakeEventRepo) Get(ctx context.Context, id string) (*Row, error) {
	return nil, ErrNotFound
}
func (f *fakeEventRepo) FindRange(ctx context.Context, familyID string, from, to time.Time) ([]Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Row
	for _, r := range f.rows {
		if !r.StartTime.Before(from) && r.StartTime.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeEventRepo) Update(ctx context.Context, id string, updates bson.M) error {
	return f.err
}
func (f *fakeEventRepo) Delete(ctx context.Context, id string) error { return f.err }

type fakeSource struct {
	name   string
	events []Event
	err    error
	gotFrom, gotTo string
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]Event, error) {
	f.gotFrom, f.gotTo = fromDay, toDay
	return f.events, f.err
}

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestAggregateMonthWindow(t *testing.T) {
	loc := mustLoc(t)
	src := &fakeSource{name: "vehicles"}
	agg := NewAggregator(&fakeEventRepo{}, []VirtualSource{src}, loc)

	res, err := agg.AggregateMonth(context.Background(), "fam", 2025, time.March)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	// First day of the previous month through the last day of the next.
	if res.From != "2025-02-01" || res.To != "2025-04-30" {
		t.Errorf("window = [%s, %s], want [2025-02-01, 2025-04-30]", res.From, res.To)
	}
	if src.gotFrom != res.From || src.gotTo != res.To {
		t.Errorf("source saw [%s, %s], want the aggregation window", src.gotFrom, src.gotTo)
	}
	if res.Year != 2025 || res.Month != 3 {
		t.Errorf("echoed %d-%d, want 2025-3", res.Year, res.Month)
	}
}

func TestAggregateMonthJanuaryAndDecember(t *testing.T) {
	loc := mustLoc(t)
	agg := NewAggregator(&fakeEventRepo{}, nil, loc)

	tests := []struct {
		year  int
		month time.Month
		from  string
		to    string
	}{
		{2025, time.January, "2024-12-01", "2025-02-28"},
		{2025, time.December, "2025-11-01", "2026-01-31"},
		{2024, time.January, "2023-12-01", "2024-02-29"}, // leap year
	}
	for _, tt := range tests {
		res, err := agg.AggregateMonth(context.Background(), "fam", tt.year, tt.month)
		if err != nil {
			t.Fatalf("%d-%d: %v", tt.year, tt.month, err)
		}
		if res.From != tt.from || res.To != tt.to {
			t.Errorf("%d-%d window = [%s, %s], want [%s, %s]",
				tt.year, tt.month, res.From, res.To, tt.from, tt.to)
		}
	}
}

func TestAggregateGroupsByLocalDay(t *testing.T) {
	loc := mustLoc(t)

	// 23:30 UTC on March 9 is 00:30 March 10 in Rome.
	lateUTC := time.Date(2025, time.March, 9, 23, 30, 0, 0, time.UTC)
	repo := &fakeEventRepo{rows: []Row{
		{Title: "Late", StartTime: lateUTC},
	}}
	agg := NewAggregator(repo, nil, loc)

	res, err := agg.AggregateMonth(context.Background(), "fam", 2025, time.March)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(res.Days["2025-03-09"]) != 0 {
		t.Error("event grouped under its UTC day instead of the local day")
	}
	if len(res.Days["2025-03-10"]) != 1 {
		t.Errorf("local day 2025-03-10 has %d events, want 1", len(res.Days["2025-03-10"]))
	}
	if res.Total != 1 {
		t.Errorf("total = %d, want 1", res.Total)
	}
}

func TestAggregateSourceErrorAborts(t *testing.T) {
	loc := mustLoc(t)
	boom := errors.New("boom")
	agg := NewAggregator(&fakeEventRepo{}, []VirtualSource{
		&fakeSource{name: "ok"},
		&fakeSource{name: "pets", err: boom},
	}, loc)

	_, err := agg.AggregateMonth(context.Background(), "fam", 2025, time.March)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}

func TestAggregateMonthDeterministic(t *testing.T) {
	loc := mustLoc(t)
	repo := &fakeEventRepo{rows: []Row{
		{Title: "A", StartTime: time.Date(2025, time.March, 5, 10, 0, 0, 0, loc)},
		{Title: "B", StartTime: time.Date(2025, time.March, 5, 12, 0, 0, 0, loc)},
	}}
	agg := NewAggregator(repo, nil, loc)

	first, err := agg.AggregateMonth(context.Background(), "fam", 2025, time.March)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	second, err := agg.AggregateMonth(context.Background(), "fam", 2025, time.March)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	d1, d2 := first.Days["2025-03-05"], second.Days["2025-03-05"]
	if len(d1) != 2 || len(d2) != 2 {
		t.Fatalf("day sizes %d/%d, want 2/2", len(d1), len(d2))
	}
	for i := range d1 {
		if d1[i].Title != d2[i].Title {
			t.Errorf("run order differs at %d: %s vs %s", i, d1[i].Title, d2[i].Title)
		}
	}
}

func TestInWindow(t *testing.T) {
	tests := []struct {
		day  string
		want bool
	}{
		{"2025-02-01", true},  // lower bound inclusive
		{"2025-04-30", true},  // upper bound inclusive
		{"2025-01-31", false},
		{"2025-05-01", false},
		{"2025-03-15", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := InWindow(tt.day, "2025-02-01", "2025-04-30"); got != tt.want {
			t.Errorf("InWindow(%q) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestSyntheticID(t *testing.T) {
	if got := SyntheticID(SourceVehicle, "abc123", "bollo"); got != "v-abc123-bollo" {
		t.Errorf("got %q, want v-abc123-bollo", got)
	}
	if got := SyntheticID(SourcePet, "abc123", ""); got != "p-abc123" {
		t.Errorf("got %q, want p-abc123", got)
	}
	if got := SyntheticID(SourceWork, "w1", ""); got != "w-w1" {
		t.Errorf("got %q, want w-w1", got)
	}
	if got := SyntheticID(SourceDocument, "d1", ""); got != "d-d1" {
		t.Errorf("got %q, want d-d1", got)
	}
}

func TestAnchorTime(t *testing.T) {
	loc := mustLoc(t)
	got, err := AnchorTime("2025-03-10", "08:00", loc)
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	want := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := AnchorTime("not-a-day", "08:00", loc); err == nil {
		t.Error("expected error for malformed day")
	}
}
