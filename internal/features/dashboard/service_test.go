package dashboard

import (
	"context"
	"errors"
	"testing"

	"casa360/internal/config"
	"casa360/internal/features/family"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeMemberRepo struct {
	layouts map[string][]family.LayoutNode
	loadErr error
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *family.Member) error { return nil }
func (f *fakeMemberRepo) Get(ctx context.Context, id string) (*family.Member, error) {
	return nil, family.ErrNotFound
}
func (f *fakeMemberRepo) FindByEmail(ctx context.Context, email string) (*family.Member, error) {
	return nil, family.ErrNotFound
}
func (f *fakeMemberRepo) FindByFamily(ctx context.Context, familyID string) ([]family.Member, error) {
	return nil, nil
}
func (f *fakeMemberRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeMemberRepo) Delete(ctx context.Context, id string) error                 { return nil }
func (f *fakeMemberRepo) CountAdmins(ctx context.Context, familyID string) (int64, error) {
	return 1, nil
}
func (f *fakeMemberRepo) SaveLayout(ctx context.Context, memberID string, layout []family.LayoutNode) error {
	if f.layouts == nil {
		f.layouts = make(map[string][]family.LayoutNode)
	}
	f.layouts[memberID] = layout
	return nil
}
func (f *fakeMemberRepo) GetLayout(ctx context.Context, memberID string) ([]family.LayoutNode, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.layouts[memberID], nil
}

func layoutService(repo family.MemberRepository) DashboardService {
	cfg := &config.Config{Timezone: "Europe/Rome"}
	return NewDashboardService(repo, nil, nil, nil, nil, zap.NewNop(), cfg)
}

func TestValidateLayout(t *testing.T) {
	ok := []family.LayoutNode{
		{ID: "calendar", X: 0, Y: 0, W: 2, H: 2},
		{ID: "shopping", X: 2, Y: 0, W: 1, H: 1, Hidden: true},
	}
	if err := ValidateLayout(ok); err != nil {
		t.Errorf("valid layout rejected: %v", err)
	}

	bad := [][]family.LayoutNode{
		{{ID: "", X: 0, Y: 0, W: 1, H: 1}},
		{{ID: "a", X: 0, Y: 0, W: 1, H: 1}, {ID: "a", X: 1, Y: 0, W: 1, H: 1}},
		{{ID: "a", X: -1, Y: 0, W: 1, H: 1}},
		{{ID: "a", X: 0, Y: 0, W: 0, H: 1}},
		{{ID: "a", X: 0, Y: 0, W: 1, H: 0}},
	}
	for i, layout := range bad {
		err := ValidateLayout(layout)
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("case %d: err = %v, want ErrInvalidLayout", i, err)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	repo := &fakeMemberRepo{}
	svc := layoutService(repo)

	saved := []family.LayoutNode{
		{ID: "calendar", X: 1, Y: 2, W: 2, H: 2},
		{ID: "next-event", X: 0, Y: 0, W: 1, H: 1, Hidden: true},
	}
	if err := svc.SaveLayout(context.Background(), "u1", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := svc.Layout(context.Background(), "u1")
	if len(got) != 2 || got[0] != saved[0] || got[1] != saved[1] {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestLayoutFallsBackSilently(t *testing.T) {
	// Load failure.
	svc := layoutService(&fakeMemberRepo{loadErr: errors.New("decode failure")})
	got := svc.Layout(context.Background(), "u1")
	if len(got) != len(DefaultLayout) {
		t.Errorf("load failure should yield the default layout, got %d nodes", len(got))
	}

	// Nothing saved yet.
	svc = layoutService(&fakeMemberRepo{})
	got = svc.Layout(context.Background(), "u2")
	if len(got) != len(DefaultLayout) {
		t.Errorf("empty layout should yield the default layout, got %d nodes", len(got))
	}

	// Corrupt saved blob.
	repo := &fakeMemberRepo{layouts: map[string][]family.LayoutNode{
		"u3": {{ID: "", W: 0, H: 0}},
	}}
	svc = layoutService(repo)
	got = svc.Layout(context.Background(), "u3")
	if len(got) != len(DefaultLayout) {
		t.Errorf("corrupt layout should yield the default layout, got %d nodes", len(got))
	}
}

func TestSaveLayoutRejectsInvalid(t *testing.T) {
	repo := &fakeMemberRepo{}
	svc := layoutService(repo)

	err := svc.SaveLayout(context.Background(), "u1", []family.LayoutNode{{ID: "", W: 1, H: 1}})
	if !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
	if len(repo.layouts["u1"]) != 0 {
		t.Error("invalid layout must not be persisted")
	}
}
