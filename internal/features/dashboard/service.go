package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/features/family"
	"casa360/internal/features/health"
	"casa360/internal/features/shopping"
	"casa360/internal/features/work"

	"go.uber.org/zap"
)

var ErrInvalidLayout = errors.New("invalid layout")

// DefaultLayout is the widget arrangement every member starts from. A
// member's saved layout fully replaces it; it is never merged.
var DefaultLayout = []family.LayoutNode{
	{ID: "next-event", X: 0, Y: 0, W: 2, H: 1},
	{ID: "shopping", X: 2, Y: 0, W: 1, H: 2},
	{ID: "calendar", X: 0, Y: 1, W: 2, H: 2},
	{ID: "shifts", X: 2, Y: 2, W: 1, H: 1},
	{ID: "medications", X: 0, Y: 3, W: 1, H: 1},
	{ID: "finance", X: 1, Y: 3, W: 2, H: 1},
}

// Summary is the dashboard's one-shot data load.
type Summary struct {
	NextEvents  *calendar.NextEventCard `json:"next_events"`
	Urgent      []shopping.Item         `json:"urgent_items"`
	TodayShifts []work.Shift            `json:"today_shifts"`
	DailyDoses  []health.Dose           `json:"daily_doses"`
	Day         string                  `json:"day"`
}

type DashboardService interface {
	// Layout returns the member's saved arrangement, or the default when
	// nothing valid is stored. Load problems degrade to the default
	// silently: a broken blob must never block the dashboard.
	Layout(ctx context.Context, userID string) []family.LayoutNode
	SaveLayout(ctx context.Context, userID string, layout []family.LayoutNode) error
	ResetLayout(ctx context.Context, userID string) error
	Summary(ctx context.Context, familyID string, now time.Time) (*Summary, error)
}

type DashboardServiceImpl struct {
	Members  family.MemberRepository
	Calendar calendar.CalendarService
	Shopping shopping.ShoppingService
	Shifts   work.ShiftService
	Health   health.HealthService
	Logger   *zap.Logger

	loc *time.Location
}

func NewDashboardService(
	members family.MemberRepository,
	calendarSvc calendar.CalendarService,
	shoppingSvc shopping.ShoppingService,
	shiftSvc work.ShiftService,
	healthSvc health.HealthService,
	logger *zap.Logger,
	cfg *config.Config,
) DashboardService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &DashboardServiceImpl{
		Members:  members,
		Calendar: calendarSvc,
		Shopping: shoppingSvc,
		Shifts:   shiftSvc,
		Health:   healthSvc,
		Logger:   logger,
		loc:      loc,
	}
}

func (s *DashboardServiceImpl) Layout(ctx context.Context, userID string) []family.LayoutNode {
	layout, err := s.Members.GetLayout(ctx, userID)
	if err != nil {
		s.Logger.Warn("falling back to default layout", zap.String("user", userID), zap.Error(err))
		return DefaultLayout
	}
	if len(layout) == 0 || ValidateLayout(layout) != nil {
		return DefaultLayout
	}
	return layout
}

func (s *DashboardServiceImpl) SaveLayout(ctx context.Context, userID string, layout []family.LayoutNode) error {
	if err := ValidateLayout(layout); err != nil {
		return err
	}
	return s.Members.SaveLayout(ctx, userID, layout)
}

func (s *DashboardServiceImpl) ResetLayout(ctx context.Context, userID string) error {
	return s.Members.SaveLayout(ctx, userID, nil)
}

// ValidateLayout enforces the grid contract: unique non-empty ids,
// non-negative positions, at least 1x1 cells.
func ValidateLayout(layout []family.LayoutNode) error {
	seen := make(map[string]bool, len(layout))
	for _, node := range layout {
		if node.ID == "" {
			return fmt.Errorf("%w: empty widget id", ErrInvalidLayout)
		}
		if seen[node.ID] {
			return fmt.Errorf("%w: duplicate widget %q", ErrInvalidLayout, node.ID)
		}
		seen[node.ID] = true
		if node.X < 0 || node.Y < 0 {
			return fmt.Errorf("%w: widget %q has negative position", ErrInvalidLayout, node.ID)
		}
		if node.W < 1 || node.H < 1 {
			return fmt.Errorf("%w: widget %q is smaller than one cell", ErrInvalidLayout, node.ID)
		}
	}
	return nil
}

func (s *DashboardServiceImpl) Summary(ctx context.Context, familyID string, now time.Time) (*Summary, error) {
	day := calendar.LocalDay(now, s.loc)

	card, err := s.Calendar.NextEvents(ctx, familyID, now)
	if err != nil {
		return nil, err
	}
	urgent, err := s.Shopping.Urgent(ctx, familyID)
	if err != nil {
		return nil, err
	}
	shifts, err := s.Shifts.Range(ctx, familyID, day, day)
	if err != nil {
		return nil, err
	}
	doses, err := s.Health.DailyDoses(ctx, familyID, now)
	if err != nil {
		return nil, err
	}

	return &Summary{
		NextEvents:  card,
		Urgent:      urgent,
		TodayShifts: shifts,
		DailyDoses:  doses,
		Day:         day,
	}, nil
}
