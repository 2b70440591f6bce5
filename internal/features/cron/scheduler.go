package cron

import (
	"context"
	"fmt"
	"time"

	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/features/family"
	"casa360/internal/features/notification"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background jobs. Today that is the daily expiry scan:
// every deadline within the lookahead window becomes a notification.
type Scheduler struct {
	Cron          *cron.Cron
	Groups        family.GroupRepository
	Aggregator    *calendar.Aggregator
	Notifications notification.NotificationService
	Logger        *zap.Logger

	spec      string
	lookahead int
	loc       *time.Location
}

func NewScheduler(
	groups family.GroupRepository,
	aggregator *calendar.Aggregator,
	notifications notification.NotificationService,
	logger *zap.Logger,
	cfg *config.Config,
) *Scheduler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &Scheduler{
		Cron:          cron.New(cron.WithLocation(loc)),
		Groups:        groups,
		Aggregator:    aggregator,
		Notifications: notifications,
		Logger:        logger,
		spec:          cfg.ExpiryScanSpec,
		lookahead:     cfg.ExpiryLookahead,
		loc:           loc,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.Cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.RunExpiryScan(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule expiry scan: %w", err)
	}

	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.String("expiryScanSpec", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.Cron.Stop()
	<-stopCtx.Done()
	s.Logger.Info("scheduler stopped")
}

// RunExpiryScan walks every family and notifies about virtual deadlines
// falling inside the lookahead window. One family failing does not stop
// the sweep.
func (s *Scheduler) RunExpiryScan(ctx context.Context) {
	groups, err := s.Groups.FindAll(ctx)
	if err != nil {
		s.Logger.Error("expiry scan: list families", zap.Error(err))
		return
	}

	now := time.Now().In(s.loc)
	for _, group := range groups {
		count, err := s.scanFamily(ctx, group.ID.Hex(), now)
		if err != nil {
			s.Logger.Error("expiry scan failed for family",
				zap.String("familyId", group.ID.Hex()), zap.Error(err))
			continue
		}
		if count > 0 {
			s.Logger.Info("expiry scan notified",
				zap.String("familyId", group.ID.Hex()), zap.Int("deadlines", count))
		}
	}
}

func (s *Scheduler) scanFamily(ctx context.Context, familyID string, now time.Time) (int, error) {
	agg, err := s.Aggregator.AggregateMonth(ctx, familyID, now.Year(), now.Month())
	if err != nil {
		return 0, err
	}

	today := calendar.LocalDay(now, s.loc)
	horizon := calendar.LocalDay(now.AddDate(0, 0, s.lookahead), s.loc)

	count := 0
	for day, events := range agg.Days {
		if !calendar.InWindow(day, today, horizon) {
			continue
		}
		for _, ev := range events {
			if !ev.IsVirtual {
				continue
			}
			body := fmt.Sprintf("Scadenza il %s", day)
			if _, err := s.Notifications.Notify(ctx, familyID, "", notification.KindExpiry, ev.Title, body); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
