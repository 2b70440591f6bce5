package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/features/notification"
	"casa360/internal/realtime"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

const scriptTimeout = 2 * time.Second

// Engine evaluates rule scripts against published change events. Scripts
// run sandboxed with no imports; the only side effect they can request is
// a notification.
type Engine struct {
	Rules         RuleRepository
	Notifications notification.NotificationService
	Logger        *zap.Logger
}

func NewEngine(rules RuleRepository, notifications notification.NotificationService, logger *zap.Logger) *Engine {
	return &Engine{
		Rules:         rules,
		Notifications: notifications,
		Logger:        logger,
	}
}

// Attach hooks the engine onto the hub. Evaluation happens off the
// publishing goroutine so a slow script never delays fan-out.
func (e *Engine) Attach(hub *realtime.Hub) {
	hub.Observe(func(ev models.ChangeEvent) {
		if ev.Table == "notifications" {
			// Rules never fire on their own output.
			return
		}
		go e.HandleEvent(context.Background(), ev)
	})
}

func (e *Engine) HandleEvent(ctx context.Context, ev models.ChangeEvent) {
	rules, err := e.Rules.FindEnabled(ctx, ev.FamilyID, ev.Table)
	if err != nil {
		e.Logger.Error("automation: load rules", zap.Error(err))
		return
	}

	for _, rule := range rules {
		if rule.Event != models.ChangeAll && rule.Event != ev.Event {
			continue
		}
		result, err := EvalRule(ctx, rule.Script, ev)
		if err != nil {
			e.Logger.Warn("automation rule failed",
				zap.String("rule", rule.Name), zap.Error(err))
			continue
		}
		if result == nil {
			continue
		}
		if _, err := e.Notifications.Notify(ctx, ev.FamilyID, "", notification.KindAutomation, result.Title, result.Body); err != nil {
			e.Logger.Error("automation: notify", zap.String("rule", rule.Name), zap.Error(err))
		}
	}
}

// RuleResult is what a script asked for; nil means no action.
type RuleResult struct {
	Title string
	Body  string
}

// EvalRule runs one script against one event. The script decides by
// setting `notify = true` plus optional `title` and `body`.
func EvalRule(ctx context.Context, src string, ev models.ChangeEvent) (*RuleResult, error) {
	if src == "" {
		return nil, errors.New("empty script")
	}

	script := tengo.NewScript([]byte(src))
	if err := script.Add("table", ev.Table); err != nil {
		return nil, err
	}
	if err := script.Add("event", ev.Event); err != nil {
		return nil, err
	}
	if err := script.Add("row_id", ev.RowID); err != nil {
		return nil, err
	}
	if err := script.Add("notify", false); err != nil {
		return nil, err
	}
	if err := script.Add("title", ""); err != nil {
		return nil, err
	}
	if err := script.Add("body", ""); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	compiled, err := script.RunContext(runCtx)
	if err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}

	if !compiled.Get("notify").Bool() {
		return nil, nil
	}

	result := &RuleResult{
		Title: compiled.Get("title").String(),
		Body:  compiled.Get("body").String(),
	}
	if result.Title == "" {
		result.Title = "Automazione"
	}
	return result, nil
}
