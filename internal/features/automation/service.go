package automation

import (
	"context"
	"errors"
	"fmt"

	"casa360/internal/common/models"

	"github.com/d5/tengo/v2/parser"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrBadScript = errors.New("script does not compile")

type RuleInput struct {
	Name    string `json:"name"`
	Table   string `json:"table"`
	Event   string `json:"event"`
	Script  string `json:"script"`
	Enabled bool   `json:"enabled"`
}

type AutomationService interface {
	List(ctx context.Context, familyID string) ([]Rule, error)
	Create(ctx context.Context, familyID string, input RuleInput) (*Rule, error)
	Update(ctx context.Context, familyID, id string, input RuleInput) error
	Delete(ctx context.Context, familyID, id string) error
	// Test dry-runs a script against a synthetic event.
	Test(ctx context.Context, script string, ev models.ChangeEvent) (*RuleResult, error)
}

type AutomationServiceImpl struct {
	Repo   RuleRepository
	Logger *zap.Logger
}

func NewAutomationService(repo RuleRepository, logger *zap.Logger) AutomationService {
	return &AutomationServiceImpl{Repo: repo, Logger: logger}
}

func (s *AutomationServiceImpl) List(ctx context.Context, familyID string) ([]Rule, error) {
	return s.Repo.FindByFamily(ctx, familyID)
}

func (s *AutomationServiceImpl) Create(ctx context.Context, familyID string, input RuleInput) (*Rule, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	rule := &Rule{
		FamilyID: familyOID,
		Name:     input.Name,
		Table:    input.Table,
		Event:    normalizeEvent(input.Event),
		Script:   input.Script,
		Enabled:  input.Enabled,
	}
	if err := s.Repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AutomationServiceImpl) Update(ctx context.Context, familyID, id string, input RuleInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := checkInput(input); err != nil {
		return err
	}

	return s.Repo.Update(ctx, id, bson.M{
		"name":    input.Name,
		"table":   input.Table,
		"event":   normalizeEvent(input.Event),
		"script":  input.Script,
		"enabled": input.Enabled,
	})
}

func (s *AutomationServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *AutomationServiceImpl) Test(ctx context.Context, script string, ev models.ChangeEvent) (*RuleResult, error) {
	return EvalRule(ctx, script, ev)
}

func checkInput(input RuleInput) error {
	if input.Name == "" || input.Table == "" {
		return errors.New("name and table are required")
	}
	if err := compileCheck(input.Script); err != nil {
		return err
	}
	return nil
}

// compileCheck rejects scripts that cannot even parse, so broken rules
// fail at save time instead of silently at event time.
func compileCheck(src string) error {
	if src == "" {
		return fmt.Errorf("%w: empty script", ErrBadScript)
	}
	fileSet := parser.NewFileSet()
	srcFile := fileSet.AddFile("rule", -1, len(src))
	p := parser.NewParser(srcFile, []byte(src), nil)
	if _, err := p.ParseFile(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	return nil
}

func normalizeEvent(event string) string {
	switch event {
	case models.ChangeInsert, models.ChangeUpdate, models.ChangeDelete:
		return event
	default:
		return models.ChangeAll
	}
}

func (s *AutomationServiceImpl) owned(ctx context.Context, familyID, id string) (*Rule, error) {
	rule, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return rule, nil
}
