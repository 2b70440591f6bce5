package automation

import (
	"context"
	"errors"
	"testing"

	"casa360/internal/common/models"
)

func TestEvalRuleFires(t *testing.T) {
	script := `
if table == "shopping_items" && event == "insert" {
	notify = true
	title = "Nuovo articolo"
	body = "Riga " + row_id
}
`
	result, err := EvalRule(context.Background(), script, models.ChangeEvent{
		Table: "shopping_items", Event: "insert", RowID: "abc",
	})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if result == nil {
		t.Fatal("rule should have fired")
	}
	if result.Title != "Nuovo articolo" || result.Body != "Riga abc" {
		t.Errorf("result = %+v", result)
	}
}

func TestEvalRuleDoesNotFire(t *testing.T) {
	script := `
if event == "delete" {
	notify = true
}
`
	result, err := EvalRule(context.Background(), script, models.ChangeEvent{
		Table: "shopping_items", Event: "insert",
	})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if result != nil {
		t.Fatalf("rule must not fire, got %+v", result)
	}
}

func TestEvalRuleDefaultTitle(t *testing.T) {
	result, err := EvalRule(context.Background(), `notify = true`, models.ChangeEvent{Table: "vehicles", Event: "update"})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if result == nil || result.Title != "Automazione" {
		t.Errorf("result = %+v, want default title", result)
	}
}

func TestEvalRuleErrors(t *testing.T) {
	if _, err := EvalRule(context.Background(), "", models.ChangeEvent{}); err == nil {
		t.Error("empty script should error")
	}
	if _, err := EvalRule(context.Background(), `this is not tengo {{{`, models.ChangeEvent{}); err == nil {
		t.Error("broken script should error")
	}
}

func TestCompileCheck(t *testing.T) {
	if err := compileCheck(`notify = event == "insert"`); err != nil {
		t.Errorf("valid script rejected: %v", err)
	}
	err := compileCheck(`if {`)
	if !errors.Is(err, ErrBadScript) {
		t.Errorf("err = %v, want ErrBadScript", err)
	}
}
