package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestResultMergeAndBlocking(t *testing.T) {
	var result Result
	result.Merge(Result{Violations: []Violation{{Rule: "warn", Severity: SeverityWarn}}})
	if result.HasBlocking() {
		t.Fatalf("expected no blocking violations")
	}
	result.Merge(Result{Violations: []Violation{{Rule: "block", Kind: KindMissingWater, Severity: SeverityBlock}}})
	if !result.HasBlocking() {
		t.Fatalf("expected blocking violation")
	}
	if got := len(result.Warnings()); got != 1 {
		t.Fatalf("expected 1 warning, got %d", got)
	}
	outcome := OutcomeOf(result)
	if outcome.Admissible() || outcome.Kind != KindMissingWater || outcome.Rule != "block" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	err := AdmissionError{Animal: "Simba", Outcome: outcome}
	if err.Error() == "" {
		t.Fatalf("expected error string")
	}
}

func TestResultMergeEmptyInput(t *testing.T) {
	original := Result{Violations: []Violation{{Rule: "existing", Severity: SeverityWarn}}}
	original.Merge(Result{})
	if len(original.Violations) != 1 || original.Violations[0].Rule != "existing" {
		t.Fatalf("expected original violations to remain, got %+v", original.Violations)
	}
	if !OutcomeOf(original).Admissible() {
		t.Fatalf("warnings alone must stay admissible")
	}
}

func TestRulesEngineEvaluateStopsAtFirstBlock(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(staticRule{name: "warn", severity: SeverityWarn})
	engine.Register(staticRule{name: "first", severity: SeverityBlock, kind: KindBiomeMismatch})
	engine.Register(staticRule{name: "second", severity: SeverityBlock, kind: KindMissingWater})
	engine.Register(nil)

	res, err := engine.Evaluate(context.Background(), emptyView{}, Animal{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 2 {
		t.Fatalf("expected warn + first block, got %+v", res.Violations)
	}
	if got := OutcomeOf(res).Kind; got != KindBiomeMismatch {
		t.Fatalf("expected first blocking kind, got %s", got)
	}
	if names := engine.Rules(); len(names) != 3 || names[0] != "warn" {
		t.Fatalf("unexpected rule order %v", names)
	}
}

func TestRulesEngineEvaluateError(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(errorRule{})
	_, err := engine.Evaluate(context.Background(), emptyView{}, Animal{})
	if err == nil {
		t.Fatalf("expected evaluation error")
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped rule error, got %v", err)
	}
}

type staticRule struct {
	name     string
	severity Severity
	kind     ViolationKind
}

func (r staticRule) Name() string { return r.name }

func (r staticRule) Evaluate(context.Context, EnclosureView, Animal) (Result, error) {
	return Result{Violations: []Violation{{Rule: r.name, Kind: r.kind, Severity: r.severity}}}, nil
}

type emptyView struct{}

func (emptyView) ID() string          { return "" }
func (emptyView) Biome() string       { return "" }
func (emptyView) HasWater() bool      { return false }
func (emptyView) Capacity() float64   { return 0 }
func (emptyView) Occupied() float64   { return 0 }
func (emptyView) Square() float64     { return 0 }
func (emptyView) Residents() []Animal { return nil }

var errBoom = fmt.Errorf("boom")

type errorRule struct{}

func (errorRule) Name() string { return "error" }

func (errorRule) Evaluate(context.Context, EnclosureView, Animal) (Result, error) {
	return Result{}, errBoom
}
