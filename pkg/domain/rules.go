package domain

import (
	"context"
	"fmt"
	"sync"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine admission behavior and logging.
const (
	// SeverityBlock rejects the admission.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows admission.
	SeverityWarn Severity = "warn"
	// SeverityLog records the violation without blocking admission.
	SeverityLog Severity = "log"
)

// ViolationKind classifies why an animal cannot be accommodated.
type ViolationKind string

// Admission failure kinds reported by the built-in rules.
const (
	KindNone                  ViolationKind = ""
	KindBiomeMismatch         ViolationKind = "biome_mismatch"
	KindMissingWater          ViolationKind = "missing_water"
	KindInsufficientSpace     ViolationKind = "insufficient_space"
	KindPredatorMixing        ViolationKind = "predator_mixing"
	KindHerbivoreWithPredator ViolationKind = "herbivore_with_predator"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Kind     ViolationKind
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	_, ok := r.FirstBlocking()
	return ok
}

// FirstBlocking returns the first blocking violation in evaluation order.
func (r Result) FirstBlocking() (Violation, bool) {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return v, true
		}
	}
	return Violation{}, false
}

// Warnings returns the non-blocking violations.
func (r Result) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity != SeverityBlock {
			out = append(out, v)
		}
	}
	return out
}

// Outcome is the verdict of an admission check: either admissible, or the kind
// and reason of the first blocking violation.
type Outcome struct {
	Kind   ViolationKind
	Rule   string
	Reason string
	Result Result
}

// Admissible reports whether no blocking rule fired.
func (o Outcome) Admissible() bool { return o.Kind == KindNone && o.Rule == "" }

// OutcomeOf derives the admission verdict from an engine result.
func OutcomeOf(res Result) Outcome {
	v, ok := res.FirstBlocking()
	if !ok {
		return Outcome{Result: res}
	}
	return Outcome{Kind: v.Kind, Rule: v.Rule, Reason: v.Message, Result: res}
}

// AdmissionError is returned by service operations when an animal is rejected.
type AdmissionError struct {
	Animal  string
	Outcome Outcome
}

func (e AdmissionError) Error() string {
	return fmt.Sprintf("cannot accommodate %s: %s", e.Animal, e.Outcome.Reason)
}

// Rule evaluates whether a candidate animal may join an enclosure.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view EnclosureView, candidate Animal) (Result, error)
}

// RulesEngine orchestrates rule evaluation. It is safe for concurrent use.
type RulesEngine struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine. Rules run in registration order.
func (e *RulesEngine) Register(rule Rule) {
	if rule == nil {
		return
	}
	e.mu.Lock()
	e.rules = append(e.rules, rule)
	e.mu.Unlock()
}

func (e *RulesEngine) snapshot() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Rules returns the registered rule names in evaluation order.
func (e *RulesEngine) Rules() []string {
	rules := e.snapshot()
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Name())
	}
	return out
}

// Evaluate executes the registered rules in order and stops after the first
// blocking violation. Warnings raised before that point are kept.
func (e *RulesEngine) Evaluate(ctx context.Context, view EnclosureView, candidate Animal) (Result, error) {
	var combined Result
	for _, rule := range e.snapshot() {
		res, err := rule.Evaluate(ctx, view, candidate)
		if err != nil {
			return Result{}, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		combined.Merge(res)
		if res.HasBlocking() {
			break
		}
	}
	return combined, nil
}
