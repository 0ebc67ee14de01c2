package core

import (
	"context"
	"fmt"
	"strings"
)

// CapacityModel selects how the capacity rule projects space use.
type CapacityModel string

const (
	// CapacityCount multiplies the newcomer's square by the projected head count
	// and compares it with the remaining square. This is the historical model and
	// the default.
	CapacityCount CapacityModel = "count"
	// CapacitySum admits while occupied square plus the newcomer's square fits the
	// designed capacity.
	CapacitySum CapacityModel = "sum"
)

// ParseCapacityModel maps a configuration value to a model; empty selects CapacityCount.
func ParseCapacityModel(raw string) (CapacityModel, error) {
	switch CapacityModel(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CapacityCount:
		return CapacityCount, nil
	case CapacitySum:
		return CapacitySum, nil
	default:
		return "", fmt.Errorf("unknown capacity model %q", raw)
	}
}

// NewEnclosureCapacityRule returns the space rule for the given model.
func NewEnclosureCapacityRule(model CapacityModel) Rule {
	if model == "" {
		model = CapacityCount
	}
	return enclosureCapacityRule{model: model}
}

type enclosureCapacityRule struct {
	model CapacityModel
}

func (enclosureCapacityRule) Name() string { return "enclosure_capacity" }

func (r enclosureCapacityRule) Evaluate(_ context.Context, view EnclosureView, candidate Animal) (Result, error) {
	need := candidate.Species.Square
	var msg string
	switch r.model {
	case CapacitySum:
		if view.Occupied()+need <= view.Capacity() {
			return Result{}, nil
		}
		msg = fmt.Sprintf("enclosure %s over capacity: %v occupied + %v requested > %v", view.ID(), view.Occupied(), need, view.Capacity())
	default:
		projected := len(view.Residents()) + 1
		if float64(projected)*need <= view.Square() {
			return Result{}, nil
		}
		msg = fmt.Sprintf("enclosure %s lacks space: %d x %v requested > %v remaining", view.ID(), projected, need, view.Square())
	}
	return Result{Violations: []Violation{{
		Rule:     "enclosure_capacity",
		Kind:     KindInsufficientSpace,
		Severity: SeverityBlock,
		Message:  msg,
		Entity:   EntityEnclosure,
		EntityID: view.ID(),
	}}}, nil
}
