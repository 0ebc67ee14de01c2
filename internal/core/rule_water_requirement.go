package core

import (
	"context"
	"fmt"
)

// NewWaterRequirementRule returns the rule rejecting water-dependent species from
// enclosures without a water feature.
func NewWaterRequirementRule() Rule {
	return waterRequirementRule{}
}

type waterRequirementRule struct{}

func (waterRequirementRule) Name() string { return "water_requirement" }

func (waterRequirementRule) Evaluate(_ context.Context, view EnclosureView, candidate Animal) (Result, error) {
	if !candidate.Species.NeedsWater || view.HasWater() {
		return Result{}, nil
	}
	return Result{Violations: []Violation{{
		Rule:     "water_requirement",
		Kind:     KindMissingWater,
		Severity: SeverityBlock,
		Message:  fmt.Sprintf("enclosure %s has no water for %s", view.ID(), candidate.Species.Name),
		Entity:   EntityAnimal,
		EntityID: candidate.ID,
	}}}, nil
}
