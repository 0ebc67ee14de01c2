package core

import (
	"context"
	"fmt"
)

// NewSocialCompatibilityRule returns the predator/herbivore segregation rule:
// predators only live with their own species, herbivores never live with
// predators.
func NewSocialCompatibilityRule() Rule {
	return socialCompatibilityRule{}
}

type socialCompatibilityRule struct{}

func (socialCompatibilityRule) Name() string { return "social_compatibility" }

func (socialCompatibilityRule) Evaluate(_ context.Context, view EnclosureView, candidate Animal) (Result, error) {
	species := candidate.Species
	for _, resident := range view.Residents() {
		if species.IsPredator {
			if resident.Species.Name == species.Name {
				continue
			}
			return socialViolation(KindPredatorMixing, candidate,
				fmt.Sprintf("predator %s cannot share with %s %s", species.Name, resident.Species.Name, resident.Name)), nil
		}
		if resident.Species.IsPredator {
			return socialViolation(KindHerbivoreWithPredator, candidate,
				fmt.Sprintf("herbivore %s cannot share with predator %s %s", species.Name, resident.Species.Name, resident.Name)), nil
		}
	}
	return Result{}, nil
}

func socialViolation(kind ViolationKind, candidate Animal, msg string) Result {
	return Result{Violations: []Violation{{
		Rule:     "social_compatibility",
		Kind:     kind,
		Severity: SeverityBlock,
		Message:  msg,
		Entity:   EntityAnimal,
		EntityID: candidate.ID,
	}}}
}
