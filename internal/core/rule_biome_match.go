package core

import (
	"context"
	"fmt"
)

// NewBiomeMatchRule returns the rule rejecting animals whose species lives in a
// different biome than the enclosure.
func NewBiomeMatchRule() Rule {
	return biomeMatchRule{}
}

type biomeMatchRule struct{}

func (biomeMatchRule) Name() string { return "biome_match" }

func (biomeMatchRule) Evaluate(_ context.Context, view EnclosureView, candidate Animal) (Result, error) {
	if candidate.Species.Biome == view.Biome() {
		return Result{}, nil
	}
	return Result{Violations: []Violation{{
		Rule:     "biome_match",
		Kind:     KindBiomeMismatch,
		Severity: SeverityBlock,
		Message:  fmt.Sprintf("biome mismatch: %s needs %q, enclosure is %q", candidate.Species.Name, candidate.Species.Biome, view.Biome()),
		Entity:   EntityAnimal,
		EntityID: candidate.ID,
	}}}, nil
}
