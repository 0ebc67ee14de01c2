// Package diet provides a feeding-logistics plugin: it warns when a newcomer
// would be fed differently from the animals already living in the enclosure.
package diet

import (
	"context"
	"fmt"
	"strings"

	"zoocore/internal/core"
)

// RuleName identifies the diet warning in outcomes and logs.
const RuleName = "diet_mismatch_warning"

// Plugin contributes the diet mismatch warning.
type Plugin struct{}

// New constructs a diet plugin instance.
func New() Plugin {
	return Plugin{}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "diet" }

// Version returns the plugin semantic version.
func (Plugin) Version() string { return "0.1.0" }

// Register wires the diet rule.
func (Plugin) Register(registry *core.PluginRegistry) error {
	registry.RegisterRule(dietMismatchRule{})
	return nil
}

type dietMismatchRule struct{}

func (dietMismatchRule) Name() string { return RuleName }

func (dietMismatchRule) Evaluate(_ context.Context, view core.EnclosureView, candidate core.Animal) (core.Result, error) {
	food := normalizeFood(candidate.Species.Food)
	if food == "" {
		return core.Result{}, nil
	}
	var others []string
	seen := make(map[string]struct{})
	for _, resident := range view.Residents() {
		rf := normalizeFood(resident.Species.Food)
		if rf == "" || rf == food {
			continue
		}
		if _, ok := seen[rf]; ok {
			continue
		}
		seen[rf] = struct{}{}
		others = append(others, rf)
	}
	if len(others) == 0 {
		return core.Result{}, nil
	}
	return core.Result{Violations: []core.Violation{{
		Rule:     RuleName,
		Severity: core.SeverityWarn,
		Message:  fmt.Sprintf("%s %s eats %s while residents eat %s", candidate.Species.Name, candidate.Name, food, strings.Join(others, ", ")),
		Entity:   core.EntityEnclosure,
		EntityID: view.ID(),
	}}}, nil
}

func normalizeFood(food string) string {
	return strings.ToLower(strings.TrimSpace(food))
}
