// Package scenario loads YAML zoo scenarios and replays them against a
// core.Service.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"zoocore/internal/core"
)

//go:embed default.yaml
var defaultScenario []byte

// Action names a scenario step.
type Action string

// Supported step actions.
const (
	ActionAdmit      Action = "admit"
	ActionRemove     Action = "remove"
	ActionCheck      Action = "check"
	ActionReportFood Action = "report_food"
)

// Scenario is a declarative zoo setup followed by ordered steps.
type Scenario struct {
	Name       string          `yaml:"name"`
	Species    []core.Species  `yaml:"species"`
	Enclosures []EnclosureSpec `yaml:"enclosures"`
	Animals    []AnimalSpec    `yaml:"animals"`
	Steps      []Step          `yaml:"steps"`
}

// EnclosureSpec declares an enclosure addressed by Key within the scenario.
type EnclosureSpec struct {
	Key      string  `yaml:"key"`
	Biome    string  `yaml:"biome"`
	Capacity float64 `yaml:"capacity"`
	HasWater bool    `yaml:"has_water"`
}

// AnimalSpec declares an animal by species name. Animal names are unique
// within a scenario.
type AnimalSpec struct {
	Name       string  `yaml:"name"`
	Species    string  `yaml:"species"`
	FoodAmount float64 `yaml:"food_amount"`
}

// Step is one action applied in order.
type Step struct {
	Action    Action `yaml:"action"`
	Animal    string `yaml:"animal,omitempty"`
	Enclosure string `yaml:"enclosure,omitempty"`
}

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Default returns the built-in demonstration scenario.
func Default() *Scenario {
	sc, err := Load(bytes.NewReader(defaultScenario))
	if err != nil {
		panic(fmt.Sprintf("embedded scenario: %v", err))
	}
	return sc
}

// LoadFile reads a scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied scenario path
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes and validates a scenario. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that every reference resolves and values are in range.
func (s *Scenario) Validate() error {
	species := make(map[string]struct{}, len(s.Species))
	for _, sp := range s.Species {
		if _, err := core.NewSpecies(sp); err != nil {
			return fmt.Errorf("%w: species %q: %v", ErrInvalidScenario, sp.Name, err)
		}
		if _, dup := species[sp.Name]; dup {
			return fmt.Errorf("%w: duplicate species %q", ErrInvalidScenario, sp.Name)
		}
		species[sp.Name] = struct{}{}
	}

	enclosures := make(map[string]struct{}, len(s.Enclosures))
	for _, e := range s.Enclosures {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("%w: enclosure key is required", ErrInvalidScenario)
		}
		if _, dup := enclosures[e.Key]; dup {
			return fmt.Errorf("%w: duplicate enclosure %q", ErrInvalidScenario, e.Key)
		}
		if e.Capacity < 0 {
			return fmt.Errorf("%w: enclosure %q has negative capacity", ErrInvalidScenario, e.Key)
		}
		enclosures[e.Key] = struct{}{}
	}

	animals := make(map[string]struct{}, len(s.Animals))
	for _, a := range s.Animals {
		if _, ok := species[a.Species]; !ok {
			return fmt.Errorf("%w: animal %q references unknown species %q", ErrInvalidScenario, a.Name, a.Species)
		}
		if _, dup := animals[a.Name]; dup {
			return fmt.Errorf("%w: duplicate animal %q", ErrInvalidScenario, a.Name)
		}
		if a.FoodAmount < 0 {
			return fmt.Errorf("%w: animal %q has negative food amount", ErrInvalidScenario, a.Name)
		}
		animals[a.Name] = struct{}{}
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionReportFood:
			continue
		case ActionAdmit, ActionRemove, ActionCheck:
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i+1, step.Action)
		}
		if _, ok := animals[step.Animal]; !ok {
			return fmt.Errorf("%w: step %d: unknown animal %q", ErrInvalidScenario, i+1, step.Animal)
		}
		if _, ok := enclosures[step.Enclosure]; !ok {
			return fmt.Errorf("%w: step %d: unknown enclosure %q", ErrInvalidScenario, i+1, step.Enclosure)
		}
	}
	return nil
}
