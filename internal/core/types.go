package core

import "zoocore/pkg/domain"

type (
	EntityType     = domain.EntityType
	Severity       = domain.Severity
	ViolationKind  = domain.ViolationKind
	Species        = domain.Species
	Animal         = domain.Animal
	Enclosure      = domain.Enclosure
	EnclosureView  = domain.EnclosureView
	Violation      = domain.Violation
	Result         = domain.Result
	Outcome        = domain.Outcome
	Rule           = domain.Rule
	RulesEngine    = domain.RulesEngine
	AdmissionError = domain.AdmissionError
)

const (
	EntitySpecies   = domain.EntitySpecies
	EntityAnimal    = domain.EntityAnimal
	EntityEnclosure = domain.EntityEnclosure
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	KindNone                  = domain.KindNone
	KindBiomeMismatch         = domain.KindBiomeMismatch
	KindMissingWater          = domain.KindMissingWater
	KindInsufficientSpace     = domain.KindInsufficientSpace
	KindPredatorMixing        = domain.KindPredatorMixing
	KindHerbivoreWithPredator = domain.KindHerbivoreWithPredator
)

// Constructor validation errors.
var (
	ErrInvalidSpecies   = domain.ErrInvalidSpecies
	ErrInvalidAnimal    = domain.ErrInvalidAnimal
	ErrInvalidEnclosure = domain.ErrInvalidEnclosure
)

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }

// NewSpecies validates and returns a species descriptor.
func NewSpecies(s Species) (*Species, error) { return domain.NewSpecies(s) }

// NewAnimal validates and returns an animal with a fresh ID.
func NewAnimal(name string, foodAmount float64, species *Species) (*Animal, error) {
	return domain.NewAnimal(name, foodAmount, species)
}

// NewEnclosure validates and returns an empty enclosure with a fresh ID.
func NewEnclosure(biome string, capacity float64, hasWater bool) (*Enclosure, error) {
	return domain.NewEnclosure(biome, capacity, hasWater)
}
