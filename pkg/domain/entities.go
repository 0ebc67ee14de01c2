// Package domain defines the zoo entities, occupancy state, and rule
// evaluation primitives used by zoocore.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// EntityType identifies the type of record a violation or audit entry refers to.
type EntityType string

// Supported entity type identifiers.
const (
	EntitySpecies   EntityType = "species"
	EntityAnimal    EntityType = "animal"
	EntityEnclosure EntityType = "enclosure"
)

// Constructor validation errors.
var (
	ErrInvalidSpecies   = errors.New("invalid species")
	ErrInvalidAnimal    = errors.New("invalid animal")
	ErrInvalidEnclosure = errors.New("invalid enclosure")
)

// Species describes the husbandry requirements shared by every animal of a kind.
// A Species is immutable once created and is shared by pointer.
type Species struct {
	Name       string  `json:"name" yaml:"name"`
	Biome      string  `json:"biome" yaml:"biome"`
	NeedsWater bool    `json:"needs_water" yaml:"needs_water"`
	Square     float64 `json:"square" yaml:"square"`
	Food       string  `json:"food" yaml:"food"`
	IsPredator bool    `json:"is_predator" yaml:"is_predator"`
}

// NewSpecies validates and returns a species definition.
func NewSpecies(s Species) (*Species, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSpecies)
	}
	if s.Square <= 0 {
		return nil, fmt.Errorf("%w: %s square must be positive, got %v", ErrInvalidSpecies, s.Name, s.Square)
	}
	out := s
	return &out, nil
}

// Animal is an individual kept in the zoo. Identity is the ID: two animals with
// equal fields but different IDs are different animals.
type Animal struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FoodAmount float64  `json:"food_amount"`
	Species    *Species `json:"species"`
}

// NewAnimal validates the inputs and assigns a fresh opaque ID.
func NewAnimal(name string, foodAmount float64, species *Species) (*Animal, error) {
	if species == nil {
		return nil, fmt.Errorf("%w: %s has no species", ErrInvalidAnimal, name)
	}
	if foodAmount < 0 {
		return nil, fmt.Errorf("%w: %s food amount must not be negative, got %v", ErrInvalidAnimal, name, foodAmount)
	}
	return &Animal{
		ID:         uuid.NewString(),
		Name:       name,
		FoodAmount: foodAmount,
		Species:    species,
	}, nil
}

// Enclosure is a habitat with a fixed designed capacity. Occupancy (residents and
// occupied square) is the only mutable state and is guarded by the enclosure's
// own mutex.
type Enclosure struct {
	id       string
	biome    string
	capacity float64
	hasWater bool

	mu        sync.Mutex
	residents []*Animal
	occupied  float64
}

// NewEnclosure returns an empty enclosure with the given designed capacity.
func NewEnclosure(biome string, capacity float64, hasWater bool) (*Enclosure, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative, got %v", ErrInvalidEnclosure, capacity)
	}
	return &Enclosure{
		id:       uuid.NewString(),
		biome:    biome,
		capacity: capacity,
		hasWater: hasWater,
	}, nil
}

// ID returns the opaque enclosure identifier.
func (e *Enclosure) ID() string { return e.id }

// Biome returns the habitat tag.
func (e *Enclosure) Biome() string { return e.biome }

// HasWater reports whether the enclosure has a water feature.
func (e *Enclosure) HasWater() bool { return e.hasWater }

// Capacity returns the designed square of the enclosure.
func (e *Enclosure) Capacity() float64 { return e.capacity }

// Square returns the remaining free square.
func (e *Enclosure) Square() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capacity - e.occupied
}

// Residents returns the current residents in arrival order.
func (e *Enclosure) Residents() []*Animal {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Animal, len(e.residents))
	copy(out, e.residents)
	return out
}

// Len returns the number of residents.
func (e *Enclosure) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.residents)
}

// Lock acquires exclusive access to the occupancy state. Callers that combine a
// rule check with a mutation hold the lock across both.
func (e *Enclosure) Lock() { e.mu.Lock() }

// Unlock releases the occupancy lock.
func (e *Enclosure) Unlock() { e.mu.Unlock() }

// Snapshot returns a read-only view of the current occupancy.
func (e *Enclosure) Snapshot() EnclosureView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ViewLocked()
}

// ViewLocked returns a read-only snapshot of the enclosure. The caller must hold
// the lock.
func (e *Enclosure) ViewLocked() EnclosureView {
	residents := make([]Animal, len(e.residents))
	for i, a := range e.residents {
		residents[i] = *a
	}
	return enclosureView{
		id:        e.id,
		biome:     e.biome,
		capacity:  e.capacity,
		hasWater:  e.hasWater,
		occupied:  e.occupied,
		residents: residents,
	}
}

// AddLocked appends a resident and claims its species square. The caller must
// hold the lock and must have checked admission.
func (e *Enclosure) AddLocked(a *Animal) {
	e.residents = append(e.residents, a)
	e.occupied += a.Species.Square
}

// RemoveLocked removes the resident with the animal's ID, keeping the order of
// the others, and releases its species square. It reports whether the animal
// was a resident. Animals without an ID never match. The caller must hold the
// lock.
func (e *Enclosure) RemoveLocked(a *Animal) bool {
	if a == nil || a.ID == "" {
		return false
	}
	for i, r := range e.residents {
		if r.ID != a.ID {
			continue
		}
		e.residents = append(e.residents[:i], e.residents[i+1:]...)
		e.occupied -= r.Species.Square
		return true
	}
	return false
}

// EnclosureView provides read-only access to an enclosure snapshot for rule evaluation.
type EnclosureView interface {
	ID() string
	Biome() string
	HasWater() bool
	Capacity() float64
	Occupied() float64
	Square() float64
	Residents() []Animal
}

type enclosureView struct {
	id        string
	biome     string
	capacity  float64
	hasWater  bool
	occupied  float64
	residents []Animal
}

func (v enclosureView) ID() string          { return v.id }
func (v enclosureView) Biome() string       { return v.biome }
func (v enclosureView) HasWater() bool      { return v.hasWater }
func (v enclosureView) Capacity() float64   { return v.capacity }
func (v enclosureView) Occupied() float64   { return v.occupied }
func (v enclosureView) Square() float64     { return v.capacity - v.occupied }
func (v enclosureView) Residents() []Animal { return append([]Animal(nil), v.residents...) }
