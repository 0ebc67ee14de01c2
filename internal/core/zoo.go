package core

import (
	"context"
	"fmt"
	"sync"

	"zoocore/pkg/domain"
)

// Reporter receives human-readable zoo outcomes. Implementations format and
// deliver them; the zoo never formats narration itself.
type Reporter interface {
	Admitted(animal Animal, remaining float64)
	Rejected(animal Animal, outcome Outcome)
	RuleFailed(animal Animal, err error)
	FoodTotal(total float64)
}

type noopReporter struct{}

func (noopReporter) Admitted(Animal, float64) {}
func (noopReporter) Rejected(Animal, Outcome) {}
func (noopReporter) RuleFailed(Animal, error) {}
func (noopReporter) FoodTotal(float64) {}

// ZooOption configures a Zoo.
type ZooOption func(*Zoo)

// WithReporter attaches the outcome reporter.
func WithReporter(r Reporter) ZooOption {
	return func(z *Zoo) {
		if r != nil {
			z.reporter = r
		}
	}
}

// WithZooLogger attaches a logger to the zoo.
func WithZooLogger(l Logger) ZooOption {
	return func(z *Zoo) {
		if l != nil {
			z.logger = l
		}
	}
}

// Zoo owns the registered enclosures and applies the admission rules before
// any occupancy change.
type Zoo struct {
	mu         sync.RWMutex
	enclosures []*Enclosure
	engine     *RulesEngine
	reporter   Reporter
	logger     Logger
}

// NewZoo constructs a zoo evaluating admissions with engine. A nil engine
// selects the default rules with the count capacity model.
func NewZoo(engine *RulesEngine, opts ...ZooOption) *Zoo {
	if engine == nil {
		engine = NewDefaultRulesEngine(CapacityCount)
	}
	z := &Zoo{
		engine:   engine,
		reporter: noopReporter{},
		logger:   noopLogger{},
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

// RulesEngine exposes the engine for integration points like plugins.
func (z *Zoo) RulesEngine() *RulesEngine { return z.engine }

// RegisterEnclosure appends an enclosure. There is no validation and no
// duplicate detection.
func (z *Zoo) RegisterEnclosure(e *Enclosure) {
	z.mu.Lock()
	z.enclosures = append(z.enclosures, e)
	z.mu.Unlock()
}

// Enclosures returns the registered enclosures in registration order.
func (z *Zoo) Enclosures() []*Enclosure {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]*Enclosure, len(z.enclosures))
	copy(out, z.enclosures)
	return out
}

// FindEnclosure returns the first registered enclosure with the given ID.
func (z *Zoo) FindEnclosure(id string) (*Enclosure, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	for _, e := range z.enclosures {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// CheckAdmission evaluates the rules for animal joining enclosure without
// changing any state. The error is non-nil only when a rule fails to evaluate.
func (z *Zoo) CheckAdmission(ctx context.Context, animal *Animal, enclosure *Enclosure) (Outcome, error) {
	if err := validAdmission(animal, enclosure); err != nil {
		return Outcome{}, err
	}
	res, err := z.engine.Evaluate(ctx, enclosure.Snapshot(), *animal)
	if err != nil {
		return Outcome{}, err
	}
	return domain.OutcomeOf(res), nil
}

// Admit places animal in enclosure when every rule passes and reports the
// outcome. It returns false, leaving the enclosure untouched, otherwise.
func (z *Zoo) Admit(ctx context.Context, animal *Animal, enclosure *Enclosure) bool {
	outcome, err := z.admit(ctx, animal, enclosure)
	return err == nil && outcome.Admissible()
}

func (z *Zoo) admit(ctx context.Context, animal *Animal, enclosure *Enclosure) (Outcome, error) {
	if err := validAdmission(animal, enclosure); err != nil {
		return Outcome{}, err
	}

	enclosure.Lock()
	view := enclosure.ViewLocked()
	res, err := z.engine.Evaluate(ctx, view, *animal)
	if err != nil {
		enclosure.Unlock()
		z.logger.Error("admission rule evaluation failed", "animal", animal.Name, "animal_id", animal.ID, "enclosure_id", enclosure.ID(), "error", err)
		z.reporter.RuleFailed(*animal, err)
		return Outcome{}, err
	}
	outcome := domain.OutcomeOf(res)
	if !outcome.Admissible() {
		enclosure.Unlock()
		z.logger.Info("admission rejected", "animal", animal.Name, "animal_id", animal.ID, "enclosure_id", enclosure.ID(), "rule", outcome.Rule, "kind", string(outcome.Kind))
		z.reporter.Rejected(*animal, outcome)
		return outcome, nil
	}
	enclosure.AddLocked(animal)
	remaining := view.Square() - animal.Species.Square
	enclosure.Unlock()

	for _, w := range res.Warnings() {
		z.logger.Warn("admission warning", "animal", animal.Name, "animal_id", animal.ID, "enclosure_id", enclosure.ID(), "rule", w.Rule, "message", w.Message)
	}
	z.logger.Debug("animal admitted", "animal", animal.Name, "animal_id", animal.ID, "enclosure_id", enclosure.ID(), "remaining", remaining)
	z.reporter.Admitted(*animal, remaining)
	return outcome, nil
}

// Remove takes animal out of enclosure, matching by animal ID, and frees its
// species square. It returns false when the animal is not a resident, and for
// animals without an ID.
func (z *Zoo) Remove(animal *Animal, enclosure *Enclosure) bool {
	if animal == nil || animal.ID == "" || enclosure == nil {
		return false
	}
	enclosure.Lock()
	removed := enclosure.RemoveLocked(animal)
	enclosure.Unlock()
	if removed {
		z.logger.Debug("animal removed", "animal", animal.Name, "animal_id", animal.ID, "enclosure_id", enclosure.ID())
	}
	return removed
}

// TotalFoodDemand sums the daily food amount of every resident of every
// registered enclosure, in enclosure then arrival order.
func (z *Zoo) TotalFoodDemand() float64 {
	var total float64
	for _, e := range z.Enclosures() {
		for _, a := range e.Residents() {
			total += a.FoodAmount
		}
	}
	return total
}

// ReportTotalFood computes the total food demand and reports it.
func (z *Zoo) ReportTotalFood() float64 {
	total := z.TotalFoodDemand()
	z.reporter.FoodTotal(total)
	return total
}

func validAdmission(animal *Animal, enclosure *Enclosure) error {
	if animal == nil {
		return fmt.Errorf("%w: nil animal", ErrInvalidAnimal)
	}
	if animal.ID == "" {
		return fmt.Errorf("%w: %s has no id", ErrInvalidAnimal, animal.Name)
	}
	if animal.Species == nil {
		return fmt.Errorf("%w: %s has no species", ErrInvalidAnimal, animal.Name)
	}
	if enclosure == nil {
		return fmt.Errorf("%w: nil enclosure", ErrInvalidEnclosure)
	}
	return nil
}
