package scenario

import (
	"context"
	"errors"
	"fmt"

	"zoocore/internal/core"
)

// StepResult records what one step did. Admitted is set for admit steps that
// placed the animal and for check steps whose outcome was admissible. Food is
// only set by report_food steps.
type StepResult struct {
	Index     int
	Action    Action
	Animal    string
	Enclosure string
	Admitted  bool
	Outcome   core.Outcome
	Remaining float64
	Food      float64
	Err       error
}

// Summary is the result of replaying a scenario.
type Summary struct {
	Name      string
	Steps     []StepResult
	Remaining map[string]float64
	TotalFood float64
}

// Runner replays scenarios against a service.
type Runner struct {
	svc *core.Service
}

// NewRunner constructs a runner bound to svc.
func NewRunner(svc *core.Service) *Runner {
	return &Runner{svc: svc}
}

// Fixture holds the live objects created from a scenario's declarations.
type Fixture struct {
	Enclosures map[string]*core.Enclosure
	Animals    map[string]*core.Animal
	// Order lists enclosure keys in declaration order.
	Order []string
}

// Setup registers the scenario's enclosures and creates its animals.
func (r *Runner) Setup(ctx context.Context, sc *Scenario) (*Fixture, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: nil scenario", ErrInvalidScenario)
	}
	fx := &Fixture{
		Enclosures: make(map[string]*core.Enclosure, len(sc.Enclosures)),
		Animals:    make(map[string]*core.Animal, len(sc.Animals)),
	}
	species := make(map[string]*core.Species, len(sc.Species))
	for _, sp := range sc.Species {
		created, err := core.NewSpecies(sp)
		if err != nil {
			return nil, err
		}
		species[sp.Name] = created
	}
	for _, spec := range sc.Enclosures {
		e, err := r.svc.CreateEnclosure(ctx, spec.Biome, spec.Capacity, spec.HasWater)
		if err != nil {
			return nil, fmt.Errorf("enclosure %s: %w", spec.Key, err)
		}
		fx.Enclosures[spec.Key] = e
		fx.Order = append(fx.Order, spec.Key)
	}
	for _, spec := range sc.Animals {
		a, err := core.NewAnimal(spec.Name, spec.FoodAmount, species[spec.Species])
		if err != nil {
			return nil, fmt.Errorf("animal %s: %w", spec.Name, err)
		}
		fx.Animals[spec.Name] = a
	}
	return fx, nil
}

// Run sets up sc and applies its steps in order. Rejections and missing
// residents are recorded on the step; only setup and rule evaluation failures
// abort the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (Summary, error) {
	fx, err := r.Setup(ctx, sc)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Name: sc.Name, Remaining: make(map[string]float64, len(fx.Order))}
	for i, step := range sc.Steps {
		res, err := r.apply(ctx, fx, step)
		res.Index = i + 1
		summary.Steps = append(summary.Steps, res)
		if err != nil {
			return summary, fmt.Errorf("step %d (%s %s): %w", res.Index, step.Action, step.Animal, err)
		}
	}
	for _, key := range fx.Order {
		summary.Remaining[key] = fx.Enclosures[key].Square()
	}
	summary.TotalFood = r.svc.TotalFoodDemand()
	return summary, nil
}

func (r *Runner) apply(ctx context.Context, fx *Fixture, step Step) (StepResult, error) {
	res := StepResult{Action: step.Action, Animal: step.Animal, Enclosure: step.Enclosure}
	if step.Action == ActionReportFood {
		res.Food = r.svc.ReportTotalFood(ctx)
		return res, nil
	}
	animal := fx.Animals[step.Animal]
	enclosure := fx.Enclosures[step.Enclosure]

	switch step.Action {
	case ActionAdmit:
		outcome, err := r.svc.Admit(ctx, animal, enclosure.ID())
		res.Outcome = outcome
		res.Remaining = enclosure.Square()
		var admission core.AdmissionError
		switch {
		case err == nil:
			res.Admitted = true
		case errors.As(err, &admission):
			res.Err = err
		default:
			return res, err
		}
	case ActionRemove:
		err := r.svc.Remove(ctx, animal, enclosure.ID())
		res.Remaining = enclosure.Square()
		var notFound core.ErrNotFound
		if err != nil && !errors.As(err, &notFound) {
			return res, err
		}
		res.Err = err
	case ActionCheck:
		outcome, err := r.svc.CheckAdmission(ctx, animal, enclosure.ID())
		if err != nil {
			return res, err
		}
		res.Outcome = outcome
		res.Admitted = outcome.Admissible()
		res.Remaining = enclosure.Square()
	}
	return res, nil
}
