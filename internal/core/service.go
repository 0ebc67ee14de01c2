package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Service exposes instrumented zoo operations addressed by enclosure ID.
type Service struct {
	zoo *Zoo

	pluginMu sync.Mutex
	plugins  map[string]PluginMetadata

	logger   Logger
	clock    Clock
	audit    AuditRecorder
	metrics  MetricsRecorder
	tracer   Tracer
	reporter Reporter
	capacity CapacityModel
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger used by the service and its zoo.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for audit timestamps and durations.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithAuditRecorder sets the audit sink.
func WithAuditRecorder(a AuditRecorder) Option {
	return func(s *Service) {
		if a != nil {
			s.audit = a
		}
	}
}

// WithMetricsRecorder sets the metrics sink. Recorders that also implement
// OccupancyObserver receive enclosure occupancy after each change.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithServiceReporter routes narration of outcomes to r.
func WithServiceReporter(r Reporter) Option {
	return func(s *Service) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithCapacityModel selects the capacity model of the default rules engine.
// It has no effect when NewInMemoryService receives an engine.
func WithCapacityModel(m CapacityModel) Option {
	return func(s *Service) {
		s.capacity = m
	}
}

func newService(opts []Option) *Service {
	s := &Service{
		plugins:  make(map[string]PluginMetadata),
		logger:   noopLogger{},
		clock:    ClockFunc(func() time.Time { return time.Now().UTC() }),
		audit:    noopAuditRecorder{},
		metrics:  noopMetricsRecorder{},
		tracer:   noopTracer{},
		capacity: CapacityCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewService wraps an existing zoo.
func NewService(zoo *Zoo, opts ...Option) *Service {
	s := newService(opts)
	if zoo == nil {
		zoo = NewZoo(NewDefaultRulesEngine(s.capacity))
	}
	s.attach(zoo)
	return s
}

// NewInMemoryService creates a service around a new zoo using engine. A nil
// engine selects the default rules with the configured capacity model.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	s := newService(opts)
	if engine == nil {
		engine = NewDefaultRulesEngine(s.capacity)
	}
	s.attach(NewZoo(engine))
	return s
}

func (s *Service) attach(zoo *Zoo) {
	if s.reporter != nil {
		zoo.reporter = s.reporter
	}
	if _, isNoop := zoo.logger.(noopLogger); isNoop {
		zoo.logger = s.logger
	}
	s.zoo = zoo
}

// Zoo returns the underlying zoo.
func (s *Service) Zoo() *Zoo {
	return s.zoo
}

// ErrNotFound is returned when an addressed enclosure or resident does not exist.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type operation struct {
	name        string
	entity      EntityType
	action      Action
	entityID    string
	enclosureID string
}

// run executes fn inside a trace span, records metrics and audit entries, and
// logs the result. Admission rejections are audited as rejected, not errors.
func (s *Service) run(ctx context.Context, op operation, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, op.name)
	started := s.clock.Now()
	err := fn(ctx)
	duration := s.clock.Now().Sub(started)
	span.End(err)
	s.metrics.Observe(ctx, op.name, err == nil, duration)

	status := AuditStatusSuccess
	var reason string
	switch {
	case err == nil:
		s.logger.Debug("zoo operation completed", "operation", op.name, "entity_id", op.entityID, "enclosure_id", op.enclosureID, "duration", duration)
	case isRejection(err):
		status = AuditStatusRejected
		reason = err.Error()
		s.logger.Info("zoo operation rejected", "operation", op.name, "entity_id", op.entityID, "enclosure_id", op.enclosureID, "reason", reason)
	default:
		status = AuditStatusError
		reason = err.Error()
		s.logger.Error("zoo operation failed", "operation", op.name, "entity_id", op.entityID, "enclosure_id", op.enclosureID, "error", err)
	}
	s.recordAudit(ctx, op, status, reason, duration, started)
	return err
}

func (s *Service) recordAudit(ctx context.Context, op operation, status AuditStatus, reason string, duration time.Duration, at time.Time) {
	if op.action == "" {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation:   op.name,
		Entity:      op.entity,
		Action:      op.action,
		EntityID:    op.entityID,
		EnclosureID: op.enclosureID,
		Status:      status,
		Reason:      reason,
		Duration:    duration,
		Timestamp:   at,
	})
}

func (s *Service) observeOccupancy(e *Enclosure) {
	obs, ok := s.metrics.(OccupancyObserver)
	if !ok || e == nil {
		return
	}
	obs.ObserveOccupancy(e.ID(), e.Biome(), e.Square(), e.Len())
}

func (s *Service) enclosure(id string) (*Enclosure, error) {
	e, ok := s.zoo.FindEnclosure(id)
	if !ok {
		return nil, ErrNotFound{Entity: EntityEnclosure, ID: id}
	}
	return e, nil
}

// RegisterEnclosure adds an existing enclosure to the zoo.
func (s *Service) RegisterEnclosure(ctx context.Context, e *Enclosure) error {
	if e == nil {
		return fmt.Errorf("enclosure cannot be nil")
	}
	op := operation{name: "register_enclosure", entity: EntityEnclosure, action: ActionRegister, entityID: e.ID(), enclosureID: e.ID()}
	return s.run(ctx, op, func(context.Context) error {
		s.zoo.RegisterEnclosure(e)
		s.observeOccupancy(e)
		return nil
	})
}

// CreateEnclosure constructs and registers a new enclosure.
func (s *Service) CreateEnclosure(ctx context.Context, biome string, capacity float64, hasWater bool) (*Enclosure, error) {
	var created *Enclosure
	op := operation{name: "create_enclosure", entity: EntityEnclosure, action: ActionRegister}
	err := s.run(ctx, op, func(context.Context) error {
		e, err := NewEnclosure(biome, capacity, hasWater)
		if err != nil {
			return err
		}
		s.zoo.RegisterEnclosure(e)
		s.observeOccupancy(e)
		created = e
		return nil
	})
	return created, err
}

// CheckAdmission evaluates whether animal could join the enclosure without
// changing anything. It is not audited.
func (s *Service) CheckAdmission(ctx context.Context, animal *Animal, enclosureID string) (Outcome, error) {
	var outcome Outcome
	err := s.run(ctx, operation{name: "check_admission", enclosureID: enclosureID, entityID: animalID(animal)}, func(ctx context.Context) error {
		e, err := s.enclosure(enclosureID)
		if err != nil {
			return err
		}
		outcome, err = s.zoo.CheckAdmission(ctx, animal, e)
		return err
	})
	return outcome, err
}

// Admit places animal in the enclosure. A rejection is returned as an
// AdmissionError carrying the outcome.
func (s *Service) Admit(ctx context.Context, animal *Animal, enclosureID string) (Outcome, error) {
	var outcome Outcome
	op := operation{name: "admit_animal", entity: EntityAnimal, action: ActionAdmit, entityID: animalID(animal), enclosureID: enclosureID}
	err := s.run(ctx, op, func(ctx context.Context) error {
		e, err := s.enclosure(enclosureID)
		if err != nil {
			return err
		}
		outcome, err = s.zoo.admit(ctx, animal, e)
		if err != nil {
			return err
		}
		if !outcome.Admissible() {
			return AdmissionError{Animal: animal.Name, Outcome: outcome}
		}
		s.observeOccupancy(e)
		return nil
	})
	return outcome, err
}

// Remove takes animal out of the enclosure. ErrNotFound is returned when
// either the enclosure or the resident is missing.
func (s *Service) Remove(ctx context.Context, animal *Animal, enclosureID string) error {
	op := operation{name: "remove_animal", entity: EntityAnimal, action: ActionRemove, entityID: animalID(animal), enclosureID: enclosureID}
	return s.run(ctx, op, func(context.Context) error {
		e, err := s.enclosure(enclosureID)
		if err != nil {
			return err
		}
		if !s.zoo.Remove(animal, e) {
			return ErrNotFound{Entity: EntityAnimal, ID: animalID(animal)}
		}
		s.observeOccupancy(e)
		return nil
	})
}

// TotalFoodDemand returns the zoo-wide daily food demand.
func (s *Service) TotalFoodDemand() float64 {
	return s.zoo.TotalFoodDemand()
}

// ReportTotalFood computes and reports the zoo-wide daily food demand.
func (s *Service) ReportTotalFood(ctx context.Context) float64 {
	var total float64
	_ = s.run(ctx, operation{name: "report_total_food"}, func(context.Context) error {
		total = s.zoo.ReportTotalFood()
		return nil
	})
	return total
}

// InstallPlugin registers a plugin, appending its rules after the built-ins.
func (s *Service) InstallPlugin(plugin Plugin) (PluginMetadata, error) {
	if plugin == nil {
		return PluginMetadata{}, fmt.Errorf("plugin cannot be nil")
	}
	s.pluginMu.Lock()
	defer s.pluginMu.Unlock()
	if _, ok := s.plugins[plugin.Name()]; ok {
		return PluginMetadata{}, fmt.Errorf("plugin %s already registered", plugin.Name())
	}

	registry := NewPluginRegistry()
	if err := plugin.Register(registry); err != nil {
		return PluginMetadata{}, fmt.Errorf("register plugin %s: %w", plugin.Name(), err)
	}
	names := make([]string, 0, len(registry.Rules()))
	for _, rule := range registry.Rules() {
		s.zoo.engine.Register(rule)
		names = append(names, rule.Name())
	}

	meta := PluginMetadata{
		Name:    plugin.Name(),
		Version: plugin.Version(),
		Rules:   names,
	}
	s.plugins[plugin.Name()] = meta
	s.logger.Info("plugin installed", "plugin", meta.Name, "version", meta.Version, "rules", len(names))
	return meta, nil
}

// RegisteredPlugins returns metadata describing installed plugins, sorted by name.
func (s *Service) RegisteredPlugins() []PluginMetadata {
	s.pluginMu.Lock()
	out := make([]PluginMetadata, 0, len(s.plugins))
	for _, meta := range s.plugins {
		out = append(out, meta)
	}
	s.pluginMu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func animalID(a *Animal) string {
	if a == nil {
		return ""
	}
	return a.ID
}

func isRejection(err error) bool {
	var admission AdmissionError
	return errors.As(err, &admission)
}
