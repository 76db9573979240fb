// Package service orchestrates the machine and its storage behind a
// single exclusive gate. Every operation, reads included, holds the
// gate across validate, mutate and persist, so no caller ever observes
// an intermediate state and read-after-write is always consistent.
package service

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"brewd/internal/config"
	"brewd/internal/events"
	"brewd/internal/machine"
	"brewd/internal/storage"
)

// Service owns the single in-process machine instance.
type Service struct {
	mu      sync.Mutex
	machine *machine.Machine
	store   storage.Store
	logger  *zap.Logger
	pub     *events.Publisher
	tracer  trace.Tracer
}

// BrewResult is the outcome of a successful brew.
type BrewResult struct {
	Message string           `json:"message"`
	Drink   string           `json:"drink"`
	Used    machine.Recipe   `json:"used"`
	Status  machine.Snapshot `json:"status"`
}

// FillResult is the outcome of a successful refill.
type FillResult struct {
	Message string           `json:"message"`
	Status  machine.Snapshot `json:"status"`
}

// New restores the machine from storage, or builds a default one with
// full containers from the configured capacities. pub may be nil.
func New(ctx context.Context, store storage.Store, cfg *config.Config, logger *zap.Logger, pub *events.Publisher) (*Service, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load machine state: %w", err)
	}
	var m *machine.Machine
	if snap != nil {
		m = machine.FromSnapshot(*snap)
		logger.Info("restored machine state",
			zap.Int("water_level", m.Water.Level),
			zap.Int("coffee_level", m.Coffee.Level))
	} else {
		m = machine.NewDefault(cfg.WaterCapacityML, cfg.CoffeeCapacityG)
		logger.Info("starting with a full machine",
			zap.Int("water_capacity", cfg.WaterCapacityML),
			zap.Int("coffee_capacity", cfg.CoffeeCapacityG))
	}
	return &Service{
		machine: m,
		store:   store,
		logger:  logger,
		pub:     pub,
		tracer:  otel.Tracer("brewd/service"),
	}, nil
}

// Status returns the current machine snapshot.
func (s *Service) Status(ctx context.Context) machine.Snapshot {
	_, span := s.tracer.Start(ctx, "service.status")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

// Brew makes the named drink and persists the new state before
// returning.
func (s *Service) Brew(ctx context.Context, name string) (*BrewResult, error) {
	ctx, span := s.tracer.Start(ctx, "service.brew",
		trace.WithAttributes(attribute.String("drink", name)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	used, err := s.machine.Brew(name)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.emit(func() error { return s.pub.Brewed(name) })
	return &BrewResult{
		Message: s.machine.LastMessage,
		Drink:   name,
		Used:    used,
		Status:  s.machine.Snapshot(),
	}, nil
}

// FillWater adds water and persists the new state before returning.
func (s *Service) FillWater(ctx context.Context, amount int) (*FillResult, error) {
	ctx, span := s.tracer.Start(ctx, "service.fill_water",
		trace.WithAttributes(attribute.Int("amount_ml", amount)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.FillWater(amount); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.emit(func() error { return s.pub.Filled("water", amount, "ml") })
	return &FillResult{Message: s.machine.LastMessage, Status: s.machine.Snapshot()}, nil
}

// FillCoffee adds coffee grounds and persists the new state before
// returning.
func (s *Service) FillCoffee(ctx context.Context, amount int) (*FillResult, error) {
	ctx, span := s.tracer.Start(ctx, "service.fill_coffee",
		trace.WithAttributes(attribute.Int("amount_g", amount)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.FillCoffee(amount); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.emit(func() error { return s.pub.Filled("coffee", amount, "g") })
	return &FillResult{Message: s.machine.LastMessage, Status: s.machine.Snapshot()}, nil
}

// persist writes the current machine state. The caller already holds
// the gate. On failure the in-memory mutation is NOT reverted: memory
// is now ahead of storage until the next successful save, and the
// caller surfaces the error as an infrastructure failure.
func (s *Service) persist(ctx context.Context) error {
	snap := s.machine.Snapshot()
	if err := s.store.Save(ctx, &snap); err != nil {
		s.logger.Warn("failed to persist machine state; in-memory state is ahead of storage",
			zap.Error(err))
		return fmt.Errorf("persist machine state: %w", err)
	}
	return nil
}

// emit publishes an event when a publisher is configured. Best-effort:
// a publish failure is logged, never returned.
func (s *Service) emit(publish func() error) {
	if s.pub == nil {
		return
	}
	if err := publish(); err != nil {
		s.logger.Warn("failed to publish event", zap.Error(err))
	}
}
