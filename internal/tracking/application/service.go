// Package application holds the tracking service: the single owner of the
// activity log, the task list and the settings.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// ErrHourOccupied is returned by LogHourIfEmpty when the hour already has an entry.
var ErrHourOccupied = errors.New("hour already logged")

// Observer runs after every persisted change with a snapshot of the new
// state. Errors are logged; they never fail the change that triggered them.
type Observer func(ctx context.Context, state tracking.State) error

// Service serializes every read and write of the tracking state.
type Service struct {
	mu    sync.RWMutex
	state tracking.State

	repo      tracking.StateRepository
	ids       tracking.IDGenerator
	publisher eventbus.DomainPublisher
	metrics   observability.Metrics
	logger    *slog.Logger
	now       func() time.Time

	obsMu     sync.RWMutex
	observers []Observer
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock. The returned time must already be in the
// user's time zone; date keys are taken from it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the task id source.
func WithIDGenerator(ids tracking.IDGenerator) Option {
	return func(s *Service) { s.ids = ids }
}

// WithPublisher sets the domain event publisher.
func WithPublisher(p eventbus.DomainPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates the service and loads the persisted state.
func NewService(ctx context.Context, repo tracking.StateRepository, opts ...Option) (*Service, error) {
	s := &Service{
		state:   tracking.NewState(),
		repo:    repo,
		metrics: observability.NoopMetrics{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = tracking.ULIDGenerator{Now: s.now}
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory state with the persisted documents.
func (s *Service) Reload(ctx context.Context) error {
	log, err := s.repo.LoadLog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load log: %w", err)
	}
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	s.state = tracking.State{Log: log, Tasks: tasks, Settings: settings}
	s.mu.Unlock()
	return nil
}

// Subscribe registers an observer.
func (s *Service) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the current date key.
func (s *Service) Today() tracking.DateKey {
	return tracking.DateKeyOf(s.now())
}

// Snapshot returns a deep copy of the state.
func (s *Service) Snapshot() tracking.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Settings returns the current settings.
func (s *Service) Settings() tracking.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// Day returns a copy of the day's entries. Reading a day never registers it.
func (s *Service) Day(date tracking.DateKey) tracking.DayLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := make(tracking.DayLog, len(s.state.Log[date]))
	for h, e := range s.state.Log[date] {
		day[h] = e
	}
	return day
}

// Tasks returns the tasks in display order.
func (s *Service) Tasks() []tracking.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Tasks.Clone().Sorted()
}

// mutate applies fn to a copy of the state, persists what changed and only
// then swaps the copy in. A failed save leaves the live state untouched.
// Events returned by fn are published after the swap, then observers run.
func (s *Service) mutate(ctx context.Context, docs docSet, fn func(st *tracking.State) ([]sharedDomain.DomainEvent, error)) error {
	s.mu.Lock()
	next := s.state.Clone()
	events, err := fn(&next)
	if err == nil {
		err = s.persist(ctx, next, docs)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.afterChange(ctx, snapshot, events)
	return nil
}

type docSet uint8

const (
	docLog docSet = 1 << iota
	docTasks
	docSettings
	docAll = docLog | docTasks | docSettings
)

func (s *Service) persist(ctx context.Context, st tracking.State, docs docSet) error {
	if docs&docLog != 0 {
		if err := s.repo.SaveLog(ctx, st.Log); err != nil {
			return fmt.Errorf("failed to save log: %w", err)
		}
	}
	if docs&docTasks != 0 {
		if err := s.repo.SaveTasks(ctx, st.Tasks); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
	}
	if docs&docSettings != 0 {
		if err := s.repo.SaveSettings(ctx, st.Settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	return nil
}

func (s *Service) afterChange(ctx context.Context, state tracking.State, events []sharedDomain.DomainEvent) {
	if s.publisher != nil {
		for _, e := range events {
			if err := s.publisher.PublishDomainEvent(ctx, e); err != nil {
				s.logger.WarnContext(ctx, "failed to publish event", "routing_key", e.RoutingKey(), "error", err)
			}
		}
	}

	s.metrics.Gauge(observability.MetricCurrentStreak, float64(analytics.CalculateStreak(state.Log, state.Settings, s.now())))

	s.obsMu.RLock()
	observers := append([]Observer(nil), s.observers...)
	s.obsMu.RUnlock()

	for _, o := range observers {
		if err := o(ctx, state); err != nil {
			s.logger.WarnContext(ctx, "state observer failed", "error", err)
		}
	}
}
