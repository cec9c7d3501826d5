// Package application contains the application layer for goals.
package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/pytron/internal/goals/application/commands"
	"github.com/felixgeelhaar/pytron/internal/goals/application/queries"
	"github.com/felixgeelhaar/pytron/internal/goals/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// StateSource provides tracking snapshots.
type StateSource interface {
	Snapshot() tracking.State
	Now() time.Time
}

// Service provides a facade over the goal handlers. Every call holds one
// lock because each handler rewrites the whole goal document.
type Service struct {
	mu     sync.Mutex
	source StateSource

	createHandler   *commands.CreateGoalHandler
	updateHandler   *commands.UpdateGoalHandler
	deleteHandler   *commands.DeleteGoalHandler
	evaluateHandler *commands.EvaluateGoalsHandler
	listHandler     *queries.ListGoalsHandler
}

// NewService creates a new goal service.
func NewService(repo domain.Repository, source StateSource, publisher eventbus.DomainPublisher, metrics observability.Metrics, logger *slog.Logger) *Service {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:          source,
		createHandler:   commands.NewCreateGoalHandler(repo, source.Now),
		updateHandler:   commands.NewUpdateGoalHandler(repo),
		deleteHandler:   commands.NewDeleteGoalHandler(repo),
		evaluateHandler: commands.NewEvaluateGoalsHandler(repo, publisher, metrics, logger, source.Now),
		listHandler:     queries.NewListGoalsHandler(repo),
	}
}

// Create creates a goal and immediately measures it.
func (s *Service) Create(ctx context.Context, cmd commands.CreateGoalCommand) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, err := s.createHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if _, err := s.evaluateHandler.Handle(ctx, s.source.Snapshot()); err != nil {
		return nil, err
	}
	return s.reload(ctx, goal.ID)
}

// Update applies a partial update, then re-evaluates milestones.
func (s *Service) Update(ctx context.Context, cmd commands.UpdateGoalCommand) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.updateHandler.Handle(ctx, cmd); err != nil {
		return nil, err
	}
	if _, err := s.evaluateHandler.Handle(ctx, s.source.Snapshot()); err != nil {
		return nil, err
	}
	return s.reload(ctx, cmd.GoalID)
}

// Delete removes a goal.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteHandler.Handle(ctx, id)
}

// Evaluate recomputes goals against the current state.
func (s *Service) Evaluate(ctx context.Context) ([]commands.MilestoneHit, error) {
	return s.EvaluateState(ctx, s.source.Snapshot())
}

// EvaluateState recomputes goals against state.
func (s *Service) EvaluateState(ctx context.Context, state tracking.State) ([]commands.MilestoneHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluateHandler.Handle(ctx, state)
}

// OnStateChanged adapts EvaluateState to a tracking observer.
func (s *Service) OnStateChanged(ctx context.Context, state tracking.State) error {
	_, err := s.EvaluateState(ctx, state)
	return err
}

// List returns goals with their progress.
func (s *Service) List(ctx context.Context, query queries.ListGoalsQuery) ([]queries.GoalView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listHandler.Handle(ctx, query)
}

func (s *Service) reload(ctx context.Context, id string) (*domain.Goal, error) {
	views, err := s.listHandler.Handle(ctx, queries.ListGoalsQuery{})
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.ID == id {
			return v.Goal, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}
