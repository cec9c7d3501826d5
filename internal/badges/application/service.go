// Package application evaluates badges against the tracking state and
// persists unlocks.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/pytron/internal/badges/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// StateSource provides tracking snapshots.
type StateSource interface {
	Snapshot() tracking.State
	Now() time.Time
}

// Summary counts unlocked badges.
type Summary struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
}

// Service owns the unlocked set.
type Service struct {
	mu        sync.Mutex
	repo      domain.Repository
	source    StateSource
	publisher eventbus.DomainPublisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

// NewService creates a new badge service.
func NewService(repo domain.Repository, source StateSource, publisher eventbus.DomainPublisher, metrics observability.Metrics, logger *slog.Logger) *Service {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		source:    source,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Check evaluates the current state.
func (s *Service) Check(ctx context.Context) ([]domain.Badge, error) {
	return s.Evaluate(ctx, s.source.Snapshot())
}

// Evaluate unlocks badges whose conditions hold for state, persists the
// new set and publishes one event per newly unlocked badge.
func (s *Service) Evaluate(ctx context.Context, state tracking.State) ([]domain.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	now := s.source.Now()
	unlocked := domain.Evaluate(&set, domain.ComputeStats(state, now))
	if len(unlocked) == 0 {
		return nil, nil
	}

	if err := s.repo.Save(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save badges: %w", err)
	}

	for _, b := range unlocked {
		s.logger.InfoContext(ctx, "badge unlocked", "badge_id", b.ID, "rarity", b.Rarity)
		s.metrics.Counter(observability.MetricBadgesUnlocked, 1, observability.T("rarity", string(b.Rarity)))
		if s.publisher == nil {
			continue
		}
		if err := s.publisher.PublishDomainEvent(ctx, domain.NewBadgeUnlocked(b, now)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish badge event", "badge_id", b.ID, "error", err)
		}
	}
	return unlocked, nil
}

// OnStateChanged adapts Evaluate to a tracking observer.
func (s *Service) OnStateChanged(ctx context.Context, state tracking.State) error {
	_, err := s.Evaluate(ctx, state)
	return err
}

// List returns the catalog with unlock flags and progress.
func (s *Service) List(ctx context.Context) ([]domain.View, error) {
	set, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	return domain.Views(set, domain.ComputeStats(s.source.Snapshot(), s.source.Now())), nil
}

// Summary returns how many badges are unlocked.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	set, err := s.repo.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load badges: %w", err)
	}
	return Summary{Unlocked: len(set), Total: len(domain.Catalog())}, nil
}
