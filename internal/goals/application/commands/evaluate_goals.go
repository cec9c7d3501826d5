package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// MilestoneHit is one newly reached threshold.
type MilestoneHit struct {
	GoalID    string `json:"goalId"`
	Title     string `json:"title"`
	Milestone int    `json:"milestone"`
}

// EvaluateGoalsHandler recomputes every incomplete goal and fires newly
// reached milestones.
type EvaluateGoalsHandler struct {
	repo      domain.Repository
	publisher eventbus.DomainPublisher
	metrics   observability.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewEvaluateGoalsHandler creates a new EvaluateGoalsHandler.
func NewEvaluateGoalsHandler(repo domain.Repository, publisher eventbus.DomainPublisher, metrics observability.Metrics, logger *slog.Logger, now func() time.Time) *EvaluateGoalsHandler {
	return &EvaluateGoalsHandler{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       now,
	}
}

// Handle measures state, updates goals and publishes milestone events.
// The list is saved whenever a current value or milestone changed.
func (h *EvaluateGoalsHandler) Handle(ctx context.Context, state tracking.State) ([]MilestoneHit, error) {
	goals, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	measurements := domain.Measure(state, now)

	var (
		hits    []MilestoneHit
		events  []sharedDomain.DomainEvent
		changed bool
	)
	for _, g := range goals {
		if g.IsCompleted() {
			continue
		}
		before := g.Current
		g.Measure(measurements)
		if g.Current != before {
			changed = true
		}

		reached := g.CheckMilestones(now)
		if len(reached) == 0 {
			continue
		}
		changed = true
		for _, m := range reached {
			hits = append(hits, MilestoneHit{GoalID: g.ID, Title: g.Title, Milestone: m})
		}
		events = append(events, domain.MilestoneEvents(g, reached, now)...)
	}

	if !changed {
		return hits, nil
	}
	if err := h.repo.Save(ctx, goals); err != nil {
		return nil, err
	}

	for _, hit := range hits {
		h.logger.InfoContext(ctx, "goal milestone reached", "goal_id", hit.GoalID, "milestone", hit.Milestone)
		h.metrics.Counter(observability.MetricGoalMilestones, 1)
	}
	if h.publisher != nil {
		for _, e := range events {
			if err := h.publisher.PublishDomainEvent(ctx, e); err != nil {
				h.logger.WarnContext(ctx, "failed to publish goal event", "routing_key", e.RoutingKey(), "error", err)
			}
		}
	}
	return hits, nil
}
