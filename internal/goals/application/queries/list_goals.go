package queries

import (
	"context"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
)

// GoalStatus filters the goal list.
type GoalStatus string

const (
	StatusAll       GoalStatus = ""
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
)

// ListGoalsQuery selects goals by status.
type ListGoalsQuery struct {
	Status GoalStatus
}

// GoalView is a goal with its display progress.
type GoalView struct {
	*domain.Goal
	Progress int `json:"progress"`
}

// ListGoalsHandler handles ListGoalsQuery.
type ListGoalsHandler struct {
	repo domain.Repository
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(repo domain.Repository) *ListGoalsHandler {
	return &ListGoalsHandler{repo: repo}
}

// Handle returns the matching goals in creation order.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) ([]GoalView, error) {
	goals, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		switch query.Status {
		case StatusActive:
			if g.IsCompleted() {
				continue
			}
		case StatusCompleted:
			if !g.IsCompleted() {
				continue
			}
		}
		views = append(views, GoalView{Goal: g, Progress: g.ProgressPercent()})
	}
	return views, nil
}
