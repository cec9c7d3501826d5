package commands

import (
	"context"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
)

// DeleteGoalHandler removes goals.
type DeleteGoalHandler struct {
	repo domain.Repository
}

// NewDeleteGoalHandler creates a new DeleteGoalHandler.
func NewDeleteGoalHandler(repo domain.Repository) *DeleteGoalHandler {
	return &DeleteGoalHandler{repo: repo}
}

// Handle deletes the goal with id.
func (h *DeleteGoalHandler) Handle(ctx context.Context, id string) error {
	goals, err := h.repo.Load(ctx)
	if err != nil {
		return err
	}
	i := domain.IndexOf(goals, id)
	if i < 0 {
		return domain.ErrGoalNotFound
	}
	goals = append(goals[:i], goals[i+1:]...)
	return h.repo.Save(ctx, goals)
}
