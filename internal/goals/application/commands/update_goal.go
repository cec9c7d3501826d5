package commands

import (
	"context"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
)

// UpdateGoalCommand changes the fields that are set.
type UpdateGoalCommand struct {
	GoalID string
	Update domain.Update
}

// UpdateGoalHandler handles UpdateGoalCommand.
type UpdateGoalHandler struct {
	repo domain.Repository
}

// NewUpdateGoalHandler creates a new UpdateGoalHandler.
func NewUpdateGoalHandler(repo domain.Repository) *UpdateGoalHandler {
	return &UpdateGoalHandler{repo: repo}
}

// Handle applies the update and saves the list.
func (h *UpdateGoalHandler) Handle(ctx context.Context, cmd UpdateGoalCommand) (*domain.Goal, error) {
	goals, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	goal, ok := domain.Find(goals, cmd.GoalID)
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	if err := goal.Apply(cmd.Update); err != nil {
		return nil, err
	}
	if err := h.repo.Save(ctx, goals); err != nil {
		return nil, err
	}
	return goal, nil
}
