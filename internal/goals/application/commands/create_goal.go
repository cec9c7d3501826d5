package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// CreateGoalCommand contains the data needed to create a goal.
type CreateGoalCommand struct {
	Title    string
	Type     domain.GoalType
	Target   float64
	Category *tracking.Category
	Deadline *tracking.DateKey
}

// CreateGoalHandler handles CreateGoalCommand.
type CreateGoalHandler struct {
	repo domain.Repository
	now  func() time.Time
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(repo domain.Repository, now func() time.Time) *CreateGoalHandler {
	return &CreateGoalHandler{repo: repo, now: now}
}

// Handle appends the goal to the stored list.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*domain.Goal, error) {
	goal, err := domain.NewGoal(cmd.Title, cmd.Type, cmd.Target, cmd.Category, cmd.Deadline, h.now())
	if err != nil {
		return nil, err
	}

	goals, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	goals = append(goals, goal)
	if err := h.repo.Save(ctx, goals); err != nil {
		return nil, err
	}
	return goal, nil
}
