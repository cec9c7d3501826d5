package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	badgesApp "github.com/felixgeelhaar/pytron/internal/badges/application"
	badges "github.com/felixgeelhaar/pytron/internal/badges/domain"
	goalsCommands "github.com/felixgeelhaar/pytron/internal/goals/application/commands"
	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

type goalCreateInput struct {
	Title    string  `json:"title" jsonschema:"required"`
	Type     string  `json:"type" jsonschema:"required"`
	Target   float64 `json:"target" jsonschema:"required"`
	Category string  `json:"category,omitempty"`
	Deadline string  `json:"deadline,omitempty"`
}

type goalListInput struct {
	Status string `json:"status,omitempty"`
}

type goalIDInput struct {
	GoalID string `json:"goal_id" jsonschema:"required"`
}

type badgeListResult struct {
	Summary badgesApp.Summary `json:"summary"`
	Badges  []badges.View     `json:"badges"`
}

func registerGoalTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("badge.list").
		Description("List every badge with unlock state and progress").
		Handler(func(ctx context.Context, input emptyInput) (*badgeListResult, error) {
			return badgeList(ctx, deps)
		})

	srv.Tool("goal.create").
		Description("Create a goal of type hours, streak, tasks or custom").
		Handler(func(ctx context.Context, input goalCreateInput) (*goalsQueries.GoalView, error) {
			return goalCreate(ctx, deps, input)
		})

	srv.Tool("goal.list").
		Description("List goals (status: active, completed or empty for all)").
		Handler(func(ctx context.Context, input goalListInput) ([]goalsQueries.GoalView, error) {
			app := deps.App
			if app == nil || app.Goals == nil {
				return nil, errNoStorage
			}
			return app.Goals.List(ctx, goalsQueries.ListGoalsQuery{Status: goalsQueries.GoalStatus(input.Status)})
		})

	srv.Tool("goal.delete").
		Description("Delete a goal").
		Handler(func(ctx context.Context, input goalIDInput) (map[string]any, error) {
			app := deps.App
			if app == nil || app.Goals == nil {
				return nil, errNoStorage
			}
			if err := app.Goals.Delete(ctx, input.GoalID); err != nil {
				return nil, err
			}
			return map[string]any{"goal_id": input.GoalID, "deleted": true}, nil
		})
}

func badgeList(ctx context.Context, deps ToolDependencies) (*badgeListResult, error) {
	app := deps.App
	if app == nil || app.Badges == nil {
		return nil, errNoStorage
	}
	views, err := app.Badges.List(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := app.Badges.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &badgeListResult{Summary: summary, Badges: views}, nil
}

func goalCreate(ctx context.Context, deps ToolDependencies, input goalCreateInput) (*goalsQueries.GoalView, error) {
	app := deps.App
	if app == nil || app.Goals == nil {
		return nil, errNoStorage
	}
	goalType, err := goals.ParseGoalType(input.Type)
	if err != nil {
		return nil, err
	}
	cmd := goalsCommands.CreateGoalCommand{Title: input.Title, Type: goalType, Target: input.Target}
	if input.Category != "" {
		c, err := tracking.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		cmd.Category = &c
	}
	if cmd.Deadline, err = parseOptionalDate(input.Deadline); err != nil {
		return nil, err
	}

	goal, err := app.Goals.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &goalsQueries.GoalView{Goal: goal, Progress: goal.ProgressPercent()}, nil
}
