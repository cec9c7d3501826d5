package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
)

type pomodoroStatus struct {
	State pomodoro.State `json:"state"`
	Today pomodoro.Stats `json:"today"`
}

func registerPomodoroTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("pomodoro.status").
		Description("Show the pomodoro timer state and today's completed sessions").
		Handler(func(ctx context.Context, input emptyInput) (*pomodoroStatus, error) {
			return pomodoroState(deps)
		})

	srv.Tool("pomodoro.start").
		Description("Start or resume the pomodoro timer").
		Handler(func(ctx context.Context, input emptyInput) (*pomodoroStatus, error) {
			return pomodoroAction(ctx, deps, "start")
		})

	srv.Tool("pomodoro.pause").
		Description("Pause the pomodoro timer").
		Handler(func(ctx context.Context, input emptyInput) (*pomodoroStatus, error) {
			return pomodoroAction(ctx, deps, "pause")
		})

	srv.Tool("pomodoro.reset").
		Description("Reset the pomodoro cycle to the first work session").
		Handler(func(ctx context.Context, input emptyInput) (*pomodoroStatus, error) {
			return pomodoroAction(ctx, deps, "reset")
		})
}

func pomodoroState(deps ToolDependencies) (*pomodoroStatus, error) {
	app := deps.App
	if app == nil || app.Pomodoro == nil {
		return nil, errNoStorage
	}
	return &pomodoroStatus{State: app.Pomodoro.State(), Today: app.Pomodoro.TodayStats()}, nil
}

func pomodoroAction(ctx context.Context, deps ToolDependencies, action string) (*pomodoroStatus, error) {
	app := deps.App
	if app == nil || app.Pomodoro == nil {
		return nil, errNoStorage
	}
	// The timer outlives the tool call.
	ctx = context.WithoutCancel(ctx)
	var err error
	switch action {
	case "start":
		err = app.Pomodoro.Start(ctx)
	case "pause":
		err = app.Pomodoro.Pause(ctx)
	case "reset":
		err = app.Pomodoro.Reset(ctx)
	}
	if err != nil {
		return nil, err
	}
	return pomodoroState(deps)
}
