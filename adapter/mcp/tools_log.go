package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	analyticsApp "github.com/felixgeelhaar/pytron/internal/analytics/application"
	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

type logSetInput struct {
	Hour     int    `json:"hour" jsonschema:"required"`
	Category string `json:"category" jsonschema:"required"`
	Date     string `json:"date,omitempty"`
	Note     string `json:"note,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
}

type logClearInput struct {
	Hour int    `json:"hour" jsonschema:"required"`
	Date string `json:"date,omitempty"`
}

type logDayInput struct {
	Date string `json:"date,omitempty"`
}

type analyticsRangeInput struct {
	Days int `json:"days,omitempty"`
}

type emptyInput struct{}

type logSetResult struct {
	Date  tracking.DateKey  `json:"date"`
	Hour  int               `json:"hour"`
	Entry tracking.LogEntry `json:"entry"`
}

func registerLogTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("log.set").
		Description("Log how an hour was spent (DEEP_WORK, SHALLOW, DISTRACTION, REST, SLEEP, EXERCISE)").
		Handler(func(ctx context.Context, input logSetInput) (*logSetResult, error) {
			return logSet(ctx, deps, input)
		})

	srv.Tool("log.clear").
		Description("Clear the entry for an hour").
		Handler(func(ctx context.Context, input logClearInput) (map[string]any, error) {
			return logClear(ctx, deps, input)
		})

	srv.Tool("log.day").
		Description("Show the entries and summary for a day (default today)").
		Handler(func(ctx context.Context, input logDayInput) (*analyticsApp.DayResult, error) {
			return logDay(ctx, deps, input)
		})

	srv.Tool("dashboard.get").
		Description("Today's efficiency, streak, target progress and week chart").
		Handler(func(ctx context.Context, input emptyInput) (*analytics.Dashboard, error) {
			return dashboard(ctx, deps)
		})

	srv.Tool("analytics.range").
		Description("Aggregate statistics and insights for the last N days (default 7)").
		Handler(func(ctx context.Context, input analyticsRangeInput) (*analyticsApp.RangeResult, error) {
			return analyticsRange(ctx, deps, input)
		})
}

func logSet(ctx context.Context, deps ToolDependencies, input logSetInput) (*logSetResult, error) {
	app := deps.App
	if app == nil || app.Tracking == nil {
		return nil, errNoStorage
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	category, err := tracking.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	entry, err := app.Tracking.LogHour(ctx, trackingApp.LogHourCommand{
		Date:     date,
		Hour:     input.Hour,
		Category: category,
		Note:     input.Note,
		TaskID:   input.TaskID,
	})
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = app.Tracking.Today()
	}
	return &logSetResult{Date: date, Hour: input.Hour, Entry: entry}, nil
}

func logClear(ctx context.Context, deps ToolDependencies, input logClearInput) (map[string]any, error) {
	app := deps.App
	if app == nil || app.Tracking == nil {
		return nil, errNoStorage
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := app.Tracking.ClearHour(ctx, date, input.Hour); err != nil {
		return nil, err
	}
	return map[string]any{"hour": input.Hour, "cleared": true}, nil
}

func logDay(ctx context.Context, deps ToolDependencies, input logDayInput) (*analyticsApp.DayResult, error) {
	app := deps.App
	if app == nil || app.Analytics == nil {
		return nil, errNoStorage
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	day, err := app.Analytics.Day(ctx, date)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func dashboard(ctx context.Context, deps ToolDependencies) (*analytics.Dashboard, error) {
	app := deps.App
	if app == nil || app.Analytics == nil {
		return nil, errNoStorage
	}
	d, err := app.Analytics.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func analyticsRange(ctx context.Context, deps ToolDependencies, input analyticsRangeInput) (*analyticsApp.RangeResult, error) {
	app := deps.App
	if app == nil || app.Analytics == nil {
		return nil, errNoStorage
	}
	r, err := app.Analytics.Range(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
