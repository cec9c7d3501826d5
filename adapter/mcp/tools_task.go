package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

type taskAddInput struct {
	Text     string `json:"text" jsonschema:"required"`
	Priority string `json:"priority,omitempty"`
	DueTime  string `json:"due_time,omitempty"`
	Duration string `json:"duration,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

type taskListInput struct {
	Pending bool `json:"pending,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("task.add").
		Description("Add a task with optional priority (HIGH, MEDIUM, LOW), due time (HH:MM), duration in minutes and tag").
		Handler(func(ctx context.Context, input taskAddInput) (*tracking.Task, error) {
			return taskAdd(ctx, deps, input)
		})

	srv.Tool("task.list").
		Description("List tasks, open first by priority").
		Handler(func(ctx context.Context, input taskListInput) ([]tracking.Task, error) {
			return taskList(deps, input)
		})

	srv.Tool("task.toggle").
		Description("Mark a task complete, or reopen a completed one").
		Handler(func(ctx context.Context, input taskIDInput) (*tracking.Task, error) {
			app := deps.App
			if app == nil || app.Tracking == nil {
				return nil, errNoStorage
			}
			task, err := app.Tracking.ToggleTask(ctx, input.TaskID)
			if err != nil {
				return nil, err
			}
			return &task, nil
		})

	srv.Tool("task.delete").
		Description("Delete a task").
		Handler(func(ctx context.Context, input taskIDInput) (map[string]any, error) {
			app := deps.App
			if app == nil || app.Tracking == nil {
				return nil, errNoStorage
			}
			if err := app.Tracking.DeleteTask(ctx, input.TaskID); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": input.TaskID, "deleted": true}, nil
		})
}

func taskAdd(ctx context.Context, deps ToolDependencies, input taskAddInput) (*tracking.Task, error) {
	app := deps.App
	if app == nil || app.Tracking == nil {
		return nil, errNoStorage
	}
	if input.Text == "" {
		return nil, errors.New("text is required")
	}
	priority, err := tracking.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	task, err := app.Tracking.AddTask(ctx, trackingApp.AddTaskCommand{
		Text: input.Text,
		Meta: tracking.TaskMeta{
			DueTime:  input.DueTime,
			Priority: priority,
			Duration: input.Duration,
			Tag:      input.Tag,
		},
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func taskList(deps ToolDependencies, input taskListInput) ([]tracking.Task, error) {
	app := deps.App
	if app == nil || app.Tracking == nil {
		return nil, errNoStorage
	}
	tasks := app.Tracking.Tasks()
	if !input.Pending {
		return tasks, nil
	}
	pending := make([]tracking.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending, nil
}
