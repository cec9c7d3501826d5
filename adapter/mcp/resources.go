package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
)

// RegisterResources registers read-only MCP resources.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	jsonResource(srv, "pytron://dashboard", "Dashboard", "Today's summary, streak and week chart",
		func(ctx context.Context) (any, error) { return dashboard(ctx, deps) })

	jsonResource(srv, "pytron://analytics/week", "Weekly analytics", "Statistics and insights for the last 7 days",
		func(ctx context.Context) (any, error) { return analyticsRange(ctx, deps, analyticsRangeInput{Days: 7}) })

	jsonResource(srv, "pytron://tasks", "Tasks", "All tasks, open first by priority",
		func(ctx context.Context) (any, error) { return taskList(deps, taskListInput{}) })

	jsonResource(srv, "pytron://badges", "Badges", "Badge catalog with unlock state and progress",
		func(ctx context.Context) (any, error) { return badgeList(ctx, deps) })

	jsonResource(srv, "pytron://goals", "Goals", "All goals with progress",
		func(ctx context.Context) (any, error) {
			app := deps.App
			if app == nil || app.Goals == nil {
				return nil, errNoStorage
			}
			return app.Goals.List(ctx, goalsQueries.ListGoalsQuery{})
		})

	return nil
}

func jsonResource(srv *mcp.Server, uri, name, description string, load func(ctx context.Context) (any, error)) {
	srv.Resource(uri).
		Name(name).
		Description(description).
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			v, err := load(ctx)
			if err != nil {
				return nil, err
			}
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}
			return &mcp.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})
}
