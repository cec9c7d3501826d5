package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	internalApp "github.com/felixgeelhaar/pytron/internal/app"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/config"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func newTestDeps(t *testing.T) ToolDependencies {
	t.Helper()

	cfg := &config.Config{
		AppEnv:   "test",
		StoreURL: "memory",
		TimeZone: "UTC",
	}
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	c, err := internalApp.NewContainer(context.Background(), cfg, observability.DiscardLogger(),
		internalApp.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return ToolDependencies{App: cli.NewApp(c)}
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools: true,
		},
	})

	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: &cli.App{}}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	for _, want := range []string{"log.set", "log.day", "dashboard.get", "task.add", "goal.create", "badge.list", "pomodoro.status"} {
		assert.True(t, names[want], "%s tool should be registered", want)
	}
}

func TestRegisterCLITools_RequiresApp(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{Name: "test", Version: "1.0.0"})

	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
	assert.Error(t, RegisterCLITools(srv, ToolDependencies{}))
}

func TestTools_WithoutServices(t *testing.T) {
	deps := ToolDependencies{App: &cli.App{}}
	ctx := context.Background()

	_, err := logSet(ctx, deps, logSetInput{Hour: 9, Category: "REST"})
	assert.ErrorIs(t, err, errNoStorage)
	_, err = dashboard(ctx, deps)
	assert.ErrorIs(t, err, errNoStorage)
	_, err = taskList(deps, taskListInput{})
	assert.ErrorIs(t, err, errNoStorage)
	_, err = pomodoroState(deps)
	assert.ErrorIs(t, err, errNoStorage)
}

func TestLogTools(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	res, err := logSet(ctx, deps, logSetInput{Hour: 9, Category: "deep-work", Note: "spec"})
	require.NoError(t, err)
	assert.Equal(t, tracking.DateKey("2026-10-14"), res.Date)
	assert.Equal(t, tracking.CategoryDeepWork, res.Entry.Category)

	_, err = logSet(ctx, deps, logSetInput{Hour: 9, Category: "gaming"})
	assert.ErrorIs(t, err, tracking.ErrInvalidCategory)

	_, err = logSet(ctx, deps, logSetInput{Hour: 9, Category: "REST", Date: "14/10/2026"})
	assert.ErrorIs(t, err, tracking.ErrInvalidDateKey)

	day, err := logDay(ctx, deps, logDayInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, day.Stats.DeepWork)
	assert.Equal(t, "spec", day.Entries[9].Note)

	d, err := dashboard(ctx, deps)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Today.DeepWork)

	_, err = logClear(ctx, deps, logClearInput{Hour: 9})
	require.NoError(t, err)
	day, err = logDay(ctx, deps, logDayInput{Date: "2026-10-14"})
	require.NoError(t, err)
	assert.Empty(t, day.Entries)

	r, err := analyticsRange(ctx, deps, analyticsRangeInput{})
	require.NoError(t, err)
	assert.Len(t, r.Days, 7)
}

func TestTaskTools(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	task, err := taskAdd(ctx, deps, taskAddInput{Text: "Review PR", Priority: "low", Tag: "work"})
	require.NoError(t, err)
	assert.Equal(t, tracking.PriorityLow, task.Priority)

	_, err = taskAdd(ctx, deps, taskAddInput{Text: ""})
	assert.Error(t, err)

	_, err = taskAdd(ctx, deps, taskAddInput{Text: "x", DueTime: "25:00"})
	assert.ErrorIs(t, err, tracking.ErrInvalidDueTime)

	_, err = deps.App.Tracking.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	all, err := taskList(deps, taskListInput{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	pending, err := taskList(deps, taskListInput{Pending: true})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestGoalTools(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	view, err := goalCreate(ctx, deps, goalCreateInput{Title: "Read", Type: "custom", Target: 12, Deadline: "2026-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Read", view.Title)
	require.NotNil(t, view.Deadline)
	assert.Equal(t, tracking.DateKey("2026-12-31"), *view.Deadline)

	_, err = goalCreate(ctx, deps, goalCreateInput{Title: "Read", Type: "custom", Target: 12, Deadline: "soon"})
	assert.ErrorIs(t, err, tracking.ErrInvalidDateKey)

	badges, err := badgeList(ctx, deps)
	require.NoError(t, err)
	assert.Equal(t, len(badges.Badges), badges.Summary.Total)
}

func TestPomodoroTools(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	status, err := pomodoroState(deps)
	require.NoError(t, err)
	assert.False(t, status.State.IsRunning)

	status, err = pomodoroAction(ctx, deps, "start")
	require.NoError(t, err)
	assert.True(t, status.State.IsRunning)

	status, err = pomodoroAction(ctx, deps, "pause")
	require.NoError(t, err)
	assert.False(t, status.State.IsRunning)
	assert.True(t, status.State.IsPaused)
}
