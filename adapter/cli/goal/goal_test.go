package goal

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	internalApp "github.com/felixgeelhaar/pytron/internal/app"
	"github.com/felixgeelhaar/pytron/pkg/config"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func setupTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:   "test",
		StoreURL: "memory",
		TimeZone: "UTC",
	}
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	container, err := internalApp.NewContainer(context.Background(), cfg, observability.DiscardLogger(),
		internalApp.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return app
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli.SetJSONOutput(false)

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGoalCommands_Lifecycle(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	out, err := run(t, "create", "Read", "books", "--type", "custom", "--target", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal created:")
	assert.Contains(t, out, "Read books: 0/12 custom")

	views, err := app.Goals.List(ctx, goalsQueries.ListGoalsQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	id := views[0].ID

	out, err = run(t, "update", id, "--current", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal updated: Read books (50%)")

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Read books")
	assert.Contains(t, out, " 50%")

	out, err = run(t, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Goal deleted: "+id)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals.")
}

func TestGoalCommands_Errors(t *testing.T) {
	setupTestApp(t)

	_, err := run(t, "create", "Vibes", "--type", "mood", "--target", "1")
	assert.ErrorIs(t, err, goals.ErrInvalidGoalType)

	_, err = run(t, "delete", "missing")
	assert.ErrorIs(t, err, goals.ErrGoalNotFound)
}
