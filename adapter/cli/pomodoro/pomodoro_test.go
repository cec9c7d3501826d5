package pomodoro

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	internalApp "github.com/felixgeelhaar/pytron/internal/app"
	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
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

func TestPhaseName(t *testing.T) {
	tests := []struct {
		name  string
		state pomodoro.State
		want  string
	}{
		{"work", pomodoro.State{SessionsUntilLongBreak: 4, CurrentSession: 1}, "work"},
		{"short break", pomodoro.State{IsBreak: true, SessionsUntilLongBreak: 4, CurrentSession: 2}, "break"},
		{"long break", pomodoro.State{IsBreak: true, SessionsUntilLongBreak: 4, CurrentSession: 4}, "long break"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phaseName(tt.state))
		})
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "25:00", clock(1500))
	assert.Equal(t, "00:59", clock(59))
	assert.Equal(t, "04:05", clock(245))
}

func TestPomodoroCommands(t *testing.T) {
	app := setupTestApp(t)

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "work, 25:00 remaining")

	out, err = run(t, "config", "--work", "50", "--break", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Timer configured.")
	assert.Contains(t, out, "50 min work, 10 min break")
	assert.Equal(t, 50, app.Pomodoro.State().WorkDuration)
	assert.Equal(t, 3000, app.Pomodoro.State().TimeRemaining)

	out, err = run(t, "pause")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused with 50:00 remaining.")
	assert.True(t, app.Pomodoro.State().IsPaused)

	out, err = run(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Timer reset.")
	assert.False(t, app.Pomodoro.State().IsPaused)

	out, err = run(t, "skip")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped to break (10:00).")
	assert.True(t, app.Pomodoro.State().IsBreak)
}
