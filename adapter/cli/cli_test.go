package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/app"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/config"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:   "test",
		StoreURL: "memory",
		TimeZone: "UTC",
	}
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	c, err := app.NewContainer(context.Background(), cfg, observability.DiscardLogger(),
		app.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(c.Close)

	a := NewApp(c)
	SetApp(a)
	SetLogger(observability.DiscardLogger())
	t.Cleanup(func() { SetApp(nil) })
	return a
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	exportFormat, exportOutput, importFormat = "", "", ""
	analyticsDays = 7
	jsonOutput = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func logHours(t *testing.T, a *App, category tracking.Category, hours ...int) {
	t.Helper()
	for _, h := range hours {
		_, err := a.Tracking.LogHour(context.Background(), trackingApp.LogHourCommand{Hour: h, Category: category})
		require.NoError(t, err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pytron "+Version)

	out, err = execute(t, "", "version", "--json")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v["version"])
}

func TestHealthCommand(t *testing.T) {
	setupTestApp(t)

	out, err := execute(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok (memory)")
}

func TestDashboardCommand(t *testing.T) {
	a := setupTestApp(t)
	logHours(t, a, tracking.CategoryDeepWork, 6, 7, 8)
	logHours(t, a, tracking.CategoryDistraction, 9)

	out, err := execute(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged:      4/24 hours")
	assert.Contains(t, out, "Deep work:   3/")
	assert.Contains(t, out, "Wed  3 ###")

	out, err = execute(t, "", "today", "--json")
	require.NoError(t, err)
	var d struct {
		Today struct {
			DeepWork int `json:"deepWork"`
		} `json:"today"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 3, d.Today.DeepWork)
}

func TestAnalyticsCommand(t *testing.T) {
	a := setupTestApp(t)
	logHours(t, a, tracking.CategoryDeepWork, 8, 9)

	out, err := execute(t, "", "analytics", "--days", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 14 days")
	assert.Contains(t, out, "Deep work:       2 hours")

	_, err = execute(t, "", "analytics", "--days", "400")
	assert.Error(t, err)
}

func TestExportImportCommands(t *testing.T) {
	a := setupTestApp(t)
	logHours(t, a, tracking.CategoryExercise, 7)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	out, err := execute(t, "", "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "EXERCISE")

	require.NoError(t, a.Tracking.ClearHour(context.Background(), "", 7))
	assert.Empty(t, a.Tracking.Day("2026-10-14"))

	out, err = execute(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported backup")
	assert.Equal(t, tracking.CategoryExercise, a.Tracking.Day("2026-10-14")[7].Category)

	// Stdin without a format flag is read as JSON.
	_, err = execute(t, string(raw), "import", "-")
	assert.Error(t, err)

	out, err = execute(t, string(raw), "import", "-", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "days:")
}

func TestRequireApp(t *testing.T) {
	SetApp(nil)
	_, err := RequireApp()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = execute(t, "", "dashboard")
	assert.ErrorIs(t, err, ErrNotInitialized)
}
