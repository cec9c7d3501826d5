package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

type staticSource struct {
	state tracking.State
	now   time.Time
}

func (s staticSource) Snapshot() tracking.State { return s.state.Clone() }
func (s staticSource) Now() time.Time           { return s.now }

func newSource(t *testing.T) staticSource {
	t.Helper()
	state := tracking.NewState()
	for h := 9; h < 15; h++ {
		require.NoError(t, state.Log.SetHour("2026-10-14", h, tracking.LogEntry{Category: tracking.CategoryDeepWork}))
	}
	require.NoError(t, state.Log.SetHour("2026-10-13", 9, tracking.LogEntry{Category: tracking.CategoryDistraction}))
	return staticSource{state: state, now: time.Date(2026, time.October, 14, 18, 0, 0, 0, time.UTC)}
}

func TestService_Range(t *testing.T) {
	svc := NewService(newSource(t))

	t.Run("defaults to a week", func(t *testing.T) {
		r, err := svc.Range(context.Background(), 0)
		require.NoError(t, err)

		assert.Len(t, r.Days, 7)
		assert.Equal(t, 6, r.TotalDeepWork)
		assert.Equal(t, 50, r.AvgEfficiency)
		assert.Equal(t, 85, r.ProductivityScore)
		assert.NotEmpty(t, r.Insights)
	})

	t.Run("month", func(t *testing.T) {
		r, err := svc.Range(context.Background(), 30)
		require.NoError(t, err)
		assert.Len(t, r.Days, 30)
	})

	t.Run("rejects out of range windows", func(t *testing.T) {
		_, err := svc.Range(context.Background(), -1)
		assert.ErrorIs(t, err, ErrInvalidWindow)
		_, err = svc.Range(context.Background(), 366)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Range(ctx, 7)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_Day(t *testing.T) {
	svc := NewService(newSource(t))

	today, err := svc.Day(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, tracking.DateKey("2026-10-14"), today.Stats.Date)
	assert.Len(t, today.Entries, 6)
	assert.Equal(t, 100, today.Stats.Efficiency)

	empty, err := svc.Day(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.NotNil(t, empty.Entries)
	assert.Equal(t, 0, empty.Stats.Logged)

	_, err = svc.Day(context.Background(), "2026-13-01")
	assert.ErrorIs(t, err, tracking.ErrInvalidDateKey)
}

func TestService_DashboardAndStreak(t *testing.T) {
	svc := NewService(newSource(t))

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, d.Today.DeepWork)
	assert.Equal(t, 75, d.TargetProgress)

	// Default settings need 6.4 hours; today has 6, yesterday failed.
	streak, err := svc.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
	assert.Equal(t, 0, d.Streak)
}
