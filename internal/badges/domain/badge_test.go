package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

var now = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func ids(badges []Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.ID
	}
	return out
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 13)

	counts := map[Group]int{}
	seen := map[string]bool{}
	for _, b := range c {
		counts[b.Group]++
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
		assert.Positive(t, b.Target)
	}
	assert.Equal(t, map[Group]int{GroupStreak: 3, GroupDeepWork: 3, GroupTasks: 3, GroupSpecial: 4}, counts)

	b, ok := FindBadge("perfect_week")
	require.True(t, ok)
	assert.Equal(t, RarityEpic, b.Rarity)

	_, ok = FindBadge("unknown")
	assert.False(t, ok)
}

func TestBadge_Progress(t *testing.T) {
	tests := []struct {
		id    string
		stats Stats
		want  int
	}{
		{"fire_starter", Stats{Streak: 3}, 43},
		{"hot_streak", Stats{Streak: 3}, 10},
		{"inferno", Stats{Streak: 150}, 100},
		{"focused", Stats{DeepWorkHours: 5}, 50},
		{"deep_diver", Stats{DeepWorkHours: 5}, 10},
		{"flow_master", Stats{DeepWorkHours: 5}, 5},
		{"starter", Stats{CompletedTasks: 1}, 10},
		{"achiever", Stats{CompletedTasks: 1}, 2},
		{"completionist", Stats{CompletedTasks: 1}, 1},
		{"early_bird", Stats{}, 0},
		{"night_owl", Stats{NightOwl: true}, 100},
		{"perfect_week", Stats{}, 0},
		{"century", Stats{TotalHours: 37}, 37},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			b, ok := FindBadge(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, b.Progress(tt.stats))
		})
	}
}

func TestComputeStats(t *testing.T) {
	state := tracking.NewState()
	state.Settings = tracking.Settings{TargetHours: 1, StreakThreshold: 100}
	today := tracking.DateKeyOf(now)
	for i := 0; i < 7; i++ {
		require.NoError(t, state.Log.SetHour(today.AddDays(-i), 10, tracking.LogEntry{Category: tracking.CategoryDeepWork}))
	}
	require.NoError(t, state.Log.SetHour(today, 5, tracking.LogEntry{Category: tracking.CategoryDeepWork}))
	require.NoError(t, state.Log.SetHour(today, 22, tracking.LogEntry{Category: tracking.CategoryShallow}))
	require.NoError(t, state.Log.SetHour(today, 23, tracking.LogEntry{Category: tracking.CategorySleep}))

	_, err := state.Tasks.Add("t1", "done", tracking.TaskMeta{})
	require.NoError(t, err)
	_, err = state.Tasks.Toggle("t1", today)
	require.NoError(t, err)

	stats := ComputeStats(state, now)

	assert.Equal(t, 7, stats.Streak)
	assert.Equal(t, 8, stats.DeepWorkHours)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 10, stats.TotalHours)
	assert.True(t, stats.EarlyBird)
	assert.False(t, stats.NightOwl, "only deep work counts")
	assert.True(t, stats.PerfectWeek)
}

func TestComputeStats_PerfectWeekNeedsEveryDay(t *testing.T) {
	state := tracking.NewState()
	today := tracking.DateKeyOf(now)
	for i := 0; i < 8; i++ {
		if i == 3 {
			continue
		}
		require.NoError(t, state.Log.SetHour(today.AddDays(-i), 10, tracking.LogEntry{Category: tracking.CategoryDeepWork}))
	}

	assert.False(t, ComputeStats(state, now).PerfectWeek)
}

func TestEvaluate(t *testing.T) {
	t.Run("unlocks in catalog order", func(t *testing.T) {
		var set UnlockedSet

		unlocked := Evaluate(&set, Stats{Streak: 8, DeepWorkHours: 12, NightOwl: true})

		assert.Equal(t, []string{"fire_starter", "focused", "night_owl"}, ids(unlocked))
		assert.Equal(t, UnlockedSet{"fire_starter", "focused", "night_owl"}, set)
	})

	t.Run("is idempotent", func(t *testing.T) {
		var set UnlockedSet
		stats := Stats{Streak: 8}

		Evaluate(&set, stats)
		again := Evaluate(&set, stats)

		assert.Empty(t, again)
		assert.Len(t, set, 1)
	})

	t.Run("never relocks", func(t *testing.T) {
		var set UnlockedSet
		Evaluate(&set, Stats{Streak: 7})

		unlocked := Evaluate(&set, Stats{Streak: 0})

		assert.Empty(t, unlocked)
		assert.True(t, set.Has("fire_starter"))

		views := Views(set, Stats{Streak: 0})
		assert.True(t, views[0].Unlocked)
		assert.Equal(t, 100, views[0].Progress)
	})
}

func TestUnlockedSet_Add(t *testing.T) {
	var set UnlockedSet

	assert.True(t, set.Add("century"))
	assert.False(t, set.Add("century"))
	assert.Equal(t, UnlockedSet{"century"}, set)
}
