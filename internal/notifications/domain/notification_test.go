package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

func stateWith(t *testing.T, entries map[int][]tracking.Category) tracking.State {
	t.Helper()
	s := tracking.NewState()
	s.Settings = tracking.Settings{TargetHours: 1, StreakThreshold: 100}
	today := tracking.DateKeyOf(at(12, 0))
	for daysAgo, cats := range entries {
		for h, c := range cats {
			require.NoError(t, s.Log.SetHour(today.AddDays(-daysAgo), 9+h, tracking.LogEntry{Category: c}))
		}
	}
	return s
}

func TestDailyReminder(t *testing.T) {
	empty := stateWith(t, nil)
	assert.Equal(t, "Time to log your hours for today!", DailyReminder(empty, at(18, 0)).Body)

	logged := stateWith(t, map[int][]tracking.Category{0: {tracking.CategoryDeepWork, tracking.CategoryShallow, tracking.CategorySleep}})
	n := DailyReminder(logged, at(18, 0))
	assert.Equal(t, "You've logged 3 hours today. Keep it up!", n.Body)
	assert.Equal(t, KindDailyReminder, n.Kind)
}

func TestCheckDeadlines(t *testing.T) {
	tasks := tracking.TaskList{
		{ID: "due", Text: "Write report", DueTime: "15:30"},
		{ID: "late", Text: "Call bank", DueTime: "14:55"},
		{ID: "done", Text: "Lunch", DueTime: "15:30", Completed: true},
		{ID: "nodue", Text: "Someday"},
		{ID: "notified", Text: "Pay rent", DueTime: "10:00", NotifiedOverdue: true},
		{ID: "barely", Text: "Stretch", DueTime: "14:57"},
	}

	check := CheckDeadlines(tasks, at(15, 0))
	require.Len(t, check.Notifications, 2)
	assert.Equal(t, KindTaskDue, check.Notifications[0].Kind)
	assert.Equal(t, `"Write report" is due in 30 minutes!`, check.Notifications[0].Body)
	assert.Equal(t, KindTaskOverdue, check.Notifications[1].Kind)
	assert.Equal(t, "late", check.Notifications[1].TaskID)
	assert.Equal(t, []string{"late"}, check.Overdue)
}

func TestCheckDeadlines_PartialMinutes(t *testing.T) {
	tasks := tracking.TaskList{{ID: "a", Text: "A", DueTime: "15:30"}}

	// 29m30s before is still inside minute 29.
	check := CheckDeadlines(tasks, at(15, 0).Add(30*time.Second))
	assert.Empty(t, check.Notifications)

	check = CheckDeadlines(tasks, at(15, 0).Add(-30*time.Second))
	assert.Len(t, check.Notifications, 1)
}

func TestStreakRisk(t *testing.T) {
	evening := at(20, 0)

	_, ok := StreakRisk(stateWith(t, nil), evening)
	assert.False(t, ok, "no streak to lose")

	risky := stateWith(t, map[int][]tracking.Category{1: {tracking.CategoryDeepWork}, 2: {tracking.CategoryDeepWork}})
	n, ok := StreakRisk(risky, evening)
	require.True(t, ok)
	assert.Equal(t, KindStreakRisk, n.Kind)

	safe := stateWith(t, map[int][]tracking.Category{0: {tracking.CategoryDeepWork}, 1: {tracking.CategoryDeepWork}})
	_, ok = StreakRisk(safe, evening)
	assert.False(t, ok, "deep work already logged today")
}

func TestWeeklySummary(t *testing.T) {
	s := stateWith(t, map[int][]tracking.Category{
		0: {tracking.CategoryDeepWork, tracking.CategoryDeepWork},
		1: {tracking.CategoryDeepWork, tracking.CategoryDistraction},
	})
	n := WeeklySummary(s, at(19, 0))
	assert.Equal(t, KindWeeklySummary, n.Kind)
	assert.Contains(t, n.Body, "3 deep work hours")
	assert.Contains(t, n.Body, "2 day streak")
}
