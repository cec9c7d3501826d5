package domain

import (
	"time"

	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Measurements are the whole-log values goals are tracked against.
type Measurements struct {
	TotalHours     int
	CategoryHours  map[tracking.Category]int
	Streak         int
	CompletedTasks int
}

// Measure derives measurements from the tracking state.
func Measure(state tracking.State, now time.Time) Measurements {
	m := Measurements{
		TotalHours:     state.Log.TotalEntries(),
		CategoryHours:  make(map[tracking.Category]int, len(tracking.Categories())),
		Streak:         analytics.CalculateStreak(state.Log, state.Settings, now),
		CompletedTasks: state.Tasks.CompletedCount(),
	}
	for _, c := range tracking.Categories() {
		m.CategoryHours[c] = state.Log.Count(c)
	}
	return m
}
