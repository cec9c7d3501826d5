package domain

import (
	"time"

	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Deep-work windows for the time-of-day badges, [from, to).
const (
	earlyBirdFrom = 5
	earlyBirdTo   = 7
	nightOwlFrom  = 22
	nightOwlTo    = 24
)

// perfectWeekDays is the run of days that must all hold deep work.
const perfectWeekDays = 7

// Stats are the whole-log counters badges are measured against.
type Stats struct {
	Streak         int  `json:"streak"`
	DeepWorkHours  int  `json:"deepWorkHours"`
	CompletedTasks int  `json:"completedTasks"`
	TotalHours     int  `json:"totalHours"`
	EarlyBird      bool `json:"earlyBird"`
	NightOwl       bool `json:"nightOwl"`
	PerfectWeek    bool `json:"perfectWeek"`
}

// ComputeStats derives badge stats from the full state.
func ComputeStats(state tracking.State, now time.Time) Stats {
	stats := Stats{
		Streak:         analytics.CalculateStreak(state.Log, state.Settings, now),
		DeepWorkHours:  state.Log.Count(tracking.CategoryDeepWork),
		CompletedTasks: state.Tasks.CompletedCount(),
		TotalHours:     state.Log.TotalEntries(),
		PerfectWeek:    hasPerfectWeek(state.Log, now),
	}

	for _, day := range state.Log {
		for hour, entry := range day {
			if entry.Category != tracking.CategoryDeepWork {
				continue
			}
			if hour >= earlyBirdFrom && hour < earlyBirdTo {
				stats.EarlyBird = true
			}
			if hour >= nightOwlFrom && hour < nightOwlTo {
				stats.NightOwl = true
			}
		}
	}
	return stats
}

// Value returns the statistic for m. Yes/no metrics map to 0 or 1.
func (s Stats) Value(m Metric) float64 {
	switch m {
	case MetricStreak:
		return float64(s.Streak)
	case MetricDeepWorkHours:
		return float64(s.DeepWorkHours)
	case MetricCompletedTasks:
		return float64(s.CompletedTasks)
	case MetricTotalHours:
		return float64(s.TotalHours)
	case MetricEarlyBird:
		return boolValue(s.EarlyBird)
	case MetricNightOwl:
		return boolValue(s.NightOwl)
	case MetricPerfectWeek:
		return boolValue(s.PerfectWeek)
	}
	return 0
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// hasPerfectWeek requires at least seven registered days and deep work on
// each of the seven days ending today.
func hasPerfectWeek(log tracking.LogStore, now time.Time) bool {
	if len(log) < perfectWeekDays {
		return false
	}
	today := tracking.DateKeyOf(now)
	for i := 0; i < perfectWeekDays; i++ {
		if log[today.AddDays(-i)].Count(tracking.CategoryDeepWork) == 0 {
			return false
		}
	}
	return true
}
