package domain

import (
	"time"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Dashboard is the at-a-glance view of today.
type Dashboard struct {
	Today       DayStats `json:"today"`
	TargetHours int      `json:"targetHours"`
	// TargetProgress is today's deep work as a percentage of TargetHours,
	// capped at 100.
	TargetProgress  int `json:"targetProgress"`
	StreakThreshold int `json:"streakThreshold"`
	Streak          int `json:"streak"`
	// Week holds deep-work hours for the current week, Monday first.
	// Days after today are zero.
	Week                [7]int `json:"week"`
	TasksCompletedToday int    `json:"tasksCompletedToday"`
	TasksOpen           int    `json:"tasksOpen"`
	ProductivityScore   int    `json:"productivityScore"`
}

// BuildDashboard derives the dashboard for now's date.
func BuildDashboard(state tracking.State, now time.Time) Dashboard {
	today := tracking.DateKeyOf(now)
	stats := SummarizeDay(today, state.Log[today])

	d := Dashboard{
		Today:               stats,
		TargetHours:         state.Settings.TargetHours,
		StreakThreshold:     state.Settings.StreakThreshold,
		Streak:              CalculateStreak(state.Log, state.Settings, now),
		Week:                WeekToDate(state.Log, now),
		TasksCompletedToday: state.Tasks.CompletedOn(today),
		TasksOpen:           len(state.Tasks) - state.Tasks.CompletedCount(),
		ProductivityScore:   ProductivityScore(ProcessRange(state, now, WindowWeek)),
	}
	if d.TargetHours > 0 {
		d.TargetProgress = clamp(round(float64(stats.DeepWork)/float64(d.TargetHours)*100), 0, 100)
	}
	return d
}

// WeekToDate counts deep-work hours for each day of now's week, Monday to
// Sunday.
func WeekToDate(log tracking.LogStore, now time.Time) [7]int {
	var week [7]int
	today := tracking.DateKeyOf(now)
	monday := today.AddDays(-today.WeekdayIndex())
	for i := 0; i < 7; i++ {
		key := monday.AddDays(i)
		if key > today {
			break
		}
		week[i] = log[key].Count(tracking.CategoryDeepWork)
	}
	return week
}
