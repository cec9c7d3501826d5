package domain

import (
	"time"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// wednesday is 2026-10-14 15:00 UTC, a Wednesday.
var wednesday = time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

func key(daysAgo int) tracking.DateKey {
	return tracking.DateKeyOf(wednesday).AddDays(-daysAgo)
}

// fill logs n consecutive hours of c starting at hour start.
func fill(log tracking.LogStore, k tracking.DateKey, c tracking.Category, start, n int) {
	for h := start; h < start+n; h++ {
		if err := log.SetHour(k, h, tracking.LogEntry{Category: c}); err != nil {
			panic(err)
		}
	}
}

func newState() tracking.State {
	s := tracking.NewState()
	s.Settings = tracking.Settings{TargetHours: 2, StreakThreshold: 100}
	return s
}
