package domain

import (
	"time"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// maxStreakDays bounds the backward walk.
const maxStreakDays = 365

// CalculateStreak counts consecutive qualifying days ending today. A day
// qualifies when its deep-work hours reach targetHours*threshold/100.
//
// Today never breaks the streak: if it is empty or not yet qualifying the
// walk simply moves on to yesterday. Today still counts once it qualifies.
// Any earlier day that is empty or below the bar ends the streak.
func CalculateStreak(log tracking.LogStore, settings tracking.Settings, now time.Time) int {
	today := tracking.DateKeyOf(now)
	required := settings.RequiredHours()

	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		day, ok := log.Day(today.AddDays(-i))
		if !ok {
			if i == 0 {
				continue
			}
			break
		}

		if float64(day.Count(tracking.CategoryDeepWork)) >= required {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}
