package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

func TestCalculateStreak(t *testing.T) {
	settings := tracking.Settings{TargetHours: 2, StreakThreshold: 100}

	t.Run("counts six days up to a gap", func(t *testing.T) {
		log := tracking.NewLogStore()
		for i := 0; i <= 5; i++ {
			fill(log, key(i), tracking.CategoryDeepWork, 9, 2)
		}
		fill(log, key(7), tracking.CategoryDeepWork, 9, 2)

		assert.Equal(t, 6, CalculateStreak(log, settings, wednesday))
	})

	t.Run("no data", func(t *testing.T) {
		assert.Equal(t, 0, CalculateStreak(tracking.NewLogStore(), settings, wednesday))
	})

	t.Run("only today below threshold", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryDeepWork, 9, 1)

		assert.Equal(t, 0, CalculateStreak(log, settings, wednesday))
	})

	t.Run("empty today keeps the streak", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(1), tracking.CategoryDeepWork, 9, 2)
		fill(log, key(2), tracking.CategoryDeepWork, 9, 2)

		assert.Equal(t, 2, CalculateStreak(log, settings, wednesday))
	})

	t.Run("unfinished today keeps the streak", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryShallow, 9, 4)
		fill(log, key(1), tracking.CategoryDeepWork, 9, 2)

		assert.Equal(t, 1, CalculateStreak(log, settings, wednesday))
	})

	t.Run("earlier day below threshold ends the streak", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryDeepWork, 9, 2)
		fill(log, key(1), tracking.CategoryDeepWork, 9, 1)
		fill(log, key(2), tracking.CategoryDeepWork, 9, 2)

		assert.Equal(t, 1, CalculateStreak(log, settings, wednesday))
	})

	t.Run("registered but empty day counts as missing", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryDeepWork, 9, 2)
		log.DayLog(key(1))
		fill(log, key(2), tracking.CategoryDeepWork, 9, 2)

		assert.Equal(t, 1, CalculateStreak(log, settings, wednesday))
	})

	t.Run("fractional requirement rounds nothing", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryDeepWork, 9, 6)

		// 8 * 0.8 = 6.4 hours required.
		assert.Equal(t, 0, CalculateStreak(log, tracking.DefaultSettings(), wednesday))
		fill(log, key(0), tracking.CategoryDeepWork, 15, 1)
		assert.Equal(t, 1, CalculateStreak(log, tracking.DefaultSettings(), wednesday))
	})

	t.Run("zero threshold counts any logged day", func(t *testing.T) {
		log := tracking.NewLogStore()
		fill(log, key(0), tracking.CategoryRest, 9, 1)
		fill(log, key(1), tracking.CategorySleep, 0, 1)

		assert.Equal(t, 2, CalculateStreak(log, tracking.Settings{TargetHours: 8}, wednesday))
	})
}
