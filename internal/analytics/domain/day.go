// Package domain derives metrics from the activity log: daily efficiency,
// range histograms, streaks, productivity score and insights. Every function
// is pure over a state snapshot and a clock reading.
package domain

import (
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// DayStats summarizes one day's log.
type DayStats struct {
	Date tracking.DateKey `json:"date"`
	// Logged counts every entry, sleep included.
	Logged int `json:"logged"`
	// Denominator counts the entries that take part in efficiency.
	Denominator int                       `json:"denominator"`
	Points      int                       `json:"points"`
	Efficiency  int                       `json:"efficiency"`
	DeepWork    int                       `json:"deepWork"`
	Shallow     int                       `json:"shallow"`
	Noted       int                       `json:"noted"`
	Counts      map[tracking.Category]int `json:"counts"`
}

// SummarizeDay scores a day. Efficiency is the mean point value over
// non-sleep hours, floored at zero; a day without such hours scores 0.
func SummarizeDay(key tracking.DateKey, day tracking.DayLog) DayStats {
	stats := DayStats{
		Date:   key,
		Counts: make(map[tracking.Category]int, len(tracking.Categories())),
	}
	for _, c := range tracking.Categories() {
		stats.Counts[c] = 0
	}

	for _, entry := range day {
		c := entry.Category
		stats.Logged++
		stats.Counts[c]++
		stats.Points += c.Points()
		if c.CountsTowardEfficiency() {
			stats.Denominator++
		}
		if entry.Note != "" {
			stats.Noted++
		}
		switch c {
		case tracking.CategoryDeepWork:
			stats.DeepWork++
		case tracking.CategoryShallow:
			stats.Shallow++
		}
	}

	stats.Efficiency = Efficiency(stats.Points, stats.Denominator)
	return stats
}

// Efficiency is round(max(0, points/denominator)), or 0 without data.
func Efficiency(points, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	e := round(float64(points) / float64(denominator))
	if e < 0 {
		return 0
	}
	return e
}
