package domain

import (
	"time"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Supported analytics windows.
const (
	WindowWeek  = 7
	WindowMonth = 30
)

// RangeReport aggregates a window of days ending today.
type RangeReport struct {
	Days   []tracking.DateKey `json:"days"`
	Labels []string           `json:"labels"`

	// Per-day sequences, oldest first.
	DeepWork   []int `json:"deepWork"`
	Shallow    []int `json:"shallow"`
	Efficiency []int `json:"efficiency"`

	CategoryTotals  map[tracking.Category]int   `json:"categoryTotals"`
	CategoryHistory map[tracking.Category][]int `json:"categoryHistory"`

	TotalDeepWork int `json:"totalDeepWork"`
	// AvgEfficiency averages only days that had non-sleep entries.
	AvgEfficiency int `json:"avgEfficiency"`
	// TotalLogs counts entries excluding sleep.
	TotalLogs int `json:"totalLogs"`

	// Raw activity totals, sleep included.
	HourlyTotals  [24]int `json:"hourlyTotals"`
	WeekdayTotals [7]int  `json:"weekdayTotals"`

	// Heatmap counts deep-work hours by [hour][weekday], Monday=0.
	Heatmap [24][7]int `json:"heatmap"`

	Tasks TaskReport `json:"tasks"`
}

// ProcessRange aggregates the days-long window ending at now's date.
func ProcessRange(state tracking.State, now time.Time, days int) RangeReport {
	keys := tracking.DateRange(now, days)

	report := RangeReport{
		Days:            keys,
		Labels:          make([]string, len(keys)),
		DeepWork:        make([]int, len(keys)),
		Shallow:         make([]int, len(keys)),
		Efficiency:      make([]int, len(keys)),
		CategoryTotals:  make(map[tracking.Category]int),
		CategoryHistory: make(map[tracking.Category][]int),
		Tasks:           newTaskReport(),
	}
	for _, c := range tracking.Categories() {
		report.CategoryTotals[c] = 0
		report.CategoryHistory[c] = make([]int, len(keys))
	}

	totalEfficiency := 0
	daysWithData := 0

	for i, key := range keys {
		report.Labels[i] = key.Label()
		day := state.Log[key]
		weekday := key.WeekdayIndex()

		for hour, entry := range day {
			c := entry.Category
			if c == tracking.CategoryDeepWork {
				report.Heatmap[hour][weekday]++
			}
			report.CategoryTotals[c]++
			report.CategoryHistory[c][i]++
			report.HourlyTotals[hour]++
			report.WeekdayTotals[weekday]++

			if entry.TaskID != "" {
				report.Tasks.add(entry, state.Tasks)
			}
		}

		stats := SummarizeDay(key, day)
		report.DeepWork[i] = stats.DeepWork
		report.Shallow[i] = stats.Shallow
		report.Efficiency[i] = stats.Efficiency
		report.TotalDeepWork += stats.DeepWork
		report.TotalLogs += stats.Denominator

		if stats.Denominator > 0 {
			totalEfficiency += stats.Efficiency
			daysWithData++
		}
	}

	if daysWithData > 0 {
		report.AvgEfficiency = round(float64(totalEfficiency) / float64(daysWithData))
	}

	return report
}
