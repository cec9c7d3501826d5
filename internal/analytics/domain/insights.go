package domain

import (
	"fmt"
	"strings"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// InsightKind identifies a derived signal.
type InsightKind string

const (
	InsightPeakHour         InsightKind = "peak_hour"
	InsightPeakDay          InsightKind = "peak_day"
	InsightExcellentFocus   InsightKind = "excellent_focus"
	InsightPerfectFocus     InsightKind = "perfect_focus"
	InsightDistractionAlert InsightKind = "distraction_alert"
	InsightImproving        InsightKind = "improving"
	InsightDeclining        InsightKind = "declining"
)

// trendWindow is the number of most recent days compared against the rest.
const trendWindow = 3

// trendMargin is how far the means must differ before a trend is reported.
const trendMargin = 5.0

// Insight is a short textual finding about a window.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
	// Hours or Weekdays list the tied peaks for the peak insights.
	Hours    []int `json:"hours,omitempty"`
	Weekdays []int `json:"weekdays,omitempty"`
}

// weekdayNames is indexed Monday=0.
var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayName returns the name for a Monday-based index.
func WeekdayName(i int) string {
	if i < 0 || i >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[i]
}

// Insights derives the textual signals for a report. Each signal is
// independent and omitted when it does not apply.
func Insights(r RangeReport) []Insight {
	var out []Insight

	if hours := peaks(r.HourlyTotals[:]); len(hours) > 0 {
		labels := make([]string, len(hours))
		for i, h := range hours {
			labels[i] = fmt.Sprintf("%02d:00", h)
		}
		out = append(out, Insight{
			Kind:    InsightPeakHour,
			Message: "Most active at " + strings.Join(labels, ", "),
			Hours:   hours,
		})
	}

	if days := peaks(r.WeekdayTotals[:]); len(days) > 0 {
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = WeekdayName(d)
		}
		out = append(out, Insight{
			Kind:     InsightPeakDay,
			Message:  "Most active on " + strings.Join(names, ", "),
			Weekdays: days,
		})
	}

	if in, ok := focusInsight(r); ok {
		out = append(out, in)
	}
	if in, ok := trendInsight(r.Efficiency); ok {
		out = append(out, in)
	}

	return out
}

// peaks returns every index tied for the maximum, or nil if the maximum is 0.
func peaks(totals []int) []int {
	top := 0
	for _, v := range totals {
		if v > top {
			top = v
		}
	}
	if top == 0 {
		return nil
	}
	var idx []int
	for i, v := range totals {
		if v == top {
			idx = append(idx, i)
		}
	}
	return idx
}

// focusInsight compares deep work against distraction. The rules are
// checked in order and at most one fires.
func focusInsight(r RangeReport) (Insight, bool) {
	deep := r.CategoryTotals[tracking.CategoryDeepWork]
	dist := r.CategoryTotals[tracking.CategoryDistraction]

	switch {
	case deep > 2*dist:
		return Insight{
			Kind:    InsightExcellentFocus,
			Message: fmt.Sprintf("Excellent focus: %d deep work hours against %d distracted", deep, dist),
		}, true
	case dist > deep:
		return Insight{
			Kind:    InsightDistractionAlert,
			Message: fmt.Sprintf("Distraction alert: %d distracted hours against %d deep work", dist, deep),
		}, true
	case deep > 0 && dist == 0:
		return Insight{Kind: InsightPerfectFocus, Message: "Perfect focus: no distractions logged"}, true
	}
	return Insight{}, false
}

// trendInsight compares the mean efficiency of the last three days with the
// mean of the days before them.
func trendInsight(efficiency []int) (Insight, bool) {
	if len(efficiency) <= trendWindow {
		return Insight{}, false
	}
	split := len(efficiency) - trendWindow
	earlier := mean(efficiency[:split])
	recent := mean(efficiency[split:])

	switch {
	case recent-earlier > trendMargin:
		return Insight{
			Kind:    InsightImproving,
			Message: fmt.Sprintf("Efficiency is improving: %d%% recently vs %d%% before", round(recent), round(earlier)),
		}, true
	case earlier-recent > trendMargin:
		return Insight{
			Kind:    InsightDeclining,
			Message: fmt.Sprintf("Efficiency is declining: %d%% recently vs %d%% before", round(recent), round(earlier)),
		}, true
	}
	return Insight{}, false
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
