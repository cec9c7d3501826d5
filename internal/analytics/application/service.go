// Package application exposes read-only queries over the metrics engine.
package application

import (
	"context"
	"errors"
	"time"

	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// MaxWindow bounds the range query.
const MaxWindow = 365

// ErrInvalidWindow is returned for windows outside 1..MaxWindow.
var ErrInvalidWindow = errors.New("window must be between 1 and 365 days")

// StateSource provides state snapshots. The tracking service implements it.
type StateSource interface {
	Snapshot() tracking.State
	Now() time.Time
}

// Service answers dashboard and analytics queries.
type Service struct {
	source StateSource
}

// NewService creates a new analytics service.
func NewService(source StateSource) *Service {
	return &Service{source: source}
}

// RangeResult is the analytics view of a window.
type RangeResult struct {
	analytics.RangeReport
	ProductivityScore int                 `json:"productivityScore"`
	Insights          []analytics.Insight `json:"insights"`
}

// DayResult is one day's entries with its summary.
type DayResult struct {
	Stats   analytics.DayStats `json:"stats"`
	Entries tracking.DayLog    `json:"entries"`
}

// Dashboard returns today's dashboard.
func (s *Service) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.BuildDashboard(s.source.Snapshot(), s.source.Now()), nil
}

// Range aggregates the window of days ending today. Zero means a week.
func (s *Service) Range(ctx context.Context, days int) (RangeResult, error) {
	if err := ctx.Err(); err != nil {
		return RangeResult{}, err
	}
	if days == 0 {
		days = analytics.WindowWeek
	}
	if days < 1 || days > MaxWindow {
		return RangeResult{}, ErrInvalidWindow
	}

	report := analytics.ProcessRange(s.source.Snapshot(), s.source.Now(), days)
	insights := analytics.Insights(report)
	if insights == nil {
		insights = []analytics.Insight{}
	}
	return RangeResult{
		RangeReport:       report,
		ProductivityScore: analytics.ProductivityScore(report),
		Insights:          insights,
	}, nil
}

// Day returns the entries and summary for date. An empty date means today.
func (s *Service) Day(ctx context.Context, date tracking.DateKey) (DayResult, error) {
	if err := ctx.Err(); err != nil {
		return DayResult{}, err
	}
	if date == "" {
		date = tracking.DateKeyOf(s.source.Now())
	}
	if !date.IsValid() {
		return DayResult{}, tracking.ErrInvalidDateKey
	}
	state := s.source.Snapshot()
	entries := state.Log[date]
	if entries == nil {
		entries = tracking.DayLog{}
	}
	return DayResult{
		Stats:   analytics.SummarizeDay(date, entries),
		Entries: entries,
	}, nil
}

// Streak returns the current streak.
func (s *Service) Streak(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	state := s.source.Snapshot()
	return analytics.CalculateStreak(state.Log, state.Settings, s.source.Now()), nil
}
