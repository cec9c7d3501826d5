// Package domain holds notification settings and the reminder checks. The
// checks are pure functions of the tracking state and the clock; delivery
// and scheduling live elsewhere.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClock = errors.New("time must be formatted HH:MM")
	ErrDisabled     = errors.New("notifications are disabled")
	ErrQuietHours   = errors.New("quiet hours are active")
)

// Settings is the persisted notification configuration.
type Settings struct {
	Enabled           bool   `json:"enabled"`
	DailyReminder     bool   `json:"dailyReminderEnabled"`
	DailyReminderTime string `json:"dailyReminderTime"`
	TaskDeadlines     bool   `json:"taskDeadlinesEnabled"`
	StreakAlerts      bool   `json:"streakAlertsEnabled"`
	WeeklySummary     bool   `json:"weeklySummaryEnabled"`
	QuietHoursEnabled bool   `json:"quietHoursEnabled"`
	QuietHoursStart   string `json:"quietHoursStart"`
	QuietHoursEnd     string `json:"quietHoursEnd"`
}

// DefaultSettings has delivery off, every check on and quiet hours
// 22:00-08:00 configured but inactive.
func DefaultSettings() Settings {
	return Settings{
		Enabled:           false,
		DailyReminder:     true,
		DailyReminderTime: "18:00",
		TaskDeadlines:     true,
		StreakAlerts:      true,
		WeeklySummary:     true,
		QuietHoursEnabled: false,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "08:00",
	}
}

// Validate checks the clock fields.
func (s Settings) Validate() error {
	for _, v := range []string{s.DailyReminderTime, s.QuietHoursStart, s.QuietHoursEnd} {
		if _, err := ParseClock(v); err != nil {
			return err
		}
	}
	return nil
}

// IsQuiet reports whether now falls inside the quiet window. A window whose
// start is after its end wraps past midnight.
func (s Settings) IsQuiet(now time.Time) bool {
	if !s.QuietHoursEnabled {
		return false
	}
	start, err := ParseClock(s.QuietHoursStart)
	if err != nil {
		return false
	}
	end, err := ParseClock(s.QuietHoursEnd)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	from, to := start.Minutes(), end.Minutes()
	if from > to {
		return current >= from || current < to
	}
	return current >= from && current < to
}

// Update carries a partial settings change. Nil fields are left alone.
type Update struct {
	Enabled           *bool
	DailyReminder     *bool
	DailyReminderTime *string
	TaskDeadlines     *bool
	StreakAlerts      *bool
	WeeklySummary     *bool
	QuietHoursEnabled *bool
	QuietHoursStart   *string
	QuietHoursEnd     *string
}

// Apply merges u into s and validates the result.
func (u Update) Apply(s Settings) (Settings, error) {
	setBool(&s.Enabled, u.Enabled)
	setBool(&s.DailyReminder, u.DailyReminder)
	setBool(&s.TaskDeadlines, u.TaskDeadlines)
	setBool(&s.StreakAlerts, u.StreakAlerts)
	setBool(&s.WeeklySummary, u.WeeklySummary)
	setBool(&s.QuietHoursEnabled, u.QuietHoursEnabled)
	if u.DailyReminderTime != nil {
		s.DailyReminderTime = *u.DailyReminderTime
	}
	if u.QuietHoursStart != nil {
		s.QuietHoursStart = *u.QuietHoursStart
	}
	if u.QuietHoursEnd != nil {
		s.QuietHoursEnd = *u.QuietHoursEnd
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes is the offset from midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// NextDaily returns the next time the clock reads c, strictly after now.
func NextDaily(now time.Time, c Clock) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// NextWeekly returns the next occurrence of weekday at c, strictly after now.
func NextWeekly(now time.Time, weekday time.Weekday, c Clock) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	at := time.Date(now.Year(), now.Month(), now.Day()+days, c.Hour, c.Minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 7)
	}
	return at
}
