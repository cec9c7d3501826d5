package domain

import (
	"context"
	"fmt"
	"time"

	analytics "github.com/felixgeelhaar/pytron/internal/analytics/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Kind identifies what produced a notification.
type Kind string

const (
	KindDailyReminder Kind = "daily_reminder"
	KindTaskDue       Kind = "task_due"
	KindTaskOverdue   Kind = "task_overdue"
	KindStreakRisk    Kind = "streak_risk"
	KindWeeklySummary Kind = "weekly_summary"
	KindBadge         Kind = "badge_unlocked"
	KindGoal          Kind = "goal"
	KindPomodoro      Kind = "pomodoro"
	KindTest          Kind = "test"
)

// Notification is one message for the user.
type Notification struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
	// Tag groups notifications that replace each other, e.g. per task.
	Tag    string    `json:"tag"`
	TaskID string    `json:"taskId,omitempty"`
	SentAt time.Time `json:"sentAt"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Minutes before a due time at which the reminder fires, and minutes past
// it at which a task counts as overdue.
const (
	DueSoonMinutes = 30
	OverdueMinutes = 5
)

// Evening check and weekly summary times.
var (
	StreakCheckAt   = Clock{Hour: 20}
	WeeklySummaryAt = Clock{Hour: 19}
)

// DailyReminder builds the reminder from today's entry count.
func DailyReminder(state tracking.State, now time.Time) Notification {
	logged := len(state.Log[tracking.DateKeyOf(now)])
	body := "Time to log your hours for today!"
	if logged > 0 {
		body = fmt.Sprintf("You've logged %d hours today. Keep it up!", logged)
	}
	return Notification{Kind: KindDailyReminder, Title: "Daily Log Reminder", Body: body, Tag: "daily-reminder"}
}

// DeadlineCheck lists the deadline notifications due at now. Overdue lists
// the task ids whose overdue reminder was produced; the caller persists the
// flag once the reminder is delivered so it fires once.
type DeadlineCheck struct {
	Notifications []Notification
	Overdue       []string
}

// CheckDeadlines looks at every open task with a due time, read as a time
// of day today.
func CheckDeadlines(tasks tracking.TaskList, now time.Time) DeadlineCheck {
	var out DeadlineCheck
	for _, task := range tasks {
		if task.Completed || task.DueTime == "" {
			continue
		}
		c, err := ParseClock(task.DueTime)
		if err != nil {
			continue
		}
		due := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
		minutes := minutesUntil(now, due)

		switch {
		case minutes == DueSoonMinutes:
			out.Notifications = append(out.Notifications, Notification{
				Kind:   KindTaskDue,
				Title:  "Task Deadline Approaching",
				Body:   fmt.Sprintf("%q is due in %d minutes!", task.Text, DueSoonMinutes),
				Tag:    "task-" + task.ID,
				TaskID: task.ID,
			})
		case minutes <= -OverdueMinutes && !task.NotifiedOverdue:
			out.Notifications = append(out.Notifications, Notification{
				Kind:   KindTaskOverdue,
				Title:  "Task Overdue!",
				Body:   fmt.Sprintf("%q is now overdue!", task.Text),
				Tag:    "task-overdue-" + task.ID,
				TaskID: task.ID,
			})
			out.Overdue = append(out.Overdue, task.ID)
		}
	}
	return out
}

// minutesUntil floors toward negative infinity, so 30s late is -1.
func minutesUntil(now, due time.Time) int {
	d := due.Sub(now)
	m := int(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return m
}

// StreakRisk returns the evening alert when there is a streak to lose and
// nothing has been done today to keep it.
func StreakRisk(state tracking.State, now time.Time) (Notification, bool) {
	today := state.Log[tracking.DateKeyOf(now)]
	if today.Count(tracking.CategoryDeepWork) > 0 {
		return Notification{}, false
	}
	if analytics.CalculateStreak(state.Log, state.Settings, now) == 0 {
		return Notification{}, false
	}
	return Notification{
		Kind:  KindStreakRisk,
		Title: "Streak at Risk!",
		Body:  "You haven't logged any deep work today. Keep your streak alive!",
		Tag:   "streak-risk",
	}, true
}

// WeeklySummary reports the last seven days.
func WeeklySummary(state tracking.State, now time.Time) Notification {
	report := analytics.ProcessRange(state, now, analytics.WindowWeek)
	streak := analytics.CalculateStreak(state.Log, state.Settings, now)
	return Notification{
		Kind:  KindWeeklySummary,
		Title: "Weekly Summary",
		Body: fmt.Sprintf("This week: %d deep work hours, %d%% average efficiency, %d day streak.",
			report.TotalDeepWork, report.AvgEfficiency, streak),
		Tag: "weekly-summary",
	}
}

// Test is the notification sent on request to check delivery.
func Test() Notification {
	return Notification{Kind: KindTest, Title: "Test Notification", Body: "pytron notifications are working!", Tag: "test"}
}
