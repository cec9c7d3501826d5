package domain

import (
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
)

const (
	dayAggregateType  = "Day"
	taskAggregateType = "Task"
)

// Routing keys for tracking events.
const (
	RoutingHourLogged    = "tracking.hour.logged"
	RoutingHourCleared   = "tracking.hour.cleared"
	RoutingTaskCreated   = "tracking.task.created"
	RoutingTaskCompleted = "tracking.task.completed"
	RoutingTaskDeleted   = "tracking.task.deleted"
)

// HourLogged is emitted when an hour is written.
type HourLogged struct {
	sharedDomain.BaseEvent
	Date     DateKey  `json:"date"`
	Hour     int      `json:"hour"`
	Category Category `json:"category"`
	Note     string   `json:"note,omitempty"`
	TaskID   string   `json:"task_id,omitempty"`
}

// NewHourLogged creates an HourLogged event.
func NewHourLogged(date DateKey, hour int, entry LogEntry, at time.Time) *HourLogged {
	return &HourLogged{
		BaseEvent: sharedDomain.NewBaseEvent(dayAggregateID(date, hour), dayAggregateType, RoutingHourLogged, at),
		Date:      date,
		Hour:      hour,
		Category:  entry.Category,
		Note:      entry.Note,
		TaskID:    entry.TaskID,
	}
}

// HourCleared is emitted when an hour's entry is removed.
type HourCleared struct {
	sharedDomain.BaseEvent
	Date DateKey `json:"date"`
	Hour int     `json:"hour"`
}

// NewHourCleared creates an HourCleared event.
func NewHourCleared(date DateKey, hour int, at time.Time) *HourCleared {
	return &HourCleared{
		BaseEvent: sharedDomain.NewBaseEvent(dayAggregateID(date, hour), dayAggregateType, RoutingHourCleared, at),
		Date:      date,
		Hour:      hour,
	}
}

// TaskCreated is emitted when a task is added.
type TaskCreated struct {
	sharedDomain.BaseEvent
	TaskID   string   `json:"task_id"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority,omitempty"`
	DueTime  string   `json:"due_time,omitempty"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t Task, at time.Time) *TaskCreated {
	return &TaskCreated{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID, taskAggregateType, RoutingTaskCreated, at),
		TaskID:    t.ID,
		Text:      t.Text,
		Priority:  t.Priority,
		DueTime:   t.DueTime,
	}
}

// TaskCompleted is emitted when a task is toggled to complete.
type TaskCompleted struct {
	sharedDomain.BaseEvent
	TaskID      string  `json:"task_id"`
	Text        string  `json:"text"`
	CompletedOn DateKey `json:"completed_on"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(t Task, at time.Time) *TaskCompleted {
	e := &TaskCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID, taskAggregateType, RoutingTaskCompleted, at),
		TaskID:    t.ID,
		Text:      t.Text,
	}
	if t.CompletedAt != nil {
		e.CompletedOn = *t.CompletedAt
	}
	return e
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	sharedDomain.BaseEvent
	TaskID string `json:"task_id"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(id string, at time.Time) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(id, taskAggregateType, RoutingTaskDeleted, at),
		TaskID:    id,
	}
}

func dayAggregateID(date DateKey, hour int) string {
	return string(date) + "T" + strconv.Itoa(hour)
}
