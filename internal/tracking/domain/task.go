package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTaskText   = errors.New("task text cannot be empty")
	ErrInvalidDueTime  = errors.New("due time must be HH:MM")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDuration = errors.New("duration must be a whole number of minutes")
)

// Priority ranks a task. The empty value means unset.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ParsePriority accepts any case; empty input yields PriorityNone.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// IsValid checks if the priority is one of the known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

var (
	dueTimePattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	durationPattern = regexp.MustCompile(`^\d+$`)
)

// Task is a to-do item.
type Task struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Completed   bool     `json:"completed"`
	CompletedAt *DateKey `json:"completedAt"`
	DueTime     string   `json:"dueTime"`
	Priority    Priority `json:"priority"`
	Duration    string   `json:"duration"`
	Tag         string   `json:"tag"`
	// NotifiedOverdue is set once the overdue reminder has fired.
	NotifiedOverdue bool `json:"notifiedOverdue,omitempty"`
}

// Tags returns the task's tags as a list.
func (t Task) Tags() []string {
	if t.Tag == "" {
		return nil
	}
	return []string{t.Tag}
}

// TaskMeta holds the optional fields supplied on creation.
type TaskMeta struct {
	DueTime  string
	Priority Priority
	Duration string
	Tag      string
}

// Validate checks the optional fields.
func (m TaskMeta) Validate() error {
	if m.DueTime != "" && !dueTimePattern.MatchString(m.DueTime) {
		return ErrInvalidDueTime
	}
	if !m.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if m.Duration != "" && !durationPattern.MatchString(m.Duration) {
		return ErrInvalidDuration
	}
	return nil
}

// TaskList is the ordered task collection. Order is insertion order.
type TaskList []Task

// Add appends a new incomplete task.
func (l *TaskList) Add(id, text string, meta TaskMeta) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyTaskText
	}
	if err := meta.Validate(); err != nil {
		return Task{}, err
	}
	task := Task{
		ID:       id,
		Text:     text,
		DueTime:  meta.DueTime,
		Priority: meta.Priority,
		Duration: meta.Duration,
		Tag:      strings.TrimSpace(meta.Tag),
	}
	*l = append(*l, task)
	return task, nil
}

// Toggle flips completion. completedAt is set to today when the task
// becomes complete and cleared when it is reopened.
func (l TaskList) Toggle(id string, today DateKey) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	t := &l[i]
	t.Completed = !t.Completed
	if t.Completed {
		day := today
		t.CompletedAt = &day
	} else {
		t.CompletedAt = nil
	}
	return *t, nil
}

// Delete removes the task.
func (l *TaskList) Delete(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	return nil
}

// MarkOverdueNotified records that the overdue reminder was sent.
func (l TaskList) MarkOverdueNotified(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	l[i].NotifiedOverdue = true
	return nil
}

// Find returns the task by id.
func (l TaskList) Find(id string) (Task, bool) {
	i := l.index(id)
	if i < 0 {
		return Task{}, false
	}
	return l[i], true
}

// Sorted returns incomplete tasks first, keeping insertion order inside
// each group.
func (l TaskList) Sorted() []Task {
	out := make([]Task, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			out = append(out, t)
		}
	}
	for _, t := range l {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedCount returns the number of completed tasks.
func (l TaskList) CompletedCount() int {
	n := 0
	for _, t := range l {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletedOn returns the number of tasks completed on day.
func (l TaskList) CompletedOn(day DateKey) int {
	n := 0
	for _, t := range l {
		if t.Completed && t.CompletedAt != nil && *t.CompletedAt == day {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (l TaskList) Clone() TaskList {
	out := make(TaskList, len(l))
	for i, t := range l {
		if t.CompletedAt != nil {
			day := *t.CompletedAt
			t.CompletedAt = &day
		}
		out[i] = t
	}
	return out
}

func (l TaskList) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}
