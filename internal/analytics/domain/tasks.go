package domain

import (
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// PriorityNone labels sessions whose task has no priority.
const PriorityNone = "NONE"

// TaskReport aggregates logged hours that reference a task.
type TaskReport struct {
	// Sessions counts hours per task id, split by category.
	Sessions map[string]map[tracking.Category]int `json:"sessions"`
	Priority map[string]int                       `json:"priority"`
	Tags     map[string]int                       `json:"tags"`
}

func newTaskReport() TaskReport {
	return TaskReport{
		Sessions: make(map[string]map[tracking.Category]int),
		Priority: make(map[string]int),
		Tags:     make(map[string]int),
	}
}

// add counts one entry. Priority falls back from the entry to the stored
// task to NONE; tags fall back from the entry to the stored task.
func (r TaskReport) add(entry tracking.LogEntry, tasks tracking.TaskList) {
	sessions, ok := r.Sessions[entry.TaskID]
	if !ok {
		sessions = make(map[tracking.Category]int)
		r.Sessions[entry.TaskID] = sessions
	}
	sessions[entry.Category]++

	task, found := tasks.Find(entry.TaskID)

	priority := string(entry.TaskPriority)
	if priority == "" && found {
		priority = string(task.Priority)
	}
	if priority == "" {
		priority = PriorityNone
	}
	r.Priority[priority]++

	tags := entry.TaskTags
	if len(tags) == 0 && found {
		tags = task.Tags()
	}
	for _, tag := range tags {
		r.Tags[tag]++
	}
}

// TotalSessions returns the hours logged against task id.
func (r TaskReport) TotalSessions(id string) int {
	n := 0
	for _, count := range r.Sessions[id] {
		n += count
	}
	return n
}
