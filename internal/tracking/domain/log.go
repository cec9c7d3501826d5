package domain

import (
	"errors"
	"sort"
)

// ErrInvalidHour is returned for hours outside 0..23.
var ErrInvalidHour = errors.New("hour must be between 0 and 23")

// LogEntry records how one hour was spent. The task fields link the hour to
// a task and snapshot its priority and tags at logging time.
type LogEntry struct {
	Category     Category `json:"category"`
	Note         string   `json:"note"`
	TaskID       string   `json:"taskId,omitempty"`
	TaskPriority Priority `json:"taskPriority,omitempty"`
	TaskTags     []string `json:"taskTags,omitempty"`
}

// DayLog maps hour of day to its entry.
type DayLog map[int]LogEntry

// Hours returns the logged hours in ascending order.
func (d DayLog) Hours() []int {
	hours := make([]int, 0, len(d))
	for h := range d {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// Count returns the number of hours logged as c.
func (d DayLog) Count(c Category) int {
	n := 0
	for _, e := range d {
		if e.Category == c {
			n++
		}
	}
	return n
}

// Has reports whether hour is logged.
func (d DayLog) Has(hour int) bool {
	_, ok := d[hour]
	return ok
}

// LogStore maps date keys to day logs.
type LogStore map[DateKey]DayLog

// NewLogStore returns an empty store.
func NewLogStore() LogStore {
	return make(LogStore)
}

// DayLog returns the day's log, registering an empty one if none exists.
func (s LogStore) DayLog(key DateKey) DayLog {
	day, ok := s[key]
	if !ok || day == nil {
		day = make(DayLog)
		s[key] = day
	}
	return day
}

// Day returns the day's log without registering it. ok is false when the
// day is missing or has no entries.
func (s LogStore) Day(key DateKey) (DayLog, bool) {
	day, ok := s[key]
	if !ok || len(day) == 0 {
		return nil, false
	}
	return day, true
}

// SetHour overwrites the entry for the hour. Last write wins.
func (s LogStore) SetHour(key DateKey, hour int, entry LogEntry) error {
	if !key.IsValid() {
		return ErrInvalidDateKey
	}
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}
	if !entry.Category.IsValid() {
		return ErrInvalidCategory
	}
	s.DayLog(key)[hour] = entry
	return nil
}

// ClearHour removes the entry for the hour, if any.
func (s LogStore) ClearHour(key DateKey, hour int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}
	if day, ok := s[key]; ok {
		delete(day, hour)
	}
	return nil
}

// Dates returns every registered key in ascending order.
func (s LogStore) Dates() []DateKey {
	keys := make([]DateKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Count returns the number of entries of category c across all days.
func (s LogStore) Count(c Category) int {
	n := 0
	for _, day := range s {
		n += day.Count(c)
	}
	return n
}

// TotalEntries returns the number of logged hours across all days.
func (s LogStore) TotalEntries() int {
	n := 0
	for _, day := range s {
		n += len(day)
	}
	return n
}

// Sanitize drops entries that could not have been written through SetHour
// and returns how many were removed.
func (s LogStore) Sanitize() int {
	removed := 0
	for key, day := range s {
		if !key.IsValid() {
			removed += len(day)
			delete(s, key)
			continue
		}
		for hour, e := range day {
			if hour < 0 || hour > 23 || !e.Category.IsValid() {
				delete(day, hour)
				removed++
			}
		}
	}
	return removed
}

// Clone returns a deep copy.
func (s LogStore) Clone() LogStore {
	out := make(LogStore, len(s))
	for key, day := range s {
		d := make(DayLog, len(day))
		for h, e := range day {
			if e.TaskTags != nil {
				e.TaskTags = append([]string(nil), e.TaskTags...)
			}
			d[h] = e
		}
		out[key] = d
	}
	return out
}
