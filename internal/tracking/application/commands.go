package application

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// LogHourCommand writes one hour. An empty Date means today.
type LogHourCommand struct {
	Date     tracking.DateKey
	Hour     int
	Category tracking.Category
	Note     string
	TaskID   string
}

// LogHour writes the entry, replacing whatever the hour held. A linked task
// has its priority and tags copied onto the entry.
func (s *Service) LogHour(ctx context.Context, cmd LogHourCommand) (tracking.LogEntry, error) {
	var entry tracking.LogEntry
	err := s.mutate(ctx, docLog, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		date := s.dateOrToday(cmd.Date)
		e, err := s.buildEntry(st, cmd)
		if err != nil {
			return nil, err
		}
		if err := st.Log.SetHour(date, cmd.Hour, e); err != nil {
			return nil, err
		}
		entry = e
		return []sharedDomain.DomainEvent{tracking.NewHourLogged(date, cmd.Hour, e, s.now())}, nil
	})
	if err != nil {
		return tracking.LogEntry{}, err
	}
	s.metrics.Counter(observability.MetricHoursLogged, 1, observability.T("category", string(cmd.Category)))
	return entry, nil
}

// LogHourIfEmpty writes the entry only if the hour is free. It returns
// ErrHourOccupied otherwise.
func (s *Service) LogHourIfEmpty(ctx context.Context, cmd LogHourCommand) error {
	err := s.mutate(ctx, docLog, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		date := s.dateOrToday(cmd.Date)
		if st.Log[date].Has(cmd.Hour) {
			return nil, ErrHourOccupied
		}
		e, err := s.buildEntry(st, cmd)
		if err != nil {
			return nil, err
		}
		if err := st.Log.SetHour(date, cmd.Hour, e); err != nil {
			return nil, err
		}
		return []sharedDomain.DomainEvent{tracking.NewHourLogged(date, cmd.Hour, e, s.now())}, nil
	})
	if err != nil {
		return err
	}
	s.metrics.Counter(observability.MetricHoursLogged, 1, observability.T("category", string(cmd.Category)))
	return nil
}

// ClearHour removes the hour's entry. Clearing an empty hour is not an error.
func (s *Service) ClearHour(ctx context.Context, date tracking.DateKey, hour int) error {
	return s.mutate(ctx, docLog, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		date := s.dateOrToday(date)
		if !date.IsValid() {
			return nil, tracking.ErrInvalidDateKey
		}
		if err := st.Log.ClearHour(date, hour); err != nil {
			return nil, err
		}
		return []sharedDomain.DomainEvent{tracking.NewHourCleared(date, hour, s.now())}, nil
	})
}

// AddTaskCommand creates a task.
type AddTaskCommand struct {
	Text string
	Meta tracking.TaskMeta
}

// AddTask appends a new task.
func (s *Service) AddTask(ctx context.Context, cmd AddTaskCommand) (tracking.Task, error) {
	var task tracking.Task
	err := s.mutate(ctx, docTasks, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		t, err := st.Tasks.Add(s.ids.NewID(), cmd.Text, cmd.Meta)
		if err != nil {
			return nil, err
		}
		task = t
		return []sharedDomain.DomainEvent{tracking.NewTaskCreated(t, s.now())}, nil
	})
	if err != nil {
		return tracking.Task{}, err
	}
	s.metrics.Counter(observability.MetricTasksCreated, 1)
	return task, nil
}

// ToggleTask flips completion, stamping today's date on completion.
func (s *Service) ToggleTask(ctx context.Context, id string) (tracking.Task, error) {
	var task tracking.Task
	err := s.mutate(ctx, docTasks, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		t, err := st.Tasks.Toggle(id, s.Today())
		if err != nil {
			return nil, err
		}
		task = t
		if !t.Completed {
			return nil, nil
		}
		return []sharedDomain.DomainEvent{tracking.NewTaskCompleted(t, s.now())}, nil
	})
	if err != nil {
		return tracking.Task{}, err
	}
	if task.Completed {
		s.metrics.Counter(observability.MetricTasksCompleted, 1)
	}
	return task, nil
}

// DeleteTask removes a task. Log entries referencing it are kept.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, docTasks, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		if err := st.Tasks.Delete(id); err != nil {
			return nil, err
		}
		return []sharedDomain.DomainEvent{tracking.NewTaskDeleted(id, s.now())}, nil
	})
}

// MarkTaskOverdueNotified records that a task's overdue reminder fired.
func (s *Service) MarkTaskOverdueNotified(ctx context.Context, id string) error {
	return s.mutate(ctx, docTasks, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		return nil, st.Tasks.MarkOverdueNotified(id)
	})
}

// UpdateSettingsCommand changes the fields that are set.
type UpdateSettingsCommand struct {
	TargetHours     *int
	StreakThreshold *int
	UserName        *string
	AvatarStyle     *string
}

// UpdateSettings applies the command and validates the result.
func (s *Service) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (tracking.Settings, error) {
	var settings tracking.Settings
	err := s.mutate(ctx, docSettings, func(st *tracking.State) ([]sharedDomain.DomainEvent, error) {
		next := st.Settings
		if cmd.TargetHours != nil {
			next.TargetHours = *cmd.TargetHours
		}
		if cmd.StreakThreshold != nil {
			next.StreakThreshold = *cmd.StreakThreshold
		}
		if cmd.UserName != nil {
			next.UserName = *cmd.UserName
		}
		if cmd.AvatarStyle != nil {
			next.AvatarStyle = *cmd.AvatarStyle
		}
		if err := next.Validate(); err != nil {
			return nil, err
		}
		st.Settings = next
		settings = next
		return nil, nil
	})
	return settings, err
}

// ReplaceStateCommand overwrites whole documents. Nil fields are left alone.
type ReplaceStateCommand struct {
	Log      tracking.LogStore
	Tasks    tracking.TaskList
	Settings *tracking.Settings
}

// ReplaceState overwrites the documents present in the command, persists
// them and reloads the state from storage.
func (s *Service) ReplaceState(ctx context.Context, cmd ReplaceStateCommand) error {
	var docs docSet
	if cmd.Log != nil {
		docs |= docLog
	}
	if cmd.Tasks != nil {
		docs |= docTasks
	}
	if cmd.Settings != nil {
		if err := cmd.Settings.Validate(); err != nil {
			return err
		}
		docs |= docSettings
	}
	if docs == 0 {
		return nil
	}

	s.mu.Lock()
	next := s.state.Clone()
	if cmd.Log != nil {
		next.Log = cmd.Log.Clone()
	}
	if cmd.Tasks != nil {
		next.Tasks = cmd.Tasks.Clone()
	}
	if cmd.Settings != nil {
		next.Settings = *cmd.Settings
	}
	err := s.persist(ctx, next, docs)
	s.mu.Unlock()
	if err != nil {
		// Some documents may already be written; resync with storage.
		if rerr := s.Reload(ctx); rerr != nil {
			s.logger.ErrorContext(ctx, "failed to reload after partial import", "error", rerr)
		}
		return err
	}

	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.afterChange(ctx, s.Snapshot(), nil)
	return nil
}

func (s *Service) dateOrToday(date tracking.DateKey) tracking.DateKey {
	if date == "" {
		return s.Today()
	}
	return date
}

func (s *Service) buildEntry(st *tracking.State, cmd LogHourCommand) (tracking.LogEntry, error) {
	entry := tracking.LogEntry{Category: cmd.Category, Note: cmd.Note}
	if cmd.TaskID == "" {
		return entry, nil
	}
	task, ok := st.Tasks.Find(cmd.TaskID)
	if !ok {
		return tracking.LogEntry{}, tracking.ErrTaskNotFound
	}
	entry.TaskID = task.ID
	entry.TaskPriority = task.Priority
	entry.TaskTags = task.Tags()
	return entry, nil
}
