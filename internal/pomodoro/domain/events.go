package domain

import (
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
)

const aggregateType = "Pomodoro"

// Routing keys for timer events.
const (
	RoutingSessionCompleted = "pomodoro.session.completed"
	RoutingBreakCompleted   = "pomodoro.break.completed"
)

// SessionCompleted is emitted when a work phase finishes.
type SessionCompleted struct {
	sharedDomain.BaseEvent
	Session           int  `json:"session"`
	TotalWorkSessions int  `json:"total_work_sessions"`
	DurationMinutes   int  `json:"duration_minutes"`
	LongBreak         bool `json:"long_break"`
}

// BreakCompleted is emitted when a break finishes.
type BreakCompleted struct {
	sharedDomain.BaseEvent
}

// NewCompletionEvent builds the event for a completed phase.
func NewCompletionEvent(s State, c Completion, at time.Time) sharedDomain.DomainEvent {
	id := strconv.Itoa(s.TotalWorkSessions)
	if !c.WorkDone {
		return &BreakCompleted{
			BaseEvent: sharedDomain.NewBaseEvent(id, aggregateType, RoutingBreakCompleted, at),
		}
	}
	return &SessionCompleted{
		BaseEvent:         sharedDomain.NewBaseEvent(id, aggregateType, RoutingSessionCompleted, at),
		Session:           s.CurrentSession,
		TotalWorkSessions: s.TotalWorkSessions,
		DurationMinutes:   c.Session.Duration,
		LongBreak:         c.LongBreak,
	}
}
