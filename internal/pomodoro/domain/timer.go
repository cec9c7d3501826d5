// Package domain models the pomodoro countdown as a state machine:
// idle → running ⇄ paused, alternating work and break phases.
package domain

import (
	"errors"
	"time"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

var (
	ErrInvalidWorkDuration      = errors.New("work duration must be between 1 and 60 minutes")
	ErrInvalidBreakDuration     = errors.New("break duration must be between 1 and 30 minutes")
	ErrInvalidLongBreakDuration = errors.New("long break duration must be between 1 and 60 minutes")
	ErrInvalidSessionCount      = errors.New("sessions until long break must be at least 1")
)

// Session records one finished work session.
type Session struct {
	Timestamp time.Time `json:"timestamp"`
	// Duration is in minutes.
	Duration int `json:"duration"`
}

// State is the persisted timer. Durations are in minutes, TimeRemaining in
// seconds.
type State struct {
	WorkDuration           int       `json:"workDuration"`
	BreakDuration          int       `json:"breakDuration"`
	LongBreakDuration      int       `json:"longBreakDuration"`
	SessionsUntilLongBreak int       `json:"sessionsUntilLongBreak"`
	CurrentSession         int       `json:"currentSession"`
	IsRunning              bool      `json:"isRunning"`
	IsPaused               bool      `json:"isPaused"`
	IsBreak                bool      `json:"isBreak"`
	TimeRemaining          int       `json:"timeRemaining"`
	TotalWorkSessions      int       `json:"totalWorkSessions"`
	SessionsToday          []Session `json:"sessionsToday"`
	SoundEnabled           bool      `json:"soundEnabled"`
}

// DefaultState is 25 minutes of work, 5 minute breaks and a 15 minute
// break after every fourth session.
func DefaultState() State {
	return State{
		WorkDuration:           25,
		BreakDuration:          5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
		TimeRemaining:          25 * 60,
		SessionsToday:          []Session{},
		SoundEnabled:           true,
	}
}

// Status is the timer's run state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Status derives the run state from the flags.
func (s State) Status() Status {
	switch {
	case s.IsRunning:
		return StatusRunning
	case s.IsPaused:
		return StatusPaused
	default:
		return StatusIdle
	}
}

// Start runs the countdown from where it stands.
func (s *State) Start() {
	s.IsRunning = true
	s.IsPaused = false
}

// Pause stops the countdown without touching the remaining time.
func (s *State) Pause() {
	s.IsRunning = false
	s.IsPaused = true
}

// Reset returns to an idle work phase with a full work duration.
func (s *State) Reset() {
	s.IsRunning = false
	s.IsPaused = false
	s.IsBreak = false
	s.TimeRemaining = s.WorkDuration * 60
}

// Recover is applied after loading: a timer cannot keep running across a
// process restart, so a running timer comes back paused.
func (s *State) Recover() {
	if s.IsRunning {
		s.Pause()
	}
	if s.SessionsToday == nil {
		s.SessionsToday = []Session{}
	}
}

// Completion describes a finished phase.
type Completion struct {
	// WorkDone is true when a work phase finished and false for a break.
	WorkDone  bool
	LongBreak bool
	Session   Session
}

// Tick advances a running timer by one second. When the countdown reaches
// zero the phase completes and the completion is returned.
func (s *State) Tick(now time.Time) (Completion, bool) {
	if !s.IsRunning {
		return Completion{}, false
	}
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining > 0 {
		return Completion{}, false
	}
	return s.Complete(now), true
}

// Complete finishes the current phase. A finished work phase counts a
// session and switches to a break, long after every
// SessionsUntilLongBreak sessions. A finished break switches back to work.
// Either way the timer ends paused.
func (s *State) Complete(now time.Time) Completion {
	var c Completion
	if !s.IsBreak {
		s.CurrentSession++
		s.TotalWorkSessions++
		c.WorkDone = true
		c.Session = Session{Timestamp: now, Duration: s.WorkDuration}
		s.SessionsToday = append(s.SessionsToday, c.Session)

		c.LongBreak = s.SessionsUntilLongBreak > 0 && s.CurrentSession%s.SessionsUntilLongBreak == 0
		if c.LongBreak {
			s.TimeRemaining = s.LongBreakDuration * 60
		} else {
			s.TimeRemaining = s.BreakDuration * 60
		}
		s.IsBreak = true
	} else {
		s.TimeRemaining = s.WorkDuration * 60
		s.IsBreak = false
	}
	s.Pause()
	return c
}

// PhaseSeconds is the full length of the current phase.
func (s State) PhaseSeconds() int {
	if !s.IsBreak {
		return s.WorkDuration * 60
	}
	if s.SessionsUntilLongBreak > 0 && s.CurrentSession%s.SessionsUntilLongBreak == 0 {
		return s.LongBreakDuration * 60
	}
	return s.BreakDuration * 60
}

// Config changes timer lengths. Nil fields are left alone.
type Config struct {
	WorkDuration      *int
	BreakDuration     *int
	LongBreakDuration *int
	SessionsPerCycle  *int
	SoundEnabled      *bool
}

// Configure validates and applies cfg, then resets the timer.
func (s *State) Configure(cfg Config) error {
	next := *s
	if cfg.WorkDuration != nil {
		if *cfg.WorkDuration < 1 || *cfg.WorkDuration > 60 {
			return ErrInvalidWorkDuration
		}
		next.WorkDuration = *cfg.WorkDuration
	}
	if cfg.BreakDuration != nil {
		if *cfg.BreakDuration < 1 || *cfg.BreakDuration > 30 {
			return ErrInvalidBreakDuration
		}
		next.BreakDuration = *cfg.BreakDuration
	}
	if cfg.LongBreakDuration != nil {
		if *cfg.LongBreakDuration < 1 || *cfg.LongBreakDuration > 60 {
			return ErrInvalidLongBreakDuration
		}
		next.LongBreakDuration = *cfg.LongBreakDuration
	}
	if cfg.SessionsPerCycle != nil {
		if *cfg.SessionsPerCycle < 1 {
			return ErrInvalidSessionCount
		}
		next.SessionsUntilLongBreak = *cfg.SessionsPerCycle
	}
	if cfg.SoundEnabled != nil {
		next.SoundEnabled = *cfg.SoundEnabled
	}
	next.Reset()
	*s = next
	return nil
}

// Stats summarizes one day's sessions.
type Stats struct {
	SessionsCompleted int `json:"sessionsCompleted"`
	TotalMinutes      int `json:"totalMinutes"`
}

// StatsFor counts the sessions whose timestamp falls on day in loc.
func (s State) StatsFor(day tracking.DateKey, loc *time.Location) Stats {
	var st Stats
	for _, session := range s.SessionsToday {
		if tracking.DateKeyOf(session.Timestamp.In(loc)) != day {
			continue
		}
		st.SessionsCompleted++
		st.TotalMinutes += session.Duration
	}
	return st
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.SessionsToday = append([]Session{}, s.SessionsToday...)
	return s
}
