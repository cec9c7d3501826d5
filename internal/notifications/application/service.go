// Package application schedules the reminder checks and sends
// notifications, honoring the enabled switch and quiet hours.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// DefaultDeadlineInterval is how often task deadlines are checked.
const DefaultDeadlineInterval = time.Hour

// TrackingSource is the part of the tracking service the checks read and
// write.
type TrackingSource interface {
	Snapshot() tracking.State
	Now() time.Time
	MarkTaskOverdueNotified(ctx context.Context, id string) error
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Service owns the notification settings and the scheduled checks.
//
// mu serializes scheduling and check runs. settings is written only while
// holding both mu and settingsMu, so holders of either may read it. Send
// takes settingsMu alone, so events raised while a check runs can still be
// delivered.
type Service struct {
	mu         sync.Mutex
	settingsMu sync.RWMutex
	settings   domain.Settings
	timers     map[Check]func() bool
	generation uint64
	running    bool
	// base is the context scheduled callbacks run with.
	base context.Context

	repo     domain.Repository
	source   TrackingSource
	notifier domain.Notifier
	logger   *slog.Logger

	afterFunc        AfterFunc
	deadlineInterval time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Service) { s.afterFunc = f }
}

// WithDeadlineInterval overrides the deadline check period.
func WithDeadlineInterval(d time.Duration) Option {
	return func(s *Service) { s.deadlineInterval = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService loads the settings. Nothing is scheduled until Start.
func NewService(ctx context.Context, repo domain.Repository, source TrackingSource, notifier domain.Notifier, opts ...Option) (*Service, error) {
	s := &Service{
		repo:             repo,
		source:           source,
		notifier:         notifier,
		logger:           slog.Default(),
		afterFunc:        realAfterFunc,
		deadlineInterval: DefaultDeadlineInterval,
		base:             context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	settings, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	s.settings = settings
	return s, nil
}

// Settings returns the current settings.
func (s *Service) Settings() domain.Settings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

// UpdateSettings applies the change, persists it and reschedules every
// check from scratch.
func (s *Service) UpdateSettings(ctx context.Context, u domain.Update) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := u.Apply(s.settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to save notification settings: %w", err)
	}
	s.settingsMu.Lock()
	s.settings = next
	s.settingsMu.Unlock()

	if s.running {
		s.rescheduleLocked()
	}
	return next, nil
}

// Start schedules the enabled checks. Scheduled callbacks run with a
// context derived from ctx that is not cancelled with it.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = context.WithoutCancel(ctx)
	s.running = true
	s.rescheduleLocked()
}

// Stop cancels every scheduled check.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cancelLocked()
}

// Scheduled returns the number of pending timers.
func (s *Service) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Send delivers n unless notifications are disabled or quiet hours are on.
func (s *Service) Send(ctx context.Context, n domain.Notification) error {
	return s.deliver(ctx, s.Settings(), n)
}

// SendTest sends the test notification.
func (s *Service) SendTest(ctx context.Context) error {
	return s.Send(ctx, domain.Test())
}

// Check identifies one of the scheduled checks.
type Check string

const (
	CheckDailyReminder Check = "daily"
	CheckDeadlines     Check = "deadlines"
	CheckStreak        Check = "streak"
	CheckWeekly        Check = "weekly"
)

// Checks lists every check in run order.
func Checks() []Check {
	return []Check{CheckDailyReminder, CheckDeadlines, CheckStreak, CheckWeekly}
}

// Run performs one check now, regardless of its schedule, and returns the
// notifications it produced. Nothing runs while notifications are disabled
// and delivery honors quiet hours.
func (s *Service) Run(ctx context.Context, c Check) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runLocked(ctx, c)
}

func (s *Service) runLocked(ctx context.Context, c Check) ([]domain.Notification, error) {
	if !s.settings.Enabled {
		return nil, domain.ErrDisabled
	}
	state := s.source.Snapshot()
	now := s.source.Now()

	var notes []domain.Notification
	switch c {
	case CheckDailyReminder:
		notes = append(notes, domain.DailyReminder(state, now))
	case CheckDeadlines:
		if s.settings.IsQuiet(now) {
			return nil, nil
		}
		notes = domain.CheckDeadlines(state.Tasks, now).Notifications
	case CheckStreak:
		if n, ok := domain.StreakRisk(state, now); ok {
			notes = append(notes, n)
		}
	case CheckWeekly:
		notes = append(notes, domain.WeeklySummary(state, now))
	default:
		return nil, fmt.Errorf("unknown check %q", c)
	}

	// Every notification is attempted. An overdue reminder is marked only
	// once delivered, so a failed one fires again on the next check.
	var errs []error
	for _, n := range notes {
		if err := s.deliver(ctx, s.settings, n); err != nil {
			errs = append(errs, err)
			continue
		}
		if n.Kind == domain.KindTaskOverdue {
			if err := s.source.MarkTaskOverdueNotified(ctx, n.TaskID); err != nil {
				s.logger.WarnContext(ctx, "failed to mark task overdue", "task_id", n.TaskID, "error", err)
			}
		}
	}
	return notes, errors.Join(errs...)
}

func (s *Service) deliver(ctx context.Context, settings domain.Settings, n domain.Notification) error {
	if !settings.Enabled {
		return domain.ErrDisabled
	}
	now := s.source.Now()
	if settings.IsQuiet(now) {
		s.logger.DebugContext(ctx, "notification skipped in quiet hours", "title", n.Title)
		return domain.ErrQuietHours
	}
	n.SentAt = now
	if err := s.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func (s *Service) cancelLocked() {
	for _, stop := range s.timers {
		stop()
	}
	s.timers = make(map[Check]func() bool)
	s.generation++
}

// rescheduleLocked cancels every timer and schedules the enabled checks.
func (s *Service) rescheduleLocked() {
	s.cancelLocked()
	if !s.settings.Enabled {
		return
	}
	now := s.source.Now()
	gen := s.generation

	if s.settings.DailyReminder {
		if c, err := domain.ParseClock(s.settings.DailyReminderTime); err == nil {
			s.scheduleLocked(gen, now, CheckDailyReminder, func(now time.Time) time.Time { return domain.NextDaily(now, c) })
		}
	}
	if s.settings.TaskDeadlines {
		s.runScheduled(s.base, gen, CheckDeadlines)
		s.scheduleLocked(gen, now, CheckDeadlines, func(now time.Time) time.Time { return now.Add(s.deadlineInterval) })
	}
	if s.settings.StreakAlerts {
		s.scheduleLocked(gen, now, CheckStreak, func(now time.Time) time.Time { return domain.NextDaily(now, domain.StreakCheckAt) })
	}
	if s.settings.WeeklySummary {
		s.scheduleLocked(gen, now, CheckWeekly, func(now time.Time) time.Time {
			return domain.NextWeekly(now, time.Sunday, domain.WeeklySummaryAt)
		})
	}
}

// scheduleLocked arms a timer for next(now) that runs the check and
// re-arms itself.
func (s *Service) scheduleLocked(gen uint64, now time.Time, c Check, next func(time.Time) time.Time) {
	at := next(now)
	stop := s.afterFunc(at.Sub(now), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			return
		}
		s.runScheduled(s.base, gen, c)
		s.scheduleLocked(gen, s.source.Now(), c, next)
	})
	s.timers[c] = stop
	s.logger.Debug("notification check scheduled", "check", c, "at", at)
}

func (s *Service) runScheduled(ctx context.Context, gen uint64, c Check) {
	_, err := s.runLocked(ctx, c)
	if errors.Is(err, domain.ErrQuietHours) || errors.Is(err, domain.ErrDisabled) {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "notification check failed", "check", c, "generation", gen, "error", err)
	}
}
