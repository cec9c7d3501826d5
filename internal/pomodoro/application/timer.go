// Package application runs the pomodoro countdown and auto-logs finished
// work sessions.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// DefaultTickInterval is one timer second.
const DefaultTickInterval = time.Second

// HourLogger writes the auto-logged entry. The tracking service implements it.
type HourLogger interface {
	LogHourIfEmpty(ctx context.Context, cmd trackingApp.LogHourCommand) error
}

// CompletionFunc is called after a phase completes and the state is saved.
type CompletionFunc func(ctx context.Context, c domain.Completion, state domain.State)

// Timer owns the pomodoro state and its ticking goroutine.
type Timer struct {
	mu     sync.Mutex
	state  domain.State
	cancel context.CancelFunc
	done   chan struct{}

	repo      domain.Repository
	logs      HourLogger
	publisher eventbus.DomainPublisher
	metrics   observability.Metrics
	logger    *slog.Logger
	now       func() time.Time
	interval  time.Duration

	onComplete []CompletionFunc
}

// Option configures a Timer.
type Option func(*Timer)

// WithTickInterval overrides the tick period.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) { t.interval = d }
}

// WithClock sets the clock used for session timestamps and the log hour.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithPublisher sets the domain event publisher.
func WithPublisher(p eventbus.DomainPublisher) Option {
	return func(t *Timer) { t.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observability.Metrics) Option {
	return func(t *Timer) { t.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) { t.logger = l }
}

// NewTimer loads the persisted state.
func NewTimer(ctx context.Context, repo domain.Repository, logs HourLogger, opts ...Option) (*Timer, error) {
	t := &Timer{
		repo:     repo,
		logs:     logs,
		metrics:  observability.NoopMetrics{},
		logger:   slog.Default(),
		now:      time.Now,
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(t)
	}

	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pomodoro state: %w", err)
	}
	t.state = state
	return t, nil
}

// OnComplete registers a completion callback.
func (t *Timer) OnComplete(fn CompletionFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onComplete = append(t.onComplete, fn)
}

// State returns a copy of the timer state.
func (t *Timer) State() domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// TodayStats counts today's finished sessions.
func (t *Timer) TodayStats() domain.Stats {
	now := t.now()
	return t.State().StatsFor(tracking.DateKeyOf(now), now.Location())
}

// Start starts the countdown and the ticking goroutine. The goroutine
// outlives ctx and stops on Pause, Reset, phase completion or Close.
func (t *Timer) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.state.Start()
	if err := t.saveLocked(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(runCtx, t.done)
	return nil
}

// Pause stops the countdown, keeping the remaining time.
func (t *Timer) Pause(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.state.Pause()
	return t.saveLocked(ctx)
}

// Reset returns to an idle work phase.
func (t *Timer) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.state.Reset()
	return t.saveLocked(ctx)
}

// Configure changes durations and resets the timer.
func (t *Timer) Configure(ctx context.Context, cfg domain.Config) (domain.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	if err := t.state.Configure(cfg); err != nil {
		return domain.State{}, err
	}
	if err := t.saveLocked(ctx); err != nil {
		return domain.State{}, err
	}
	return t.state.Clone(), nil
}

// Wait blocks until the ticking goroutine exits or ctx is done.
func (t *Timer) Wait(ctx context.Context) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the goroutine. The state stays as it is.
func (t *Timer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	return nil
}

func (t *Timer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if finished := t.tick(ctx); finished {
				return
			}
		}
	}
}

// tick advances one second and reports whether the goroutine should stop.
func (t *Timer) tick(ctx context.Context) bool {
	t.mu.Lock()
	if ctx.Err() != nil {
		// Stopped while waiting for the lock.
		t.mu.Unlock()
		return true
	}
	now := t.now()
	completion, completed := t.state.Tick(now)
	if err := t.saveLocked(ctx); err != nil {
		t.logger.WarnContext(ctx, "failed to save pomodoro state", "error", err)
	}
	if !completed {
		t.mu.Unlock()
		return false
	}
	// The goroutine is about to return on its own; only drop the handle.
	t.cancel = nil
	state := t.state.Clone()
	callbacks := append([]CompletionFunc(nil), t.onComplete...)
	t.mu.Unlock()

	t.handleCompletion(ctx, now, completion, state)
	for _, fn := range callbacks {
		fn(ctx, completion, state)
	}
	return true
}

func (t *Timer) handleCompletion(ctx context.Context, now time.Time, c domain.Completion, state domain.State) {
	if c.WorkDone {
		t.metrics.Counter(observability.MetricPomodoroSessions, 1)
		t.logger.InfoContext(ctx, "pomodoro session complete", "session", state.CurrentSession, "long_break", c.LongBreak)
		t.autoLog(ctx, now, c.Session.Duration)
	}
	if t.publisher != nil {
		if err := t.publisher.PublishDomainEvent(ctx, domain.NewCompletionEvent(state, c, now)); err != nil {
			t.logger.WarnContext(ctx, "failed to publish pomodoro event", "error", err)
		}
	}
}

// autoLog records deep work in the current hour unless the hour is taken.
func (t *Timer) autoLog(ctx context.Context, now time.Time, minutes int) {
	if t.logs == nil {
		return
	}
	err := t.logs.LogHourIfEmpty(ctx, trackingApp.LogHourCommand{
		Date:     tracking.DateKeyOf(now),
		Hour:     now.Hour(),
		Category: tracking.CategoryDeepWork,
		Note:     fmt.Sprintf("Pomodoro session (%d min)", minutes),
	})
	switch {
	case errors.Is(err, trackingApp.ErrHourOccupied):
		t.logger.DebugContext(ctx, "hour already logged, skipping pomodoro entry", "hour", now.Hour())
	case err != nil:
		t.logger.WarnContext(ctx, "failed to log pomodoro session", "error", err)
	}
}

// CompleteNow finishes the current phase immediately, as if the countdown
// had run out.
func (t *Timer) CompleteNow(ctx context.Context) (domain.Completion, error) {
	t.mu.Lock()
	t.stopLocked()
	now := t.now()
	completion := t.state.Complete(now)
	if err := t.saveLocked(ctx); err != nil {
		t.mu.Unlock()
		return domain.Completion{}, err
	}
	state := t.state.Clone()
	callbacks := append([]CompletionFunc(nil), t.onComplete...)
	t.mu.Unlock()

	t.handleCompletion(ctx, now, completion, state)
	for _, fn := range callbacks {
		fn(ctx, completion, state)
	}
	return completion, nil
}

func (t *Timer) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) saveLocked(ctx context.Context) error {
	if err := t.repo.Save(ctx, t.state); err != nil {
		return fmt.Errorf("failed to save pomodoro state: %w", err)
	}
	return nil
}
