package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// ErrCircuitOpen is returned while the breaker rejects deliveries.
var ErrCircuitOpen = errors.New("notification delivery circuit open")

// BreakerConfig tunes retries and the circuit breaker.
type BreakerConfig struct {
	// MaxRetries bounds retries of one delivery; 0 means a single attempt.
	MaxRetries uint64
	// InitialInterval is the first retry delay.
	InitialInterval time.Duration
	// FailureThreshold is the consecutive failures that open the circuit.
	FailureThreshold uint32
	// OpenTimeout is how long the circuit stays open.
	OpenTimeout time.Duration
	// HalfOpenRequests is the trial deliveries allowed when half-open.
	HalfOpenRequests uint32
}

// DefaultBreakerConfig returns the defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRetries:       3,
		InitialInterval:  200 * time.Millisecond,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}
}

// BreakerNotifier retries a delivery with exponential backoff, and stops
// trying for a while once deliveries keep failing.
type BreakerNotifier struct {
	next    domain.Notifier
	breaker *gobreaker.CircuitBreaker[struct{}]
	config  BreakerConfig
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewBreakerNotifier wraps next.
func NewBreakerNotifier(name string, next domain.Notifier, cfg BreakerConfig, metrics observability.Metrics, logger *slog.Logger) *BreakerNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerNotifier{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		config:  cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// Notify delivers through the breaker. One breaker call covers all retries
// of a delivery.
func (n *BreakerNotifier) Notify(ctx context.Context, note domain.Notification) error {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.deliver(ctx, note)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = ErrCircuitOpen
	}

	if err != nil {
		n.metrics.Counter(observability.MetricNotificationsFailed, 1, observability.T("kind", string(note.Kind)))
		return err
	}
	n.metrics.Counter(observability.MetricNotificationsSent, 1, observability.T("kind", string(note.Kind)))
	return nil
}

func (n *BreakerNotifier) deliver(ctx context.Context, note domain.Notification) error {
	exp := backoff.NewExponentialBackOff()
	if n.config.InitialInterval > 0 {
		exp.InitialInterval = n.config.InitialInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, n.config.MaxRetries), ctx)

	return backoff.Retry(func() error {
		err := n.next.Notify(ctx, note)
		if err != nil {
			n.logger.WarnContext(ctx, "notification delivery failed", "kind", note.Kind, "error", err)
		}
		return err
	}, policy)
}

// State reports the breaker state, e.g. "closed" or "open".
func (n *BreakerNotifier) State() string {
	return n.breaker.State().String()
}
