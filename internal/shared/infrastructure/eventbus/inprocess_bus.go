package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/pytron/internal/shared/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// InProcessEventBus delivers domain events synchronously to registered
// consumers and optionally forwards the envelope to an external broker.
type InProcessEventBus struct {
	registry  *ConsumerRegistry
	forwarder Publisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

// BusOption configures an InProcessEventBus.
type BusOption func(*InProcessEventBus)

// WithForwarder forwards every published envelope to p after local dispatch.
func WithForwarder(p Publisher) BusOption {
	return func(b *InProcessEventBus) { b.forwarder = p }
}

// WithMetrics records a counter per published routing key.
func WithMetrics(m observability.Metrics) BusOption {
	return func(b *InProcessEventBus) { b.metrics = m }
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger, opts ...BusOption) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		metrics:  observability.NoopMetrics{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RegisterConsumer registers an event consumer.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// PublishDomainEvent wraps the event and dispatches it. Consumer and
// forwarder failures are logged, never returned: publishing happens after
// the state change is persisted and must not undo it.
func (b *InProcessEventBus) PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error {
	envelope, err := NewEnvelope(event, observability.CorrelationIDFromContext(ctx))
	if err != nil {
		return err
	}
	b.dispatch(ctx, envelope)
	return nil
}

// Publish accepts a raw envelope, so the bus can stand in for a broker.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	envelope := &ConsumedEvent{}
	if err := json.Unmarshal(payload, envelope); err != nil {
		b.logger.Error("failed to unmarshal event payload", "routing_key", routingKey, "error", err)
		return nil
	}
	if envelope.RoutingKey == "" {
		envelope.RoutingKey = routingKey
	}
	b.dispatch(ctx, envelope)
	return nil
}

func (b *InProcessEventBus) dispatch(ctx context.Context, envelope *ConsumedEvent) {
	start := time.Now()
	if err := b.registry.Dispatch(ctx, envelope); err != nil {
		b.logger.ErrorContext(ctx, "event dispatch failed",
			"routing_key", envelope.RoutingKey,
			"event_id", envelope.EventID,
			"error", err,
		)
	}
	b.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("routing_key", envelope.RoutingKey))

	if b.forwarder != nil {
		body, err := json.Marshal(envelope)
		if err == nil {
			err = b.forwarder.Publish(ctx, envelope.RoutingKey, body)
		}
		if err != nil {
			b.logger.WarnContext(ctx, "event forward failed",
				"routing_key", envelope.RoutingKey,
				"error", err,
			)
		}
	}

	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", envelope.RoutingKey,
		"event_id", envelope.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// Close closes the forwarder, if any.
func (b *InProcessEventBus) Close() error {
	if b.forwarder != nil {
		return b.forwarder.Close()
	}
	return nil
}

// Registry returns the underlying consumer registry.
func (b *InProcessEventBus) Registry() *ConsumerRegistry {
	return b.registry
}
