package eventbus

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/shared/domain"
)

// Publisher sends raw payloads to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// DomainPublisher publishes domain events. Application services depend on
// this rather than on a concrete bus.
type DomainPublisher interface {
	PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error
}

// NoopPublisher is a no-op publisher for testing/development.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message but doesn't actually publish.
func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish", "routing_key", routingKey, "size", len(payload))
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}

// RecordingPublisher keeps every domain event it receives. Tests use it in
// place of a bus.
type RecordingPublisher struct {
	Events []domain.DomainEvent
}

// PublishDomainEvent appends the event.
func (p *RecordingPublisher) PublishDomainEvent(_ context.Context, event domain.DomainEvent) error {
	p.Events = append(p.Events, event)
	return nil
}

// RoutingKeys returns the routing keys of the recorded events in order.
func (p *RecordingPublisher) RoutingKeys() []string {
	keys := make([]string, len(p.Events))
	for i, e := range p.Events {
		keys[i] = e.RoutingKey()
	}
	return keys
}
