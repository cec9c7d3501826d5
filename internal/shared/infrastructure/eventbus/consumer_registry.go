package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// AllEvents registers a consumer for every routing key.
const AllEvents = "#"

// ConsumerRegistry manages event consumers and dispatches events to them.
type ConsumerRegistry struct {
	consumers map[string][]EventConsumer
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewConsumerRegistry creates a new consumer registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{
		consumers: make(map[string][]EventConsumer),
		logger:    logger,
	}
}

// Register adds a consumer for its declared event types.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, eventType := range consumer.EventTypes() {
		r.consumers[eventType] = append(r.consumers[eventType], consumer)
		r.logger.Debug("registered consumer", "event_type", eventType)
	}
}

// consumersFor returns exact-match consumers followed by catch-all ones.
func (r *ConsumerRegistry) consumersFor(routingKey string) []EventConsumer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EventConsumer, 0, len(r.consumers[routingKey])+len(r.consumers[AllEvents]))
	out = append(out, r.consumers[routingKey]...)
	if routingKey != AllEvents {
		out = append(out, r.consumers[AllEvents]...)
	}
	return out
}

// Dispatch sends an event to every matching consumer. A failing consumer
// does not stop the others; the last error is returned.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	consumers := r.consumersFor(event.RoutingKey)
	if len(consumers) == 0 {
		r.logger.Debug("no consumers for event type", "routing_key", event.RoutingKey)
		return nil
	}

	var lastErr error
	for _, consumer := range consumers {
		if err := consumer.Handle(ctx, event); err != nil {
			r.logger.Error("consumer failed to handle event",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}

// ConsumerCount returns the total number of registered consumer instances.
func (r *ConsumerRegistry) ConsumerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, consumers := range r.consumers {
		count += len(consumers)
	}
	return count
}
