package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
)

// RoutingPrefix prefixes the routing key of published notifications; the
// kind is appended.
const RoutingPrefix = "notifications."

// BrokerNotifier publishes notifications as JSON messages, for a phone or
// desktop agent subscribed to the exchange.
type BrokerNotifier struct {
	publisher eventbus.Publisher
}

// NewBrokerNotifier wraps a raw publisher, normally the RabbitMQ one.
func NewBrokerNotifier(p eventbus.Publisher) *BrokerNotifier {
	return &BrokerNotifier{publisher: p}
}

func (n *BrokerNotifier) Notify(ctx context.Context, note domain.Notification) error {
	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := n.publisher.Publish(ctx, RoutingPrefix+string(note.Kind), body); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
