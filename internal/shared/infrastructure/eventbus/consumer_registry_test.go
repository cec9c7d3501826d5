package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pytron/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockConsumer struct {
	eventTypes []string
	events     []*eventbus.ConsumedEvent
	err        error
}

func (m *mockConsumer) EventTypes() []string {
	return m.eventTypes
}

func (m *mockConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func TestConsumerRegistry_Register(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(observability.DiscardLogger())

	registry.Register(&mockConsumer{eventTypes: []string{"badges.badge.unlocked", "goals.goal.completed"}})

	assert.Equal(t, 2, registry.ConsumerCount())
}

func TestConsumerRegistry_DispatchMatchesRoutingKey(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(observability.DiscardLogger())
	badges := &mockConsumer{eventTypes: []string{"badges.badge.unlocked"}}
	goals := &mockConsumer{eventTypes: []string{"goals.goal.completed"}}
	registry.Register(badges)
	registry.Register(goals)

	err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{
		EventID:    uuid.New(),
		RoutingKey: "badges.badge.unlocked",
	})

	assert.NoError(t, err)
	assert.Len(t, badges.events, 1)
	assert.Empty(t, goals.events)
}

func TestConsumerRegistry_CatchAll(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(observability.DiscardLogger())
	all := &mockConsumer{eventTypes: []string{eventbus.AllEvents}}
	registry.Register(all)

	_ = registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "pomodoro.session.completed"})
	_ = registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "goals.goal.completed"})

	assert.Len(t, all.events, 2)
}

func TestConsumerRegistry_FailingConsumerDoesNotStopOthers(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(observability.DiscardLogger())
	failing := &mockConsumer{eventTypes: []string{"x.y.z"}, err: errors.New("boom")}
	ok := &mockConsumer{eventTypes: []string{"x.y.z"}}
	registry.Register(failing)
	registry.Register(ok)

	err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "x.y.z"})

	assert.EqualError(t, err, "boom")
	assert.Len(t, ok.events, 1)
}

func TestConsumerRegistry_NoConsumers(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(observability.DiscardLogger())

	assert.NoError(t, registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "none"}))
}
