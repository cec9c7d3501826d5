package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/pytron/internal/shared/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pytron/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
}

func newSampleEvent() sampleEvent {
	return sampleEvent{
		BaseEvent: domain.NewBaseEvent("fire_starter", "Badge", "badges.badge.unlocked", time.Now()),
		Name:      "Fire Starter",
	}
}

type capturePublisher struct {
	keys     []string
	payloads [][]byte
	err      error
	closed   bool
}

func (p *capturePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *capturePublisher) Close() error {
	p.closed = true
	return nil
}

func TestInProcessEventBus_PublishDomainEvent(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	consumer := &mockConsumer{eventTypes: []string{"badges.badge.unlocked"}}
	bus.RegisterConsumer(consumer)

	event := newSampleEvent()
	ctx := observability.WithCorrelationID(context.Background(), "corr-9")
	require.NoError(t, bus.PublishDomainEvent(ctx, event))

	require.Len(t, consumer.events, 1)
	got := consumer.events[0]
	assert.Equal(t, event.EventID(), got.EventID)
	assert.Equal(t, "fire_starter", got.AggregateID)
	assert.Equal(t, "corr-9", got.CorrelationID)

	var payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, got.Decode(&payload))
	assert.Equal(t, "Fire Starter", payload.Name)
}

func TestInProcessEventBus_ForwardsToBroker(t *testing.T) {
	forwarder := &capturePublisher{}
	metrics := observability.NewInMemoryMetrics()
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger(),
		eventbus.WithForwarder(forwarder),
		eventbus.WithMetrics(metrics),
	)

	require.NoError(t, bus.PublishDomainEvent(context.Background(), newSampleEvent()))

	require.Equal(t, []string{"badges.badge.unlocked"}, forwarder.keys)
	var envelope eventbus.ConsumedEvent
	require.NoError(t, json.Unmarshal(forwarder.payloads[0], &envelope))
	assert.Equal(t, "Badge", envelope.AggregateType)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsPublished,
		observability.T("routing_key", "badges.badge.unlocked")))

	require.NoError(t, bus.Close())
	assert.True(t, forwarder.closed)
}

func TestInProcessEventBus_FailuresAreSwallowed(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger(),
		eventbus.WithForwarder(&capturePublisher{err: errors.New("broker down")}),
	)
	bus.RegisterConsumer(&mockConsumer{eventTypes: []string{"badges.badge.unlocked"}, err: errors.New("bad")})

	assert.NoError(t, bus.PublishDomainEvent(context.Background(), newSampleEvent()))
}

func TestInProcessEventBus_PublishRawEnvelope(t *testing.T) {
	bus := eventbus.NewInProcessEventBus(observability.DiscardLogger())
	consumer := &mockConsumer{eventTypes: []string{"goals.goal.completed"}}
	bus.RegisterConsumer(consumer)

	payload, err := json.Marshal(eventbus.ConsumedEvent{AggregateID: "g1"})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "goals.goal.completed", payload))
	require.Len(t, consumer.events, 1)
	assert.Equal(t, "goals.goal.completed", consumer.events[0].RoutingKey)

	// Garbage is logged and dropped.
	assert.NoError(t, bus.Publish(context.Background(), "goals.goal.completed", []byte("{")))
	assert.Len(t, consumer.events, 1)
}

func TestRecordingPublisher(t *testing.T) {
	rec := &eventbus.RecordingPublisher{}
	_ = rec.PublishDomainEvent(context.Background(), newSampleEvent())
	assert.Equal(t, []string{"badges.badge.unlocked"}, rec.RoutingKeys())
}
