package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

type flakyNotifier struct {
	failures int
	calls    int
	got      []domain.Notification
}

func (f *flakyNotifier) Notify(_ context.Context, n domain.Notification) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("unreachable")
	}
	f.got = append(f.got, n)
	return nil
}

type capturePublisher struct {
	routingKey string
	payload    []byte
}

func (p *capturePublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.routingKey = routingKey
	p.payload = payload
	return nil
}

func (p *capturePublisher) Close() error { return nil }

var note = domain.Notification{Kind: domain.KindTest, Title: "Test", Body: "hello", Tag: "test"}

func TestBrokerNotifier(t *testing.T) {
	pub := &capturePublisher{}
	require.NoError(t, NewBrokerNotifier(pub).Notify(context.Background(), note))

	assert.Equal(t, "notifications.test", pub.routingKey)
	var decoded domain.Notification
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, note, decoded)
}

func TestFanout(t *testing.T) {
	broken := &flakyNotifier{failures: 10}
	ok := &flakyNotifier{}
	err := Fanout{broken, NewLogNotifier(observability.DiscardLogger()), ok}.Notify(context.Background(), note)

	assert.Error(t, err)
	assert.Len(t, ok.got, 1, "a failing notifier does not stop the others")
}

func TestBreakerNotifier_RetriesTransientFailures(t *testing.T) {
	next := &flakyNotifier{failures: 2}
	metrics := observability.NewInMemoryMetrics()
	cfg := BreakerConfig{MaxRetries: 3, InitialInterval: time.Millisecond, FailureThreshold: 5, OpenTimeout: time.Minute}

	n := NewBreakerNotifier("test", next, cfg, metrics, observability.DiscardLogger())
	require.NoError(t, n.Notify(context.Background(), note))

	assert.Equal(t, 3, next.calls)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricNotificationsSent, observability.T("kind", "test")))
	assert.Equal(t, "closed", n.State())
}

func TestBreakerNotifier_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakyNotifier{failures: 100}
	metrics := observability.NewInMemoryMetrics()
	cfg := BreakerConfig{MaxRetries: 0, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenRequests: 1}

	n := NewBreakerNotifier("test", next, cfg, metrics, observability.DiscardLogger())
	ctx := context.Background()

	assert.Error(t, n.Notify(ctx, note))
	assert.Error(t, n.Notify(ctx, note))
	assert.Equal(t, "open", n.State())

	err := n.Notify(ctx, note)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, next.calls, "an open circuit does not call through")
	assert.Equal(t, int64(3), metrics.GetCounter(observability.MetricNotificationsFailed, observability.T("kind", "test")))
}
