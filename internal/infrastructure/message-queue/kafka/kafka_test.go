package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/dto"
	circuitbreaker "github.com/hassaammgl2/employee-management-system/internal/infrastructure/circuit-breaker"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrokerDown = errors.New("broker down")

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	written  []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.calls++
	if w.failures != 0 {
		if w.failures > 0 {
			w.failures--
		}
		return errBrokerDown
	}

	w.written = append(w.written, msgs...)
	return nil
}

func TestPublishRetriesUntilWritten(t *testing.T) {
	writer := &fakeWriter{failures: 1}
	publisher := CreatePublisher(writer, circuitbreaker.CreateCircuitBreaker("test-retry"), 3, time.Millisecond)

	msg := dto.KafkaMessage{EventType: "notification_requested", EventID: "01J0000000000000000000000", Data: map[string]string{"title": "hello"}}
	require.NoError(t, publisher.Publish(context.Background(), "user-1", msg))

	assert.Equal(t, 2, writer.calls)
	require.Len(t, writer.written, 1)
	assert.Equal(t, "user-1", string(writer.written[0].Key))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(writer.written[0].Value, &decoded))
	assert.Equal(t, "notification_requested", decoded["event_type"])
}

func TestPublishStopsWhenBreakerOpens(t *testing.T) {
	writer := &fakeWriter{failures: -1}
	publisher := CreatePublisher(writer, circuitbreaker.CreateCircuitBreaker("test-open"), 5, time.Millisecond)

	err := publisher.Publish(context.Background(), "user-1", dto.KafkaMessage{EventType: "notification_requested"})

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, writer.calls)
}

func TestPublishGivesUpAfterRetries(t *testing.T) {
	writer := &fakeWriter{failures: 2}
	publisher := CreatePublisher(writer, circuitbreaker.CreateCircuitBreaker("test-exhausted"), 2, time.Millisecond)

	err := publisher.Publish(context.Background(), "user-1", dto.KafkaMessage{EventType: "notification_requested"})

	assert.ErrorIs(t, err, errBrokerDown)
	assert.Equal(t, 2, writer.calls)
	assert.Empty(t, writer.written)
}

func TestPublishHonoursCancellation(t *testing.T) {
	writer := &fakeWriter{failures: -1}
	publisher := CreatePublisher(writer, circuitbreaker.CreateCircuitBreaker("test-cancel"), 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, "user-1", dto.KafkaMessage{EventType: "notification_requested"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, writer.calls)
}
