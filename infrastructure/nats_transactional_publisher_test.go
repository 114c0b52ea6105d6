package infrastructure

import (
	"context"
	"errors"
	"testing"

	"liga/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_LocalHandlers(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	handlerCalled := false
	var receivedEvent events.Event
	transPublisher.RegisterLocalHandler(events.EventTypeMatchSettled, func(ctx context.Context, event events.Event) error {
		handlerCalled = true
		receivedEvent = event
		return nil
	})

	testEvent := events.MatchSettledEvent{
		MatchID:   "match-1",
		Mode:      "pool",
		Settled:   3,
		Credited:  2,
		TotalPaid: 90,
	}

	require.NoError(t, transPublisher.Publish(testEvent))

	// Nothing leaves the publisher before the flush
	assert.False(t, handlerCalled)
	assert.Empty(t, mockPublisher.PublishedEvents)

	require.NoError(t, transPublisher.Flush(context.Background()))

	assert.True(t, handlerCalled)
	assert.Equal(t, testEvent, receivedEvent)
	require.Len(t, mockPublisher.PublishedEvents, 1)
	assert.Equal(t, testEvent, mockPublisher.PublishedEvents[0])
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	handlerCalled := false
	transPublisher.RegisterLocalHandler(events.EventTypeWalletCredited, func(ctx context.Context, event events.Event) error {
		handlerCalled = true
		return nil
	})

	require.NoError(t, transPublisher.Publish(events.WalletCreditedEvent{UserID: "u1", Amount: 10}))
	transPublisher.Discard()

	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.False(t, handlerCalled)
	assert.Empty(t, mockPublisher.PublishedEvents)
}

func TestNATSTransactionalPublisher_FlushContinuesAfterFailures(t *testing.T) {
	mockPublisher := &MockEventPublisher{PublishError: errors.New("nats down")}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	calls := 0
	transPublisher.RegisterLocalHandler(events.EventTypeStandingsRecomputed, func(ctx context.Context, event events.Event) error {
		calls++
		return errors.New("handler failed")
	})

	require.NoError(t, transPublisher.Publish(events.StandingsRecomputedEvent{ZoneID: "z1"}))
	require.NoError(t, transPublisher.Publish(events.StandingsRecomputedEvent{ZoneID: "z2"}))

	assert.NoError(t, transPublisher.Flush(context.Background()))
	assert.Equal(t, 2, calls)

	// The queue is empty after a flush
	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Equal(t, 2, calls)
}
