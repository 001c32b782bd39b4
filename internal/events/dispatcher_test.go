package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzong05/kitapos-middleware/internal/events"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var got []events.Event
	d.Subscribe(events.EventLowStockDetected, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), events.Event{
		Type:    events.EventLowStockDetected,
		StoreID: "store-7",
		Payload: events.LowStockPayload{ProductID: "prod-1", SKU: "SKU-1", Stock: 2, Threshold: 5},
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, events.EventLowStockDetected, got[0].Type)
	assert.Equal(t, "store-7", got[0].StoreID)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(events.EventStoreCreated, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventUserRegistered}))
	assert.Zero(t, calls)

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventStoreCreated}))
	assert.Equal(t, 1, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	d.Subscribe(events.EventStockMovementRecorded, func(context.Context, events.Event) error {
		return errors.New("handler failed")
	})
	reached := false
	d.Subscribe(events.EventStockMovementRecorded, func(context.Context, events.Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), events.Event{Type: events.EventStockMovementRecorded})
	require.NoError(t, err)
	assert.True(t, reached)
}
