package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hanzong05/kitapos-middleware/internal/config"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

func TestAlertService_LowStockLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	dispatcher := events.NewInMemoryDispatcher()
	alerts := service.NewAlertService(dispatcher, logger, config.AlertsConfig{})
	alerts.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventLowStockDetected,
		StoreID: "store-7",
		Payload: events.LowStockPayload{ProductID: "prod-1", SKU: "SKU-1", Stock: 2, Threshold: 5},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("LowStockDetected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store-7", entries[0].ContextMap()["store_id"])
}

func TestAlertService_IgnoresUnrelatedEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAlertService(dispatcher, logger, config.AlertsConfig{}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventStockMovementRecorded,
	}))
	assert.Zero(t, logs.Len())
}
