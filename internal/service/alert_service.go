package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hanzong05/kitapos-middleware/internal/config"
	"github.com/hanzong05/kitapos-middleware/internal/events"
)

// AlertService emits operator alerts for domain events.
type AlertService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AlertsConfig
}

// NewAlertService creates the service.
func NewAlertService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AlertsConfig) *AlertService {
	return &AlertService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AlertService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLowStockDetected, a.handleLowStock)
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventStoreCreated, a.handleStoreCreated)
}

func (a *AlertService) handleLowStock(ctx context.Context, event events.Event) error {
	a.logger.Info("LowStockDetected", zap.String("store_id", event.StoreID), zap.Any("payload", event.Payload))
	a.sendEmailAlertStub(ctx, event)
	a.sendWebhookAlertStub(ctx, event)
	return nil
}

func (a *AlertService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("user_id", event.Actor.UserID), zap.Any("payload", event.Payload))
	a.sendEmailAlertStub(ctx, event)
	return nil
}

func (a *AlertService) handleStoreCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("StoreCreated", zap.String("store_id", event.StoreID), zap.Any("payload", event.Payload))
	a.sendWebhookAlertStub(ctx, event)
	return nil
}

func (a *AlertService) sendEmailAlertStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.EmailFrom) == "" {
		return
	}
	a.logger.Debug("sendEmailAlertStub",
		zap.String("from", a.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (a *AlertService) sendWebhookAlertStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookAlertStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
