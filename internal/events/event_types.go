package events

import (
	"time"

	"github.com/hanzong05/kitapos-middleware/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventStoreCreated          EventType = "store_created"
	EventStockMovementRecorded EventType = "stock_movement_recorded"
	EventLowStockDetected      EventType = "low_stock_detected"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StoreID   string      `json:"store_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// StoreCreatedPayload payload.
type StoreCreatedPayload struct {
	StoreID   string `json:"store_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// StockMovementPayload payload.
type StockMovementPayload struct {
	MovementID string              `json:"movement_id"`
	ProductID  string              `json:"product_id"`
	Kind       domain.MovementKind `json:"kind"`
	Quantity   int                 `json:"quantity"`
	NewStock   int                 `json:"new_stock"`
}

// LowStockPayload payload.
type LowStockPayload struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}
