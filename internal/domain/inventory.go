package domain

import "time"

// MovementKind enumerates inventory movement types.
type MovementKind string

const (
	MovementSale       MovementKind = "sale"
	MovementRestock    MovementKind = "restock"
	MovementAdjustment MovementKind = "adjustment"
)

// ValidMovementKind reports whether the given string names a known kind.
func ValidMovementKind(s string) bool {
	switch MovementKind(s) {
	case MovementSale, MovementRestock, MovementAdjustment:
		return true
	}
	return false
}

// Delta returns the signed stock change for a movement of this kind.
// Sales subtract, restocks add, adjustments carry their own sign.
func (k MovementKind) Delta(quantity int) int {
	switch k {
	case MovementSale:
		return -quantity
	case MovementRestock:
		return quantity
	default:
		return quantity
	}
}

// InventoryMovement is an append-only stock change record for one product.
type InventoryMovement struct {
	ID        string       `json:"id"`
	StoreID   string       `json:"store_id"`
	ProductID string       `json:"product_id"`
	Kind      MovementKind `json:"kind"`
	Quantity  int          `json:"quantity"`
	Note      *string      `json:"note,omitempty"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
}
