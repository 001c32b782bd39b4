package dto

import (
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// RecordMovementRequest payload. store_id is required for super_admin
// callers and ignored in favor of the caller's own store otherwise.
// Adjustments carry a signed quantity; sales and restocks a positive one.
type RecordMovementRequest struct {
	StoreID   string  `json:"store_id,omitempty"`
	ProductID string  `json:"product_id"`
	Kind      string  `json:"kind"`
	Quantity  int     `json:"quantity"`
	Note      *string `json:"note,omitempty"`
}

// Validate enforces the movement input rules.
func (r *RecordMovementRequest) Validate() error {
	if err := requireField(r.ProductID, "product_id"); err != nil {
		return err
	}
	if !domain.ValidMovementKind(r.Kind) {
		return apperrors.NewValidationError("INVALID_MOVEMENT_KIND", "unknown movement kind", map[string]any{"kind": r.Kind})
	}
	kind := domain.MovementKind(r.Kind)
	if kind == domain.MovementAdjustment {
		if r.Quantity == 0 {
			return apperrors.NewValidationError("VALIDATION_FAILED", "quantity must not be zero", nil)
		}
		return nil
	}
	if r.Quantity <= 0 {
		return apperrors.NewValidationError("VALIDATION_FAILED", "quantity must be positive", nil)
	}
	return nil
}
