package dto

import (
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// CreateStaffRequest payload. store_id is required for super_admin callers
// and ignored in favor of the caller's own store otherwise.
type CreateStaffRequest struct {
	StoreID string  `json:"store_id,omitempty"`
	UserID  *string `json:"user_id,omitempty"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
}

// Validate enforces the create input rules.
func (r *CreateStaffRequest) Validate() error {
	if err := requireField(r.Name, "name"); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if !domain.ValidRole(r.Role) {
		return apperrors.NewValidationError("INVALID_ROLE", "unknown role", map[string]any{"role": r.Role})
	}
	return nil
}

// UpdateStaffRequest payload for partial updates.
type UpdateStaffRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Validate enforces the update input rules.
func (r *UpdateStaffRequest) Validate() error {
	if r.Email != nil {
		if err := ValidateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Role != nil && !domain.ValidRole(*r.Role) {
		return apperrors.NewValidationError("INVALID_ROLE", "unknown role", map[string]any{"role": *r.Role})
	}
	return nil
}
