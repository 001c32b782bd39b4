package dto

import (
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// CreateUserRequest payload for admin account provisioning.
type CreateUserRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	CompanyID *string `json:"company_id,omitempty"`
	StoreID   *string `json:"store_id,omitempty"`
}

// Validate enforces the admin-create input rules.
func (r *CreateUserRequest) Validate() error {
	if err := requireField(r.Name, "name"); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if !domain.ValidRole(r.Role) {
		return apperrors.NewValidationError("INVALID_ROLE", "unknown role", map[string]any{"role": r.Role})
	}
	return nil
}

// UpdateUserRequest payload for partial account updates.
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty"`
	CompanyID *string `json:"company_id,omitempty"`
	StoreID   *string `json:"store_id,omitempty"`
}

// Validate enforces the update input rules.
func (r *UpdateUserRequest) Validate() error {
	if r.Role != nil && !domain.ValidRole(*r.Role) {
		return apperrors.NewValidationError("INVALID_ROLE", "unknown role", map[string]any{"role": *r.Role})
	}
	return nil
}
