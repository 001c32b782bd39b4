package dto

import (
	"time"

	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// Validate enforces the registration input rules. Self-registration may only
// request an unprivileged role; privileged accounts are provisioned through
// the admin-only users surface.
func (r *RegisterRequest) Validate() error {
	if err := requireField(r.Name, "name"); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.Role != "" && !domain.SelfRegisterRole(r.Role) {
		return apperrors.NewValidationError("INVALID_ROLE", "role not available for registration", map[string]any{"role": r.Role})
	}
	return nil
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces the login input rules.
func (r *LoginRequest) Validate() error {
	if err := requireField(r.Email, "email"); err != nil {
		return err
	}
	return requireField(r.Password, "password")
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate enforces the change-password input rules.
func (r *PasswordChangeRequest) Validate() error {
	if err := requireField(r.CurrentPassword, "current_password"); err != nil {
		return err
	}
	return ValidatePassword(r.NewPassword)
}

// UserResponse is the public view of an account; it never carries the
// password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     *string     `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	CompanyID *string     `json:"company_id,omitempty"`
	StoreID   *string     `json:"store_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		StoreID:   user.StoreID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthResponse is the success body for login and registration.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Source    string       `json:"source"`
}
