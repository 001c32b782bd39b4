package dto

import (
	"regexp"

	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Standard local@domain.tld shape; anything fancier belongs to the mail
// server to reject.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("VALIDATION_FAILED", "email is required", nil)
	}
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("INVALID_EMAIL", "email format is invalid", nil)
	}
	return nil
}

// ValidatePassword checks the minimum length rule.
func ValidatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("VALIDATION_FAILED", "password is required", nil)
	}
	if len(password) < MinPasswordLength {
		return apperrors.NewValidationError("WEAK_PASSWORD", "password must be at least 6 characters", nil)
	}
	return nil
}

func requireField(value, name string) error {
	if value == "" {
		return apperrors.NewValidationError("VALIDATION_FAILED", name+" is required", nil)
	}
	return nil
}
