package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, dto.ValidateEmail("cashier@techcorp.com"))
	assert.NoError(t, dto.ValidateEmail("first.last+tag@sub.example.co"))

	assert.Equal(t, "VALIDATION_FAILED", errCode(t, dto.ValidateEmail("")))
	assert.Equal(t, "INVALID_EMAIL", errCode(t, dto.ValidateEmail("no-at-sign")))
	assert.Equal(t, "INVALID_EMAIL", errCode(t, dto.ValidateEmail("user@nodot")))
	assert.Equal(t, "INVALID_EMAIL", errCode(t, dto.ValidateEmail("spaces in@example.com")))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, dto.ValidatePassword("123456"))

	assert.Equal(t, "VALIDATION_FAILED", errCode(t, dto.ValidatePassword("")))

	err := dto.ValidatePassword("12345")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "WEAK_PASSWORD", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := dto.RegisterRequest{Name: "New Cashier", Email: "new@techcorp.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, missingName.Validate()))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Equal(t, "INVALID_EMAIL", errCode(t, badEmail.Validate()))

	shortPassword := valid
	shortPassword.Password = "12345"
	assert.Equal(t, "WEAK_PASSWORD", errCode(t, shortPassword.Validate()))

	badRole := valid
	badRole.Role = "owner"
	assert.Equal(t, "INVALID_ROLE", errCode(t, badRole.Validate()))

	// Privileged roles are provisioned by admins, never self-claimed.
	for _, role := range []string{"super_admin", "manager"} {
		privileged := valid
		privileged.Role = role
		assert.Equal(t, "INVALID_ROLE", errCode(t, privileged.Validate()), role)
	}

	withRole := valid
	withRole.Role = "staff"
	assert.NoError(t, withRole.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&dto.LoginRequest{Email: "a@b.co", Password: "x"}).Validate())
	assert.Error(t, (&dto.LoginRequest{Password: "x"}).Validate())
	assert.Error(t, (&dto.LoginRequest{Email: "a@b.co"}).Validate())
}

func TestPasswordChangeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&dto.PasswordChangeRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}).Validate())
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, (&dto.PasswordChangeRequest{NewPassword: "new-secret"}).Validate()))
	assert.Equal(t, "WEAK_PASSWORD", errCode(t, (&dto.PasswordChangeRequest{CurrentPassword: "old-secret", NewPassword: "short"}).Validate()))
}
