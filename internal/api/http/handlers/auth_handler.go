package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// tokenSource labels where authenticated accounts come from.
const tokenSource = "database"

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
		Source:    tokenSource,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
		Source:    tokenSource,
	})
}

// Logout handles POST /auth/logout. It succeeds with or without a valid
// token; the route runs behind the optional gate.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.auth.Logout(c.UserContext(), identity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// Me handles GET /auth/me, echoing the identity resolved from the token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":         identity.SubjectID,
		"email":      identity.Email,
		"role":       identity.Role,
		"company_id": identity.CompanyID,
		"store_id":   identity.StoreID,
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
