package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// UsersHandler exposes administrative account CRUD.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit, offset := pageOf(c)
	users, err := h.users.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": out})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
		CompanyID: req.CompanyID,
		StoreID:   req.StoreID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	in := service.UpdateUserInput{
		Name:      req.Name,
		Phone:     req.Phone,
		CompanyID: req.CompanyID,
		StoreID:   req.StoreID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
