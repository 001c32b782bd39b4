package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// StaffHandler exposes roster CRUD.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	members, err := h.staff.List(c.UserContext(), identity, overrideOf(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"staff": members})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	member, err := h.staff.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"staff": member})
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	member, err := h.staff.Create(c.UserContext(), identity, service.CreateStaffInput{
		StoreID: req.StoreID,
		UserID:  req.UserID,
		Name:    req.Name,
		Email:   req.Email,
		Role:    domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"staff": member})
}

// Update handles PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	in := service.UpdateStaffInput{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	member, err := h.staff.Update(c.UserContext(), identity, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"staff": member})
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	if err := h.staff.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
