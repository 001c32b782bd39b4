package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// StoresHandler exposes store CRUD.
type StoresHandler struct {
	stores *service.StoreService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(stores *service.StoreService) *StoresHandler {
	return &StoresHandler{stores: stores}
}

// List handles GET /stores.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	stores, err := h.stores.List(c.UserContext(), identity, overrideOf(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stores": stores})
}

// Get handles GET /stores/:id.
func (h *StoresHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	store, err := h.stores.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"store": store})
}

// Create handles POST /stores.
func (h *StoresHandler) Create(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	store, err := h.stores.Create(c.UserContext(), identity, req.CompanyID, req.Name, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"store": store})
}

// Update handles PUT /stores/:id.
func (h *StoresHandler) Update(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	store, err := h.stores.Update(c.UserContext(), identity, c.Params("id"), req.Name, req.Address, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"store": store})
}

// Delete handles DELETE /stores/:id.
func (h *StoresHandler) Delete(c *fiber.Ctx) error {
	if err := h.stores.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
