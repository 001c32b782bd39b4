package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// InventoryHandler exposes the stock movement ledger.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	limit, offset := pageOf(c)
	filter := repository.MovementFilter{Limit: limit, Offset: offset}
	if productID := c.Query("product_id"); productID != "" {
		filter.ProductID = &productID
	}

	movements, err := h.inventory.List(c.UserContext(), identity, overrideOf(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"movements": movements})
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	movement, err := h.inventory.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"movement": movement})
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.RecordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	movement, newStock, err := h.inventory.RecordMovement(c.UserContext(), identity, service.RecordMovementInput{
		StoreID:   req.StoreID,
		ProductID: req.ProductID,
		Kind:      domain.MovementKind(req.Kind),
		Quantity:  req.Quantity,
		Note:      req.Note,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"movement":  movement,
		"new_stock": newStock,
	})
}
