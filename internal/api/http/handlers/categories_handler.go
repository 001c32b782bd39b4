package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// CategoriesHandler exposes category CRUD.
type CategoriesHandler struct {
	catalog *service.CatalogService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(catalog *service.CatalogService) *CategoriesHandler {
	return &CategoriesHandler{catalog: catalog}
}

// List handles GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	categories, err := h.catalog.ListCategories(c.UserContext(), identity, overrideOf(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// Get handles GET /categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	category, err := h.catalog.GetCategory(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": category})
}

// Create handles POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), identity, req.StoreID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"category": category})
}

// Update handles PUT /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.catalog.UpdateCategory(c.UserContext(), identity, c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": category})
}

// Delete handles DELETE /categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteCategory(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
