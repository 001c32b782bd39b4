package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// ProductsHandler exposes product CRUD.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	limit, offset := pageOf(c)
	filter := repository.ProductFilter{
		ActiveOnly: c.QueryBool("active_only"),
		Limit:      limit,
		Offset:     offset,
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	products, err := h.catalog.ListProducts(c.UserContext(), identity, overrideOf(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.GetProduct(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product})
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), identity, service.CreateProductInput{
		StoreID:    req.StoreID,
		CategoryID: req.CategoryID,
		SKU:        req.SKU,
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"product": product})
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), identity, c.Params("id"), service.UpdateProductInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		Active:     req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product})
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteProduct(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
