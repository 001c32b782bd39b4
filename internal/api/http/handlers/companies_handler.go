package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/dto"
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// CompaniesHandler exposes company CRUD.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// List handles GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	companies, err := h.companies.List(c.UserContext(), identity, overrideOf(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"companies": companies})
}

// Get handles GET /companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": company})
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	company, err := h.companies.Create(c.UserContext(), req.Name, req.TaxID, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"company": company})
}

// Update handles PUT /companies/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	identity, err := identityOf(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.companies.Update(c.UserContext(), identity, c.Params("id"), req.Name, req.TaxID, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": company})
}

// Delete handles DELETE /companies/:id.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.companies.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
