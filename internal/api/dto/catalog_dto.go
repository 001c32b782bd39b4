package dto

import (
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	StoreID     string  `json:"store_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Validate enforces the create input rules.
func (r *CreateCategoryRequest) Validate() error {
	return requireField(r.Name, "name")
}

// UpdateCategoryRequest payload for partial updates.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProductRequest payload.
type CreateProductRequest struct {
	StoreID    string  `json:"store_id,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
}

// Validate enforces the create input rules.
func (r *CreateProductRequest) Validate() error {
	if err := requireField(r.SKU, "sku"); err != nil {
		return err
	}
	if err := requireField(r.Name, "name"); err != nil {
		return err
	}
	if r.Price < 0 {
		return apperrors.NewValidationError("VALIDATION_FAILED", "price must not be negative", nil)
	}
	if r.Stock < 0 {
		return apperrors.NewValidationError("VALIDATION_FAILED", "stock must not be negative", nil)
	}
	return nil
}

// UpdateProductRequest payload for partial updates.
type UpdateProductRequest struct {
	CategoryID *string  `json:"category_id,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

// Validate enforces the update input rules.
func (r *UpdateProductRequest) Validate() error {
	if r.Price != nil && *r.Price < 0 {
		return apperrors.NewValidationError("VALIDATION_FAILED", "price must not be negative", nil)
	}
	return nil
}
