package domain

import "time"

// Product is a sellable item in a store's catalog. Stock is denormalized onto
// the product row and adjusted transactionally by inventory movements.
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	CategoryID *string   `json:"category_id,omitempty"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
