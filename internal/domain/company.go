package domain

import "time"

// Company is the top-level tenant. Stores belong to exactly one company.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"tax_id,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
