package dto

// CreateCompanyRequest payload.
type CreateCompanyRequest struct {
	Name    string  `json:"name"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate enforces the create input rules.
func (r *CreateCompanyRequest) Validate() error {
	return requireField(r.Name, "name")
}

// UpdateCompanyRequest payload for partial updates.
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
}
