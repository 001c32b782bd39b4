package dto

// CreateStoreRequest payload. company_id is required for super_admin callers
// and ignored in favor of the caller's own company otherwise.
type CreateStoreRequest struct {
	CompanyID string  `json:"company_id,omitempty"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
}

// Validate enforces the create input rules.
func (r *CreateStoreRequest) Validate() error {
	return requireField(r.Name, "name")
}

// UpdateStoreRequest payload for partial updates.
type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}
