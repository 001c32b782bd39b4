package auth

import "github.com/hanzong05/kitapos-middleware/internal/domain"

// Identity is the authenticated principal for one request. It is rebuilt from
// token claims on every request and never re-fetched from storage, so it can
// be stale relative to concurrent role or store changes until the token
// expires.
type Identity struct {
	SubjectID string
	Email     string
	Role      domain.Role
	CompanyID *string
	StoreID   *string
}

// IsSuperAdmin reports whether the identity holds the unrestricted role.
func (id *Identity) IsSuperAdmin() bool {
	return id != nil && id.Role == domain.RoleSuperAdmin
}
