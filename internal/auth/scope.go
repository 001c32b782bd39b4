package auth

import (
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// ScopeKind discriminates the visibility predicate applied to reads.
type ScopeKind int

const (
	// ScopeUnrestricted matches every row.
	ScopeUnrestricted ScopeKind = iota
	// ScopeCompany matches rows belonging to one company.
	ScopeCompany
	// ScopeStore matches rows belonging to one store.
	ScopeStore
	// ScopeNone matches nothing. Identities with no affiliation get an empty
	// view rather than an unrestricted one.
	ScopeNone
)

// Scope is the visibility predicate for one request. Storage collaborators
// translate it into their native filter syntax; the policy itself stays
// storage-agnostic.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// ResourceScoping classifies how a resource type is tenanted.
type ResourceScoping int

const (
	// ScopedByCompany rows carry a company id (stores, companies themselves).
	ScopedByCompany ResourceScoping = iota
	// ScopedByStore rows carry a store id (staff, categories, products,
	// inventory movements).
	ScopedByStore
)

// Override carries explicit narrowing ids from query parameters. Only a
// super_admin's override is honored; anyone else's is ignored because their
// scope is imposed, not chosen.
type Override struct {
	CompanyID string
	StoreID   string
}

// ResolveScope narrows a read to the visibility the identity is entitled to.
func ResolveScope(identity *Identity, scoping ResourceScoping, override Override) Scope {
	if identity == nil {
		return Scope{Kind: ScopeNone}
	}

	if identity.IsSuperAdmin() {
		switch {
		case scoping == ScopedByStore && override.StoreID != "":
			return Scope{Kind: ScopeStore, ID: override.StoreID}
		case scoping == ScopedByCompany && override.CompanyID != "":
			return Scope{Kind: ScopeCompany, ID: override.CompanyID}
		default:
			return Scope{Kind: ScopeUnrestricted}
		}
	}

	switch scoping {
	case ScopedByCompany:
		if identity.CompanyID != nil && *identity.CompanyID != "" {
			return Scope{Kind: ScopeCompany, ID: *identity.CompanyID}
		}
		if identity.StoreID != nil && *identity.StoreID != "" {
			return Scope{Kind: ScopeStore, ID: *identity.StoreID}
		}
	case ScopedByStore:
		if identity.StoreID != nil && *identity.StoreID != "" {
			return Scope{Kind: ScopeStore, ID: *identity.StoreID}
		}
	}
	return Scope{Kind: ScopeNone}
}

// EnforceStoreOwnership authorizes a write targeting a store-scoped resource
// and returns the store id to stamp on the row. It runs before any database
// interaction. Non-admins may only write into their own store; for an admin
// the target store is required input, never inferred.
func EnforceStoreOwnership(identity *Identity, targetStoreID string) (string, error) {
	if identity == nil {
		return "", apperrors.NewUnauthorized("AUTH_REQUIRED", "authentication required")
	}

	if identity.IsSuperAdmin() {
		if targetStoreID == "" {
			return "", apperrors.NewValidationError("MISSING_STORE_ID", "store_id is required", nil)
		}
		return targetStoreID, nil
	}

	if identity.StoreID == nil || *identity.StoreID == "" {
		return "", apperrors.NewForbidden("STORE_ACCESS_DENIED", "no store affiliation", nil)
	}
	if targetStoreID != "" && targetStoreID != *identity.StoreID {
		return "", apperrors.NewForbidden("STORE_ACCESS_DENIED", "store outside caller scope", nil)
	}
	return *identity.StoreID, nil
}

// EnforceCompanyOwnership is the company-level analog used when writing
// company-scoped resources such as stores.
func EnforceCompanyOwnership(identity *Identity, targetCompanyID string) (string, error) {
	if identity == nil {
		return "", apperrors.NewUnauthorized("AUTH_REQUIRED", "authentication required")
	}

	if identity.IsSuperAdmin() {
		if targetCompanyID == "" {
			return "", apperrors.NewValidationError("MISSING_COMPANY_ID", "company_id is required", nil)
		}
		return targetCompanyID, nil
	}

	if identity.CompanyID == nil || *identity.CompanyID == "" {
		return "", apperrors.NewForbidden("COMPANY_ACCESS_DENIED", "no company affiliation", nil)
	}
	if targetCompanyID != "" && targetCompanyID != *identity.CompanyID {
		return "", apperrors.NewForbidden("COMPANY_ACCESS_DENIED", "company outside caller scope", nil)
	}
	return *identity.CompanyID, nil
}
