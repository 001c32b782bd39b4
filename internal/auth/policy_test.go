package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

func identityWithRole(role domain.Role) *auth.Identity {
	return &auth.Identity{SubjectID: "u-1", Email: "user@techcorp.com", Role: role}
}

func TestAuthorize_NilIdentity(t *testing.T) {
	err := auth.Authorize(nil, auth.ResourceProducts, auth.OpList)
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "AUTH_REQUIRED", de.Code)
	assert.Equal(t, 401, de.HTTPStatus)
}

func TestAuthorize_CashierCannotCreateCompany(t *testing.T) {
	err := auth.Authorize(identityWithRole(domain.RoleCashier), auth.ResourceCompanies, auth.OpCreate)
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", de.Code)
	assert.Equal(t, 403, de.HTTPStatus)
	assert.Equal(t, domain.RoleCashier, de.Details["actual_role"])
	assert.Equal(t, []domain.Role{domain.RoleSuperAdmin}, de.Details["required_roles"])
}

func TestAuthorize_SuperAdminManagesUsers(t *testing.T) {
	admin := identityWithRole(domain.RoleSuperAdmin)
	for _, op := range []auth.Operation{auth.OpList, auth.OpGet, auth.OpCreate, auth.OpUpdate, auth.OpDelete} {
		assert.NoError(t, auth.Authorize(admin, auth.ResourceUsers, op), "op %s", op)
	}
}

func TestAuthorize_Matrix(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		resource auth.Resource
		op       auth.Operation
		allowed  bool
	}{
		{"manager lists companies", domain.RoleManager, auth.ResourceCompanies, auth.OpList, true},
		{"manager cannot delete company", domain.RoleManager, auth.ResourceCompanies, auth.OpDelete, false},
		{"manager creates store", domain.RoleManager, auth.ResourceStores, auth.OpCreate, true},
		{"manager cannot delete store", domain.RoleManager, auth.ResourceStores, auth.OpDelete, false},
		{"cashier lists products", domain.RoleCashier, auth.ResourceProducts, auth.OpList, true},
		{"cashier cannot create product", domain.RoleCashier, auth.ResourceProducts, auth.OpCreate, false},
		{"staff reads categories", domain.RoleStaff, auth.ResourceCategories, auth.OpGet, true},
		{"staff cannot list users", domain.RoleStaff, auth.ResourceUsers, auth.OpList, false},
		{"cashier records movement", domain.RoleCashier, auth.ResourceInventory, auth.OpCreate, true},
		{"staff cannot read inventory", domain.RoleStaff, auth.ResourceInventory, auth.OpList, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(identityWithRole(tt.role), tt.resource, tt.op)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAuthorize_MissingEntryDeniesEveryone(t *testing.T) {
	// Inventory has no delete row, so even super_admin is denied.
	err := auth.Authorize(identityWithRole(domain.RoleSuperAdmin), auth.ResourceInventory, auth.OpDelete)
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", apperrors.ToDomainError(err).Code)
}

func TestAllowedRoles_UnknownResource(t *testing.T) {
	assert.Empty(t, auth.AllowedRoles(auth.Resource("reports"), auth.OpList))
}
