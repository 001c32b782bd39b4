package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/domain"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// Resource names a protected resource class.
type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceCompanies  Resource = "companies"
	ResourceStores     Resource = "stores"
	ResourceStaff      Resource = "staff"
	ResourceCategories Resource = "categories"
	ResourceProducts   Resource = "products"
	ResourceInventory  Resource = "inventory"
)

// Operation names a CRUD operation on a resource.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// policyTable is the single declarative source of per-operation allow-lists.
// A role absent from an entry has no access to that operation, full stop;
// there is no hierarchy or inheritance between roles. New endpoints must add
// a row here to be reachable at all, which keeps the check impossible to
// forget.
var policyTable = map[Resource]map[Operation][]domain.Role{
	ResourceUsers: {
		OpList:   {domain.RoleSuperAdmin},
		OpGet:    {domain.RoleSuperAdmin},
		OpCreate: {domain.RoleSuperAdmin},
		OpUpdate: {domain.RoleSuperAdmin},
		OpDelete: {domain.RoleSuperAdmin},
	},
	ResourceCompanies: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager},
		OpCreate: {domain.RoleSuperAdmin},
		OpUpdate: {domain.RoleSuperAdmin},
		OpDelete: {domain.RoleSuperAdmin},
	},
	ResourceStores: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager},
		OpCreate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpUpdate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpDelete: {domain.RoleSuperAdmin},
	},
	ResourceStaff: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager},
		OpCreate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpUpdate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpDelete: {domain.RoleSuperAdmin, domain.RoleManager},
	},
	ResourceCategories: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleStaff},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleStaff},
		OpCreate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpUpdate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpDelete: {domain.RoleSuperAdmin, domain.RoleManager},
	},
	ResourceProducts: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleStaff},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleStaff},
		OpCreate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpUpdate: {domain.RoleSuperAdmin, domain.RoleManager},
		OpDelete: {domain.RoleSuperAdmin, domain.RoleManager},
	},
	ResourceInventory: {
		OpList:   {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier},
		OpGet:    {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier},
		OpCreate: {domain.RoleSuperAdmin, domain.RoleManager, domain.RoleCashier},
	},
}

// AllowedRoles returns the allow-list for an operation. A missing entry
// means nobody is allowed.
func AllowedRoles(resource Resource, op Operation) []domain.Role {
	return policyTable[resource][op]
}

// Authorize evaluates an identity against an operation's allow-list. A nil
// identity is AUTH_REQUIRED; a role outside the list is
// INSUFFICIENT_PERMISSIONS with both sides of the mismatch in the details.
func Authorize(identity *Identity, resource Resource, op Operation) error {
	if identity == nil {
		return apperrors.NewUnauthorized("AUTH_REQUIRED", "authentication required")
	}
	allowed := AllowedRoles(resource, op)
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("INSUFFICIENT_PERMISSIONS", "role not permitted for this operation", map[string]any{
		"required_roles": allowed,
		"actual_role":    identity.Role,
	})
}

// Require returns middleware enforcing the allow-list for one operation.
func Require(resource Resource, op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := Authorize(identity, resource, op); err != nil {
			return err
		}
		return c.Next()
	}
}
