package domain

// Role enumerates account roles. Authorization is allow-list based per
// operation; no rank ordering between roles is assumed anywhere.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
	RoleCashier    Role = "cashier"
	RoleStaff      Role = "staff"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleSuperAdmin, RoleManager, RoleCashier, RoleStaff:
		return true
	}
	return false
}

// SelfRegisterRole reports whether the role may be claimed through open
// registration. Privileged roles are assigned by an administrator only.
func SelfRegisterRole(s string) bool {
	switch Role(s) {
	case RoleCashier, RoleStaff:
		return true
	}
	return false
}
