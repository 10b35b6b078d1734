package authorization

import "strings"

type UserRole string

const (
	RoleTenant     UserRole = "TENANT"
	RoleManager    UserRole = "MANAGER"
	RoleTechnician UserRole = "TECHNICIAN"
)

// AllRoles lists every role a user can hold
var AllRoles = []UserRole{RoleTenant, RoleManager, RoleTechnician}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsManager() bool {
	return r == RoleManager
}

func (r UserRole) IsTechnician() bool {
	return r == RoleTechnician
}

func (r UserRole) IsTenant() bool {
	return r == RoleTenant
}

func (r UserRole) IsValid() bool {
	return r == RoleTenant || r == RoleManager || r == RoleTechnician
}

// ParseUserRole parses a role name case-insensitively. ok is false for unknown roles.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	return role, role.IsValid()
}
