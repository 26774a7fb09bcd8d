package authz

// Role names as stored in users.user_role_name. The order encodes the
// administrative hierarchy: everything from Teacher up counts as school staff.
const (
	RoleStudent           = "student"
	RoleParent            = "parent"
	RoleTeacher           = "teacher"
	RoleDeputyPrincipal   = "deputy_principal"
	RolePrincipal         = "principal"
	RoleDistrictPrincipal = "district_principal"
	RoleRegionalPrincipal = "regional_principal"
	RoleMinistry          = "ministry"
)

var rank = map[string]int{
	RoleStudent:           1,
	RoleParent:            2,
	RoleTeacher:           3,
	RoleDeputyPrincipal:   4,
	RolePrincipal:         5,
	RoleDistrictPrincipal: 6,
	RoleRegionalPrincipal: 7,
	RoleMinistry:          8,
}

// Valid reports whether name is a known role.
func Valid(name string) bool {
	_, ok := rank[name]
	return ok
}

// IsStaff reports whether role is teacher-level or above.
func IsStaff(role string) bool {
	return rank[role] >= rank[RoleTeacher]
}

// AtLeast reports whether role sits at or above min in the hierarchy.
// Unknown roles never pass.
func AtLeast(role, min string) bool {
	r, ok := rank[role]
	if !ok {
		return false
	}
	return r >= rank[min]
}

// Staff lists every staff role, for route guards.
func Staff() []string {
	return []string{
		RoleTeacher,
		RoleDeputyPrincipal,
		RolePrincipal,
		RoleDistrictPrincipal,
		RoleRegionalPrincipal,
		RoleMinistry,
	}
}
