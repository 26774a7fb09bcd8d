package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	for _, role := range []string{
		RoleStudent, RoleParent, RoleTeacher, RoleDeputyPrincipal,
		RolePrincipal, RoleDistrictPrincipal, RoleRegionalPrincipal, RoleMinistry,
	} {
		require.True(t, Valid(role), role)
	}
	require.False(t, Valid(""))
	require.False(t, Valid("admin"))
	require.False(t, Valid("Student"))
}

func TestIsStaff(t *testing.T) {
	require.False(t, IsStaff(RoleStudent))
	require.False(t, IsStaff(RoleParent))
	require.False(t, IsStaff("nobody"))

	for _, role := range Staff() {
		require.True(t, IsStaff(role), role)
	}
}

func TestAtLeast(t *testing.T) {
	require.True(t, AtLeast(RoleMinistry, RoleStudent))
	require.True(t, AtLeast(RolePrincipal, RolePrincipal))
	require.False(t, AtLeast(RoleTeacher, RolePrincipal))
	require.False(t, AtLeast("nobody", RoleStudent))
}

func TestStaffExcludesFamilies(t *testing.T) {
	for _, role := range Staff() {
		require.NotEqual(t, RoleStudent, role)
		require.NotEqual(t, RoleParent, role)
	}
	require.Len(t, Staff(), 6)
}
