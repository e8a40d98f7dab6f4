package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleSuperAdmin, PermissionSettingsManage))
	assert.True(t, HasPermission(RoleHR, PermissionLocationsManage))
	assert.False(t, HasPermission(RoleHR, PermissionSettingsManage))
	assert.True(t, HasPermission(RoleUser, PermissionWorkdaysOwn))
	assert.False(t, HasPermission(RoleUser, PermissionReportsViewAll))
	assert.False(t, HasPermission(Role("owner"), PermissionWorkdaysOwn))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("hr")
	assert.True(t, ok)
	assert.Equal(t, RoleHR, r)

	_, ok = ParseRole("manager")
	assert.False(t, ok)
}

func TestPrincipal(t *testing.T) {
	admin := Principal{UserID: "u1", Role: RoleAdmin}
	assert.True(t, admin.CanViewAll())

	u := Principal{UserID: "u2", Role: RoleUser}
	assert.False(t, u.CanViewAll())
}
