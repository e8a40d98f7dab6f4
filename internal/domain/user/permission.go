package user

type Permission string

const (
	// Own data
	PermissionWorkdaysOwn Permission = "workdays.own"
	PermissionImportOwn   Permission = "import.own"
	PermissionReportsOwn  Permission = "reports.own"

	// Master data
	PermissionLocationsManage Permission = "locations.manage"
	PermissionSettingsManage  Permission = "settings.manage"

	// Reports
	PermissionReportsViewAll Permission = "reports.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionWorkdaysOwn,
		PermissionImportOwn,
		PermissionReportsOwn,
		PermissionLocationsManage,
		PermissionSettingsManage,
		PermissionReportsViewAll,
	},
	RoleAdmin: {
		PermissionWorkdaysOwn,
		PermissionImportOwn,
		PermissionReportsOwn,
		PermissionLocationsManage,
		PermissionSettingsManage,
		PermissionReportsViewAll,
	},
	RoleHR: {
		PermissionWorkdaysOwn,
		PermissionImportOwn,
		PermissionReportsOwn,
		PermissionLocationsManage,
		PermissionReportsViewAll,
	},
	RoleUser: {
		PermissionWorkdaysOwn,
		PermissionImportOwn,
		PermissionReportsOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
