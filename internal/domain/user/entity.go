package user

type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Full access
	RoleAdmin      Role = "admin"       // Manages users and locations
	RoleHR         Role = "hr"          // Reads everyone's data, manages locations
	RoleUser       Role = "user"        // Own data only
)

// ParseRole returns the role named by s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleUser:
		return r, true
	}
	return "", false
}

// Principal is the authenticated caller, read from the access token.
type Principal struct {
	UserID string
	Role   Role
}

// CanViewAll checks if the caller may read other users' days and reports
func (p Principal) CanViewAll() bool {
	return HasPermission(p.Role, PermissionReportsViewAll)
}
