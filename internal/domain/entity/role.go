package entity

// Role names stored in users.role
const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
	RoleUser       = "User"
)

// Roles lists every assignable role.
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleUser}
