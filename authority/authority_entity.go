package authority

import "strings"

const (
	RoleAdmin     = "admin"
	RoleAdminRoot = "admin_root"
)

type Permissions []string

func (c Permissions) HasRole(role string) bool {
	for _, v := range c {
		if strings.EqualFold(v, role) {
			return true
		}
	}
	return false
}

// HasAdminRole reports whether the caller carries the administrator
// capability required by admin-only lifecycle operations.
func (c Permissions) HasAdminRole() bool {
	return c.HasRole(RoleAdmin) || c.HasRole(RoleAdminRoot)
}
