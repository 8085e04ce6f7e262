package domain

import (
	"slices"
	"time"
)

type Permission string

const (
	PermissionCreateAdmin     Permission = "create_admin"
	PermissionCreateDeveloper Permission = "create_developer"
	PermissionListAll         Permission = "list_all"
)

// Built-in role names seeded on a fresh database.
const (
	RoleAdmin     = "admin"
	RoleDeveloper = "developer"
	RoleUser      = "user"
)

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Has reports whether the role grants p.
func (r Role) Has(p Permission) bool {
	return slices.Contains(r.Permissions, p)
}

// ParsePermission maps a raw token onto the fixed enumeration.
func ParsePermission(s string) (Permission, bool) {
	switch p := Permission(s); p {
	case PermissionCreateAdmin, PermissionCreateDeveloper, PermissionListAll:
		return p, true
	}
	return "", false
}

// DefaultPermissions returns the permission bundle of a built-in role.
func DefaultPermissions(roleName string) []Permission {
	switch roleName {
	case RoleAdmin:
		return []Permission{PermissionCreateAdmin, PermissionCreateDeveloper, PermissionListAll}
	case RoleDeveloper:
		return []Permission{PermissionListAll}
	default:
		return []Permission{}
	}
}
