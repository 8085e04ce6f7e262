package repository

import (
	"context"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

// RoleByNameFinder returns domain.ErrRoleNotFound when no role has name.
type RoleByNameFinder interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// RoleSaver returns domain.ErrRoleExists on a duplicate name.
type RoleSaver interface {
	Save(ctx context.Context, role *domain.Role) error
}

type RoleRepository interface {
	RoleByNameFinder
	RoleSaver
}
