// Package cache holds read-through decorators over the repository
// interfaces.
package cache

import (
	"context"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
)

const (
	DefaultRoleCacheSize = 128
	DefaultRoleCacheTTL  = 5 * time.Minute
)

// RoleRepository caches role lookups by name. Misses and errors are never
// cached, so a role created elsewhere becomes visible on the next lookup.
// Permissions changed by another process are picked up once the entry
// expires.
type RoleRepository struct {
	next  repository.RoleRepository
	roles *lru.LRU[string, domain.Role]
}

func NewRoleRepository(next repository.RoleRepository, size int, ttl time.Duration) *RoleRepository {
	if size <= 0 {
		size = DefaultRoleCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultRoleCacheTTL
	}
	return &RoleRepository{
		next:  next,
		roles: lru.NewLRU[string, domain.Role](size, nil, ttl),
	}
}

func (c *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	if role, ok := c.roles.Get(name); ok {
		return clone(role), nil
	}

	role, err := c.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.roles.Add(name, *clone(*role))
	return role, nil
}

func (c *RoleRepository) Save(ctx context.Context, role *domain.Role) error {
	if err := c.next.Save(ctx, role); err != nil {
		return err
	}
	c.roles.Add(role.Name, *clone(*role))
	return nil
}

// clone keeps callers from mutating the cached permission slice.
func clone(role domain.Role) *domain.Role {
	role.Permissions = slices.Clone(role.Permissions)
	return &role
}
