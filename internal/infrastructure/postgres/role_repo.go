package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `
		SELECT id, name, permissions, created_at, updated_at
		FROM roles
		WHERE name = $1`

	var (
		role  domain.Role
		perms []string
	)
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&role.ID, &role.Name, &perms, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("scan role: %w", err)
	}
	role.Permissions = toPermissions(perms)
	return &role, nil
}

func (r *RoleRepository) Save(ctx context.Context, role *domain.Role) error {
	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, role.Name, fromPermissions(role.Permissions)).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleExists
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// Upsert inserts role or overwrites the permissions of the existing role with
// the same name. Used by the seeder.
func (r *RoleRepository) Upsert(ctx context.Context, role *domain.Role) error {
	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET permissions = EXCLUDED.permissions,
		    updated_at  = NOW()
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, role.Name, fromPermissions(role.Permissions)).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

func toPermissions(raw []string) []domain.Permission {
	perms := make([]domain.Permission, 0, len(raw))
	for _, p := range raw {
		perms = append(perms, domain.Permission(p))
	}
	return perms
}

func fromPermissions(perms []domain.Permission) []string {
	raw := make([]string, 0, len(perms))
	for _, p := range perms {
		raw = append(raw, string(p))
	}
	return raw
}
