package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
)

type CreateRoleInput struct {
	Name        string
	Permissions []string
}

type RoleUsecase struct {
	roles repository.RoleSaver
}

func NewRoleUsecase(roles repository.RoleSaver) *RoleUsecase {
	return &RoleUsecase{roles: roles}
}

// CreateRole rejects tokens outside the permission enumeration with
// domain.ErrUnknownPermission and duplicate names with domain.ErrRoleExists.
// Duplicate tokens are collapsed, keeping first-seen order.
func (u *RoleUsecase) CreateRole(ctx context.Context, input CreateRoleInput) error {
	perms := make([]domain.Permission, 0, len(input.Permissions))
	seen := make(map[domain.Permission]struct{}, len(input.Permissions))
	for _, raw := range input.Permissions {
		p, ok := domain.ParsePermission(strings.TrimSpace(raw))
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownPermission, raw)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}

	role := &domain.Role{
		Name:        strings.TrimSpace(input.Name),
		Permissions: perms,
	}
	if err := u.roles.Save(ctx, role); err != nil {
		if errors.Is(err, domain.ErrRoleExists) {
			return domain.ErrRoleExists
		}
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}
