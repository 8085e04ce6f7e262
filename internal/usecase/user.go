package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type UserUsecase struct {
	users repository.UserLister
}

func NewUserUsecase(users repository.UserLister) *UserUsecase {
	return &UserUsecase{users: users}
}

// List falls back to the default page when page or limit is not positive.
// A limit above MaxLimit is capped.
func (u *UserUsecase) List(ctx context.Context, page, limit int) ([]*domain.User, error) {
	if page <= 0 || limit <= 0 {
		page, limit = DefaultPage, DefaultLimit
	}
	limit = min(limit, MaxLimit)

	users, err := u.users.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
