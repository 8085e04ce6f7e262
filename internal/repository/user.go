package repository

import (
	"context"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

// Consumers depend on the single capability they use, so each one can be
// faked on its own in tests. The Postgres adapter implements all of them.

// UserByEmailFinder returns domain.ErrUserNotFound when no user has email.
type UserByEmailFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserByIDFinder returns domain.ErrUserNotFound when no user has id.
type UserByIDFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserSaver returns domain.ErrEmailInUse when the email is already taken.
type UserSaver interface {
	Save(ctx context.Context, user *domain.User) error
}

// UserLister pages through users; page is 1-based.
type UserLister interface {
	List(ctx context.Context, page, limit int) ([]*domain.User, error)
}

type UserRepository interface {
	UserByEmailFinder
	UserByIDFinder
	UserSaver
	UserLister
}
