package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
)

type emailInUse struct {
	users repository.UserByEmailFinder
	email string
}

// EmailInUse fails with domain.ErrEmailInUse when the email is already
// registered.
func EmailInUse(users repository.UserByEmailFinder, email string) Validator {
	return emailInUse{users: users, email: NormalizeEmail(email)}
}

func (v emailInUse) Validate(ctx context.Context) error {
	_, err := v.users.FindByEmail(ctx, v.email)
	switch {
	case err == nil:
		return domain.ErrEmailInUse
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("find user by email: %w", err)
	}
}

type emailExists struct {
	users repository.UserByEmailFinder
	email string
}

// EmailExists fails with domain.ErrEmailNotFound when no account uses the
// email.
func EmailExists(users repository.UserByEmailFinder, email string) Validator {
	return emailExists{users: users, email: NormalizeEmail(email)}
}

func (v emailExists) Validate(ctx context.Context) error {
	_, err := v.users.FindByEmail(ctx, v.email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.ErrEmailNotFound
	default:
		return fmt.Errorf("find user by email: %w", err)
	}
}
