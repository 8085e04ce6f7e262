package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
	"github.com/ErlanBelekov/clean-auth/internal/validation"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// PasswordComparer reports a mismatch as false, nil.
type PasswordComparer interface {
	Compare(hash, plaintext string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// ---- login ----

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string `json:"accessToken"`
}

type LoginUsecase struct {
	users    repository.UserByEmailFinder
	comparer PasswordComparer
	tokens   TokenIssuer
}

func NewLoginUsecase(users repository.UserByEmailFinder, comparer PasswordComparer, tokens TokenIssuer) *LoginUsecase {
	return &LoginUsecase{users: users, comparer: comparer, tokens: tokens}
}

// Login returns nil, nil when the credentials do not match. An unknown
// email and a wrong password are indistinguishable to the caller.
func (u *LoginUsecase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := u.users.FindByEmail(ctx, validation.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.comparer.Compare(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, nil
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginOutput{AccessToken: token}, nil
}

// ---- signup ----

type signUpUsers interface {
	repository.UserByEmailFinder
	repository.UserSaver
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	RoleName string // empty = default role
}

type SignUpUsecase struct {
	users       signUpUsers
	roles       repository.RoleByNameFinder
	hasher      PasswordHasher
	defaultRole string
}

func NewSignUpUsecase(users signUpUsers, roles repository.RoleByNameFinder, hasher PasswordHasher, defaultRole string) *SignUpUsecase {
	if defaultRole == "" {
		defaultRole = domain.RoleUser
	}
	return &SignUpUsecase{users: users, roles: roles, hasher: hasher, defaultRole: defaultRole}
}

// SignUp assumes the input fields were already validated. It returns
// domain.ErrRoleNotFound or domain.ErrEmailInUse for business-rule
// failures; anything else is unexpected.
func (u *SignUpUsecase) SignUp(ctx context.Context, input SignUpInput) error {
	roleName := strings.TrimSpace(input.RoleName)
	if roleName == "" {
		roleName = u.defaultRole
	}

	role, err := u.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return domain.ErrRoleNotFound
		}
		return fmt.Errorf("find role: %w", err)
	}

	email := validation.NormalizeEmail(input.Email)
	if err := validation.EmailInUse(u.users, email).Validate(ctx); err != nil {
		return err
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         *role,
	}
	// Save reports ErrEmailInUse when a concurrent signup won the insert.
	if err := u.users.Save(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return domain.ErrEmailInUse
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
