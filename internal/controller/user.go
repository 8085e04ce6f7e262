package controller

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/metrics"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
	"github.com/ErlanBelekov/clean-auth/internal/usecase"
	"github.com/ErlanBelekov/clean-auth/internal/validation"
)

type userLister interface {
	List(ctx context.Context, page, limit int) ([]*domain.User, error)
}

type ListUsersRequest struct {
	Page  string
	Limit string
}

type ListUsersController struct {
	users  userLister
	logger *slog.Logger
}

func NewListUsersController(users userLister, logger *slog.Logger) *ListUsersController {
	return &ListUsersController{users: users, logger: logger.With("component", "list_users_controller")}
}

// Handle uses page 1, limit 20 unless both query values are positive
// integers.
func (c *ListUsersController) Handle(ctx context.Context, req ListUsersRequest) Response {
	page, _ := strconv.Atoi(req.Page)
	limit, _ := strconv.Atoi(req.Limit)

	users, err := c.users.List(ctx, page, limit)
	if err != nil {
		return classify(err, c.logger, "list users")
	}
	return OK(users)
}

// CreateUserController lets an authorized caller register an account with a
// chosen role. The caller's own role must hold every permission of the
// granted role, and granting admin or developer also needs the matching
// create_* permission.
type CreateUserController struct {
	signUp      signUpper
	roles       repository.RoleByNameFinder
	defaultRole string
	catalog     *messages.Catalog
	logger      *slog.Logger
}

func NewCreateUserController(signUp signUpper, roles repository.RoleByNameFinder, defaultRole string, catalog *messages.Catalog, logger *slog.Logger) *CreateUserController {
	if defaultRole == "" {
		defaultRole = domain.RoleUser
	}
	return &CreateUserController{
		signUp:      signUp,
		roles:       roles,
		defaultRole: defaultRole,
		catalog:     catalog,
		logger:      logger.With("component", "create_user_controller"),
	}
}

func (c *CreateUserController) Handle(ctx context.Context, actor domain.Role, req SignUpRequest) Response {
	req = req.normalized()
	if err := validation.First(ctx, signUpValidators(c.catalog, req)...); err != nil {
		metrics.SignUpsTotal.WithLabelValues("invalid").Inc()
		return classify(err, c.logger, "validate create user")
	}

	roleName := req.Role
	if roleName == "" {
		roleName = c.defaultRole
	}
	target, err := c.roles.FindByName(ctx, roleName)
	if err != nil {
		resp := classify(err, c.logger, "find granted role")
		metrics.SignUpsTotal.WithLabelValues(outcome(resp)).Inc()
		return resp
	}

	if !mayGrant(actor, *target) {
		metrics.AccessDecisionsTotal.WithLabelValues("grant", "denied").Inc()
		return Forbidden(domain.ErrAccessDenied)
	}

	err = c.signUp.SignUp(ctx, usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: target.Name,
	})
	if err != nil {
		resp := classify(err, c.logger, "create user")
		metrics.SignUpsTotal.WithLabelValues(outcome(resp)).Inc()
		return resp
	}

	metrics.SignUpsTotal.WithLabelValues("created").Inc()
	return Created()
}

func mayGrant(actor, target domain.Role) bool {
	switch target.Name {
	case domain.RoleAdmin:
		if !actor.Has(domain.PermissionCreateAdmin) {
			return false
		}
	case domain.RoleDeveloper:
		if !actor.Has(domain.PermissionCreateDeveloper) {
			return false
		}
	}
	for _, p := range target.Permissions {
		if !actor.Has(p) {
			return false
		}
	}
	return true
}
