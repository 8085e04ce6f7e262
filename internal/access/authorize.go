package access

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/metrics"
	"github.com/ErlanBelekov/clean-auth/internal/repository"
)

// Grant is the outcome of a successful authorization. Role is forwarded so
// handlers do not have to load it again.
type Grant struct {
	Role domain.Role `json:"userRole"`
}

// Authorizer admits users whose role name is on the allow-list it was built
// with. One Authorizer is built per protected route group.
type Authorizer struct {
	users   repository.UserByIDFinder
	allowed []string
	logger  *slog.Logger
}

func NewAuthorizer(users repository.UserByIDFinder, allowedRoles []string, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		users:   users,
		allowed: slices.Clone(allowedRoles),
		logger:  logger.With("component", "authorizer"),
	}
}

// Handle answers 200 with a Grant, or 403 AccessDenied when the id is not a
// positive integer, the user does not exist, the lookup fails, or the role
// is not allowed.
func (z *Authorizer) Handle(ctx context.Context, userID string) controller.Response {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil || id <= 0 {
		return z.deny("invalid_id")
	}

	user, err := z.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			z.logger.ErrorContext(ctx, "load user for authorization", "user_id", id, "error", err)
			return z.deny("error")
		}
		return z.deny("unknown_user")
	}

	if !slices.Contains(z.allowed, user.Role.Name) {
		return z.deny("role")
	}

	metrics.AccessDecisionsTotal.WithLabelValues("authorize", "allowed").Inc()
	return controller.OK(Grant{Role: user.Role})
}

func (z *Authorizer) deny(reason string) controller.Response {
	metrics.AccessDecisionsTotal.WithLabelValues("authorize", "denied_"+reason).Inc()
	return controller.Forbidden(domain.ErrAccessDenied)
}
