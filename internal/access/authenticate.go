// Package access is the two-stage gate in front of protected routes:
// Authenticator turns a bearer credential into an Identity, then Authorizer
// loads the user's role and checks it against the route's allow-list.
// Both stages fail closed and never say why.
package access

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/metrics"
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Identity is the outcome of a successful authentication.
type Identity struct {
	UserID string `json:"userId"`
}

type Authenticator struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewAuthenticator(verifier TokenVerifier, logger *slog.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, logger: logger.With("component", "authenticator")}
}

// Handle answers 200 with an Identity, or 401 Unauthorized for a missing or
// rejected credential.
func (a *Authenticator) Handle(ctx context.Context, credential string) controller.Response {
	if credential == "" {
		metrics.AccessDecisionsTotal.WithLabelValues("authenticate", "missing").Inc()
		return controller.Unauthorized(domain.ErrUnauthorized)
	}

	userID, err := a.verifier.Verify(credential)
	if err != nil || userID == "" {
		a.logger.DebugContext(ctx, "credential rejected", "error", err)
		metrics.AccessDecisionsTotal.WithLabelValues("authenticate", "rejected").Inc()
		return controller.Unauthorized(domain.ErrUnauthorized)
	}

	metrics.AccessDecisionsTotal.WithLabelValues("authenticate", "allowed").Inc()
	return controller.OK(Identity{UserID: userID})
}
