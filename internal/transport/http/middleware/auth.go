package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/access"
	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/reqctx"
)

const (
	userIDKey = "userID"
	roleKey   = "role"

	// legacyTokenHeader is accepted when no Authorization header is sent.
	legacyTokenHeader = "X-Access-Token"
)

type authenticator interface {
	Handle(ctx context.Context, credential string) controller.Response
}

type authorizer interface {
	Handle(ctx context.Context, userID string) controller.Response
}

// Authenticate resolves the bearer credential and sets "userID" in the gin
// context. It aborts with 401 on any failure.
func Authenticate(authn authenticator, catalog *messages.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := authn.Handle(c.Request.Context(), credential(c))
		if resp.Failed() {
			abort(c, catalog, resp)
			return
		}

		identity, _ := resp.Data.(access.Identity)
		c.Set(userIDKey, identity.UserID)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), identity.UserID))
		c.Next()
	}
}

// Authorize runs after Authenticate. It checks the caller's role against the
// authorizer's allow-list and sets "role" in the gin context.
func Authorize(authz authorizer, catalog *messages.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := authz.Handle(c.Request.Context(), c.GetString(userIDKey))
		if resp.Failed() {
			abort(c, catalog, resp)
			return
		}

		grant, _ := resp.Data.(access.Grant)
		c.Set(roleKey, grant.Role)
		c.Next()
	}
}

// RoleFrom returns the role Authorize stored for this request.
func RoleFrom(c *gin.Context) (domain.Role, bool) {
	v, ok := c.Get(roleKey)
	if !ok {
		return domain.Role{}, false
	}
	role, ok := v.(domain.Role)
	return role, ok
}

// credential returns "" unless the request carries "Bearer <token>" or the
// legacy token header. The scheme is matched case-insensitively.
func credential(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.GetHeader(legacyTokenHeader))
}

func abort(c *gin.Context, catalog *messages.Catalog, resp controller.Response) {
	c.AbortWithStatusJSON(resp.StatusCode, gin.H{"error": catalog.Message(resp.Err)})
}
