package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/ErlanBelekov/clean-auth/internal/access"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/transport/http/handler"
	"github.com/ErlanBelekov/clean-auth/internal/transport/http/middleware"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Users *handler.UserHandler
	Roles *handler.RoleHandler
}

// Guards holds one Authorizer per protected route group, each built with its
// own role allow-list.
type Guards struct {
	Authenticator *access.Authenticator
	ListUsers     *access.Authorizer
	CreateUsers   *access.Authorizer
	ManageRoles   *access.Authorizer
}

func NewRouter(logger *slog.Logger, catalog *messages.Catalog, corsOrigins []string, h Handlers, g Guards) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(corsOrigins))
	// request_id comes from the context handler, not slog-gin's own header.
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(middleware.Metrics())

	authn := middleware.Authenticate(g.Authenticator, catalog)

	api := r.Group("/api")
	api.POST("/sign-up", h.Auth.SignUp)
	api.POST("/login", h.Auth.Login)

	api.GET("/users", authn, middleware.Authorize(g.ListUsers, catalog), h.Users.List)
	api.POST("/users", authn, middleware.Authorize(g.CreateUsers, catalog), h.Users.Create)
	api.POST("/roles", authn, middleware.Authorize(g.ManageRoles, catalog), h.Roles.Create)

	return r
}
