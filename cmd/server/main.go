package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ErlanBelekov/clean-auth/config"
	"github.com/ErlanBelekov/clean-auth/internal/access"
	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/health"
	"github.com/ErlanBelekov/clean-auth/internal/infrastructure/cache"
	"github.com/ErlanBelekov/clean-auth/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/clean-auth/internal/log"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/metrics"
	"github.com/ErlanBelekov/clean-auth/internal/security"
	httptransport "github.com/ErlanBelekov/clean-auth/internal/transport/http"
	"github.com/ErlanBelekov/clean-auth/internal/transport/http/handler"
	"github.com/ErlanBelekov/clean-auth/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog := messages.Default()
	if cfg.MessagesFile != "" {
		if catalog, err = messages.Load(cfg.MessagesFile); err != nil {
			log.Fatalf("messages: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := cache.NewRoleRepository(postgres.NewRoleRepository(pool), cfg.RoleCacheSize, cfg.RoleCacheTTL)

	// Crypto
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := security.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Use cases
	signUp := usecase.NewSignUpUsecase(userRepo, roleRepo, hasher, cfg.DefaultRole)
	login := usecase.NewLoginUsecase(userRepo, hasher, tokens)
	users := usecase.NewUserUsecase(userRepo)
	roles := usecase.NewRoleUsecase(roleRepo)

	handlers := httptransport.Handlers{
		Auth: handler.NewAuthHandler(
			controller.NewSignUpController(signUp, catalog, logger),
			controller.NewLoginController(login, catalog, logger),
			catalog,
		),
		Users: handler.NewUserHandler(
			controller.NewListUsersController(users, logger),
			controller.NewCreateUserController(signUp, roleRepo, cfg.DefaultRole, catalog, logger),
			catalog,
		),
		Roles: handler.NewRoleHandler(
			controller.NewCreateRoleController(roles, catalog, logger),
			catalog,
		),
	}
	guards := httptransport.Guards{
		Authenticator: access.NewAuthenticator(tokens, logger),
		ListUsers:     access.NewAuthorizer(userRepo, cfg.ListUsersRoles, logger),
		CreateUsers:   access.NewAuthorizer(userRepo, cfg.CreateUsersRoles, logger),
		ManageRoles:   access.NewAuthorizer(userRepo, cfg.ManageRolesRoles, logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Postgres(pool),
		health.DefaultRole(roleRepo, cfg.DefaultRole),
	)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, catalog, cfg.CORSAllowedOrigins, handlers, guards),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
