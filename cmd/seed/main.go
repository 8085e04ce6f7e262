// seed creates the schema, the built-in roles and, when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set, an admin account.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/clean-auth/internal/log"
	"github.com/ErlanBelekov/clean-auth/internal/security"
	"github.com/ErlanBelekov/clean-auth/internal/usecase"
	"github.com/ErlanBelekov/clean-auth/internal/validation"
)

func main() {
	ctx := context.Background()
	logger := ctxlog.New(os.Getenv("ENV"), slog.LevelInfo)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	roles := postgres.NewRoleRepository(pool)
	for _, name := range []string{domain.RoleAdmin, domain.RoleDeveloper, domain.RoleUser} {
		role := &domain.Role{Name: name, Permissions: domain.DefaultPermissions(name)}
		if err := roles.Upsert(ctx, role); err != nil {
			log.Fatalf("seed role %s: %v", name, err)
		}
		logger.Info("role ready", "name", role.Name, "id", role.ID, "permissions", role.Permissions)
	}

	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Info("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin")
		return
	}

	if err := validation.First(ctx,
		validation.Of(email, "SEED_ADMIN_EMAIL").Email().Build()...,
	); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := validation.MinLength("SEED_ADMIN_PASSWORD", password, 8).Validate(ctx); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	signUp := usecase.NewSignUpUsecase(postgres.NewUserRepository(pool), roles, security.NewBcryptHasher(0), domain.RoleUser)
	err = signUp.SignUp(ctx, usecase.SignUpInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		RoleName: domain.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailInUse):
		logger.Info("admin already exists", "email", email)
	case err != nil:
		log.Fatalf("seed admin: %v", err)
	default:
		logger.Info("admin created", "email", email)
	}
}
