//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/infrastructure/postgres"
)

// newPool starts a throwaway Postgres, applies the schema and seeds the
// built-in roles.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("auth_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Running it twice must be harmless.
	if err := postgres.Migrate(ctx, pool); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	roles := postgres.NewRoleRepository(pool)
	for _, name := range []string{domain.RoleAdmin, domain.RoleDeveloper, domain.RoleUser} {
		if err := roles.Upsert(ctx, &domain.Role{Name: name, Permissions: domain.DefaultPermissions(name)}); err != nil {
			t.Fatalf("upsert role %s: %v", name, err)
		}
	}
	return pool
}

func TestRoleRepository(t *testing.T) {
	ctx := context.Background()
	roles := postgres.NewRoleRepository(newPool(t))

	admin, err := roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("FindByName(admin): %v", err)
	}
	if !admin.Has(domain.PermissionCreateAdmin) || len(admin.Permissions) != 3 {
		t.Errorf("admin permissions = %v", admin.Permissions)
	}

	if _, err := roles.FindByName(ctx, "ghost"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Errorf("FindByName(ghost) err = %v, want ErrRoleNotFound", err)
	}

	auditor := &domain.Role{Name: "auditor", Permissions: []domain.Permission{domain.PermissionListAll}}
	if err := roles.Save(ctx, auditor); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if auditor.ID == 0 || auditor.CreatedAt.IsZero() {
		t.Errorf("saved role not filled in: %+v", auditor)
	}
	if err := roles.Save(ctx, &domain.Role{Name: "auditor"}); !errors.Is(err, domain.ErrRoleExists) {
		t.Errorf("duplicate Save err = %v, want ErrRoleExists", err)
	}

	// Upsert overwrites the permission bundle of an existing role.
	if err := roles.Upsert(ctx, &domain.Role{Name: "auditor", Permissions: []domain.Permission{}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := roles.FindByName(ctx, "auditor")
	if err != nil {
		t.Fatalf("FindByName(auditor): %v", err)
	}
	if got.ID != auditor.ID || len(got.Permissions) != 0 {
		t.Errorf("after upsert = %+v, want same id and no permissions", got)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	pool := newPool(t)
	users := postgres.NewUserRepository(pool)
	roles := postgres.NewRoleRepository(pool)

	dev, err := roles.FindByName(ctx, domain.RoleDeveloper)
	if err != nil {
		t.Fatalf("FindByName(developer): %v", err)
	}

	ann := &domain.User{Name: "Ann Lee", Email: "ann@example.com", PasswordHash: "hash", Role: *dev}
	if err := users.Save(ctx, ann); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ann.ID == 0 {
		t.Fatal("Save did not fill in the id")
	}

	dup := &domain.User{Name: "Other", Email: "ann@example.com", PasswordHash: "hash", Role: *dev}
	if err := users.Save(ctx, dup); !errors.Is(err, domain.ErrEmailInUse) {
		t.Errorf("duplicate Save err = %v, want ErrEmailInUse", err)
	}

	byEmail, err := users.FindByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.ID != ann.ID || byEmail.PasswordHash != "hash" || byEmail.Role.Name != domain.RoleDeveloper {
		t.Errorf("FindByEmail = %+v", byEmail)
	}
	if !byEmail.Role.Has(domain.PermissionListAll) {
		t.Errorf("joined role permissions = %v", byEmail.Role.Permissions)
	}

	byID, err := users.FindByID(ctx, ann.ID)
	if err != nil || byID.Email != "ann@example.com" {
		t.Errorf("FindByID = %+v, %v", byID, err)
	}

	if _, err := users.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByEmail miss err = %v, want ErrUserNotFound", err)
	}
	if _, err := users.FindByID(ctx, 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByID miss err = %v, want ErrUserNotFound", err)
	}

	for _, email := range []string{"b@example.com", "c@example.com"} {
		if err := users.Save(ctx, &domain.User{Name: "Someone", Email: email, PasswordHash: "h", Role: *dev}); err != nil {
			t.Fatalf("Save %s: %v", email, err)
		}
	}
	page2, err := users.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page2) != 1 || page2[0].Email != "c@example.com" {
		t.Errorf("List(2, 2) = %d users, want only c@example.com", len(page2))
	}
	empty, err := users.List(ctx, 5, 20)
	if err != nil || len(empty) != 0 {
		t.Errorf("List past the end = %d users, %v", len(empty), err)
	}
}
