package access_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/ErlanBelekov/clean-auth/internal/access"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeVerifier struct {
	verify func(token string) (string, error)
	calls  int
}

func (v *fakeVerifier) Verify(token string) (string, error) {
	v.calls++
	return v.verify(token)
}

type fakeUsers struct {
	findByID func(ctx context.Context, id int64) (*domain.User, error)
	ids      []int64
}

func (u *fakeUsers) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	u.ids = append(u.ids, id)
	return u.findByID(ctx, id)
}

func userWithRole(name string) func(context.Context, int64) (*domain.User, error) {
	return func(_ context.Context, id int64) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.Role{ID: 1, Name: name, Permissions: domain.DefaultPermissions(name)}}, nil
	}
}

// ---- Authenticator ----

func TestAuthenticator_MissingCredential(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (string, error) { return "1", nil }}
	resp := access.NewAuthenticator(v, discard).Handle(context.Background(), "")

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if !errors.Is(resp.Err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", resp.Err)
	}
	if v.calls != 0 {
		t.Errorf("verifier called %d times, want 0", v.calls)
	}
}

func TestAuthenticator_RejectedCredential(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (string, error) { return "", errors.New("expired") }}
	resp := access.NewAuthenticator(v, discard).Handle(context.Background(), "tok")

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if !errors.Is(resp.Err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", resp.Err)
	}
}

func TestAuthenticator_ValidCredential(t *testing.T) {
	v := &fakeVerifier{verify: func(tok string) (string, error) {
		if tok != "good" {
			t.Errorf("verifier got %q", tok)
		}
		return "42", nil
	}}
	resp := access.NewAuthenticator(v, discard).Handle(context.Background(), "good")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	id, ok := resp.Data.(access.Identity)
	if !ok || id.UserID != "42" {
		t.Errorf("data = %#v, want Identity{42}", resp.Data)
	}
}

// ---- Authorizer ----

func TestAuthorizer_AllowedRole(t *testing.T) {
	users := &fakeUsers{findByID: userWithRole(domain.RoleAdmin)}
	z := access.NewAuthorizer(users, []string{domain.RoleAdmin, domain.RoleDeveloper}, discard)

	resp := z.Handle(context.Background(), "5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	grant, ok := resp.Data.(access.Grant)
	if !ok || grant.Role.Name != domain.RoleAdmin {
		t.Errorf("data = %#v, want admin grant", resp.Data)
	}
	if len(users.ids) != 1 || users.ids[0] != 5 {
		t.Errorf("lookups = %v, want [5]", users.ids)
	}
}

func TestAuthorizer_Denied(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		findByID func(context.Context, int64) (*domain.User, error)
		lookups  int
	}{
		{"role not allowed", "5", userWithRole(domain.RoleUser), 1},
		{"unknown user", "5", func(context.Context, int64) (*domain.User, error) { return nil, domain.ErrUserNotFound }, 1},
		{"lookup failure", "5", func(context.Context, int64) (*domain.User, error) { return nil, errors.New("db down") }, 1},
		{"non numeric id", "abc", userWithRole(domain.RoleAdmin), 0},
		{"zero id", "0", userWithRole(domain.RoleAdmin), 0},
		{"negative id", "-3", userWithRole(domain.RoleAdmin), 0},
		{"empty id", "", userWithRole(domain.RoleAdmin), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsers{findByID: tt.findByID}
			z := access.NewAuthorizer(users, []string{domain.RoleAdmin}, discard)

			resp := z.Handle(context.Background(), tt.userID)
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", resp.StatusCode)
			}
			if !errors.Is(resp.Err, domain.ErrAccessDenied) {
				t.Errorf("err = %v, want ErrAccessDenied", resp.Err)
			}
			if len(users.ids) != tt.lookups {
				t.Errorf("lookups = %d, want %d", len(users.ids), tt.lookups)
			}
		})
	}
}

func TestAuthorizer_EmptyAllowList(t *testing.T) {
	users := &fakeUsers{findByID: userWithRole(domain.RoleAdmin)}
	resp := access.NewAuthorizer(users, nil, discard).Handle(context.Background(), "1")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}
