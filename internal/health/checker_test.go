package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/health"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockRoles struct {
	err   error
	names []string
}

func (m *mockRoles) FindByName(_ context.Context, name string) (*domain.Role, error) {
	m.names = append(m.names, name)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Role{Name: name}, nil
}

func newTestChecker(deps ...health.Dependency) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return health.NewChecker(logger, reg, deps...), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(health.Postgres(&mockPinger{err: errors.New("db down")}))

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	roles := &mockRoles{}
	c, reg := newTestChecker(health.Postgres(&mockPinger{}), health.DefaultRole(roles, domain.RoleUser))

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	for _, name := range []string{"postgres", "default_role"} {
		if got := result.Checks[name].Status; got != "up" {
			t.Errorf("%s = %q, want up", name, got)
		}
		if gauge := testGauge(t, reg, "auth_health_check_up", name); gauge != 1 {
			t.Errorf("%s gauge = %f, want 1", name, gauge)
		}
	}
	if len(roles.names) != 1 || roles.names[0] != domain.RoleUser {
		t.Errorf("role lookups = %v, want [user]", roles.names)
	}
}

func TestReadiness_PostgresDown(t *testing.T) {
	c, reg := newTestChecker(health.Postgres(&mockPinger{err: errors.New("connection refused")}))

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	pg := result.Checks["postgres"]
	if pg.Status != "down" {
		t.Fatalf("expected postgres down, got %s", pg.Status)
	}
	if pg.Error == "" {
		t.Fatal("expected error message")
	}

	gauge := testGauge(t, reg, "auth_health_check_up", "postgres")
	if gauge != 0 {
		t.Fatalf("expected gauge 0, got %f", gauge)
	}
}

func TestReadiness_DefaultRoleMissing(t *testing.T) {
	c, reg := newTestChecker(
		health.Postgres(&mockPinger{}),
		health.DefaultRole(&mockRoles{err: domain.ErrRoleNotFound}, domain.RoleUser),
	)

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	if got := result.Checks["postgres"].Status; got != "up" {
		t.Errorf("postgres = %q, want up", got)
	}
	if got := result.Checks["default_role"].Status; got != "down" {
		t.Errorf("default_role = %q, want down", got)
	}
	if gauge := testGauge(t, reg, "auth_health_check_up", "default_role"); gauge != 0 {
		t.Errorf("default_role gauge = %f, want 0", gauge)
	}
}

func TestReadiness_NoDependencies(t *testing.T) {
	c, _ := newTestChecker()

	if result := c.Readiness(context.Background()); result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
}

func TestWriteJSON_StatusCodes(t *testing.T) {
	up := httptest.NewRecorder()
	health.WriteJSON(up, health.HealthResult{Status: "up"})
	if up.Code != http.StatusOK {
		t.Errorf("up: status = %d, want 200", up.Code)
	}

	down := httptest.NewRecorder()
	health.WriteJSON(down, health.HealthResult{Status: "down"})
	if down.Code != http.StatusServiceUnavailable {
		t.Errorf("down: status = %d, want 503", down.Code)
	}
	if ct := down.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}
