// Package health answers liveness and readiness probes for the auth API.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

const (
	statusUp   = "up"
	statusDown = "down"

	checkTimeout = 2 * time.Second
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one named readiness check.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

// Postgres checks that the pool can reach the database.
func Postgres(db Pinger) Dependency {
	return Dependency{Name: "postgres", Check: db.Ping}
}

// RoleFinder is satisfied by the role repositories.
type RoleFinder interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// DefaultRole checks that the role assigned on self-registration exists.
// Without it every signup fails, so the instance is not ready.
func DefaultRole(roles RoleFinder, name string) Dependency {
	return Dependency{
		Name: "default_role",
		Check: func(ctx context.Context) error {
			_, err := roles.FindByName(ctx, name)
			return err
		},
	}
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type Checker struct {
	deps   []Dependency
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker registers the auth_health_check_up gauge on reg.
func NewChecker(logger *slog.Logger, reg prometheus.Registerer, deps ...Dependency) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "auth",
		Name:      "health_check_up",
		Help:      "Whether a dependency is ready. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		deps:   deps,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: statusUp}
}

// Readiness runs every dependency check in order. Any failure marks the
// whole result down.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	result := HealthResult{
		Status: statusUp,
		Checks: make(map[string]CheckResult, len(c.deps)),
	}

	for _, dep := range c.deps {
		if err := dep.Check(checkCtx); err != nil {
			c.logger.WarnContext(ctx, "readiness check failed", "dependency", dep.Name, "error", err)
			result.Status = statusDown
			result.Checks[dep.Name] = CheckResult{Status: statusDown, Error: err.Error()}
			c.gauge.WithLabelValues(dep.Name).Set(0)
			continue
		}
		result.Checks[dep.Name] = CheckResult{Status: statusUp}
		c.gauge.WithLabelValues(dep.Name).Set(1)
	}

	return result
}

// WriteJSON writes result with 200 when up and 503 otherwise.
func WriteJSON(w http.ResponseWriter, result HealthResult) {
	status := http.StatusOK
	if result.Status != statusUp {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
