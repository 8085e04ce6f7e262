package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret  string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"3h" validate:"min=1m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`

	DefaultRole   string        `env:"DEFAULT_ROLE"    envDefault:"user" validate:"required"`
	MessagesFile  string        `env:"MESSAGES_FILE"`
	RoleCacheSize int           `env:"ROLE_CACHE_SIZE" envDefault:"128" validate:"min=1"`
	RoleCacheTTL  time.Duration `env:"ROLE_CACHE_TTL"  envDefault:"5m"  validate:"min=1s"`

	// Role allow-lists per protected route group.
	ListUsersRoles   []string `env:"LIST_USERS_ROLES"   envDefault:"admin,developer" envSeparator:"," validate:"min=1,dive,required"`
	CreateUsersRoles []string `env:"CREATE_USERS_ROLES" envDefault:"admin"           envSeparator:"," validate:"min=1,dive,required"`
	ManageRolesRoles []string `env:"MANAGE_ROLES_ROLES" envDefault:"admin"           envSeparator:"," validate:"min=1,dive,required"`

	// Browser origins allowed by CORS; "*" allows any.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:"," validate:"min=1,dive,required"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ListUsersRoles = trimAll(cfg.ListUsersRoles)
	cfg.CreateUsersRoles = trimAll(cfg.CreateUsersRoles)
	cfg.ManageRolesRoles = trimAll(cfg.ManageRolesRoles)
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
