package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// SessionSecret may be left empty: a random secret is generated at
	// startup, at the cost of invalidating all sessions on restart.
	SessionSecret     string `env:"SESSION_SECRET"          validate:"omitempty,min=32"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MIN"         envDefault:"30" validate:"min=1,max=1440"`
	CartCookieMaxAge  int    `env:"CART_COOKIE_MAX_AGE"     envDefault:"0"  validate:"min=0"`

	FeaturedBrand       string `env:"FEATURED_BRAND"        envDefault:"Herbivore"`
	FeaturedLimit       int    `env:"FEATURED_LIMIT"        envDefault:"3" validate:"min=1,max=20"`
	FeaturedRefreshCron string `env:"FEATURED_REFRESH_CRON" envDefault:"@every 10m"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	OrdersEmail  string `env:"ORDERS_EMAIL"   envDefault:"orders@lunor.local"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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
