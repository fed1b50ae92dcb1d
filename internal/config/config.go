package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration. Values come from the environment;
// a .env file loaded by main supplements it during development.
type Config struct {
	Port      string `env:"PORT,         default=8080"`
	Env       string `env:"APP_ENV,      default=development"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`
	JWTSecret string `env:"JWT_SECRET,   default=dev-secret-change-me"`

	DatabaseDSN string `env:"DATABASE_DSN, default=file:practice.db"`
	Migrations  bool   `env:"MIGRATIONS,   default=false"`
	DBDebug     bool   `env:"DB_DEBUG,     default=false"`

	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	// Billing defaults, overridable per invoice.
	VATRate float64 `env:"VAT_RATE, default=0.24"`
	DueDays int     `env:"DUE_DAYS, default=14"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Production reports whether the app runs with production settings.
func (c *Config) Production() bool { return c.Env == "production" }
