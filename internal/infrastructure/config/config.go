package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
	Ingest    IngestConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wellness"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int           `env:"REDIS_DB,        default=0"`
	DedupTTL time.Duration `env:"REDIS_DEDUP_TTL, default=1h"`
}

type DashboardConfig struct {
	Days     int           `env:"DASHBOARD_DAYS,      default=7"`
	CacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL, default=5m"`
}

type IngestConfig struct {
	Workers int `env:"INGEST_WORKERS, default=8"`
}

var ErrMissingSecret = errors.New("JWT_SECRET must be set outside development")

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, ErrMissingSecret
		}
		cfg.JWTSecret = "dev-secret"
	}
	if cfg.Dashboard.Days < 1 || cfg.Dashboard.Days > 90 {
		return nil, fmt.Errorf("config: DASHBOARD_DAYS must be within [1, 90], got %d", cfg.Dashboard.Days)
	}
	return &cfg, nil
}
