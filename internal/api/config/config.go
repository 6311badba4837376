package config

import (
	"time"

	"golang-trading-journal/pkg/config"
)

// Auth holds token verification settings. Tokens are issued by the external auth provider.
type Auth struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	AdminEmail string `mapstructure:"admin_email"`
}

// Cache holds in-process cache TTLs.
type Cache struct {
	LeaderboardTTL  time.Duration `mapstructure:"leaderboard_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimit holds the per-client request rate settings.
type RateLimit struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	ExpiresIn         time.Duration `mapstructure:"expires_in"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Metrics   config.Metrics  `mapstructure:"metrics"`
	Auth      Auth            `mapstructure:"auth"`
	Cache     Cache           `mapstructure:"cache"`
	RateLimit RateLimit       `mapstructure:"rate_limit"`
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Cache.LeaderboardTTL <= 0 {
		cfg.Cache.LeaderboardTTL = time.Minute
	}
	if cfg.Cache.CleanupInterval <= 0 {
		cfg.Cache.CleanupInterval = 5 * time.Minute
	}
	return &cfg, nil
}
