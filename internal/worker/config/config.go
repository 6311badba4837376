package config

import (
	"time"

	"golang-trading-journal/pkg/config"
)

// Worker holds worker-specific configuration.
type Worker struct {
	RedisStreamTradeEventsTimeout         time.Duration `mapstructure:"redis_stream_trade_events_timeout"`
	RedisStreamTradeEventsRetryInterval   time.Duration `mapstructure:"redis_stream_trade_events_retry_interval"`
	RedisStreamTradeEventsMaxIdleDuration time.Duration `mapstructure:"redis_stream_trade_events_max_idle_duration"`

	// Leaderboard refresh
	LeaderboardCron    string        `mapstructure:"leaderboard_cron"`
	LeaderboardTimeout time.Duration `mapstructure:"leaderboard_timeout"`
	LeaderboardTTL     time.Duration `mapstructure:"leaderboard_ttl"`
	// LeaderboardMaxAge forces a refresh without trade events so rolling windows move forward.
	LeaderboardMaxAge time.Duration `mapstructure:"leaderboard_max_age"`
}

// Config holds the full configuration for the worker service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Metrics  config.Metrics  `mapstructure:"metrics"`
	Worker   Worker          `mapstructure:"worker"`
}

// Load loads the worker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	w := &cfg.Worker
	if w.RedisStreamTradeEventsTimeout <= 0 {
		w.RedisStreamTradeEventsTimeout = 10 * time.Second
	}
	if w.RedisStreamTradeEventsRetryInterval <= 0 {
		w.RedisStreamTradeEventsRetryInterval = 30 * time.Second
	}
	if w.RedisStreamTradeEventsMaxIdleDuration <= 0 {
		w.RedisStreamTradeEventsMaxIdleDuration = time.Minute
	}
	if w.LeaderboardCron == "" {
		w.LeaderboardCron = "@every 1m"
	}
	if w.LeaderboardTimeout <= 0 {
		w.LeaderboardTimeout = 30 * time.Second
	}
	if w.LeaderboardTTL <= 0 {
		w.LeaderboardTTL = 15 * time.Minute
	}
	if w.LeaderboardMaxAge <= 0 {
		w.LeaderboardMaxAge = 10 * time.Minute
	}
	return &cfg, nil
}
