// Package leaderboard stores computed leaderboard snapshots in Redis. The worker writes them and
// the API reads them.
package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/common"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when no snapshot is stored for a period and metric.
var ErrMiss = errors.New("leaderboard snapshot not found")

var (
	Periods = []metrics.Period{metrics.PeriodWeek, metrics.PeriodMonth, metrics.PeriodAll}
	Metrics = []metrics.Metric{
		metrics.MetricTotalPnL,
		metrics.MetricWinRate,
		metrics.MetricProfitFactor,
		metrics.MetricAvgR,
		metrics.MetricConsistency,
	}
)

// Store reads and writes snapshots.
type Store interface {
	Get(ctx context.Context, period metrics.Period, metric metrics.Metric) (*entity.LeaderboardSnapshot, error)
	Set(ctx context.Context, snapshot *entity.LeaderboardSnapshot, ttl time.Duration) error
	MarkDirty(ctx context.Context) error
	// TakeDirty clears the dirty flag and reports whether it was set.
	TakeDirty(ctx context.Context) (bool, error)
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

type redisStore struct {
	client *redis.Client
}

// Key returns the Redis key of a snapshot.
func Key(period metrics.Period, metric metrics.Metric) string {
	return fmt.Sprintf(common.RedisKeyLeaderboard, period, metric)
}

func (s *redisStore) Get(ctx context.Context, period metrics.Period, metric metrics.Metric) (*entity.LeaderboardSnapshot, error) {
	raw, err := s.client.Get(ctx, Key(period, metric)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snapshot entity.LeaderboardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *redisStore) Set(ctx context.Context, snapshot *entity.LeaderboardSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.client.Set(ctx, Key(snapshot.Period, snapshot.Metric), raw, ttl).Err()
}

func (s *redisStore) MarkDirty(ctx context.Context) error {
	return s.client.Set(ctx, common.RedisKeyLeaderboardDirty, time.Now().UTC().Format(time.RFC3339), 0).Err()
}

func (s *redisStore) TakeDirty(ctx context.Context) (bool, error) {
	n, err := s.client.Del(ctx, common.RedisKeyLeaderboardDirty).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
