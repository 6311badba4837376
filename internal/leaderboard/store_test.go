package leaderboard

import (
	"context"
	"testing"
	"time"

	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "leaderboard:week:total_pnl", Key(metrics.PeriodWeek, metrics.MetricTotalPnL))
	assert.Equal(t, "leaderboard:all:consistency", Key(metrics.PeriodAll, metrics.MetricConsistency))
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	client := startRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, metrics.PeriodMonth, metrics.MetricWinRate)
	assert.ErrorIs(t, err, ErrMiss)

	generated := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	snapshot := &entity.LeaderboardSnapshot{
		Period:      metrics.PeriodMonth,
		Metric:      metrics.MetricWinRate,
		GeneratedAt: generated,
		Entries: []entity.LeaderboardRow{
			{LeaderboardEntry: metrics.LeaderboardEntry{UserID: "u1", Rank: 1, Trades: 8, WinRate: 75, Value: 75}, Username: "alice"},
		},
	}
	require.NoError(t, store.Set(ctx, snapshot, time.Minute))

	got, err := store.Get(ctx, metrics.PeriodMonth, metrics.MetricWinRate)
	require.NoError(t, err)
	assert.True(t, generated.Equal(got.GeneratedAt))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "alice", got.Entries[0].Username)
	assert.Equal(t, 75.0, got.Entries[0].Value)

	ttl, err := client.TTL(ctx, Key(metrics.PeriodMonth, metrics.MetricWinRate)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	dirty, err := store.TakeDirty(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, store.MarkDirty(ctx))
	require.NoError(t, store.MarkDirty(ctx))
	dirty, err = store.TakeDirty(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	dirty, err = store.TakeDirty(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}
