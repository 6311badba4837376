package service

import (
	"context"
	"testing"
	"time"

	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/pkg/common"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestParseTradeEvent(t *testing.T) {
	user, tradeA, tradeB := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr bool
		trades  int
	}{
		{
			name: "complete",
			values: map[string]interface{}{
				"type":        "imported",
				"user_id":     user.String(),
				"trade_ids":   tradeA.String() + "," + tradeB.String(),
				"occurred_at": "2024-05-15T12:00:00.5Z",
			},
			trades: 2,
		},
		{
			name:   "no trade ids",
			values: map[string]interface{}{"type": "deleted", "user_id": user.String()},
		},
		{
			name:    "missing type",
			values:  map[string]interface{}{"user_id": user.String()},
			wantErr: true,
		},
		{
			name:    "bad user",
			values:  map[string]interface{}{"type": "created", "user_id": "nope"},
			wantErr: true,
		},
		{
			name:    "bad trade id",
			values:  map[string]interface{}{"type": "created", "user_id": user.String(), "trade_ids": "x"},
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			values:  map[string]interface{}{"type": "created", "user_id": user.String(), "occurred_at": "yesterday"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseTradeEvent(redis.XMessage{ID: "1-0", Values: tt.values})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user, event.UserID)
			assert.Equal(t, "1-0", event.MessageID)
			assert.Len(t, event.TradeIDs, tt.trades)
		})
	}
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

func TestTradeEventService_ConsumesAndMarksDirty(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	require.NoError(t, client.XGroupCreateMkStream(ctx, common.RedisStreamTradeEvents, common.RedisStreamGroup, "0").Err())

	store := leaderboard.NewRedisStore(client)
	svc := NewTradeEventService(testConfig(), logger.NewNop(), client, store)

	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamTradeEvents,
		Values: map[string]interface{}{"type": "created", "user_id": uuid.New().String(), "trade_ids": uuid.New().String()},
	}).Err())

	svc.ProcessTask(ctx)

	dirty, err := store.TakeDirty(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	length, err := client.XLen(ctx, common.RedisStreamTradeEvents).Result()
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestTradeEventService_RetriesPendingMessages(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	require.NoError(t, client.XGroupCreateMkStream(ctx, common.RedisStreamTradeEvents, common.RedisStreamGroup, "0").Err())

	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamTradeEvents,
		Values: map[string]interface{}{"type": "deleted", "user_id": uuid.New().String()},
	}).Err())
	// Read without acking, as a consumer that crashed mid-message would.
	_, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: "crashed",
		Streams:  []string{common.RedisStreamTradeEvents, ">"},
		Count:    1,
	}).Result()
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	store := leaderboard.NewRedisStore(client)
	svc := NewTradeEventService(testConfig(), logger.NewNop(), client, store)
	svc.ProcessRetries(ctx)

	dirty, err := store.TakeDirty(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	pending, err := client.XPending(ctx, common.RedisStreamTradeEvents, common.RedisStreamGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}
