package consumer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang-trading-journal/internal/worker/config"
	"golang-trading-journal/internal/worker/dto"
	"golang-trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEvents struct {
	tasks   atomic.Int32
	retries atomic.Int32
}

func (c *countingEvents) ProcessTask(ctx context.Context) {
	c.tasks.Add(1)
	<-ctx.Done()
}

func (c *countingEvents) ProcessRetries(context.Context) { c.retries.Add(1) }

func (c *countingEvents) Execute(context.Context, dto.TradeEvent) error { return nil }

type countingRefresh struct {
	runs atomic.Int32
}

func (c *countingRefresh) RefreshIfNeeded(context.Context) { c.runs.Add(1) }

func (c *countingRefresh) Refresh(context.Context) error { return nil }

func testConfig(cronSpec string) *config.Config {
	cfg := &config.Config{}
	cfg.Worker.RedisStreamTradeEventsTimeout = 20 * time.Millisecond
	cfg.Worker.RedisStreamTradeEventsRetryInterval = 10 * time.Millisecond
	cfg.Worker.LeaderboardCron = cronSpec
	cfg.Worker.LeaderboardTimeout = time.Second
	return cfg
}

func TestRedisConsumer_RunsHandlersUntilStopped(t *testing.T) {
	events, refresh := &countingEvents{}, &countingRefresh{}
	c := NewRedisConsumer(testConfig("@every 1s"), events, refresh, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Start(ctx))

	assert.Eventually(t, func() bool {
		return events.tasks.Load() >= 2 && events.retries.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return refresh.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	c.Stop()
}

func TestRedisConsumer_RejectsInvalidCron(t *testing.T) {
	c := NewRedisConsumer(testConfig("every minute please"), &countingEvents{}, &countingRefresh{}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, c.Start(ctx))

	cancel()
	c.Stop()
}
