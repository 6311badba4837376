package consumer

import (
	"context"
	"sync"
	"time"

	"golang-trading-journal/internal/worker/config"
	"golang-trading-journal/internal/worker/service"
	"golang-trading-journal/pkg/common"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/utils"

	"github.com/robfig/cron/v3"
)

// RedisConsumer runs the stream readers, retry tickers and cron jobs of the worker.
type RedisConsumer struct {
	cfg                *config.Config
	tradeEventService  service.TradeEventService
	leaderboardRefresh service.LeaderboardRefreshService
	logger             *logger.Logger
	cron               *cron.Cron
	stopChan           chan struct{}
	wg                 sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	tradeEventService service.TradeEventService,
	leaderboardRefresh service.LeaderboardRefreshService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:                cfg,
		tradeEventService:  tradeEventService,
		leaderboardRefresh: leaderboardRefresh,
		logger:             log,
		cron:               cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stopChan:           make(chan struct{}),
	}
}

// Start begins processing. It fails only when the cron expression is invalid.
func (c *RedisConsumer) Start(ctx context.Context) error {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.tradeEventService.ProcessTask, common.RedisStreamTradeEvents, c.cfg.Worker.RedisStreamTradeEventsTimeout)

	//handle retry
	c.RegisterTickerHandler(ctx, c.tradeEventService.ProcessRetries, c.cfg.Worker.RedisStreamTradeEventsRetryInterval, c.cfg.Worker.RedisStreamTradeEventsTimeout, common.RedisStreamTradeEvents+"-retry")

	if err := c.RegisterCronHandler(ctx, c.leaderboardRefresh.RefreshIfNeeded, c.cfg.Worker.LeaderboardCron, c.cfg.Worker.LeaderboardTimeout, "leaderboard-refresh"); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// RegisterCronHandler schedules fn with a standard cron expression or a descriptor such as "@every 1m".
func (c *RedisConsumer) RegisterCronHandler(ctx context.Context, fn func(ctx context.Context), spec string, timeout time.Duration, name string) error {
	c.logger.Info("Registering cron handler",
		logger.Field("name", name),
		logger.Field("spec", spec),
		logger.Field("timeout", timeout))
	_, err := c.cron.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		fn(ctxTimeout)
	})
	return err
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	<-c.cron.Stop().Done()
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
