package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/internal/worker/config"
	"golang-trading-journal/internal/worker/dto"
	"golang-trading-journal/pkg/common"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TradeEventService consumes the trade events stream published by the API.
type TradeEventService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Execute(ctx context.Context, event dto.TradeEvent) error
}

type tradeEventService struct {
	cfg         *config.Config
	log         *logger.Logger
	redisClient *redis.Client
	store       leaderboard.Store
}

// NewTradeEventService creates a new trade event service.
func NewTradeEventService(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, store leaderboard.Store) TradeEventService {
	return &tradeEventService{
		cfg:         cfg,
		log:         log,
		redisClient: redisClient,
		store:       store,
	}
}

func (s *tradeEventService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamTradeEvents, ">"},
		Count:    1,
		Block:    2 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	s.handle(ctx, streams[0].Messages[0])
}

// ProcessRetries claims messages that stayed pending longer than the max idle duration.
func (s *tradeEventService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamTradeEvents,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Worker.RedisStreamTradeEventsMaxIdleDuration,
		Start:    "0",
		Count:    10,
	}).Result()
	if err != nil {
		s.log.Error("Failed to claim pending trade events", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamTradeEvents))
		return
	}
	for _, msg := range msgs {
		s.handle(ctx, msg)
	}
}

func (s *tradeEventService) handle(ctx context.Context, message redis.XMessage) {
	event, err := ParseTradeEvent(message)
	if err != nil {
		// Malformed messages are dropped, never retried.
		s.log.Error("Dropping malformed trade event", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		_ = s.AckNDel(ctx, message.ID)
		return
	}

	loggerFields := []zap.Field{
		logger.StringField("message_id", message.ID),
		logger.StringField("type", event.Type),
		logger.StringField("user_id", event.UserID.String()),
		logger.IntField("trades", len(event.TradeIDs)),
	}
	s.log.Debug("Processing trade event", loggerFields...)

	if err := s.Execute(ctx, event); err != nil {
		loggerFields = append(loggerFields, logger.ErrorField(err))
		s.log.Error("Failed to execute trade event", loggerFields...)
		return
	}

	if err := s.AckNDel(ctx, message.ID); err != nil {
		loggerFields = append(loggerFields, logger.ErrorField(err))
		s.log.Error("Failed to acknowledge and delete trade event", loggerFields...)
		return
	}
	s.log.Debug("Trade event processed successfully", loggerFields...)
}

// Execute marks the leaderboard snapshots stale. The next refresh recomputes them.
func (s *tradeEventService) Execute(ctx context.Context, event dto.TradeEvent) error {
	if err := s.store.MarkDirty(ctx); err != nil {
		return fmt.Errorf("failed to mark leaderboard dirty: %w", err)
	}
	return nil
}

func (s *tradeEventService) AckNDel(ctx context.Context, messageID string) error {
	if err := s.redisClient.XAck(ctx, common.RedisStreamTradeEvents, common.RedisStreamGroup, messageID).Err(); err != nil {
		return err
	}
	return s.redisClient.XDel(ctx, common.RedisStreamTradeEvents, messageID).Err()
}

// ParseTradeEvent decodes the flat field map written by the API publisher.
func ParseTradeEvent(message redis.XMessage) (dto.TradeEvent, error) {
	event := dto.TradeEvent{MessageID: message.ID}

	typ, _ := message.Values["type"].(string)
	if typ == "" {
		return event, errors.New("field 'type' missing")
	}
	event.Type = typ

	rawUser, _ := message.Values["user_id"].(string)
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return event, fmt.Errorf("invalid user_id %q: %w", rawUser, err)
	}
	event.UserID = userID

	if raw, _ := message.Values["trade_ids"].(string); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(part)
			if err != nil {
				return event, fmt.Errorf("invalid trade id %q: %w", part, err)
			}
			event.TradeIDs = append(event.TradeIDs, id)
		}
	}

	if raw, _ := message.Values["occurred_at"].(string); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return event, fmt.Errorf("invalid occurred_at %q: %w", raw, err)
		}
		event.OccurredAt = at
	}
	return event, nil
}
