package service

import (
	"context"
	"strings"
	"time"

	"golang-trading-journal/pkg/common"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type TradeEventType string

const (
	TradeEventCreated    TradeEventType = "created"
	TradeEventUpdated    TradeEventType = "updated"
	TradeEventDeleted    TradeEventType = "deleted"
	TradeEventImported   TradeEventType = "imported"
	TradeEventReassigned TradeEventType = "reassigned"
)

// TradeEvent tells the worker that a user's trades changed.
type TradeEvent struct {
	Type       TradeEventType
	UserID     uuid.UUID
	TradeIDs   []uuid.UUID
	OccurredAt time.Time
}

// TradeEventPublisher publishes trade mutations.
type TradeEventPublisher interface {
	Publish(ctx context.Context, event TradeEvent) error
}

// NewRedisTradeEventPublisher publishes to the trade events stream, trimmed to roughly maxLen entries.
func NewRedisTradeEventPublisher(client *redis.Client, maxLen int64) TradeEventPublisher {
	return &redisTradeEventPublisher{client: client, maxLen: maxLen}
}

type redisTradeEventPublisher struct {
	client *redis.Client
	maxLen int64
}

func (p *redisTradeEventPublisher) Publish(ctx context.Context, event TradeEvent) error {
	ids := make([]string, 0, len(event.TradeIDs))
	for _, id := range event.TradeIDs {
		ids = append(ids, id.String())
	}
	args := &redis.XAddArgs{
		Stream: common.RedisStreamTradeEvents,
		Values: map[string]interface{}{
			"type":        string(event.Type),
			"user_id":     event.UserID.String(),
			"trade_ids":   strings.Join(ids, ","),
			"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return p.client.XAdd(ctx, args).Err()
}

// NopTradeEventPublisher drops every event.
type NopTradeEventPublisher struct{}

func (NopTradeEventPublisher) Publish(context.Context, TradeEvent) error { return nil }
