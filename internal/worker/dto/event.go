package dto

import (
	"time"

	"github.com/google/uuid"
)

// TradeEvent is one message of the trade events stream.
type TradeEvent struct {
	MessageID  string
	Type       string
	UserID     uuid.UUID
	TradeIDs   []uuid.UUID
	OccurredAt time.Time
}
