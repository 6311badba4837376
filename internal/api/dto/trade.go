package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeRequest is the DTO for creating or replacing a trade.
type TradeRequest struct {
	AccountID        *uuid.UUID       `json:"account_id" swaggertype:"string" format:"uuid"`
	Symbol           string           `json:"symbol" validate:"required,max=32"`
	Side             string           `json:"side" validate:"required,oneof=long short"`
	EntryTime        time.Time        `json:"entry_time" validate:"required"`
	EntryPrice       decimal.Decimal  `json:"entry_price" swaggertype:"number"`
	EntrySize        decimal.Decimal  `json:"entry_size" swaggertype:"number"`
	ExitTime         *time.Time       `json:"exit_time"`
	ExitPrice        *decimal.Decimal `json:"exit_price" swaggertype:"number"`
	ExitSize         *decimal.Decimal `json:"exit_size" swaggertype:"number"`
	StopLoss         *decimal.Decimal `json:"stop_loss" swaggertype:"number"`
	TakeProfit       *decimal.Decimal `json:"take_profit" swaggertype:"number"`
	GrossPnL         *decimal.Decimal `json:"gross_pnl" swaggertype:"number"`
	Commission       decimal.Decimal  `json:"commission" swaggertype:"number"`
	Fees             decimal.Decimal  `json:"fees" swaggertype:"number"`
	SetupID          *uuid.UUID       `json:"setup_id" swaggertype:"string" format:"uuid"`
	Session          string           `json:"session" validate:"max=32"`
	EmotionTags      []string         `json:"emotion_tags" validate:"max=20,dive,max=32"`
	EntryRating      *int             `json:"entry_rating" validate:"omitempty,min=1,max=5"`
	ExitRating       *int             `json:"exit_rating" validate:"omitempty,min=1,max=5"`
	ManagementRating *int             `json:"management_rating" validate:"omitempty,min=1,max=5"`
	Notes            string           `json:"notes"`
	IsPublic         bool             `json:"is_public"`
}

// TradeResponse is the DTO for API responses containing trade details.
type TradeResponse struct {
	ID               uuid.UUID        `json:"id" swaggertype:"string" format:"uuid"`
	AccountID        *uuid.UUID       `json:"account_id" swaggertype:"string" format:"uuid"`
	Symbol           string           `json:"symbol"`
	Side             string           `json:"side"`
	Status           string           `json:"status"`
	EntryTime        time.Time        `json:"entry_time"`
	EntryPrice       decimal.Decimal  `json:"entry_price" swaggertype:"number"`
	EntrySize        decimal.Decimal  `json:"entry_size" swaggertype:"number"`
	ExitTime         *time.Time       `json:"exit_time"`
	ExitPrice        *decimal.Decimal `json:"exit_price" swaggertype:"number"`
	ExitSize         *decimal.Decimal `json:"exit_size" swaggertype:"number"`
	StopLoss         *decimal.Decimal `json:"stop_loss" swaggertype:"number"`
	TakeProfit       *decimal.Decimal `json:"take_profit" swaggertype:"number"`
	GrossPnL         *decimal.Decimal `json:"gross_pnl" swaggertype:"number"`
	Commission       decimal.Decimal  `json:"commission" swaggertype:"number"`
	Fees             decimal.Decimal  `json:"fees" swaggertype:"number"`
	NetPnL           *decimal.Decimal `json:"net_pnl" swaggertype:"number"`
	RMultiple        *decimal.Decimal `json:"r_multiple" swaggertype:"number"`
	SetupID          *uuid.UUID       `json:"setup_id" swaggertype:"string" format:"uuid"`
	Session          string           `json:"session"`
	EmotionTags      []string         `json:"emotion_tags"`
	EntryRating      *int             `json:"entry_rating"`
	ExitRating       *int             `json:"exit_rating"`
	ManagementRating *int             `json:"management_rating"`
	Notes            string           `json:"notes"`
	IsPublic         bool             `json:"is_public"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TradeListQuery holds the trade list filters. Dates are YYYY-MM-DD and inclusive.
type TradeListQuery struct {
	From      string `query:"from"`
	To        string `query:"to"`
	Symbol    string `query:"symbol"`
	Side      string `query:"side" validate:"omitempty,oneof=long short"`
	SetupID   string `query:"setup_id" validate:"omitempty,uuid"`
	AccountID string `query:"account_id" validate:"omitempty,uuid"`
	Status    string `query:"status" validate:"omitempty,oneof=open closed"`
	Search    string `query:"q"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PerPage   int    `query:"per_page" validate:"omitempty,min=1,max=500"`
}

// TradeListResponse is one page of filtered trades.
type TradeListResponse struct {
	Data    []TradeResponse `json:"data"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// ReassignAccountRequest moves trades to another account. A null account detaches them.
type ReassignAccountRequest struct {
	TradeIDs  []uuid.UUID `json:"trade_ids" validate:"required,min=1" swaggertype:"array,string"`
	AccountID *uuid.UUID  `json:"account_id" swaggertype:"string" format:"uuid"`
}

// ReassignAccountResponse reports how many trades were moved.
type ReassignAccountResponse struct {
	Updated int64 `json:"updated"`
}

// ImportRowError describes why one CSV row was rejected. Row is 1-based and excludes the header.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors"`
}
