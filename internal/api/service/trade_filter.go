package service

import (
	"fmt"
	"strings"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/utils"

	"github.com/google/uuid"
)

// tradeFilter is the in-memory trade list filter. Zero-valued criteria match everything.
type tradeFilter struct {
	from      time.Time
	to        time.Time
	symbol    string
	side      entity.TradeSide
	setupID   *uuid.UUID
	accountID *uuid.UUID
	status    entity.TradeStatus
	search    string
}

func newTradeFilter(q *dto.TradeListQuery, loc *time.Location) (*tradeFilter, error) {
	f := &tradeFilter{
		symbol: strings.TrimSpace(q.Symbol),
		side:   entity.TradeSide(q.Side),
		status: entity.TradeStatus(q.Status),
		search: strings.ToLower(strings.TrimSpace(q.Search)),
	}

	if q.From != "" {
		from, err := utils.ParseDate(q.From, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrValidation)
		}
		f.from = from
	}
	if q.To != "" {
		to, err := utils.ParseDate(q.To, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrValidation)
		}
		// inclusive: everything before the next local midnight
		f.to = to.AddDate(0, 0, 1)
	}
	if q.SetupID != "" {
		id, err := uuid.Parse(q.SetupID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid setup_id", ErrValidation)
		}
		f.setupID = &id
	}
	if q.AccountID != "" {
		id, err := uuid.Parse(q.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid account_id", ErrValidation)
		}
		f.accountID = &id
	}
	return f, nil
}

func (f *tradeFilter) match(t *entity.Trade) bool {
	if !f.from.IsZero() && t.EntryTime.Before(f.from) {
		return false
	}
	if !f.to.IsZero() && !t.EntryTime.Before(f.to) {
		return false
	}
	if f.symbol != "" && !strings.EqualFold(t.Symbol, f.symbol) {
		return false
	}
	if f.side != "" && t.Side != f.side {
		return false
	}
	if f.status != "" && t.Status != f.status {
		return false
	}
	if f.setupID != nil && (t.SetupID == nil || *t.SetupID != *f.setupID) {
		return false
	}
	if f.accountID != nil && (t.AccountID == nil || *t.AccountID != *f.accountID) {
		return false
	}
	if f.search != "" &&
		!strings.Contains(strings.ToLower(t.Symbol), f.search) &&
		!strings.Contains(strings.ToLower(t.Notes), f.search) {
		return false
	}
	return true
}
