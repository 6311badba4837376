package entity

import (
	"time"

	"golang-trading-journal/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TradeSide string

const (
	SideLong  TradeSide = "long"
	SideShort TradeSide = "short"
)

type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Trade is a single journaled position, owned by exactly one user.
type Trade struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID        *uuid.UUID                  `gorm:"type:uuid;index" json:"account_id"`
	Symbol           string                      `gorm:"type:varchar(32);not null" json:"symbol"`
	Side             TradeSide                   `gorm:"type:varchar(10);not null" json:"side"`
	EntryTime        time.Time                   `gorm:"not null" json:"entry_time"`
	EntryPrice       decimal.Decimal             `gorm:"type:numeric(18,6);not null" json:"entry_price"`
	EntrySize        decimal.Decimal             `gorm:"type:numeric(18,6);not null" json:"entry_size"`
	ExitTime         *time.Time                  `json:"exit_time"`
	ExitPrice        decimal.NullDecimal         `gorm:"type:numeric(18,6)" json:"exit_price"`
	ExitSize         decimal.NullDecimal         `gorm:"type:numeric(18,6)" json:"exit_size"`
	StopLoss         decimal.NullDecimal         `gorm:"type:numeric(18,6)" json:"stop_loss"`
	TakeProfit       decimal.NullDecimal         `gorm:"type:numeric(18,6)" json:"take_profit"`
	GrossPnL         decimal.NullDecimal         `gorm:"column:gross_pnl;type:numeric(18,6)" json:"gross_pnl"`
	Commission       decimal.Decimal             `gorm:"type:numeric(18,6);not null;default:0" json:"commission"`
	Fees             decimal.Decimal             `gorm:"type:numeric(18,6);not null;default:0" json:"fees"`
	NetPnL           decimal.NullDecimal         `gorm:"column:net_pnl;type:numeric(18,6)" json:"net_pnl"`
	RMultiple        decimal.NullDecimal         `gorm:"column:r_multiple;type:numeric(12,4)" json:"r_multiple"`
	Status           TradeStatus                 `gorm:"type:varchar(10);not null;index" json:"status"`
	SetupID          *uuid.UUID                  `gorm:"type:uuid;index" json:"setup_id"`
	Session          string                      `gorm:"type:varchar(32)" json:"session"`
	EmotionTags      datatypes.JSONSlice[string] `json:"emotion_tags"`
	EntryRating      *int                        `json:"entry_rating"`
	ExitRating       *int                        `json:"exit_rating"`
	ManagementRating *int                        `json:"management_rating"`
	Notes            string                      `gorm:"type:text" json:"notes"`
	IsPublic         bool                        `gorm:"not null;default:false" json:"is_public"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Trade model.
func (Trade) TableName() string {
	return "trades"
}

// BeforeCreate assigns an ID when the caller did not.
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Derive fills gross/net P&L, R-multiple and status from the raw fields.
//
// Gross P&L supplied by the caller is kept; otherwise it is computed from prices. Net P&L and
// R-multiple are only defined once an exit price exists, and R-multiple additionally needs a stop.
func (t *Trade) Derive() {
	if !t.ExitPrice.Valid {
		t.GrossPnL = decimal.NullDecimal{}
		t.NetPnL = decimal.NullDecimal{}
		t.RMultiple = decimal.NullDecimal{}
		t.Status = TradeStatusOpen
		return
	}

	if !t.GrossPnL.Valid {
		qty := t.EntrySize
		if t.ExitSize.Valid && t.ExitSize.Decimal.IsPositive() {
			qty = t.ExitSize.Decimal
		}
		move := t.ExitPrice.Decimal.Sub(t.EntryPrice)
		if t.Side == SideShort {
			move = move.Neg()
		}
		t.GrossPnL = decimal.NewNullDecimal(move.Mul(qty))
	}

	net := t.GrossPnL.Decimal.Sub(t.Commission).Sub(t.Fees)
	t.NetPnL = decimal.NewNullDecimal(net)

	t.RMultiple = decimal.NullDecimal{}
	if t.StopLoss.Valid {
		risk := t.EntryPrice.Sub(t.StopLoss.Decimal).Abs().Mul(t.EntrySize)
		if risk.IsPositive() {
			t.RMultiple = decimal.NewNullDecimal(net.DivRound(risk, 4))
		}
	}

	if t.ExitTime != nil {
		t.Status = TradeStatusClosed
	} else {
		t.Status = TradeStatusOpen
	}
}

// IsClosed reports whether the trade has both an exit price and an exit time.
func (t *Trade) IsClosed() bool {
	return t.ExitPrice.Valid && t.ExitTime != nil
}

// ToMetric maps the row onto the metrics engine's input type.
func (t *Trade) ToMetric() metrics.Trade {
	mt := metrics.Trade{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Symbol:    t.Symbol,
		Side:      string(t.Side),
		Session:   t.Session,
		EntryTime: t.EntryTime,
		ExitTime:  t.ExitTime,
		Closed:    t.IsClosed(),
	}
	if t.AccountID != nil {
		mt.AccountID = t.AccountID.String()
	}
	if t.SetupID != nil {
		mt.SetupID = t.SetupID.String()
	}
	if t.NetPnL.Valid {
		mt.NetPnL = t.NetPnL.Decimal.InexactFloat64()
	}
	if t.RMultiple.Valid {
		r := t.RMultiple.Decimal.InexactFloat64()
		mt.RMultiple = &r
	}
	return mt
}

// ToMetrics maps a slice of rows.
func ToMetrics(trades []Trade) []metrics.Trade {
	out := make([]metrics.Trade, 0, len(trades))
	for i := range trades {
		out = append(out, trades[i].ToMetric())
	}
	return out
}
