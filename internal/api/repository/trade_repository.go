package repository

import (
	"context"
	"time"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradeRepository defines the interface for trade data operations.
// Every read and write is scoped to the owning user.
type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	CreateBatch(ctx context.Context, trades []entity.Trade) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Trade, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Trade, error)
	FindBySetup(ctx context.Context, userID, setupID uuid.UUID) ([]entity.Trade, error)
	FindClosedByUsers(ctx context.Context, userIDs []uuid.UUID) ([]entity.Trade, error)
	Update(ctx context.Context, trade *entity.Trade) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ReassignAccount(ctx context.Context, userID uuid.UUID, tradeIDs []uuid.UUID, accountID *uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (trades int64, users int64, err error)
}

// NewTradeRepository creates a new GORM-based trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

type tradeRepository struct {
	db *gorm.DB
}

// Create inserts a new trade.
func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	return translate(r.db.WithContext(ctx).Create(trade).Error)
}

// CreateBatch inserts many trades in one transaction.
func (r *tradeRepository) CreateBatch(ctx context.Context, trades []entity.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).CreateInBatches(trades, 100).Error)
}

// FindByID retrieves a trade owned by userID.
func (r *tradeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Trade, error) {
	var trade entity.Trade
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trade).Error
	if err != nil {
		return nil, translate(err)
	}
	return &trade, nil
}

// FindAllByUser retrieves every trade of a user, newest entry first.
func (r *tradeRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Trade, error) {
	var trades []entity.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_time DESC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// FindBySetup retrieves the trades of a user tagged with a setup.
func (r *tradeRepository) FindBySetup(ctx context.Context, userID, setupID uuid.UUID) ([]entity.Trade, error) {
	var trades []entity.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND setup_id = ?", userID, setupID).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// FindClosedByUsers retrieves all closed trades of the given users.
func (r *tradeRepository) FindClosedByUsers(ctx context.Context, userIDs []uuid.UUID) ([]entity.Trade, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var trades []entity.Trade
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND status = ?", userIDs, entity.TradeStatusClosed).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// Update overwrites the stored trade. Last write wins.
func (r *tradeRepository) Update(ctx context.Context, trade *entity.Trade) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Where("id = ? AND user_id = ?", trade.ID, trade.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(trade)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trade owned by userID.
func (r *tradeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Trade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReassignAccount moves the given trades to accountID (nil detaches them). Trades of other users are untouched.
func (r *tradeRepository) ReassignAccount(ctx context.Context, userID uuid.UUID, tradeIDs []uuid.UUID, accountID *uuid.UUID) (int64, error) {
	if len(tradeIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Where("user_id = ? AND id IN ?", userID, tradeIDs).
		Update("account_id", accountID)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Count returns the number of trades across all users.
func (r *tradeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Trade{}).Count(&n).Error
	return n, err
}

// CountActiveSince counts trades created since the given time and the distinct users behind them.
func (r *tradeRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var trades, users int64
	q := r.db.WithContext(ctx).Model(&entity.Trade{}).Where("created_at >= ?", since)
	if err := q.Count(&trades).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Trade{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&users).Error; err != nil {
		return 0, 0, err
	}
	return trades, users, nil
}
