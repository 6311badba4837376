package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardRepository reads the inputs of a leaderboard snapshot.
type LeaderboardRepository interface {
	FindVisibleProfiles(ctx context.Context) ([]entity.Profile, error)
	FindClosedTrades(ctx context.Context, userIDs []uuid.UUID) ([]entity.Trade, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) FindVisibleProfiles(ctx context.Context) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := r.db.WithContext(ctx).Where("show_on_leaderboard = ?", true).Find(&profiles).Error
	return profiles, err
}

func (r *leaderboardRepository) FindClosedTrades(ctx context.Context, userIDs []uuid.UUID) ([]entity.Trade, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var trades []entity.Trade
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND status = ?", userIDs, entity.TradeStatusClosed).
		Order("exit_time ASC").
		Find(&trades).Error
	return trades, err
}
