package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error)
	FindLeaderboardVisible(ctx context.Context) ([]entity.Profile, error)
	Upsert(ctx context.Context, profile *entity.Profile) error
	Count(ctx context.Context) (int64, error)
}

// NewProfileRepository creates a new GORM-based profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

type profileRepository struct {
	db *gorm.DB
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []entity.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindLeaderboardVisible retrieves the profiles that opted into the public leaderboard.
func (r *profileRepository) FindLeaderboardVisible(ctx context.Context) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := r.db.WithContext(ctx).
		Where("show_on_leaderboard = ?", true).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert creates or replaces the profile. A taken username yields ErrDuplicate.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "display_name", "avatar_url", "bio", "time_zone",
			"is_public", "show_on_leaderboard", "updated_at",
		}),
	}).Create(profile).Error
	return translate(err)
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Profile{}).Count(&n).Error
	return n, err
}
