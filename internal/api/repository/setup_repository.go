package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SetupRepository defines the interface for setup data operations.
type SetupRepository interface {
	Create(ctx context.Context, setup *entity.Setup) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Setup, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Setup, error)
	Update(ctx context.Context, setup *entity.Setup) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NewSetupRepository creates a new GORM-based setup repository.
func NewSetupRepository(db *gorm.DB) SetupRepository {
	return &setupRepository{db: db}
}

type setupRepository struct {
	db *gorm.DB
}

func (r *setupRepository) Create(ctx context.Context, setup *entity.Setup) error {
	return translate(r.db.WithContext(ctx).Create(setup).Error)
}

func (r *setupRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Setup, error) {
	var setup entity.Setup
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&setup).Error
	if err != nil {
		return nil, translate(err)
	}
	return &setup, nil
}

func (r *setupRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Setup, error) {
	var setups []entity.Setup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&setups).Error
	if err != nil {
		return nil, err
	}
	return setups, nil
}

func (r *setupRepository) Update(ctx context.Context, setup *entity.Setup) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Setup{}).
		Where("id = ? AND user_id = ?", setup.ID, setup.UserID).
		Select("name", "description", "rules", "updated_at").
		Updates(setup)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a setup and untags its trades.
func (r *setupRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Trade{}).
			Where("user_id = ? AND setup_id = ?", userID, id).
			Update("setup_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Setup{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
