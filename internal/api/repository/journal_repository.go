package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JournalRepository defines the interface for daily journal data operations.
type JournalRepository interface {
	Upsert(ctx context.Context, journal *entity.DailyJournal) error
	FindByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.DailyJournal, error)
	FindRange(ctx context.Context, userID uuid.UUID, from, to string) ([]entity.DailyJournal, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

// NewJournalRepository creates a new GORM-based journal repository.
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

type journalRepository struct {
	db *gorm.DB
}

// Upsert writes the single entry for (user, date), replacing its content if it exists.
func (r *journalRepository) Upsert(ctx context.Context, journal *entity.DailyJournal) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pre_market_notes", "post_market_notes", "lessons",
			"mood_rating", "focus_rating", "discipline_rating", "goals", "updated_at",
		}),
	}).Create(journal).Error
	if err != nil {
		return translate(err)
	}
	return nil
}

// FindByDate retrieves the journal of a user for a YYYY-MM-DD date.
func (r *journalRepository) FindByDate(ctx context.Context, userID uuid.UUID, date string) (*entity.DailyJournal, error) {
	var journal entity.DailyJournal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&journal).Error
	if err != nil {
		return nil, translate(err)
	}
	return &journal, nil
}

// FindRange retrieves journals with from <= date <= to, oldest first. Empty bounds are open.
func (r *journalRepository) FindRange(ctx context.Context, userID uuid.UUID, from, to string) ([]entity.DailyJournal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var journals []entity.DailyJournal
	if err := q.Order("date ASC").Find(&journals).Error; err != nil {
		return nil, err
	}
	return journals, nil
}

func (r *journalRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&entity.DailyJournal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
