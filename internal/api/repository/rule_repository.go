package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RuleRepository defines the interface for trading rules and their daily checks.
type RuleRepository interface {
	Create(ctx context.Context, rule *entity.UserRule) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.UserRule, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRule, error)
	Update(ctx context.Context, rule *entity.UserRule) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	UpsertCheck(ctx context.Context, check *entity.UserRuleCheck) error
	FindChecks(ctx context.Context, userID uuid.UUID, from, to string) ([]entity.UserRuleCheck, error)
}

// NewRuleRepository creates a new GORM-based rule repository.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

type ruleRepository struct {
	db *gorm.DB
}

func (r *ruleRepository) Create(ctx context.Context, rule *entity.UserRule) error {
	return translate(r.db.WithContext(ctx).Create(rule).Error)
}

func (r *ruleRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.UserRule, error) {
	var rule entity.UserRule
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rule).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rule, nil
}

func (r *ruleRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRule, error) {
	var rules []entity.UserRule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) Update(ctx context.Context, rule *entity.UserRule) error {
	res := r.db.WithContext(ctx).
		Model(&entity.UserRule{}).
		Where("id = ? AND user_id = ?", rule.ID, rule.UserID).
		Select("title", "description", "is_active", "updated_at").
		Updates(rule)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a rule together with its check history.
func (r *ruleRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND rule_id = ?", userID, id).Delete(&entity.UserRuleCheck{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.UserRule{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpsertCheck records whether a rule was followed on a date, replacing an earlier answer.
func (r *ruleRepository) UpsertCheck(ctx context.Context, check *entity.UserRuleCheck) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rule_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"followed", "updated_at"}),
	}).Create(check).Error
	return translate(err)
}

// FindChecks retrieves checks with from <= date <= to. Empty bounds are open.
func (r *ruleRepository) FindChecks(ctx context.Context, userID uuid.UUID, from, to string) ([]entity.UserRuleCheck, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var checks []entity.UserRuleCheck
	if err := q.Order("date ASC").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
