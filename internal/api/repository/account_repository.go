package repository

import (
	"context"
	"errors"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Account, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NewAccountRepository creates a new GORM-based account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

type accountRepository struct {
	db *gorm.DB
}

// clearDefault unsets the default flag on every other account of the user.
func clearDefault(tx *gorm.DB, userID, keep uuid.UUID) error {
	return tx.Model(&entity.Account{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keep, true).
		Update("is_default", false).Error
}

// Create inserts an account. A new default account demotes the previous one in the same transaction.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if account.IsDefault {
			return clearDefault(tx, account.UserID, account.ID)
		}
		return nil
	}))
}

// FindByID retrieves an account owned by userID.
func (r *accountRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// FindAllByUser retrieves the accounts of a user, default first.
func (r *accountRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.Account, error) {
	var accounts []entity.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindDefault retrieves the default account of a user.
func (r *accountRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Account, error) {
	account, err := findDefault(r.db.WithContext(ctx), userID)
	if err != nil {
		return nil, translate(err)
	}
	return account, nil
}

func findDefault(tx *gorm.DB, userID uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	if err := tx.Where("user_id = ? AND is_default = ?", userID, true).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// promoteOldest makes the user's oldest account the default.
func promoteOldest(tx *gorm.DB, userID uuid.UUID) error {
	var oldest entity.Account
	err := tx.Where("user_id = ?", userID).Order("created_at ASC, id ASC").First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Model(&entity.Account{}).Where("id = ?", oldest.ID).Update("is_default", true).Error
}

// Update overwrites an account and keeps default exclusivity.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Account{}).
			Where("id = ? AND user_id = ?", account.ID, account.UserID).
			Select("name", "broker", "starting_balance", "current_balance", "is_default", "updated_at").
			Updates(account)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if account.IsDefault {
			return clearDefault(tx, account.UserID, account.ID)
		}
		return nil
	}))
}

// Delete removes an account. Its trades keep existing with no account. Deleting the default
// promotes the oldest remaining account.
func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Trade{}).
			Where("user_id = ? AND account_id = ?", userID, id).
			Update("account_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Account{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if _, err := findDefault(tx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
			return promoteOldest(tx, userID)
		} else if err != nil {
			return err
		}
		return nil
	})
}
