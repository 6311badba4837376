package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a trading account a user logs trades against.
type Account struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Broker          string          `gorm:"type:varchar(100)" json:"broker"`
	StartingBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"starting_balance"`
	CurrentBalance  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"current_balance"`
	IsDefault       bool            `gorm:"not null;default:false" json:"is_default"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
