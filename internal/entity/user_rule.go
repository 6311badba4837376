package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRule is a discipline rule a trader checks off every day.
type UserRule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserRule) TableName() string {
	return "user_rules"
}

func (r *UserRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// UserRuleCheck records whether a rule was followed on a given day.
type UserRuleCheck struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RuleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_rule_checks_rule_date" json:"rule_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_rule_checks_rule_date" json:"date"`
	Followed  bool      `gorm:"not null" json:"followed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserRuleCheck) TableName() string {
	return "user_rule_checks"
}

func (c *UserRuleCheck) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
