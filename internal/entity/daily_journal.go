package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JournalGoal is one checklist item of a daily journal.
type JournalGoal struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DailyJournal is the single journal entry of a user for one calendar day.
type DailyJournal struct {
	ID               uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                        `gorm:"type:uuid;not null;uniqueIndex:idx_daily_journals_user_date" json:"user_id"`
	Date             string                           `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_journals_user_date" json:"date"`
	PreMarketNotes   string                           `gorm:"type:text" json:"pre_market_notes"`
	PostMarketNotes  string                           `gorm:"type:text" json:"post_market_notes"`
	Lessons          string                           `gorm:"type:text" json:"lessons"`
	MoodRating       *int                             `json:"mood_rating"`
	FocusRating      *int                             `json:"focus_rating"`
	DisciplineRating *int                             `json:"discipline_rating"`
	Goals            datatypes.JSONSlice[JournalGoal] `json:"goals"`
	CreatedAt        time.Time                        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyJournal) TableName() string {
	return "daily_journals"
}

func (j *DailyJournal) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
