package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public identity of a user. Its ID is the auth provider's user id.
type Profile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username          string    `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	DisplayName       string    `gorm:"type:varchar(100)" json:"display_name"`
	AvatarURL         string    `gorm:"type:text" json:"avatar_url"`
	Bio               string    `gorm:"type:text" json:"bio"`
	TimeZone          string    `gorm:"type:varchar(64)" json:"time_zone"`
	IsPublic          bool      `gorm:"not null;default:false" json:"is_public"`
	ShowOnLeaderboard bool      `gorm:"not null" json:"show_on_leaderboard"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
