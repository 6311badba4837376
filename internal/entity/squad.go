package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SquadRole string

const (
	SquadRoleOwner  SquadRole = "owner"
	SquadRoleAdmin  SquadRole = "admin"
	SquadRoleMember SquadRole = "member"
)

// Squad is a group of traders holding each other accountable.
type Squad struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(100);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	IsPrivate   bool          `gorm:"not null;default:false" json:"is_private"`
	Members     []SquadMember `gorm:"foreignKey:SquadID" json:"members,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Squad) TableName() string {
	return "squads"
}

func (s *Squad) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SquadMember links a user to a squad with a role.
type SquadMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SquadID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_squad_members_squad_user" json:"squad_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_squad_members_squad_user" json:"user_id"`
	Role     SquadRole `gorm:"type:varchar(10);not null" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (SquadMember) TableName() string {
	return "squad_members"
}

func (m *SquadMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
