package dto

import (
	"time"

	"golang-trading-journal/internal/metrics"

	"github.com/google/uuid"
)

// ProfileRequest is the DTO for creating or updating the caller's profile.
type ProfileRequest struct {
	Username          string `json:"username" validate:"required,min=3,max=50,alphanum"`
	DisplayName       string `json:"display_name" validate:"max=100"`
	AvatarURL         string `json:"avatar_url" validate:"omitempty,url"`
	Bio               string `json:"bio" validate:"max=500"`
	TimeZone          string `json:"time_zone" validate:"omitempty,timezone"`
	IsPublic          bool   `json:"is_public"`
	ShowOnLeaderboard bool   `json:"show_on_leaderboard"`
}

// ProfileResponse is the DTO for a profile.
type ProfileResponse struct {
	ID                uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"display_name"`
	AvatarURL         string    `json:"avatar_url"`
	Bio               string    `json:"bio"`
	TimeZone          string    `json:"time_zone"`
	IsPublic          bool      `json:"is_public"`
	ShowOnLeaderboard bool      `json:"show_on_leaderboard"`
	CreatedAt         time.Time `json:"created_at"`
}

// SquadRequest is the DTO for creating a squad.
type SquadRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPrivate   bool   `json:"is_private"`
}

// SquadMemberResponse is one member of a squad.
type SquadMemberResponse struct {
	UserID   uuid.UUID `json:"user_id" swaggertype:"string" format:"uuid"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// SquadResponse is the DTO for a squad.
type SquadResponse struct {
	ID          uuid.UUID             `json:"id" swaggertype:"string" format:"uuid"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	OwnerID     uuid.UUID             `json:"owner_id" swaggertype:"string" format:"uuid"`
	IsPrivate   bool                  `json:"is_private"`
	Members     []SquadMemberResponse `json:"members"`
	CreatedAt   time.Time             `json:"created_at"`
}

// SquadChallengesResponse is the collective weekly progress of a squad.
type SquadChallengesResponse struct {
	SquadID     uuid.UUID              `json:"squad_id" swaggertype:"string" format:"uuid"`
	WindowStart time.Time              `json:"window_start"`
	WindowEnd   time.Time              `json:"window_end"`
	Challenges  []metrics.GoalProgress `json:"challenges"`
}
