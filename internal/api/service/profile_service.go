package service

import (
	"context"
	"errors"
	"fmt"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
)

// ProfileService defines the interface for the caller's public profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.ProfileResponse, error)
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, log *logger.Logger) ProfileService {
	return &profileService{profileRepo: profileRepo, logger: log}
}

type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *logger.Logger
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToProfileResponse(profile), nil
}

// SaveProfile creates or replaces the caller's profile. A username taken by someone else is a conflict.
func (s *profileService) SaveProfile(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.ProfileResponse, error) {
	profile := &entity.Profile{
		ID:                userID,
		Username:          req.Username,
		DisplayName:       req.DisplayName,
		AvatarURL:         req.AvatarURL,
		Bio:               req.Bio,
		TimeZone:          req.TimeZone,
		IsPublic:          req.IsPublic,
		ShowOnLeaderboard: req.ShowOnLeaderboard,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, req.Username)
		}
		s.logger.ErrorContext(ctx, "Failed to save profile", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func mapToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                p.ID,
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		AvatarURL:         p.AvatarURL,
		Bio:               p.Bio,
		TimeZone:          p.TimeZone,
		IsPublic:          p.IsPublic,
		ShowOnLeaderboard: p.ShowOnLeaderboard,
		CreatedAt:         p.CreatedAt,
	}
}
