package service

import (
	"context"
	"time"

	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/pkg/utils"

	"github.com/google/uuid"
)

// locationResolver picks the time zone that defines a user's calendar day.
type locationResolver struct {
	profiles repository.ProfileRepository
	fallback *time.Location
}

func newLocationResolver(profiles repository.ProfileRepository, fallback string) locationResolver {
	return locationResolver{profiles: profiles, fallback: utils.LoadLocation(fallback)}
}

// resolve returns the profile time zone, or the configured default when the user has none.
func (r locationResolver) resolve(ctx context.Context, userID uuid.UUID) *time.Location {
	if r.profiles == nil {
		return r.fallback
	}
	profile, err := r.profiles.FindByID(ctx, userID)
	if err != nil || profile.TimeZone == "" {
		return r.fallback
	}
	return utils.LoadLocation(profile.TimeZone)
}
