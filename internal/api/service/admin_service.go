package service

import (
	"context"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/pkg/logger"
)

const activityWindow = 7 * 24 * time.Hour

// AdminService defines the operator-only platform overview.
type AdminService interface {
	Overview(ctx context.Context) (*dto.AdminOverviewResponse, error)
}

// NewAdminService creates a new admin service.
func NewAdminService(
	profileRepo repository.ProfileRepository,
	tradeRepo repository.TradeRepository,
	squadRepo repository.SquadRepository,
	log *logger.Logger,
) AdminService {
	return &adminService{profileRepo: profileRepo, tradeRepo: tradeRepo, squadRepo: squadRepo, logger: log, now: time.Now}
}

type adminService struct {
	profileRepo repository.ProfileRepository
	tradeRepo   repository.TradeRepository
	squadRepo   repository.SquadRepository
	logger      *logger.Logger
	now         func() time.Time
}

func (s *adminService) Overview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	now := s.now()
	resp := &dto.AdminOverviewResponse{GeneratedAt: now}

	var err error
	if resp.Users, err = s.profileRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.Trades, err = s.tradeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.Squads, err = s.squadRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TradesLast7Days, resp.ActiveUsers7Day, err = s.tradeRepo.CountActiveSince(ctx, now.Add(-activityWindow)); err != nil {
		return nil, err
	}
	return resp, nil
}
