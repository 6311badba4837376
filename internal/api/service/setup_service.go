package service

import (
	"context"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
)

// SetupService defines the interface for managing setups. Setup statistics are computed on read.
type SetupService interface {
	CreateSetup(ctx context.Context, userID uuid.UUID, req *dto.SetupRequest) (*dto.SetupResponse, error)
	GetSetup(ctx context.Context, userID, id uuid.UUID) (*dto.SetupResponse, error)
	GetAllSetups(ctx context.Context, userID uuid.UUID) ([]*dto.SetupResponse, error)
	UpdateSetup(ctx context.Context, userID, id uuid.UUID, req *dto.SetupRequest) (*dto.SetupResponse, error)
	DeleteSetup(ctx context.Context, userID, id uuid.UUID) error
}

// NewSetupService creates a new setup service.
func NewSetupService(setupRepo repository.SetupRepository, tradeRepo repository.TradeRepository, log *logger.Logger) SetupService {
	return &setupService{setupRepo: setupRepo, tradeRepo: tradeRepo, logger: log}
}

type setupService struct {
	setupRepo repository.SetupRepository
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
}

func (s *setupService) CreateSetup(ctx context.Context, userID uuid.UUID, req *dto.SetupRequest) (*dto.SetupResponse, error) {
	setup := &entity.Setup{UserID: userID, Name: req.Name, Description: req.Description, Rules: req.Rules}
	if err := s.setupRepo.Create(ctx, setup); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create setup", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return mapToSetupResponse(setup, metrics.Summary{}), nil
}

func (s *setupService) GetSetup(ctx context.Context, userID, id uuid.UUID) (*dto.SetupResponse, error) {
	setup, err := s.setupRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.FindBySetup(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return mapToSetupResponse(setup, metrics.Summarize(entity.ToMetrics(trades))), nil
}

// GetAllSetups returns every setup with its statistics, from one pass over the user's trades.
func (s *setupService) GetAllSetups(ctx context.Context, userID uuid.UUID) ([]*dto.SetupResponse, error) {
	setups, err := s.setupRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := metrics.Breakdown(entity.ToMetrics(trades), metrics.BySetup)
	stats := make(map[string]metrics.Summary, len(rows))
	for _, r := range rows {
		stats[r.Key] = r.Summary
	}

	out := make([]*dto.SetupResponse, 0, len(setups))
	for i := range setups {
		out = append(out, mapToSetupResponse(&setups[i], stats[setups[i].ID.String()]))
	}
	return out, nil
}

func (s *setupService) UpdateSetup(ctx context.Context, userID, id uuid.UUID, req *dto.SetupRequest) (*dto.SetupResponse, error) {
	setup, err := s.setupRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	setup.Name = req.Name
	setup.Description = req.Description
	setup.Rules = req.Rules
	if err := s.setupRepo.Update(ctx, setup); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update setup", logger.ErrorField(err), logger.Field("setup_id", id))
		return nil, err
	}
	return s.GetSetup(ctx, userID, id)
}

func (s *setupService) DeleteSetup(ctx context.Context, userID, id uuid.UUID) error {
	return s.setupRepo.Delete(ctx, userID, id)
}

func mapToSetupResponse(setup *entity.Setup, stats metrics.Summary) *dto.SetupResponse {
	return &dto.SetupResponse{
		ID:          setup.ID,
		Name:        setup.Name,
		Description: setup.Description,
		Rules:       setup.Rules,
		Stats:       stats,
		CreatedAt:   setup.CreatedAt,
		UpdatedAt:   setup.UpdatedAt,
	}
}
