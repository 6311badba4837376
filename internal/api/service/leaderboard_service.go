package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LeaderboardService defines the interface for the public leaderboard.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, q *dto.LeaderboardQuery) (*entity.LeaderboardSnapshot, error)
}

// NewLeaderboardService creates a leaderboard service that reads through an in-process cache and
// the shared snapshot store before computing a snapshot itself.
func NewLeaderboardService(
	profileRepo repository.ProfileRepository,
	tradeRepo repository.TradeRepository,
	store leaderboard.Store,
	ttl, cleanupInterval time.Duration,
	minTrades int,
	log *logger.Logger,
) LeaderboardService {
	return &leaderboardService{
		profileRepo:   profileRepo,
		tradeRepo:     tradeRepo,
		store:         store,
		inmemoryCache: cache.New(ttl, cleanupInterval),
		ttl:           ttl,
		minTrades:     minTrades,
		logger:        log,
		now:           time.Now,
	}
}

type leaderboardService struct {
	profileRepo   repository.ProfileRepository
	tradeRepo     repository.TradeRepository
	store         leaderboard.Store
	inmemoryCache *cache.Cache
	ttl           time.Duration
	minTrades     int
	logger        *logger.Logger
	now           func() time.Time
}

// GetLeaderboard returns the snapshot for the requested period and metric.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, q *dto.LeaderboardQuery) (*entity.LeaderboardSnapshot, error) {
	period, metric, err := parseLeaderboardQuery(q)
	if err != nil {
		return nil, err
	}
	key := leaderboard.Key(period, metric)

	if cached, ok := s.inmemoryCache.Get(key); ok {
		return cached.(*entity.LeaderboardSnapshot), nil
	}

	if s.store != nil {
		snapshot, err := s.store.Get(ctx, period, metric)
		if err == nil {
			s.inmemoryCache.Set(key, snapshot, cache.DefaultExpiration)
			return snapshot, nil
		}
		if !errors.Is(err, leaderboard.ErrMiss) {
			s.logger.WarnContext(ctx, "Failed to read leaderboard snapshot", logger.ErrorField(err), logger.StringField("key", key))
		}
	}

	snapshot, err := s.compute(ctx, period, metric)
	if err != nil {
		return nil, err
	}
	s.inmemoryCache.Set(key, snapshot, cache.DefaultExpiration)
	if s.store != nil {
		if err := s.store.Set(ctx, snapshot, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "Failed to store leaderboard snapshot", logger.ErrorField(err), logger.StringField("key", key))
		}
	}
	return snapshot, nil
}

func (s *leaderboardService) compute(ctx context.Context, period metrics.Period, metric metrics.Metric) (*entity.LeaderboardSnapshot, error) {
	profiles, err := s.profileRepo.FindLeaderboardVisible(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	trades, err := s.tradeRepo.FindClosedByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	snapshot := entity.NewLeaderboardSnapshot(profiles, trades, metrics.LeaderboardOptions{
		Period:    period,
		Metric:    metric,
		Now:       s.now(),
		MinTrades: s.minTrades,
	})
	s.logger.DebugContext(ctx, "Leaderboard computed",
		logger.StringField("period", string(period)),
		logger.StringField("metric", string(metric)),
		logger.IntField("entries", len(snapshot.Entries)),
	)
	return &snapshot, nil
}

// parseLeaderboardQuery applies the defaults: the last week ranked by total P&L.
func parseLeaderboardQuery(q *dto.LeaderboardQuery) (metrics.Period, metrics.Metric, error) {
	period, metric := metrics.PeriodWeek, metrics.MetricTotalPnL
	if q == nil {
		return period, metric, nil
	}
	if q.Period != "" {
		period = metrics.Period(q.Period)
	}
	if q.Metric != "" {
		metric = metrics.Metric(q.Metric)
	}
	if !metrics.ValidPeriod(period) {
		return "", "", fmt.Errorf("%w: unknown period %q", ErrValidation, q.Period)
	}
	if !metrics.ValidMetric(metric) {
		return "", "", fmt.Errorf("%w: unknown metric %q", ErrValidation, q.Metric)
	}
	return period, metric, nil
}
