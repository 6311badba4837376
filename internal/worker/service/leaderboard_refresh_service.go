package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/internal/worker/config"
	"golang-trading-journal/internal/worker/repository"
	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
)

// LeaderboardRefreshService recomputes the stored leaderboard snapshots.
type LeaderboardRefreshService interface {
	// RefreshIfNeeded refreshes when trades changed or the snapshots are older than the max age.
	RefreshIfNeeded(ctx context.Context)
	Refresh(ctx context.Context) error
}

type leaderboardRefreshService struct {
	cfg   *config.Config
	log   *logger.Logger
	repo  repository.LeaderboardRepository
	store leaderboard.Store
	now   func() time.Time

	mu          sync.Mutex
	lastRefresh time.Time
}

// NewLeaderboardRefreshService creates a new leaderboard refresh service.
func NewLeaderboardRefreshService(cfg *config.Config, log *logger.Logger, repo repository.LeaderboardRepository, store leaderboard.Store) LeaderboardRefreshService {
	return &leaderboardRefreshService{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

func (s *leaderboardRefreshService) RefreshIfNeeded(ctx context.Context) {
	dirty, err := s.store.TakeDirty(ctx)
	if err != nil {
		s.log.Error("Failed to read leaderboard dirty flag", logger.ErrorField(err))
		return
	}

	s.mu.Lock()
	stale := s.lastRefresh.IsZero() || s.now().Sub(s.lastRefresh) >= s.cfg.Worker.LeaderboardMaxAge
	s.mu.Unlock()
	if !dirty && !stale {
		return
	}

	if err := s.Refresh(ctx); err != nil {
		s.log.Error("Failed to refresh leaderboard", logger.ErrorField(err))
		if dirty {
			// Keep the flag so the next tick tries again.
			if err := s.store.MarkDirty(ctx); err != nil {
				s.log.Error("Failed to restore leaderboard dirty flag", logger.ErrorField(err))
			}
		}
	}
}

// Refresh computes every period and metric combination from one read of the database.
func (s *leaderboardRefreshService) Refresh(ctx context.Context) error {
	started := s.now()

	profiles, err := s.repo.FindVisibleProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	trades, err := s.repo.FindClosedTrades(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	for _, period := range leaderboard.Periods {
		for _, metric := range leaderboard.Metrics {
			snapshot := entity.NewLeaderboardSnapshot(profiles, trades, metrics.LeaderboardOptions{
				Period:    period,
				Metric:    metric,
				Now:       started,
				MinTrades: s.cfg.Metrics.LeaderboardMinTrades,
			})
			if err := s.store.Set(ctx, &snapshot, s.cfg.Worker.LeaderboardTTL); err != nil {
				return fmt.Errorf("failed to store %s: %w", leaderboard.Key(period, metric), err)
			}
		}
	}

	s.mu.Lock()
	s.lastRefresh = started
	s.mu.Unlock()

	s.log.Info("Leaderboard refreshed",
		logger.IntField("profiles", len(profiles)),
		logger.IntField("trades", len(trades)),
		logger.Field("duration", s.now().Sub(started)),
	)
	return nil
}
