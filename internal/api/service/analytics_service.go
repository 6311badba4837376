package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/config"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/utils"

	"github.com/google/uuid"
)

const recentTradesLimit = 5

// AnalyticsService defines the read models computed from a user's trades: dashboard, calendar,
// risk, analytics breakdowns, achievements and challenges.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.DashboardResponse, error)
	Calendar(ctx context.Context, userID uuid.UUID, month string) (*dto.CalendarResponse, error)
	Risk(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.RiskResponse, error)
	PositionSize(req *dto.PositionSizeRequest) metrics.PositionSizeResult
	Analytics(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.AnalyticsResponse, error)
	Achievements(ctx context.Context, userID uuid.UUID) (*dto.AchievementsResponse, error)
	Challenges(ctx context.Context, userID uuid.UUID) (*dto.ChallengesResponse, error)
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	tradeRepo repository.TradeRepository,
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	cfg config.Metrics,
	defaultTimeZone string,
	log *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
		cfg:         cfg,
		locations:   newLocationResolver(profileRepo, defaultTimeZone),
		logger:      log,
		now:         time.Now,
	}
}

type analyticsService struct {
	tradeRepo   repository.TradeRepository
	accountRepo repository.AccountRepository
	cfg         config.Metrics
	locations   locationResolver
	logger      *logger.Logger
	now         func() time.Time
}

// Dashboard returns the headline statistics, optionally for a single account.
func (s *analyticsService) Dashboard(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.DashboardResponse, error) {
	trades, err := s.trades(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	balance, err := s.startingBalance(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	loc := s.locations.resolve(ctx, userID)
	mt := entity.ToMetrics(trades)
	stats := metrics.BuildStats(mt, s.now(), loc)

	resp := &dto.DashboardResponse{
		Summary:         stats.Summary,
		Streaks:         stats.Streaks,
		GreenDays:       stats.GreenDays,
		DayWinRate:      stats.DayWinRate,
		Tier:            metrics.TierFor(stats.Summary.TotalPnL),
		StartingBalance: balance,
		Equity:          metrics.EquityCurve(mt, balance),
		RecentTrades:    make([]dto.TradeResponse, 0, recentTradesLimit),
	}
	for i := range trades {
		if !trades[i].IsClosed() {
			resp.OpenTrades++
		}
		if len(resp.RecentTrades) < recentTradesLimit {
			resp.RecentTrades = append(resp.RecentTrades, *mapToTradeResponse(&trades[i]))
		}
	}
	return resp, nil
}

// Calendar returns the days of a YYYY-MM month that have closed trades. The current month is the default.
func (s *analyticsService) Calendar(ctx context.Context, userID uuid.UUID, month string) (*dto.CalendarResponse, error) {
	loc := s.locations.resolve(ctx, userID)
	if month == "" {
		month = s.now().In(loc).Format("2006-01")
	}
	if _, err := time.ParseInLocation("2006-01", month, loc); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}

	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CalendarResponse{Month: month, Days: []metrics.DayResult{}}
	for _, d := range metrics.DailyResults(entity.ToMetrics(trades), loc) {
		if !strings.HasPrefix(d.Date, month+"-") {
			continue
		}
		resp.Days = append(resp.Days, d)
		resp.TotalPnL += d.PnL
		if d.PnL < 0 {
			resp.RedDays++
		}
	}
	resp.GreenDays = metrics.GreenDays(resp.Days)
	resp.DayWinRate = metrics.DayWinRate(resp.Days)
	return resp, nil
}

// Risk compares today's P&L and the daily equity drawdown with the configured limits.
func (s *analyticsService) Risk(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.RiskResponse, error) {
	trades, err := s.trades(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	balance, err := s.startingBalance(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	loc := s.locations.resolve(ctx, userID)
	days := metrics.DailyResults(entity.ToMetrics(trades), loc)
	today := utils.FormatDate(s.now(), loc)

	resp := &dto.RiskResponse{
		Date:               today,
		DailyLossLimit:     s.cfg.DailyLossLimit,
		MaxDrawdownPercent: s.cfg.MaxDrawdownPercent,
		StartingBalance:    balance,
		Drawdown:           metrics.DailyEquityCurve(days, balance),
	}
	for _, d := range days {
		if d.Date == today {
			resp.TodayPnL = d.PnL
		}
	}
	if resp.DailyLossLimit > 0 && resp.TodayPnL < 0 {
		resp.DailyLossUsed = -resp.TodayPnL / resp.DailyLossLimit * 100
		resp.DailyLimitBreached = -resp.TodayPnL >= resp.DailyLossLimit
	}
	if resp.MaxDrawdownPercent > 0 {
		resp.DrawdownBreached = resp.Drawdown.CurrentDrawdownPercent >= resp.MaxDrawdownPercent
	}
	return resp, nil
}

// PositionSize runs the position size calculator. Zero units is a valid answer.
func (s *analyticsService) PositionSize(req *dto.PositionSizeRequest) metrics.PositionSizeResult {
	return metrics.PositionSize(metrics.PositionSizeInput{
		AccountSize: req.AccountSize,
		RiskPercent: req.RiskPercent,
		EntryPrice:  req.EntryPrice,
		StopPrice:   req.StopPrice,
		TargetPrice: req.TargetPrice,
		StopTicks:   req.StopTicks,
		TickValue:   req.TickValue,
	})
}

// Analytics returns the dimension breakdowns and equity curve of the user's trades,
// optionally limited to one account. Weekday buckets use the user's timezone.
func (s *analyticsService) Analytics(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (*dto.AnalyticsResponse, error) {
	trades, err := s.trades(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	balance, err := s.startingBalance(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	loc := s.locations.resolve(ctx, userID)
	mt := entity.ToMetrics(trades)
	return &dto.AnalyticsResponse{
		Summary:   metrics.Summarize(mt),
		BySymbol:  metrics.Breakdown(mt, metrics.BySymbol),
		BySetup:   metrics.Breakdown(mt, metrics.BySetup),
		BySession: metrics.Breakdown(mt, metrics.BySession),
		ByWeekday: metrics.Breakdown(mt, metrics.ByWeekday(loc)),
		BySide:    metrics.Breakdown(mt, metrics.BySide),
		Equity:    metrics.EquityCurve(mt, balance),
	}, nil
}

// Achievements evaluates the lifetime achievement catalog.
func (s *analyticsService) Achievements(ctx context.Context, userID uuid.UUID) (*dto.AchievementsResponse, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := s.locations.resolve(ctx, userID)
	progress := metrics.Evaluate(metrics.Achievements(), metrics.BuildStats(entity.ToMetrics(trades), s.now(), loc))

	resp := &dto.AchievementsResponse{Total: len(progress), Achievements: progress}
	for _, p := range progress {
		if p.Unlocked {
			resp.Unlocked++
		}
	}
	return resp, nil
}

// Challenges evaluates the daily and weekly challenges over the trades closed in the current windows.
func (s *analyticsService) Challenges(ctx context.Context, userID uuid.UUID) (*dto.ChallengesResponse, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := s.locations.resolve(ctx, userID)
	mt := entity.ToMetrics(trades)
	now := s.now()

	window := func(p metrics.ChallengePeriod) dto.ChallengeWindow {
		start, end := metrics.ChallengeWindow(p, now, loc)
		stats := metrics.BuildStats(metrics.Between(mt, start, end), now, loc)
		return dto.ChallengeWindow{
			Period:     p,
			Start:      start,
			End:        end,
			Challenges: metrics.Evaluate(metrics.ChallengesFor(metrics.Challenges(), p), stats),
		}
	}
	return &dto.ChallengesResponse{
		Daily:  window(metrics.ChallengeDaily),
		Weekly: window(metrics.ChallengeWeekly),
	}, nil
}

// trades returns the user's trades, newest first, optionally restricted to one account.
func (s *analyticsService) trades(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]entity.Trade, error) {
	trades, err := s.tradeRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if accountID == nil {
		return trades, nil
	}
	out := make([]entity.Trade, 0, len(trades))
	for _, t := range trades {
		if t.AccountID != nil && *t.AccountID == *accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

// startingBalance is the account's starting balance, the sum over all accounts when none is
// selected, or the configured default for users without accounts.
func (s *analyticsService) startingBalance(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) (float64, error) {
	if accountID != nil {
		account, err := s.accountRepo.FindByID(ctx, userID, *accountID)
		if err != nil {
			return 0, err
		}
		return account.StartingBalance.InexactFloat64(), nil
	}

	accounts, err := s.accountRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(accounts) == 0 {
		return s.cfg.DefaultStartingBalance, nil
	}
	var total float64
	for _, a := range accounts {
		total += a.StartingBalance.InexactFloat64()
	}
	return total, nil
}
