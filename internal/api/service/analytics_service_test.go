package service

import (
	"context"
	"testing"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyticsService(t *testing.T, now time.Time) (*analyticsService, TradeService, repos) {
	r := setupRepos(t)
	cfg := config.Metrics{
		DefaultStartingBalance: 1000,
		DailyLossLimit:         100,
		MaxDrawdownPercent:     5,
	}
	svc := NewAnalyticsService(r.trades, r.accounts, r.profiles, cfg, "UTC", testLogger).(*analyticsService)
	svc.now = fixedClock(now)
	trades := NewTradeService(r.trades, r.accounts, r.setups, r.profiles, NopTradeEventPublisher{}, "UTC", testLogger)
	return svc, trades, r
}

func seedTwoDays(t *testing.T, trades TradeService, user uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	yesterday := time.Date(2024, 5, 14, 15, 0, 0, 0, time.UTC)
	today := yesterday.AddDate(0, 0, 1)

	_, err := trades.CreateTrade(ctx, user, closedTrade("AAPL", 100, 150, 1, yesterday, yesterday.Add(time.Hour)))
	require.NoError(t, err)
	_, err = trades.CreateTrade(ctx, user, closedTrade("TSLA", 200, 80, 1, today, today.Add(time.Hour)))
	require.NoError(t, err)
}

func TestAnalyticsService_RiskLimits(t *testing.T) {
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	svc, trades, _ := newTestAnalyticsService(t, now)
	user := uuid.New()
	seedTwoDays(t, trades, user)

	res, err := svc.Risk(context.Background(), user, nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-15", res.Date)
	assert.InDelta(t, -120, res.TodayPnL, 1e-9)
	assert.InDelta(t, 120, res.DailyLossUsed, 1e-9)
	assert.True(t, res.DailyLimitBreached)

	assert.InDelta(t, 1000, res.StartingBalance, 1e-9)
	assert.InDelta(t, 1050, res.Drawdown.PeakEquity, 1e-9)
	assert.InDelta(t, 120, res.Drawdown.CurrentDrawdown, 1e-9)
	assert.True(t, res.DrawdownBreached)
}

func TestAnalyticsService_Calendar(t *testing.T) {
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	svc, trades, _ := newTestAnalyticsService(t, now)
	user := uuid.New()
	seedTwoDays(t, trades, user)

	res, err := svc.Calendar(context.Background(), user, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", res.Month)
	assert.Len(t, res.Days, 2)
	assert.InDelta(t, -70, res.TotalPnL, 1e-9)
	assert.Equal(t, 1, res.GreenDays)
	assert.Equal(t, 1, res.RedDays)

	res, err = svc.Calendar(context.Background(), user, "2024-04")
	require.NoError(t, err)
	assert.Empty(t, res.Days)

	_, err = svc.Calendar(context.Background(), user, "May 2024")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyticsService_DashboardUsesAccountBalance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	svc, trades, r := newTestAnalyticsService(t, now)
	user := uuid.New()

	acc, err := NewAccountService(r.accounts, testLogger).CreateAccount(ctx, user, &dto.AccountRequest{Name: "Main", StartingBalance: dec(25000)})
	require.NoError(t, err)

	opened := now.Add(-3 * time.Hour)
	req := closedTrade("AAPL", 100, 110, 10, opened, opened.Add(time.Hour))
	req.AccountID = &acc.ID
	_, err = trades.CreateTrade(ctx, user, req)
	require.NoError(t, err)

	open := &dto.TradeRequest{Symbol: "MSFT", Side: "short", EntryTime: opened, EntryPrice: dec(300), EntrySize: dec(1)}
	_, err = trades.CreateTrade(ctx, user, open)
	require.NoError(t, err)

	res, err := svc.Dashboard(ctx, user, &acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summary.TotalTrades)
	assert.InDelta(t, 25000, res.StartingBalance, 1e-9)
	assert.InDelta(t, 25100, res.Equity.EndingEquity, 1e-9)
	assert.Equal(t, 0, res.OpenTrades)

	res, err = svc.Dashboard(ctx, user, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OpenTrades)
	assert.Len(t, res.RecentTrades, 2)
}

func TestAnalyticsService_AnalyticsBreakdowns(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	svc, trades, r := newTestAnalyticsService(t, now)
	user := uuid.New()
	seedTwoDays(t, trades, user)

	keys := func(rows []metrics.BreakdownRow) []string {
		out := make([]string, len(rows))
		for i, row := range rows {
			out[i] = row.Key
		}
		return out
	}

	res, err := svc.Analytics(ctx, user, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalTrades)
	assert.InDelta(t, -70, res.Summary.TotalPnL, 1e-9)
	assert.Equal(t, []string{"AAPL", "TSLA"}, keys(res.BySymbol))
	assert.Equal(t, []string{"none"}, keys(res.BySetup))
	assert.Equal(t, []string{"long"}, keys(res.BySide))
	assert.Equal(t, []string{"Tuesday", "Wednesday"}, keys(res.ByWeekday))
	assert.InDelta(t, 930, res.Equity.EndingEquity, 1e-9)

	require.NoError(t, r.profiles.Upsert(ctx, &entity.Profile{ID: user, Username: "kiwi", TimeZone: "Pacific/Auckland"}))
	res, err = svc.Analytics(ctx, user, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wednesday", "Thursday"}, keys(res.ByWeekday))

	missing := uuid.New()
	_, err = svc.Analytics(ctx, user, &missing)
	assert.Error(t, err)
}

func TestAnalyticsService_PositionSize(t *testing.T) {
	svc, _, _ := newTestAnalyticsService(t, time.Now())

	res := svc.PositionSize(&dto.PositionSizeRequest{AccountSize: 50000, RiskPercent: 1, StopTicks: 8, TickValue: 12.5})
	assert.EqualValues(t, 5, res.Units)
	assert.InDelta(t, 500, res.ActualRisk, 1e-9)
	assert.InDelta(t, 1.0, res.ActualRiskPercent, 1e-9)
}

func TestAnalyticsService_AchievementsAndChallenges(t *testing.T) {
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	svc, trades, _ := newTestAnalyticsService(t, now)
	user := uuid.New()
	seedTwoDays(t, trades, user)

	ach, err := svc.Achievements(context.Background(), user)
	require.NoError(t, err)
	unlocked := make(map[string]bool)
	for _, a := range ach.Achievements {
		unlocked[a.Key] = a.Unlocked
	}
	assert.True(t, unlocked["first_trade"])
	assert.True(t, unlocked["first_green_day"])
	assert.False(t, unlocked["trades_50"])
	assert.Equal(t, 2, ach.Unlocked)

	ch, err := svc.Challenges(context.Background(), user)
	require.NoError(t, err)
	for _, c := range ch.Daily.Challenges {
		if c.Key == "daily_trades" {
			assert.Equal(t, 1.0, c.Current)
		}
	}
	for _, c := range ch.Weekly.Challenges {
		if c.Key == "weekly_trades" {
			assert.Equal(t, 2.0, c.Current)
		}
	}
}
