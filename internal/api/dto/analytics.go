package dto

import (
	"time"

	"golang-trading-journal/internal/metrics"
)

// DashboardResponse is the headline view of a user's trading.
type DashboardResponse struct {
	Summary         metrics.Summary     `json:"summary"`
	Streaks         metrics.StreakStats `json:"streaks"`
	GreenDays       int                 `json:"green_days"`
	DayWinRate      float64             `json:"day_win_rate"`
	Tier            metrics.LeagueTier  `json:"tier"`
	StartingBalance float64             `json:"starting_balance"`
	Equity          metrics.Drawdown    `json:"equity"`
	RecentTrades    []TradeResponse     `json:"recent_trades"`
	OpenTrades      int                 `json:"open_trades"`
}

// CalendarResponse carries the per-day results of one month.
type CalendarResponse struct {
	Month      string              `json:"month"`
	Days       []metrics.DayResult `json:"days"`
	TotalPnL   float64             `json:"total_pnl"`
	GreenDays  int                 `json:"green_days"`
	RedDays    int                 `json:"red_days"`
	DayWinRate float64             `json:"day_win_rate"`
}

// RiskResponse reports today's loss and the running drawdown against the configured limits.
type RiskResponse struct {
	Date               string           `json:"date"`
	TodayPnL           float64          `json:"today_pnl"`
	DailyLossLimit     float64          `json:"daily_loss_limit"`
	DailyLossUsed      float64          `json:"daily_loss_used_percent"`
	DailyLimitBreached bool             `json:"daily_limit_breached"`
	MaxDrawdownPercent float64          `json:"max_drawdown_limit_percent"`
	DrawdownBreached   bool             `json:"drawdown_breached"`
	StartingBalance    float64          `json:"starting_balance"`
	Drawdown           metrics.Drawdown `json:"drawdown"`
}

// PositionSizeRequest is the input of the position size calculator.
type PositionSizeRequest struct {
	AccountSize float64 `json:"account_size" validate:"gt=0"`
	RiskPercent float64 `json:"risk_percent" validate:"gt=0,lte=100"`
	EntryPrice  float64 `json:"entry_price" validate:"gte=0"`
	StopPrice   float64 `json:"stop_price" validate:"gte=0"`
	TargetPrice float64 `json:"target_price" validate:"gte=0"`
	StopTicks   float64 `json:"stop_ticks" validate:"gte=0"`
	TickValue   float64 `json:"tick_value" validate:"gte=0"`
}

// AnalyticsResponse breaks performance down along several dimensions.
type AnalyticsResponse struct {
	Summary   metrics.Summary        `json:"summary"`
	BySymbol  []metrics.BreakdownRow `json:"by_symbol"`
	BySetup   []metrics.BreakdownRow `json:"by_setup"`
	BySession []metrics.BreakdownRow `json:"by_session"`
	ByWeekday []metrics.BreakdownRow `json:"by_weekday"`
	BySide    []metrics.BreakdownRow `json:"by_side"`
	Equity    metrics.Drawdown       `json:"equity"`
}

// AchievementsResponse lists every achievement with the caller's progress.
type AchievementsResponse struct {
	Unlocked     int                    `json:"unlocked"`
	Total        int                    `json:"total"`
	Achievements []metrics.GoalProgress `json:"achievements"`
}

// ChallengeWindow is one challenge period with its goals.
type ChallengeWindow struct {
	Period     metrics.ChallengePeriod `json:"period"`
	Start      time.Time               `json:"start"`
	End        time.Time               `json:"end"`
	Challenges []metrics.GoalProgress  `json:"challenges"`
}

// ChallengesResponse holds the daily and weekly challenges.
type ChallengesResponse struct {
	Daily  ChallengeWindow `json:"daily"`
	Weekly ChallengeWindow `json:"weekly"`
}

// LeaderboardQuery selects a leaderboard.
type LeaderboardQuery struct {
	Period string `query:"period" validate:"omitempty,oneof=week month all"`
	Metric string `query:"metric" validate:"omitempty,oneof=total_pnl win_rate profit_factor avg_r consistency"`
}

// AdminOverviewResponse is the operator's platform overview.
type AdminOverviewResponse struct {
	Users           int64     `json:"users"`
	Trades          int64     `json:"trades"`
	Squads          int64     `json:"squads"`
	TradesLast7Days int64     `json:"trades_last_7_days"`
	ActiveUsers7Day int64     `json:"active_users_last_7_days"`
	GeneratedAt     time.Time `json:"generated_at"`
}
