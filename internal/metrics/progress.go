package metrics

import (
	"math"
	"time"
)

// Stats is the aggregate that achievements and challenges read their current value from.
type Stats struct {
	Summary    Summary     `json:"summary"`
	Streaks    StreakStats `json:"streaks"`
	GreenDays  int         `json:"green_days"`
	DayWinRate float64     `json:"day_win_rate"`
}

// BuildStats aggregates trades once for goal evaluation.
func BuildStats(trades []Trade, now time.Time, loc *time.Location) Stats {
	days := DailyResults(trades, loc)
	return Stats{
		Summary:    Summarize(trades),
		Streaks:    Streaks(trades, now, loc),
		GreenDays:  GreenDays(days),
		DayWinRate: DayWinRate(days),
	}
}

// Progress returns min(100, current/target*100) and whether the goal is reached.
func Progress(current, target float64) (float64, bool) {
	if target <= 0 {
		return 0, false
	}
	pct := math.Min(100, current/target*100)
	if pct < 0 {
		pct = 0
	}
	return pct, pct >= 100
}

// ChallengePeriod is how often a challenge resets.
type ChallengePeriod string

const (
	ChallengeDaily  ChallengePeriod = "daily"
	ChallengeWeekly ChallengePeriod = "weekly"
)

// ChallengeWindow returns [start, end) of the current challenge window in loc. Daily windows start at
// local midnight, weekly windows at Sunday midnight.
func ChallengeWindow(p ChallengePeriod, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	lt := now.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	if p == ChallengeWeekly {
		start = start.AddDate(0, 0, -int(start.Weekday()))
		return start, start.AddDate(0, 0, 7)
	}
	return start, start.AddDate(0, 0, 1)
}

// Goal is an achievement or challenge definition.
type Goal struct {
	Key         string
	Title       string
	Description string
	Period      ChallengePeriod
	Target      float64
	Value       func(Stats) float64
}

// GoalProgress is a Goal evaluated against Stats.
type GoalProgress struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Period      ChallengePeriod `json:"period,omitempty"`
	Current     float64         `json:"current"`
	Target      float64         `json:"target"`
	Percent     float64         `json:"percent"`
	Unlocked    bool            `json:"unlocked"`
}

// Evaluate scores every goal against stats, preserving catalog order.
func Evaluate(goals []Goal, stats Stats) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		current := g.Value(stats)
		pct, done := Progress(current, g.Target)
		out = append(out, GoalProgress{
			Key:         g.Key,
			Title:       g.Title,
			Description: g.Description,
			Period:      g.Period,
			Current:     current,
			Target:      g.Target,
			Percent:     pct,
			Unlocked:    done,
		})
	}
	return out
}

func tradeCount(s Stats) float64 { return float64(s.Summary.TotalTrades) }
func totalPnL(s Stats) float64 { return s.Summary.TotalPnL }
func greenDays(s Stats) float64 { return float64(s.GreenDays) }
func longestRun(s Stats) float64 { return float64(s.Streaks.Longest) }
func currentRun(s Stats) float64 { return float64(s.Streaks.Current) }
func winsCount(s Stats) float64 { return float64(s.Summary.Wins) }
func avgR(s Stats) float64 { return s.Summary.AvgRMultiple }
func profitFactor(s Stats) float64 { return s.Summary.ProfitFactor }

// winRateOver only reports a win rate once enough trades back it.
func winRateOver(minTrades int) func(Stats) float64 {
	return func(s Stats) float64 {
		if s.Summary.TotalTrades < minTrades {
			return 0
		}
		return s.Summary.WinRate
	}
}

// Achievements is the lifetime achievement catalog.
func Achievements() []Goal {
	return []Goal{
		{Key: "first_trade", Title: "First Blood", Description: "Log your first closed trade", Target: 1, Value: tradeCount},
		{Key: "trades_50", Title: "Getting Serious", Description: "Close 50 trades", Target: 50, Value: tradeCount},
		{Key: "trades_100", Title: "Centurion", Description: "Close 100 trades", Target: 100, Value: tradeCount},
		{Key: "trades_500", Title: "Veteran", Description: "Close 500 trades", Target: 500, Value: tradeCount},
		{Key: "first_green_day", Title: "In the Green", Description: "Finish a day with positive P&L", Target: 1, Value: greenDays},
		{Key: "green_days_20", Title: "Green Machine", Description: "Finish 20 days with positive P&L", Target: 20, Value: greenDays},
		{Key: "streak_5", Title: "On a Roll", Description: "Trade 5 days in a row", Target: 5, Value: longestRun},
		{Key: "streak_20", Title: "Unstoppable", Description: "Trade 20 days in a row", Target: 20, Value: longestRun},
		{Key: "profit_1k", Title: "Four Figures", Description: "Reach $1,000 total net P&L", Target: 1000, Value: totalPnL},
		{Key: "profit_10k", Title: "Five Figures", Description: "Reach $10,000 total net P&L", Target: 10000, Value: totalPnL},
		{Key: "sharpshooter", Title: "Sharpshooter", Description: "Hold a 60% win rate over at least 20 trades", Target: 60, Value: winRateOver(20)},
		{Key: "risk_master", Title: "Risk Master", Description: "Average 2R across trades with a stop", Target: 2, Value: avgR},
		{Key: "edge", Title: "Proven Edge", Description: "Reach a profit factor of 2", Target: 2, Value: profitFactor},
	}
}

// Challenges is the recurring challenge catalog. Stats passed to Evaluate must be built from trades
// inside the matching ChallengeWindow.
func Challenges() []Goal {
	return []Goal{
		{Key: "daily_trades", Title: "Show Up", Description: "Close 3 trades today", Period: ChallengeDaily, Target: 3, Value: tradeCount},
		{Key: "daily_green", Title: "Green Today", Description: "Finish today in profit", Period: ChallengeDaily, Target: 1, Value: greenDays},
		{Key: "daily_wins", Title: "Two for Two", Description: "Win 2 trades today", Period: ChallengeDaily, Target: 2, Value: winsCount},
		{Key: "weekly_trades", Title: "Busy Week", Description: "Close 15 trades this week", Period: ChallengeWeekly, Target: 15, Value: tradeCount},
		{Key: "weekly_green_days", Title: "Green Week", Description: "Finish 3 days this week in profit", Period: ChallengeWeekly, Target: 3, Value: greenDays},
		{Key: "weekly_streak", Title: "Every Day", Description: "Trade 5 days in a row this week", Period: ChallengeWeekly, Target: 5, Value: currentRun},
		{Key: "weekly_win_rate", Title: "Hit Rate", Description: "Hold a 55% win rate over at least 10 trades this week", Period: ChallengeWeekly, Target: 55, Value: winRateOver(10)},
	}
}

// SquadChallenges are weekly goals a squad works toward together.
func SquadChallenges() []Goal {
	return []Goal{
		{Key: "squad_trades", Title: "Squad Volume", Description: "Close 50 trades as a squad this week", Period: ChallengeWeekly, Target: 50, Value: tradeCount},
		{Key: "squad_profit", Title: "Squad Profit", Description: "Reach $2,500 net P&L as a squad this week", Period: ChallengeWeekly, Target: 2500, Value: totalPnL},
		{Key: "squad_green_days", Title: "Squad Green Days", Description: "Collect 10 green member-days this week", Period: ChallengeWeekly, Target: 10, Value: greenDays},
	}
}

// ChallengesFor filters a catalog by period.
func ChallengesFor(goals []Goal, p ChallengePeriod) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.Period == p {
			out = append(out, g)
		}
	}
	return out
}
