package metrics

import (
	"math"
	"sort"
	"time"
)

// Period selects the rolling window of a leaderboard.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// Metric selects what a leaderboard ranks by.
type Metric string

const (
	MetricTotalPnL     Metric = "total_pnl"
	MetricWinRate      Metric = "win_rate"
	MetricProfitFactor Metric = "profit_factor"
	MetricAvgR         Metric = "avg_r"
	MetricConsistency  Metric = "consistency"
)

// DefaultMinTrades is the number of qualifying trades a user needs to appear on a leaderboard.
const DefaultMinTrades = 5

// ValidPeriod reports whether p is a known period.
func ValidPeriod(p Period) bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodAll
}

// ValidMetric reports whether m is a known metric.
func ValidMetric(m Metric) bool {
	switch m {
	case MetricTotalPnL, MetricWinRate, MetricProfitFactor, MetricAvgR, MetricConsistency:
		return true
	}
	return false
}

// PeriodStart returns the start of the rolling window ending at now. PeriodAll has no start.
func PeriodStart(p Period, now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// LeaderboardOptions configures Leaderboard.
type LeaderboardOptions struct {
	Period    Period
	Metric    Metric
	Now       time.Time
	MinTrades int
}

// LeaderboardEntry is one ranked user.
type LeaderboardEntry struct {
	Rank             int        `json:"rank"`
	UserID           string     `json:"user_id"`
	Trades           int        `json:"trades"`
	TotalPnL         float64    `json:"total_pnl"`
	WinRate          float64    `json:"win_rate"`
	ProfitFactor     float64    `json:"profit_factor"`
	AvgRMultiple     float64    `json:"avg_r_multiple"`
	ConsistencyScore float64    `json:"consistency_score"`
	RStdDev          float64    `json:"r_std_dev"`
	HasRMultiples    bool       `json:"has_r_multiples"`
	Tier             LeagueTier `json:"tier"`
	Value            float64    `json:"value"`
}

// Leaderboard ranks users by opts.Metric over their closed trades inside the window. Users below
// the minimum trade count are dropped. Consistency ranks by ascending R standard deviation; all other
// metrics rank descending. Ties keep the order in which users first appear in trades.
func Leaderboard(trades []Trade, opts LeaderboardOptions) []LeaderboardEntry {
	minTrades := opts.MinTrades
	if minTrades <= 0 {
		minTrades = DefaultMinTrades
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	window := Between(trades, PeriodStart(opts.Period, now), time.Time{})

	var order []string
	byUser := make(map[string][]Trade)
	for _, t := range window {
		if _, ok := byUser[t.UserID]; !ok {
			order = append(order, t.UserID)
		}
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		userTrades := byUser[userID]
		if len(userTrades) < minTrades {
			continue
		}
		s := Summarize(userTrades)
		rs := RMultiples(userTrades)
		e := LeaderboardEntry{
			UserID:           userID,
			Trades:           s.TotalTrades,
			TotalPnL:         s.TotalPnL,
			WinRate:          s.WinRate,
			ProfitFactor:     s.ProfitFactor,
			AvgRMultiple:     s.AvgRMultiple,
			ConsistencyScore: ConsistencyScore(rs),
			RStdDev:          StdDev(rs),
			HasRMultiples:    len(rs) > 0,
			Tier:             TierFor(s.TotalPnL),
		}
		e.Value = metricValue(e, opts.Metric)
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if opts.Metric == MetricConsistency {
			return consistencyKey(entries[i]) < consistencyKey(entries[j])
		}
		return entries[i].Value > entries[j].Value
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func consistencyKey(e LeaderboardEntry) float64 {
	if !e.HasRMultiples {
		return math.MaxFloat64
	}
	return e.RStdDev
}

func metricValue(e LeaderboardEntry, m Metric) float64 {
	switch m {
	case MetricWinRate:
		return e.WinRate
	case MetricProfitFactor:
		return e.ProfitFactor
	case MetricAvgR:
		return e.AvgRMultiple
	case MetricConsistency:
		return e.ConsistencyScore
	default:
		return e.TotalPnL
	}
}
