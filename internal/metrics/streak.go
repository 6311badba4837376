package metrics

import (
	"sort"
	"time"
)

// StreakStats describes runs of consecutive calendar days with at least one closed trade.
type StreakStats struct {
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	TradingDays    int    `json:"trading_days"`
	LastTradingDay string `json:"last_trading_day,omitempty"`
}

// Streaks computes the current and longest day streaks. The current streak only counts when the
// most recent trading day is today or yesterday in loc.
func Streaks(trades []Trade, now time.Time, loc *time.Location) StreakStats {
	if loc == nil {
		loc = time.UTC
	}

	seen := make(map[string]struct{})
	for _, t := range trades {
		if !t.Closed {
			continue
		}
		seen[dayKey(t.CloseTime(), loc)] = struct{}{}
	}
	if len(seen) == 0 {
		return StreakStats{}
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)

	stats := StreakStats{
		TradingDays:    len(days),
		LastTradingDay: days[len(days)-1],
	}

	run := 1
	stats.Longest = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > stats.Longest {
			stats.Longest = run
		}
	}

	today := dayKey(now, loc)
	if gap := daysBetween(stats.LastTradingDay, today); gap > 1 || gap < 0 {
		return stats
	}

	stats.Current = 1
	for i := len(days) - 1; i > 0; i-- {
		if daysBetween(days[i-1], days[i]) != 1 {
			break
		}
		stats.Current++
	}
	return stats
}
