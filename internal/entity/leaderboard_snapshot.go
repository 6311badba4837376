package entity

import (
	"time"

	"golang-trading-journal/internal/metrics"
)

// LeaderboardRow is a ranked user as published to clients.
type LeaderboardRow struct {
	metrics.LeaderboardEntry
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// LeaderboardSnapshot is a computed leaderboard. It lives in Redis and in the API's
// in-process cache, never in PostgreSQL.
type LeaderboardSnapshot struct {
	Period      metrics.Period   `json:"period"`
	Metric      metrics.Metric   `json:"metric"`
	GeneratedAt time.Time        `json:"generated_at"`
	Entries     []LeaderboardRow `json:"entries"`
}

// NewLeaderboardSnapshot ranks trades and attaches the public names of the ranked users.
// Users missing from profiles are dropped.
func NewLeaderboardSnapshot(profiles []Profile, trades []Trade, opts metrics.LeaderboardOptions) LeaderboardSnapshot {
	byID := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID.String()] = p
	}

	ranked := metrics.Leaderboard(ToMetrics(trades), opts)
	rows := make([]LeaderboardRow, 0, len(ranked))
	for _, e := range ranked {
		p, ok := byID[e.UserID]
		if !ok {
			continue
		}
		e.Rank = len(rows) + 1
		rows = append(rows, LeaderboardRow{LeaderboardEntry: e, Username: p.Username, DisplayName: p.DisplayName})
	}

	return LeaderboardSnapshot{
		Period:      opts.Period,
		Metric:      opts.Metric,
		GeneratedAt: opts.Now,
		Entries:     rows,
	}
}
