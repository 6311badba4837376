package common

const (
	RedisStreamTradeEvents = "trade.events"

	RedisStreamGroup    = "worker-group"
	RedisStreamConsumer = "worker-consumer"

	// RedisKeyLeaderboard is formatted with period and metric.
	RedisKeyLeaderboard = "leaderboard:%s:%s"
	// RedisKeyLeaderboardDirty marks snapshots as stale until the next refresh.
	RedisKeyLeaderboardDirty = "leaderboard:dirty"
)
