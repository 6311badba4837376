package metrics

import "time"

var day0 = time.Date(2026, time.October, 1, 15, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

// closedOn builds a closed trade that exits n days after day0.
func closedOn(n int, pnl float64) Trade {
	exit := day0.AddDate(0, 0, n)
	return Trade{
		EntryTime: exit.Add(-time.Hour),
		ExitTime:  &exit,
		NetPnL:    pnl,
		Closed:    true,
	}
}

func withR(t Trade, r float64) Trade {
	t.RMultiple = ptr(r)
	return t
}

func forUser(t Trade, userID string) Trade {
	t.UserID = userID
	return t
}
