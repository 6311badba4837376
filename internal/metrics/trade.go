// Package metrics derives performance and risk statistics from trade records that are already in
// memory. Every function is pure: no I/O, no errors, and zero values for empty or degenerate input.
package metrics

import (
	"time"
)

// Trade is the engine's view of a journal trade. Services map persisted rows onto it.
type Trade struct {
	ID        string
	UserID    string
	AccountID string
	Symbol    string
	Side      string
	SetupID   string
	Session   string
	EntryTime time.Time
	ExitTime  *time.Time
	NetPnL    float64
	RMultiple *float64
	Closed    bool
}

// CloseTime is the exit time, or the entry time for rows without one.
func (t Trade) CloseTime() time.Time {
	if t.ExitTime != nil {
		return *t.ExitTime
	}
	return t.EntryTime
}

// ClosedOnly returns the closed trades in input order.
func ClosedOnly(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Closed {
			out = append(out, t)
		}
	}
	return out
}

// Between returns closed trades whose close time falls in [start, end). A zero bound is open.
func Between(trades []Trade, start, end time.Time) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if !t.Closed {
			continue
		}
		ct := t.CloseTime()
		if !start.IsZero() && ct.Before(start) {
			continue
		}
		if !end.IsZero() && !ct.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func dayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// civilDay converts a YYYY-MM-DD key to a UTC midnight so day arithmetic ignores DST.
func civilDay(key string) time.Time {
	d, err := time.Parse("2006-01-02", key)
	if err != nil {
		return time.Time{}
	}
	return d
}

func daysBetween(a, b string) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}
