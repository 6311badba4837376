package metrics

import (
	"sort"
	"time"
)

// BreakdownRow is the Summary of trades sharing one key.
type BreakdownRow struct {
	Key string `json:"key"`
	Summary
}

// Breakdown groups closed trades by key and summarizes each group, best total P&L first.
// Trades mapped to an empty key are grouped under "none".
func Breakdown(trades []Trade, key func(Trade) string) []BreakdownRow {
	var order []string
	groups := make(map[string][]Trade)
	for _, t := range trades {
		if !t.Closed {
			continue
		}
		k := key(t)
		if k == "" {
			k = "none"
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	rows := make([]BreakdownRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, BreakdownRow{Key: k, Summary: Summarize(groups[k])})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalPnL > rows[j].TotalPnL })
	return rows
}

func BySymbol(t Trade) string { return t.Symbol }
func BySetup(t Trade) string { return t.SetupID }
func BySession(t Trade) string { return t.Session }
func BySide(t Trade) string { return t.Side }

// ByWeekday keys trades by the local weekday of their close time.
func ByWeekday(loc *time.Location) func(Trade) string {
	if loc == nil {
		loc = time.UTC
	}
	return func(t Trade) string {
		return t.CloseTime().In(loc).Weekday().String()
	}
}
