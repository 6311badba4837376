package metrics

import (
	"sort"
	"time"
)

// DayResult aggregates the closed trades of one local calendar day.
type DayResult struct {
	Date   string    `json:"date"`
	Day    time.Time `json:"-"`
	PnL    float64   `json:"pnl"`
	Trades int       `json:"trades"`
	Wins   int       `json:"wins"`
	Losses int       `json:"losses"`
}

// DailyResults groups closed trades by the local day of their exit time (entry time when the exit
// time is missing) and returns the days in ascending order.
func DailyResults(trades []Trade, loc *time.Location) []DayResult {
	if loc == nil {
		loc = time.UTC
	}

	byDay := make(map[string]*DayResult)
	for _, t := range trades {
		if !t.Closed {
			continue
		}
		key := dayKey(t.CloseTime(), loc)
		d, ok := byDay[key]
		if !ok {
			day, _ := time.ParseInLocation("2006-01-02", key, loc)
			d = &DayResult{Date: key, Day: day}
			byDay[key] = d
		}
		d.PnL += t.NetPnL
		d.Trades++
		if t.NetPnL > 0 {
			d.Wins++
		} else if t.NetPnL < 0 {
			d.Losses++
		}
	}

	out := make([]DayResult, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// GreenDays counts days whose summed net P&L is strictly positive.
func GreenDays(days []DayResult) int {
	n := 0
	for _, d := range days {
		if d.PnL > 0 {
			n++
		}
	}
	return n
}

// DayWinRate is profitable days over days with at least one trade, as a percentage.
func DayWinRate(days []DayResult) float64 {
	total := 0
	for _, d := range days {
		if d.Trades > 0 {
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(GreenDays(days)) / float64(total) * 100
}
