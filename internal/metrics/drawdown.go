package metrics

import (
	"sort"
	"time"
)

// EquityPoint is one step of the running equity curve.
type EquityPoint struct {
	Time            time.Time `json:"time"`
	PnL             float64   `json:"pnl"`
	Equity          float64   `json:"equity"`
	Peak            float64   `json:"peak"`
	Drawdown        float64   `json:"drawdown"`
	DrawdownPercent float64   `json:"drawdown_percent"`
}

// Drawdown is the equity curve with its max and current drawdown.
type Drawdown struct {
	StartingBalance        float64       `json:"starting_balance"`
	EndingEquity           float64       `json:"ending_equity"`
	PeakEquity             float64       `json:"peak_equity"`
	MaxDrawdown            float64       `json:"max_drawdown"`
	MaxDrawdownPercent     float64       `json:"max_drawdown_percent"`
	CurrentDrawdown        float64       `json:"current_drawdown"`
	CurrentDrawdownPercent float64       `json:"current_drawdown_percent"`
	Points                 []EquityPoint `json:"points"`
}

// EquityCurve accumulates net P&L of closed trades, ordered by exit time, onto startingBalance.
func EquityCurve(trades []Trade, startingBalance float64) Drawdown {
	closed := ClosedOnly(trades)
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].CloseTime().Before(closed[j].CloseTime())
	})

	steps := make([]step, 0, len(closed))
	for _, t := range closed {
		steps = append(steps, step{at: t.CloseTime(), pnl: t.NetPnL})
	}
	return accumulate(steps, startingBalance)
}

// DailyEquityCurve is EquityCurve over per-day aggregates instead of individual trades.
func DailyEquityCurve(days []DayResult, startingBalance float64) Drawdown {
	steps := make([]step, 0, len(days))
	for _, d := range days {
		steps = append(steps, step{at: d.Day, pnl: d.PnL})
	}
	return accumulate(steps, startingBalance)
}

type step struct {
	at  time.Time
	pnl float64
}

func accumulate(steps []step, startingBalance float64) Drawdown {
	dd := Drawdown{
		StartingBalance: startingBalance,
		EndingEquity:    startingBalance,
		PeakEquity:      startingBalance,
		Points:          make([]EquityPoint, 0, len(steps)),
	}

	equity := startingBalance
	peak := startingBalance
	for _, s := range steps {
		equity += s.pnl
		if equity > peak {
			peak = equity
		}

		p := EquityPoint{
			Time:     s.at,
			PnL:      s.pnl,
			Equity:   equity,
			Peak:     peak,
			Drawdown: peak - equity,
		}
		if peak > 0 {
			p.DrawdownPercent = p.Drawdown / peak * 100
		}

		if p.Drawdown > dd.MaxDrawdown {
			dd.MaxDrawdown = p.Drawdown
		}
		if p.DrawdownPercent > dd.MaxDrawdownPercent {
			dd.MaxDrawdownPercent = p.DrawdownPercent
		}
		dd.Points = append(dd.Points, p)
	}

	dd.EndingEquity = equity
	dd.PeakEquity = peak
	if n := len(dd.Points); n > 0 {
		dd.CurrentDrawdown = dd.Points[n-1].Drawdown
		dd.CurrentDrawdownPercent = dd.Points[n-1].DrawdownPercent
	}
	return dd
}
