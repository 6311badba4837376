package metrics

import "math"

// Summary holds the headline statistics for a set of closed trades.
type Summary struct {
	TotalTrades    int     `json:"total_trades"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Breakeven      int     `json:"breakeven"`
	WinRate        float64 `json:"win_rate"`
	TotalPnL       float64 `json:"total_pnl"`
	GrossProfit    float64 `json:"gross_profit"`
	GrossLoss      float64 `json:"gross_loss"`
	AvgWin         float64 `json:"avg_win"`
	AvgLoss        float64 `json:"avg_loss"`
	ProfitFactor   float64 `json:"profit_factor"`
	Expectancy     float64 `json:"expectancy"`
	AvgRMultiple   float64 `json:"avg_r_multiple"`
	RMultipleCount int     `json:"r_multiple_count"`
	LargestWin     float64 `json:"largest_win"`
	LargestLoss    float64 `json:"largest_loss"`
}

// Summarize computes win rate, profit factor, expectancy and R statistics over the closed trades.
//
// Breakeven trades count toward the total but are neither wins nor losses. Profit factor is 0 when
// there are no losing trades. Trades without an R-multiple are left out of the R average.
func Summarize(trades []Trade) Summary {
	var (
		s    Summary
		rSum float64
	)

	for _, t := range trades {
		if !t.Closed {
			continue
		}
		s.TotalTrades++
		s.TotalPnL += t.NetPnL

		switch {
		case t.NetPnL > 0:
			s.Wins++
			s.GrossProfit += t.NetPnL
			if t.NetPnL > s.LargestWin {
				s.LargestWin = t.NetPnL
			}
		case t.NetPnL < 0:
			s.Losses++
			s.GrossLoss += math.Abs(t.NetPnL)
			if t.NetPnL < s.LargestLoss {
				s.LargestLoss = t.NetPnL
			}
		default:
			s.Breakeven++
		}

		if t.RMultiple != nil {
			rSum += *t.RMultiple
			s.RMultipleCount++
		}
	}

	if s.TotalTrades == 0 {
		return Summary{}
	}

	s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	s.Expectancy = s.TotalPnL / float64(s.TotalTrades)
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	if s.Losses > 0 && s.AvgLoss > 0 {
		s.ProfitFactor = (s.AvgWin * float64(s.Wins)) / (s.AvgLoss * float64(s.Losses))
	}
	if s.RMultipleCount > 0 {
		s.AvgRMultiple = rSum / float64(s.RMultipleCount)
	}

	return s
}
