package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("three trades example", func(t *testing.T) {
		s := Summarize([]Trade{closedOn(0, 100), closedOn(1, -50), closedOn(2, 25)})

		assert.Equal(t, 3, s.TotalTrades)
		assert.Equal(t, 2, s.Wins)
		assert.Equal(t, 1, s.Losses)
		assert.InDelta(t, 66.67, s.WinRate, 0.01)
		assert.InDelta(t, 75.0, s.TotalPnL, 1e-9)
		assert.InDelta(t, 25.0, s.Expectancy, 1e-9)
		assert.InDelta(t, 62.5, s.AvgWin, 1e-9)
		assert.InDelta(t, 50.0, s.AvgLoss, 1e-9)
		assert.InDelta(t, 2.5, s.ProfitFactor, 1e-9)
		assert.InDelta(t, 100.0, s.LargestWin, 1e-9)
		assert.InDelta(t, -50.0, s.LargestLoss, 1e-9)
	})

	t.Run("no losses reports zero profit factor", func(t *testing.T) {
		s := Summarize([]Trade{closedOn(0, 10), closedOn(1, 20)})
		assert.Equal(t, 0.0, s.ProfitFactor)
		assert.Equal(t, 100.0, s.WinRate)
	})

	t.Run("breakeven counts toward total only", func(t *testing.T) {
		s := Summarize([]Trade{closedOn(0, 10), closedOn(1, 0), closedOn(2, -5)})
		assert.Equal(t, 3, s.TotalTrades)
		assert.Equal(t, 1, s.Breakeven)
		assert.Equal(t, s.TotalTrades, s.Wins+s.Losses+s.Breakeven)
		assert.InDelta(t, 33.33, s.WinRate, 0.01)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("open trades are ignored", func(t *testing.T) {
		open := Trade{EntryTime: day0, NetPnL: 500}
		s := Summarize([]Trade{open, closedOn(0, -10)})
		assert.Equal(t, 1, s.TotalTrades)
		assert.InDelta(t, -10.0, s.TotalPnL, 1e-9)
	})
}

func TestSummarize_RMultiple(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		trades    []Trade
		wantAvg   float64
		wantCount int
	}{
		{
			name:      "trades without stop are excluded",
			trades:    []Trade{withR(closedOn(0, 100), 2), closedOn(1, -40), withR(closedOn(2, -50), -1)},
			wantAvg:   0.5,
			wantCount: 2,
		},
		{
			name:      "no stops at all",
			trades:    []Trade{closedOn(0, 100), closedOn(1, -40)},
			wantAvg:   0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Summarize(tt.trades)
			assert.InDelta(t, tt.wantAvg, s.AvgRMultiple, 1e-9)
			assert.Equal(t, tt.wantCount, s.RMultipleCount)
		})
	}
}

func TestSummarize_WinRateBounds(t *testing.T) {
	t.Parallel()

	sets := [][]float64{
		{1},
		{-1},
		{0, 0, 0},
		{5, -3, 0, 12, -8, 7},
	}
	for _, pnls := range sets {
		trades := make([]Trade, 0, len(pnls))
		for i, p := range pnls {
			trades = append(trades, closedOn(i, p))
		}
		s := Summarize(trades)
		assert.GreaterOrEqual(t, s.WinRate, 0.0)
		assert.LessOrEqual(t, s.WinRate, 100.0)
		assert.Equal(t, len(pnls), s.Wins+s.Losses+s.Breakeven)
	}
}
