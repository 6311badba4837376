package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquityCurve(t *testing.T) {
	t.Parallel()

	// Out of order on purpose: the curve must follow exit time.
	trades := []Trade{
		closedOn(3, -300),
		closedOn(0, 200),
		closedOn(4, 1000),
		closedOn(1, -500),
		closedOn(2, 100),
	}

	dd := EquityCurve(trades, 10000)
	require.Len(t, dd.Points, 5)

	wantEquity := []float64{10200, 9700, 9800, 9500, 10500}
	wantPeak := []float64{10200, 10200, 10200, 10200, 10500}
	for i, p := range dd.Points {
		assert.InDelta(t, wantEquity[i], p.Equity, 1e-9, "equity at %d", i)
		assert.InDelta(t, wantPeak[i], p.Peak, 1e-9, "peak at %d", i)
		assert.GreaterOrEqual(t, p.DrawdownPercent, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Peak, dd.Points[i-1].Peak)
		}
	}

	assert.InDelta(t, 700.0, dd.MaxDrawdown, 1e-9)
	assert.InDelta(t, 6.86, dd.MaxDrawdownPercent, 0.01)
	assert.Equal(t, 0.0, dd.CurrentDrawdown)
	assert.InDelta(t, 10500.0, dd.EndingEquity, 1e-9)
	assert.InDelta(t, 10500.0, dd.PeakEquity, 1e-9)
}

func TestEquityCurve_MaxIsMaxOfSeries(t *testing.T) {
	t.Parallel()

	dd := EquityCurve([]Trade{closedOn(0, -100), closedOn(1, 50), closedOn(2, -400)}, 1000)

	var max float64
	for _, p := range dd.Points {
		if p.Drawdown > max {
			max = p.Drawdown
		}
	}
	assert.InDelta(t, max, dd.MaxDrawdown, 1e-9)
	assert.InDelta(t, 450.0, dd.CurrentDrawdown, 1e-9)
	assert.InDelta(t, 45.0, dd.CurrentDrawdownPercent, 1e-9)
}

func TestEquityCurve_Degenerate(t *testing.T) {
	t.Parallel()

	t.Run("no trades", func(t *testing.T) {
		dd := EquityCurve(nil, 5000)
		assert.Empty(t, dd.Points)
		assert.Equal(t, 5000.0, dd.EndingEquity)
		assert.Equal(t, 0.0, dd.MaxDrawdown)
	})

	t.Run("zero peak has no percentage", func(t *testing.T) {
		dd := EquityCurve([]Trade{closedOn(0, -100)}, 0)
		require.Len(t, dd.Points, 1)
		assert.InDelta(t, 100.0, dd.MaxDrawdown, 1e-9)
		assert.Equal(t, 0.0, dd.MaxDrawdownPercent)
	})
}

func TestDailyEquityCurve(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		closedOn(0, 150), closedOn(0, 50),
		closedOn(1, -500),
		closedOn(2, 100),
		closedOn(3, -300),
		closedOn(4, 1000),
	}

	dd := DailyEquityCurve(DailyResults(trades, nil), 10000)
	require.Len(t, dd.Points, 5)
	assert.InDelta(t, 10200.0, dd.Points[0].Equity, 1e-9)
	assert.InDelta(t, 700.0, dd.MaxDrawdown, 1e-9)
}
