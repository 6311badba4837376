package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PositionSizeInput
		want PositionSizeResult
	}{
		{
			name: "futures by ticks",
			in:   PositionSizeInput{AccountSize: 50000, RiskPercent: 1, StopTicks: 8, TickValue: 12.5},
			want: PositionSizeResult{DollarRisk: 500, RiskPerUnit: 100, Units: 5, ActualRisk: 500, ActualRiskPercent: 1},
		},
		{
			name: "shares by price with target",
			in:   PositionSizeInput{AccountSize: 10000, RiskPercent: 1, EntryPrice: 50, StopPrice: 48, TargetPrice: 56},
			want: PositionSizeResult{DollarRisk: 100, RiskPerUnit: 2, Units: 50, ActualRisk: 100, ActualRiskPercent: 1, RewardRiskRatio: 3, PotentialProfit: 300},
		},
		{
			name: "short side uses absolute distance",
			in:   PositionSizeInput{AccountSize: 10000, RiskPercent: 2, EntryPrice: 40, StopPrice: 43},
			want: PositionSizeResult{DollarRisk: 200, RiskPerUnit: 3, Units: 66, ActualRisk: 198, ActualRiskPercent: 1.98},
		},
		{
			name: "unit risk above budget means no trade",
			in:   PositionSizeInput{AccountSize: 1000, RiskPercent: 1, StopTicks: 4, TickValue: 12.5},
			want: PositionSizeResult{DollarRisk: 10, RiskPerUnit: 50},
		},
		{
			name: "no stop distance",
			in:   PositionSizeInput{AccountSize: 1000, RiskPercent: 1, EntryPrice: 10, StopPrice: 10},
			want: PositionSizeResult{DollarRisk: 10},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PositionSize(tt.in)
			assert.InDelta(t, tt.want.DollarRisk, got.DollarRisk, 1e-9)
			assert.InDelta(t, tt.want.RiskPerUnit, got.RiskPerUnit, 1e-9)
			assert.Equal(t, tt.want.Units, got.Units)
			assert.InDelta(t, tt.want.ActualRisk, got.ActualRisk, 1e-9)
			assert.InDelta(t, tt.want.ActualRiskPercent, got.ActualRiskPercent, 1e-9)
			assert.InDelta(t, tt.want.RewardRiskRatio, got.RewardRiskRatio, 1e-9)
			assert.InDelta(t, tt.want.PotentialProfit, got.PotentialProfit, 1e-9)
		})
	}
}
