package metrics

import "math"

// PositionSizeInput describes a sizing request. When StopTicks and TickValue are both positive the
// per-unit risk is StopTicks*TickValue (futures); otherwise it is |EntryPrice-StopPrice| (shares).
type PositionSizeInput struct {
	AccountSize float64 `json:"account_size"`
	RiskPercent float64 `json:"risk_percent"`
	EntryPrice  float64 `json:"entry_price"`
	StopPrice   float64 `json:"stop_price"`
	TargetPrice float64 `json:"target_price"`
	StopTicks   float64 `json:"stop_ticks"`
	TickValue   float64 `json:"tick_value"`
}

// PositionSizeResult is the outcome of PositionSize. Units == 0 is a valid "no trade" answer.
type PositionSizeResult struct {
	DollarRisk        float64 `json:"dollar_risk"`
	RiskPerUnit       float64 `json:"risk_per_unit"`
	Units             int64   `json:"units"`
	ActualRisk        float64 `json:"actual_risk"`
	ActualRiskPercent float64 `json:"actual_risk_percent"`
	RewardRiskRatio   float64 `json:"reward_risk_ratio"`
	PotentialProfit   float64 `json:"potential_profit"`
}

// UsesTicks reports whether the input sizes by tick distance.
func (in PositionSizeInput) UsesTicks() bool {
	return in.StopTicks > 0 && in.TickValue > 0
}

// PositionSize computes how many shares or contracts fit a fixed-fraction risk budget.
func PositionSize(in PositionSizeInput) PositionSizeResult {
	res := PositionSizeResult{
		DollarRisk: in.AccountSize * in.RiskPercent / 100,
	}

	if in.UsesTicks() {
		res.RiskPerUnit = in.StopTicks * in.TickValue
	} else {
		res.RiskPerUnit = math.Abs(in.EntryPrice - in.StopPrice)
	}

	if res.RiskPerUnit <= 0 || res.DollarRisk <= 0 {
		return res
	}

	res.Units = int64(math.Floor(res.DollarRisk / res.RiskPerUnit))
	res.ActualRisk = float64(res.Units) * res.RiskPerUnit
	if in.AccountSize > 0 {
		res.ActualRiskPercent = res.ActualRisk / in.AccountSize * 100
	}

	if !in.UsesTicks() && in.TargetPrice > 0 {
		reward := math.Abs(in.TargetPrice - in.EntryPrice)
		res.RewardRiskRatio = reward / res.RiskPerUnit
		res.PotentialProfit = reward * float64(res.Units)
	}
	return res
}
