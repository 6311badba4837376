package metrics

import "math"

// StdDev is the population standard deviation. Empty input yields 0.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}

// ConsistencyScore maps the spread of R-multiples to 0..100: max(0, 100 - stdDev*20).
// A trader with no R-multiples scores 0.
func ConsistencyScore(rMultiples []float64) float64 {
	if len(rMultiples) == 0 {
		return 0
	}
	return math.Max(0, 100-StdDev(rMultiples)*20)
}

// RMultiples collects the defined R-multiples of closed trades.
func RMultiples(trades []Trade) []float64 {
	out := make([]float64, 0, len(trades))
	for _, t := range trades {
		if t.Closed && t.RMultiple != nil {
			out = append(out, *t.RMultiple)
		}
	}
	return out
}
