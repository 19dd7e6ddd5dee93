package indicators

import "fmt"

// CalculateRSI computes the Relative Strength Index with EMA-smoothed average
// gain/loss. Index 0 and every index before both averages seed are undefined.
func CalculateRSI(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be > 0, got %d", period)
	}
	out := NewSeries(len(values))
	if len(values) < 2 {
		return out, nil
	}

	n := len(values)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		diff := values[i] - values[i-1]
		if diff > 0 {
			gains[i] = diff
		} else {
			losses[i] = -diff
		}
	}

	// The per-step series starts at index 1, so the smoothed averages are
	// shifted back by one to line up with the source index.
	avgGain, err := CalculateEMA(gains[1:], period)
	if err != nil {
		return nil, err
	}
	avgLoss, err := CalculateEMA(losses[1:], period)
	if err != nil {
		return nil, err
	}

	for i := 1; i < n; i++ {
		g, l := avgGain[i-1], avgLoss[i-1]
		if !Defined(g) || !Defined(l) {
			continue
		}
		if l == 0 {
			out[i] = 100.0
			continue
		}
		rs := g / l
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}
