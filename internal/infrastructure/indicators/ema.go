package indicators

import "fmt"

// CalculateEMA computes the Exponential Moving Average.
// The seed at index period-1 is the simple average of the first period values;
// everything before it is undefined. A series shorter than period comes back
// fully undefined.
func CalculateEMA(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema: period must be > 0, got %d", period)
	}
	out := NewSeries(len(values))
	if len(values) < period {
		return out, nil
	}

	k := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	for i := period; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out, nil
}
