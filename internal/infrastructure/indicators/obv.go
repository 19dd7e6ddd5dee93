package indicators

// CalculateOBV computes On-Balance Volume: a running total starting at 0 that
// adds the bar's volume when the close rises and subtracts it when it falls.
// Mismatched or empty inputs yield an empty series.
func CalculateOBV(closes, volumes []float64) Series {
	if len(closes) == 0 || len(volumes) == 0 || len(closes) != len(volumes) {
		return Series{}
	}
	out := NewSeries(len(closes))
	total := 0.0
	out[0] = 0.0
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			total += volumes[i]
		case closes[i] < closes[i-1]:
			total -= volumes[i]
		}
		out[i] = total
	}
	return out
}
