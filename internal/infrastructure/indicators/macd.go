package indicators

// CalculateMACD computes the MACD line, signal line and histogram.
// The signal line is an EMA over the MACD line with undefined entries treated
// as 0.0, so the zero-filled warmup slightly dampens the first signal values
// instead of delaying them.
func CalculateMACD(values []float64, fast, slow, signal int) (line, signalLine, hist Series, err error) {
	emaFast, err := CalculateEMA(values, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := CalculateEMA(values, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	line = NewSeries(len(values))
	for i := range values {
		if Defined(emaFast[i]) && Defined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	filled := make([]float64, len(line))
	for i, v := range line {
		if Defined(v) {
			filled[i] = v
		}
	}
	signalLine, err = CalculateEMA(filled, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	hist = NewSeries(len(values))
	for i := range values {
		if Defined(line[i]) && Defined(signalLine[i]) {
			hist[i] = line[i] - signalLine[i]
		}
	}
	return line, signalLine, hist, nil
}
