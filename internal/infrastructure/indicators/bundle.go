package indicators

import "sentinel-backend/internal/domain"

// Params are the indicator periods used by the aggregator.
type Params struct {
	EMAFast    int
	EMASlow    int
	// EMATrend is the long-horizon filter period (e.g. 200); 0 disables it.
	EMATrend   int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	STPeriod   int
	STMult     float64
}

// DefaultParams mirrors the standard configuration: EMA 20/50, MACD 12/26/9,
// RSI 14, Supertrend 10 x3.0.
func DefaultParams() Params {
	return Params{
		EMAFast:    20,
		EMASlow:    50,
		EMATrend:   200,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSIPeriod:  14,
		STPeriod:   10,
		STMult:     3.0,
	}
}

// LastValues are the most recent defined entries of every series in a bundle.
// Undefined values are NaN; SupertrendDir is 0 when undefined.
type LastValues struct {
	Close         float64
	EMAFast       float64
	EMASlow       float64
	EMATrend      float64
	MACD          float64
	MACDSignal    float64
	MACDHist      float64
	RSI           float64
	OBV           float64
	SupertrendDir int
}

// Bundle holds every indicator series computed for one timeframe, plus the
// last-defined-value shortcuts.
type Bundle struct {
	EMAFast       Series
	EMASlow       Series
	EMATrend      Series
	MACD          Series
	MACDSignal    Series
	MACDHist      Series
	RSI           Series
	OBV           Series
	Supertrend    Series
	SupertrendDir []int
	Last          LastValues
}

// ComputeBundle runs the full indicator set over one timeframe's candles.
func ComputeBundle(candles []domain.Candle, p Params) (*Bundle, error) {
	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
		volumes[i] = c.Volume
	}

	emaFast, err := CalculateEMA(closes, p.EMAFast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := CalculateEMA(closes, p.EMASlow)
	if err != nil {
		return nil, err
	}
	emaTrend := NewSeries(len(closes))
	if p.EMATrend > 0 {
		emaTrend, err = CalculateEMA(closes, p.EMATrend)
		if err != nil {
			return nil, err
		}
	}
	macdLine, macdSignal, macdHist, err := CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, err
	}
	rsi, err := CalculateRSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, err
	}
	obv := CalculateOBV(closes, volumes)
	st, stDir, err := CalculateSupertrend(highs, lows, closes, p.STPeriod, p.STMult)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		EMAFast:       emaFast,
		EMASlow:       emaSlow,
		EMATrend:      emaTrend,
		MACD:          macdLine,
		MACDSignal:    macdSignal,
		MACDHist:      macdHist,
		RSI:           rsi,
		OBV:           obv,
		Supertrend:    st,
		SupertrendDir: stDir,
	}
	b.Last = LastValues{
		Close:         lastOr(closes),
		EMAFast:       lastValid(emaFast),
		EMASlow:       lastValid(emaSlow),
		EMATrend:      lastValid(emaTrend),
		MACD:          lastValid(macdLine),
		MACDSignal:    lastValid(macdSignal),
		MACDHist:      lastValid(macdHist),
		RSI:           lastValid(rsi),
		OBV:           lastValid(obv),
		SupertrendDir: lastDir(stDir),
	}
	return b, nil
}

func lastValid(s Series) float64 {
	if v, ok := s.Last(); ok {
		return v
	}
	return Undefined()
}

func lastOr(values []float64) float64 {
	if len(values) == 0 {
		return Undefined()
	}
	return values[len(values)-1]
}

func lastDir(dirs []int) int {
	if d, ok := LastDirection(dirs); ok {
		return d
	}
	return 0
}
