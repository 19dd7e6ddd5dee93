package indicators

import (
	"testing"

	"sentinel-backend/internal/domain"
)

func risingCandles(n int) []domain.Candle {
	candles := make([]domain.Candle, n)
	for i := 0; i < n; i++ {
		c := 100.0 + float64(i)
		candles[i] = domain.Candle{
			OpenTime: int64(i) * 60_000,
			Open:     c - 0.5,
			High:     c + 1,
			Low:      c - 1,
			Close:    c,
			Volume:   1000,
		}
	}
	return candles
}

func TestComputeBundleLastValues(t *testing.T) {
	candles := risingCandles(120)

	b, err := ComputeBundle(candles, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	if b.Last.Close != candles[119].Close {
		t.Errorf("last close: got %f, want %f", b.Last.Close, candles[119].Close)
	}
	if !Defined(b.Last.EMAFast) || !Defined(b.Last.EMASlow) {
		t.Error("EMA last values should be defined with 120 candles")
	}
	if Defined(b.Last.EMATrend) {
		t.Error("EMA trend needs 200 candles, expected undefined")
	}
	if !Defined(b.Last.RSI) {
		t.Error("RSI last value should be defined")
	}
	if b.Last.RSI != 100.0 {
		t.Errorf("RSI on monotone rises: got %f, want 100", b.Last.RSI)
	}
	if b.Last.SupertrendDir != 1 {
		t.Errorf("supertrend direction: got %d, want +1", b.Last.SupertrendDir)
	}
	if b.Last.EMAFast <= b.Last.EMASlow {
		t.Errorf("rising market: fast EMA %f should exceed slow EMA %f", b.Last.EMAFast, b.Last.EMASlow)
	}
}

func TestComputeBundleTrendFilter(t *testing.T) {
	p := DefaultParams()
	p.EMATrend = 50

	b, err := ComputeBundle(risingCandles(120), p)
	if err != nil {
		t.Fatal(err)
	}
	if !Defined(b.Last.EMATrend) {
		t.Error("trend EMA should be defined with period 50 over 120 candles")
	}
}

func TestComputeBundlePropagatesBadPeriods(t *testing.T) {
	p := DefaultParams()
	p.EMAFast = 0

	if _, err := ComputeBundle(risingCandles(60), p); err == nil {
		t.Error("expected error for non-positive EMA period")
	}
}
