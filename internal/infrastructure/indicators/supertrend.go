package indicators

import (
	"fmt"
	"math"
)

// CalculateSupertrend computes the Supertrend line and its direction
// (+1 uptrend, -1 downtrend, 0 undefined) from volatility bands around HL2.
//
// The final bands ratchet: the upper band only moves down unless the prior
// close broke above it, the lower band only moves up unless the prior close
// broke below it. Direction flips only when the close crosses the running
// Supertrend value.
func CalculateSupertrend(highs, lows, closes []float64, period int, multiplier float64) (Series, []int, error) {
	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, nil, fmt.Errorf("supertrend: high/low/close length mismatch (%d/%d/%d)",
			len(highs), len(lows), len(closes))
	}
	if period <= 0 {
		return nil, nil, fmt.Errorf("supertrend: period must be > 0, got %d", period)
	}

	n := len(closes)
	st := NewSeries(n)
	dirs := make([]int, n)
	if n == 0 {
		return st, dirs, nil
	}

	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	// Simple moving average ATR, undefined until period bars accumulate.
	atr := NewSeries(n)
	if n >= period {
		sum := 0.0
		for i := 0; i < period; i++ {
			sum += tr[i]
		}
		atr[period-1] = sum / float64(period)
		for i := period; i < n; i++ {
			sum += tr[i] - tr[i-period]
			atr[i] = sum / float64(period)
		}
	}

	basicUB := NewSeries(n)
	basicLB := NewSeries(n)
	for i := 0; i < n; i++ {
		if Defined(atr[i]) {
			hl2 := (highs[i] + lows[i]) / 2.0
			basicUB[i] = hl2 + multiplier*atr[i]
			basicLB[i] = hl2 - multiplier*atr[i]
		}
	}

	finalUB := NewSeries(n)
	finalLB := NewSeries(n)
	for i := 0; i < n; i++ {
		if i == 0 {
			finalUB[i] = basicUB[i]
			finalLB[i] = basicLB[i]
			continue
		}
		if Defined(basicUB[i]) && (!Defined(finalUB[i-1]) || basicUB[i] < finalUB[i-1] || closes[i-1] > finalUB[i-1]) {
			finalUB[i] = basicUB[i]
		} else {
			finalUB[i] = finalUB[i-1]
		}
		if Defined(basicLB[i]) && (!Defined(finalLB[i-1]) || basicLB[i] > finalLB[i-1] || closes[i-1] < finalLB[i-1]) {
			finalLB[i] = basicLB[i]
		} else {
			finalLB[i] = finalLB[i-1]
		}
	}

	for i := 0; i < n; i++ {
		if i == 0 || !Defined(finalUB[i]) || !Defined(finalLB[i]) {
			continue
		}
		prevST := st[i-1]
		prevDir := dirs[i-1]
		if !Defined(prevST) || prevDir == 0 {
			// First defined bar: pick a side from the basic bands.
			if closes[i] > finalUB[i] {
				st[i] = finalLB[i]
				dirs[i] = 1
			} else if closes[i] < finalLB[i] {
				st[i] = finalUB[i]
				dirs[i] = -1
			} else {
				st[i] = finalLB[i]
				dirs[i] = 1
			}
			continue
		}
		if prevDir == 1 {
			if closes[i] <= prevST {
				st[i] = finalLB[i]
				dirs[i] = -1
			} else {
				st[i] = math.Max(finalLB[i], prevST)
				dirs[i] = 1
			}
		} else {
			if closes[i] >= prevST {
				st[i] = finalUB[i]
				dirs[i] = 1
			} else {
				st[i] = math.Min(finalUB[i], prevST)
				dirs[i] = -1
			}
		}
	}
	return st, dirs, nil
}
