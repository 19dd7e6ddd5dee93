package indicators

import "math"

// Series is an indicator output aligned index-by-index with its input candles.
// Entries without enough lookback are undefined and carried as NaN.
type Series []float64

// Undefined returns the sentinel for a not-yet-defined entry.
func Undefined() float64 {
	return math.NaN()
}

// Defined reports whether v holds a real indicator value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// NewSeries returns a series of n undefined entries.
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Last returns the most recent defined value, scanning backward.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if Defined(s[i]) {
			return s[i], true
		}
	}
	return 0, false
}

// Slope returns the simple slope over the trailing lookback window of the
// defined values: (last - last-lookback) / lookback. It needs strictly more
// than lookback defined entries.
func (s Series) Slope(lookback int) (float64, bool) {
	if lookback <= 0 {
		return 0, false
	}
	seq := make([]float64, 0, len(s))
	for _, v := range s {
		if Defined(v) {
			seq = append(seq, v)
		}
	}
	if len(seq) <= lookback {
		return 0, false
	}
	return (seq[len(seq)-1] - seq[len(seq)-1-lookback]) / float64(lookback), true
}

// DefinedCount returns how many entries hold a real value.
func (s Series) DefinedCount() int {
	n := 0
	for _, v := range s {
		if Defined(v) {
			n++
		}
	}
	return n
}

// LastDirection returns the most recent non-zero entry of a direction slice
// (+1 uptrend, -1 downtrend, 0 undefined).
func LastDirection(dirs []int) (int, bool) {
	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i] != 0 {
			return dirs[i], true
		}
	}
	return 0, false
}
