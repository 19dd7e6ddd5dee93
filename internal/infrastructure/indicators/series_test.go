package indicators

import "testing"

func TestSeriesLastScansBackward(t *testing.T) {
	s := Series{Undefined(), 3.5, 7.25, Undefined(), Undefined()}
	v, ok := s.Last()
	if !ok || v != 7.25 {
		t.Errorf("got %f/%v, want 7.25/true", v, ok)
	}
}

func TestSeriesLastAllUndefined(t *testing.T) {
	s := NewSeries(4)
	if _, ok := s.Last(); ok {
		t.Error("expected no defined value")
	}
}

func TestSeriesSlopeSkipsUndefined(t *testing.T) {
	// Defined values compress to 1, 2, 3, 4; slope over 3 = (4-1)/3 = 1.
	s := Series{Undefined(), 1, Undefined(), 2, 3, Undefined(), 4}
	slope, ok := s.Slope(3)
	if !ok {
		t.Fatal("expected a slope")
	}
	if slope != 1.0 {
		t.Errorf("slope: got %f, want 1.0", slope)
	}
}

func TestSeriesSlopeNeedsEnoughData(t *testing.T) {
	s := Series{1, 2, 3}
	if _, ok := s.Slope(3); ok {
		t.Error("3 defined values cannot support a lookback of 3")
	}
	if _, ok := s.Slope(0); ok {
		t.Error("non-positive lookback must fail")
	}
}

func TestLastDirection(t *testing.T) {
	if d, ok := LastDirection([]int{0, 1, -1, 0, 0}); !ok || d != -1 {
		t.Errorf("got %d/%v, want -1/true", d, ok)
	}
	if _, ok := LastDirection([]int{0, 0}); ok {
		t.Error("all-zero directions must report not ok")
	}
}
