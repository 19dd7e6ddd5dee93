package indicators

import (
	"math/rand"
	"testing"
)

func TestRSIRejectsNonPositivePeriod(t *testing.T) {
	if _, err := CalculateRSI([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for period 0")
	}
}

func TestRSIWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 200)
	price := 100.0
	for i := range values {
		price += rng.Float64()*4 - 2
		if price < 1 {
			price = 1
		}
		values[i] = price
	}

	out, err := CalculateRSI(values, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if !Defined(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("index %d: RSI %f out of [0,100]", i, v)
		}
	}
	if out.DefinedCount() == 0 {
		t.Fatal("expected some defined RSI values")
	}
}

func TestRSIMonotoneRisingIsHundred(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i + 1)
	}

	out, err := CalculateRSI(values, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if Defined(v) && v != 100.0 {
			t.Errorf("index %d: got %f, want 100 with zero losses", i, v)
		}
	}
}

func TestRSIFirstIndexUndefined(t *testing.T) {
	out, err := CalculateRSI([]float64{5, 6, 7, 8, 9, 10, 11, 12}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if Defined(out[0]) {
		t.Error("index 0 must be undefined")
	}
}
