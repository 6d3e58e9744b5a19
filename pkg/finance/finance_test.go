package finance

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestAnnualStream(t *testing.T) {
	// 100 + 100/1.05
	got := AnnualStream(100, 5, 2)
	want := 100 + 100/1.05
	if !approx(got, want) {
		t.Errorf("AnnualStream = %v, want %v", got, want)
	}
	if AnnualStream(100, 5, 0) != 0 {
		t.Error("zero years should discount to 0")
	}
}

func TestCapexAndOpex(t *testing.T) {
	// capex 1000, opex 10% = 100/yr over 2 years at 5%, WACC 10%.
	got := CapexAndOpex(1000, 10, 5, 2, 10)
	want := (1000 + 100 + 100/1.05) * 1.1
	if !approx(got, want) {
		t.Errorf("CapexAndOpex = %v, want %v", got, want)
	}
}

func TestCapexAndOpexZeroRates(t *testing.T) {
	got := CapexAndOpex(1000, 10, 0, 10, 0)
	if !approx(got, 2000) {
		t.Errorf("CapexAndOpex at 0%% = %v, want 2000", got)
	}
}

func TestCapexOnlyAndOpexOnly(t *testing.T) {
	if got := Capex(1000, 15); !approx(got, 1150) {
		t.Errorf("Capex = %v, want 1150", got)
	}
	if got := Opex(100, 5, 2, 10); !approx(got, (100+100/1.05)*1.1) {
		t.Errorf("Opex = %v", got)
	}
}

func TestRoundHalfEven(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0.5, 0}, {1.5, 2}, {2.5, 2}, {833.33, 833}, {1666.6667, 1667}, {-2.5, -2}, {300060.4, 300060},
	}
	for _, c := range cases {
		if got := RoundInt(c.in); got != c.want {
			t.Errorf("RoundInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if Round(math.NaN()) != 0 || RoundInt(math.Inf(1)) != 0 {
		t.Error("non-finite values should round to 0")
	}
	if got := RoundTo(0.123456, 4); got != 0.1235 {
		t.Errorf("RoundTo = %v, want 0.1235", got)
	}
}

func TestSafeDiv(t *testing.T) {
	if SafeDiv(10, 0) != 0 {
		t.Error("division by zero should yield 0")
	}
	if SafeDiv(10, 4) != 2.5 {
		t.Error("SafeDiv(10, 4) != 2.5")
	}
}
