package units

import "testing"

func TestOuncesToPounds(t *testing.T) {
	cases := []struct {
		oz   float64
		want float64
	}{
		{16, 1},
		{8, 0.5},
		{0, 0},
		{24, 1.5},
	}

	for _, c := range cases {
		if got := OuncesToPounds(c.oz); got != c.want {
			t.Errorf("OuncesToPounds(%v) = %v, want %v", c.oz, got, c.want)
		}
	}
}

func TestToPounds_ConvertsOnlyOunces(t *testing.T) {
	if got := ToPounds(32, Oz); got != 2 {
		t.Errorf("expected 32 oz = 2 lbs, got %v", got)
	}

	// every other unit passes through untouched
	for _, u := range []Unit{Lbs, Kg, Gallon, Each} {
		if got := ToPounds(3, u); got != 3 {
			t.Errorf("ToPounds(3, %s) = %v, want 3", u, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !Oz.IsValid() {
		t.Error("oz should be valid")
	}
	if Unit("stone").IsValid() {
		t.Error("stone should not be valid")
	}
}
