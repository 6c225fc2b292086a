package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3,0,10) = %d", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Errorf("Clamp(42,0,10) = %d", got)
	}
	// Swapped bounds behave the same.
	if got := Clamp(42, 10, 0); got != 10 {
		t.Errorf("Clamp(42,10,0) = %d", got)
	}
}

func TestMapRange(t *testing.T) {
	cases := []struct {
		v, inLo, inHi, outLo, outHi, want int32
	}{
		{0, 0, 1023, 0, 100, 0},
		{1023, 0, 1023, 0, 100, 100},
		{512, 0, 1023, 0, 100, 50},
		{2000, 0, 1023, 0, 100, 100}, // saturates
		{-5, 0, 1023, 0, 100, 0},     // saturates
		{5, 5, 5, 60, 3000, 60},      // degenerate input range
		{100, 0, 100, 3000, 60, 60},  // inverted output range
		{2, 0, 60, 25, 1, 24},        // detent velocity to step, fast end
		{59, 0, 60, 25, 1, 1},        // detent velocity to step, slow end
	}
	for _, c := range cases {
		if got := MapRange(c.v, c.inLo, c.inHi, c.outLo, c.outHi); got != c.want {
			t.Errorf("MapRange(%d,[%d,%d]->[%d,%d]) = %d, want %d",
				c.v, c.inLo, c.inHi, c.outLo, c.outHi, got, c.want)
		}
	}
}
