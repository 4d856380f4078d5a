package util

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{-2, 0, 3, 0},
		{2, 0, 3, 2},
		{7, 0, 3, 3},
		{0, 0, -1, -1},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Fatalf("Clamp(1.5, 0, 1) = %v", got)
	}
}
