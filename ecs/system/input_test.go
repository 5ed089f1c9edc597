package system

import "testing"

func TestAxisDirection(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.49, 0},
		{-0.49, 0},
		{0.5, 1},
		{-0.5, -1},
		{0.9, 1},
		{-1, -1},
	}
	for _, c := range cases {
		if got := axisDirection(c.in); got != c.want {
			t.Errorf("axisDirection(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
