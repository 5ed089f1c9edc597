package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// Normalize returns the unit vector of (x, y), or ok=false when its length is
// below eps.
func Normalize(x, y, eps float64) (nx, ny float64, ok bool) {
	l := math.Hypot(x, y)
	if l < eps {
		return 0, 0, false
	}
	return x / l, y / l, true
}
