package domain

import "math"

// round rounds half up, matching the rounding the stored scores were
// originally computed with (-2.5 rounds to -2, 2.5 to 3).
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
