// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp performs linear interpolation between a and b.
// x is the fractional position (0 <= x <= 1).
func Lerp(a, b, x float32) float32 {
	return a*(1-x) + b*x
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
