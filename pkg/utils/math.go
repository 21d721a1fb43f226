package utils

import "math"

// MinFloat returns the minimum of two floats.
func MinFloat(a, b float64) float64 {
	return math.Min(a, b)
}

// Clamp bounds value to [low, high].
func Clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// NearlyZero reports whether value is within threshold of zero.
func NearlyZero(value, threshold float64) bool {
	return math.Abs(value) < threshold
}
