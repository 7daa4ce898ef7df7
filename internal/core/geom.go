// Package core provides the math and timing primitives shared by the engine:
// vectors, model matrices, bounding boxes, colors and the microsecond clock.
// It has no dependency on any other package in this module.
package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
