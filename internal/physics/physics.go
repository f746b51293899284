// Package physics provides distance, overlap and wraparound helpers.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap. Touching circles
// (distance exactly r1+r2) do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// WrapShift returns the offset that brings a center coordinate back inside
// [0, size]: -size past the far edge, +size before zero, otherwise 0.
// A single shift is applied per step, so a body moving faster than size per
// frame is pulled back gradually rather than snapped.
func WrapShift(center, size float64) float64 {
	switch {
	case center > size:
		return -size
	case center < 0:
		return size
	default:
		return 0
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Clamp limits v to [-limit, limit].
func Clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
