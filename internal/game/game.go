// Package game holds the ship/asteroid state and the per-frame update:
// rotation, thrust, position with wraparound, and collision detection.
//
// Every update is expressed against a 16ms reference tick. A frame that took
// progress time scales rotation and thrust by p = progress / 16ms. Velocities
// are in logical pixels per frame and are not scaled.
package game

import (
	"errors"
	"time"
)

// Tunables.
const (
	TickInterval     = 16 * time.Millisecond
	RotationStep     = 5.0  // Degrees per tick while turning
	Acceleration     = 0.3  // Movement gained per tick while thrusting
	Damping          = 0.99 // Movement multiplier applied every frame
	MaxMovementSpeed = 40.0 // Per-axis movement limit
	ShipRadius       = 20.0
)

var (
	// ErrUnknownStage is returned for stage numbers outside 1..3.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrDuplicateAsteroid is returned when an asteroid ID is already in use.
	ErrDuplicateAsteroid = errors.New("duplicate asteroid id")
	// ErrInvalidBounds is returned for field sizes that are not finite,
	// not positive or larger than MaxFieldSize.
	ErrInvalidBounds = errors.New("invalid field size")
)

// Vec is a 2D vector in logical pixels.
type Vec struct {
	X, Y float64
}

// Bounds is the size of the playing field.
type Bounds struct {
	Width  float64
	Height float64
}

// Progress converts the time since the previous frame into the tick factor p.
// Non-positive durations yield 0.
func Progress(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(TickInterval)
}
