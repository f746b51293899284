package game

import (
	"math"

	"github.com/tomz197/shipdrift/internal/physics"
)

// Ship is the player-controlled spaceship.
type Ship struct {
	Body
	Rotation float64 // Degrees; 0 points up, positive turns clockwise
}

// NewShip creates a ship whose box starts at (x, y).
func NewShip(x, y float64) Ship {
	return Ship{Body: newBody(x, y, ShipRadius)}
}

// Rotate turns the ship by RotationStep*p degrees. Left wins when both
// directions are held.
func (s *Ship) Rotate(keys Keys, p float64) {
	if keys.Left {
		s.Rotation -= p * RotationStep
	} else if keys.Right {
		s.Rotation += p * RotationStep
	}
}

// Heading returns the unit vector the nose points along. Screen y grows
// downward, so rotation 0 is (0, -1).
func (s *Ship) Heading() Vec {
	rad := physics.DegToRad(s.Rotation - 90)
	return Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Thrust accelerates forward on Up or backward on Down (Up wins), then
// applies damping and the per-axis speed limit regardless of input.
func (s *Ship) Thrust(keys Keys, p float64) {
	h := s.Heading()
	ax := p * Acceleration * h.X
	ay := p * Acceleration * h.Y

	if keys.Up {
		s.Movement.X += ax
		s.Movement.Y += ay
	} else if keys.Down {
		s.Movement.X -= ax
		s.Movement.Y -= ay
	}

	s.Movement.X *= Damping
	s.Movement.Y *= Damping

	s.Movement.X = physics.Clamp(s.Movement.X, MaxMovementSpeed)
	s.Movement.Y = physics.Clamp(s.Movement.Y, MaxMovementSpeed)
}

// Outline returns the ship's triangle (nose, right wing, left wing) in world
// coordinates, for renderers that draw shapes rather than sprites.
func (s *Ship) Outline() [3]Vec {
	const wingAngle = 140.0
	corner := func(offsetDeg, scale float64) Vec {
		rad := physics.DegToRad(s.Rotation - 90 + offsetDeg)
		return Vec{
			X: s.Origo.X + math.Cos(rad)*s.Radius*scale,
			Y: s.Origo.Y + math.Sin(rad)*s.Radius*scale,
		}
	}
	return [3]Vec{
		corner(0, 1),
		corner(wingAngle, 0.8),
		corner(-wingAngle, 0.8),
	}
}
