package game

import "github.com/tomz197/shipdrift/internal/physics"

// Body is a moving circle. X and Y locate the top-left corner of the
// body's box, which is what renderers translate; Origo is its center and
// drives wraparound and collisions.
type Body struct {
	X, Y     float64
	Origo    Vec
	Radius   float64
	Movement Vec
}

func newBody(x, y, radius float64) Body {
	return Body{
		X:      x,
		Y:      y,
		Origo:  Vec{X: x + radius, Y: y + radius},
		Radius: radius,
	}
}

// Move adds one frame of movement. With wrap set, a center that left the
// field re-enters from the opposite edge.
func (b *Body) Move(bounds Bounds, wrap bool) {
	b.X += b.Movement.X
	b.Y += b.Movement.Y
	b.Origo.X += b.Movement.X
	b.Origo.Y += b.Movement.Y

	if !wrap {
		return
	}

	if dx := physics.WrapShift(b.Origo.X, bounds.Width); dx != 0 {
		b.X += dx
		b.Origo.X += dx
	}
	if dy := physics.WrapShift(b.Origo.Y, bounds.Height); dy != 0 {
		b.Y += dy
		b.Origo.Y += dy
	}
}

// Overlaps reports whether two bodies' circles intersect.
func (b *Body) Overlaps(o *Body) bool {
	return physics.CirclesOverlap(b.Origo.X, b.Origo.Y, b.Radius, o.Origo.X, o.Origo.Y, o.Radius)
}
