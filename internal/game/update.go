package game

import (
	"slices"
	"time"
)

// Update advances the game by one frame that took elapsed time:
// rotation, movement, position, then collisions.
func (s *State) Update(elapsed time.Duration) {
	p := Progress(elapsed)

	s.UpdateRotation(p)
	s.UpdateMovement(p)
	s.UpdatePosition()
	s.CheckCollisions()
	s.Tick++
}

// UpdateRotation turns the ship according to the held keys.
func (s *State) UpdateRotation(p float64) {
	s.Ship.Rotate(s.Keys, p)
}

// UpdateMovement applies thrust, damping and the speed limit to the ship.
func (s *State) UpdateMovement(p float64) {
	s.Ship.Thrust(s.Keys, p)
}

// UpdatePosition moves the ship and every asteroid by one frame of
// movement, wrapping at the field edges when the stage allows it.
func (s *State) UpdatePosition() {
	wrap := s.Stage.Wraps()
	s.Ship.Move(s.Bounds, wrap)
	for _, a := range s.Asteroids {
		a.Move(s.Bounds, wrap)
	}
}

// CheckCollisions recomputes Collision and Collisions from the current
// positions. Distances are measured directly, not across the wrapped edges.
func (s *State) CheckCollisions() {
	s.Collisions = s.Collisions[:0]
	s.Collision = false
	if !s.Stage.DetectsCollisions() || len(s.Asteroids) == 0 {
		return
	}

	s.grid.Clear()
	for _, a := range s.Asteroids {
		s.grid.Insert(a.Origo.X, a.Origo.Y, a.ID)
	}

	ship := &s.Ship.Body
	s.grid.QueryAround(ship.Origo.X, ship.Origo.Y, func(id int) bool {
		a, ok := s.index.Get(id)
		if ok && ship.Overlaps(&a.Body) {
			s.Collisions = append(s.Collisions, id)
		}
		return false
	})

	slices.Sort(s.Collisions)
	s.Collisions = slices.Compact(s.Collisions)
	s.Collision = len(s.Collisions) > 0
}
