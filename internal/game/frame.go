package game

// ShipFrame is the render view of the ship.
type ShipFrame struct {
	X, Y     float64
	Rotation float64
	Radius   float64
}

// AsteroidFrame is the render view of one asteroid.
type AsteroidFrame struct {
	ID     int
	Type   AsteroidType
	X, Y   float64
	Radius float64
}

// Frame is a self-contained copy of what a renderer needs. It shares no
// memory with the State it came from.
type Frame struct {
	Tick       uint64
	Stage      Stage
	Bounds     Bounds
	Ship       ShipFrame
	Asteroids  []AsteroidFrame
	Collision  bool
	Collisions []int
	Keys       Keys
}

// Frame snapshots the state for rendering.
func (s *State) Frame() Frame {
	f := Frame{
		Tick:   s.Tick,
		Stage:  s.Stage,
		Bounds: s.Bounds,
		Ship: ShipFrame{
			X:        s.Ship.X,
			Y:        s.Ship.Y,
			Rotation: s.Ship.Rotation,
			Radius:   s.Ship.Radius,
		},
		Asteroids:  make([]AsteroidFrame, len(s.Asteroids)),
		Collision:  s.Collision,
		Collisions: append([]int(nil), s.Collisions...),
		Keys:       s.Keys,
	}
	for i, a := range s.Asteroids {
		f.Asteroids[i] = AsteroidFrame{ID: a.ID, Type: a.Type, X: a.X, Y: a.Y, Radius: a.Radius}
	}
	return f
}
