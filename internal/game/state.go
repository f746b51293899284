package game

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/tomz197/shipdrift/internal/physics"
)

// Options configure a new State.
type Options struct {
	Stage     Stage
	Width     float64
	Height    float64
	Asteroids int   // Total asteroids for the asteroid stage; the first is always the fixed one
	Seed      int64 // Seed for placing asteroids beyond the first
}

// Field size limits.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
	MaxFieldSize  = 8192 // Per axis; bounds the collision grid allocation
)

// collisionCellSize bounds the widest ship/asteroid contact distance.
const collisionCellSize = ShipRadius + MaxAsteroidRadius

// State is the whole game: one ship, zero or more asteroids, the keys held
// and the last collision result. A State is not safe for concurrent use;
// each session owns its own.
type State struct {
	Ship       Ship
	Asteroids  []*Asteroid
	Keys       Keys
	Collision  bool  // Ship overlaps at least one asteroid
	Collisions []int // IDs of overlapping asteroids, ascending
	Bounds     Bounds
	Stage      Stage
	Tick       uint64 // Frames updated since the last reset

	opts  Options
	index *intmap.Map[int, *Asteroid]
	grid  *physics.SpatialGrid
}

// New builds the initial state for opts. Zero width/height fall back to the
// defaults; a zero stage means StageAsteroids.
func New(opts Options) (*State, error) {
	if opts.Stage == 0 {
		opts.Stage = StageAsteroids
	}
	if _, err := ParseStage(int(opts.Stage)); err != nil {
		return nil, err
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if err := checkBounds(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if opts.Asteroids < 0 {
		opts.Asteroids = 0
	}

	s := &State{opts: opts}
	s.Reset()
	return s, nil
}

// Reset restores the starting layout for the current options. Held keys
// survive a reset.
func (s *State) Reset() {
	s.Stage = s.opts.Stage
	s.Bounds = Bounds{Width: s.opts.Width, Height: s.opts.Height}
	s.Ship = NewShip(0, 0)
	s.Asteroids = s.Asteroids[:0]
	s.Collision = false
	s.Collisions = s.Collisions[:0]
	s.Tick = 0
	s.index = intmap.New[int, *Asteroid](max(s.opts.Asteroids, 1))

	if s.grid == nil {
		s.grid = physics.NewSpatialGrid(s.Bounds.Width, s.Bounds.Height, collisionCellSize)
	} else {
		s.grid.Reset(s.Bounds.Width, s.Bounds.Height, collisionCellSize)
	}

	if !s.Stage.HasAsteroids() || s.opts.Asteroids == 0 {
		return
	}

	s.insert(NewAsteroid(1, AsteroidSmall, 100, 100, Vec{X: 0.2, Y: 0.1}))
	s.spawnExtra(s.opts.Asteroids - 1)
}

// spawnExtra places n more asteroids from the seeded source, keeping them
// clear of the ship's start position.
func (s *State) spawnExtra(n int) {
	if n <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(s.opts.Seed))
	types := []AsteroidType{AsteroidSmall, AsteroidMedium, AsteroidLarge}
	const attempts = 16

	for id := 2; id <= n+1; id++ {
		typ := types[rng.Intn(len(types))]
		r := typ.Radius()
		movement := Vec{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}

		var a *Asteroid
		for try := 0; try < attempts; try++ {
			x := rng.Float64() * (s.Bounds.Width - 2*r)
			y := rng.Float64() * (s.Bounds.Height - 2*r)
			a = NewAsteroid(id, typ, x, y, movement)
			if !a.Overlaps(&s.Ship.Body) {
				break
			}
		}
		s.insert(a)
	}
}

// SetStage switches to another iteration and rebuilds the state.
func (s *State) SetStage(stage Stage) error {
	if _, err := ParseStage(int(stage)); err != nil {
		return err
	}
	s.opts.Stage = stage
	s.Reset()
	return nil
}

// Resize changes the playing field. Bodies keep their positions and are
// pulled back inside by the next wraparound step. Sizes that are not finite
// and positive, or exceed MaxFieldSize, are rejected with ErrInvalidBounds
// and leave the field unchanged.
func (s *State) Resize(width, height float64) error {
	if err := checkBounds(width, height); err != nil {
		return err
	}
	s.opts.Width = width
	s.opts.Height = height
	s.Bounds = Bounds{Width: width, Height: height}
	s.grid.Reset(width, height, collisionCellSize)
	return nil
}

func checkBounds(width, height float64) error {
	for _, v := range [...]float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxFieldSize {
			return fmt.Errorf("%w: %vx%v", ErrInvalidBounds, width, height)
		}
	}
	return nil
}

// AddAsteroid inserts a into the field.
func (s *State) AddAsteroid(a *Asteroid) error {
	if _, exists := s.index.Get(a.ID); exists {
		return fmt.Errorf("%w: %d", ErrDuplicateAsteroid, a.ID)
	}
	s.insert(a)
	return nil
}

// insert adds a without the duplicate check. Reset hands out fresh IDs.
func (s *State) insert(a *Asteroid) {
	s.index.Put(a.ID, a)
	s.Asteroids = append(s.Asteroids, a)
}

// RemoveAsteroid deletes the asteroid with the given ID and reports whether
// it existed.
func (s *State) RemoveAsteroid(id int) bool {
	if _, exists := s.index.Get(id); !exists {
		return false
	}
	s.index.Del(id)
	s.Asteroids = slices.DeleteFunc(s.Asteroids, func(a *Asteroid) bool { return a.ID == id })
	s.Collisions = slices.DeleteFunc(s.Collisions, func(c int) bool { return c == id })
	s.Collision = len(s.Collisions) > 0
	return true
}

// Asteroid looks up an asteroid by ID.
func (s *State) Asteroid(id int) (*Asteroid, bool) {
	return s.index.Get(id)
}
