package game

import "fmt"

// AsteroidType is the size class of an asteroid.
type AsteroidType int

const (
	AsteroidSmall AsteroidType = iota + 1
	AsteroidMedium
	AsteroidLarge
)

var asteroidRadii = map[AsteroidType]float64{
	AsteroidSmall:  10,
	AsteroidMedium: 20,
	AsteroidLarge:  30,
}

// MaxAsteroidRadius is the radius of the largest asteroid type.
const MaxAsteroidRadius = 30.0

// Radius returns the collision radius for the type, 0 if unknown.
func (t AsteroidType) Radius() float64 {
	return asteroidRadii[t]
}

func (t AsteroidType) String() string {
	switch t {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	default:
		return fmt.Sprintf("asteroid(%d)", int(t))
	}
}

// Asteroid is a drifting rock. It has no input; it only moves and wraps.
type Asteroid struct {
	Body
	ID   int
	Type AsteroidType
}

// NewAsteroid creates an asteroid whose box starts at (x, y), drifting by
// movement every frame.
func NewAsteroid(id int, typ AsteroidType, x, y float64, movement Vec) *Asteroid {
	a := &Asteroid{
		Body: newBody(x, y, typ.Radius()),
		ID:   id,
		Type: typ,
	}
	a.Movement = movement
	return a
}
