package game

import "fmt"

// Stage selects which iteration of the game runs. Each stage adds one
// feature on top of the previous one.
type Stage int

const (
	StageFlight     Stage = 1 // Rotation and thrust only
	StageWraparound Stage = 2 // Adds screen wraparound
	StageAsteroids  Stage = 3 // Adds asteroids and collision detection
)

// ParseStage validates a stage number.
func ParseStage(n int) (Stage, error) {
	s := Stage(n)
	if s < StageFlight || s > StageAsteroids {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStage, n)
	}
	return s, nil
}

func (s Stage) String() string {
	switch s {
	case StageFlight:
		return "flight"
	case StageWraparound:
		return "wraparound"
	case StageAsteroids:
		return "asteroids"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Wraps reports whether bodies wrap at the field edges.
func (s Stage) Wraps() bool { return s >= StageWraparound }

// HasAsteroids reports whether asteroids are spawned.
func (s Stage) HasAsteroids() bool { return s >= StageAsteroids }

// DetectsCollisions reports whether ship/asteroid collisions are checked.
func (s Stage) DetectsCollisions() bool { return s >= StageAsteroids }
