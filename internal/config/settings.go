package config

import (
	"errors"
	"fmt"
	"time"
)

// Defaults for the game settings.
const (
	DefaultStage     = 3
	DefaultWidth     = 800
	DefaultHeight    = 400
	DefaultAsteroids = 1
	DefaultTickMS    = 16
)

// Settings holds the tunables shared by every front end.
type Settings struct {
	Stage     int           // Iteration of the game (1-3)
	Width     int           // World width in logical pixels
	Height    int           // World height in logical pixels
	Asteroids int           // Asteroid count for the asteroid stage
	Seed      int64         // Seed for extra asteroid placement
	Tick      time.Duration // Frame interval
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Stage:     DefaultStage,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Asteroids: DefaultAsteroids,
		Seed:      1,
		Tick:      DefaultTickMS * time.Millisecond,
	}
}

// Load reads settings from the environment on top of the defaults:
// STAGE, WORLD_WIDTH, WORLD_HEIGHT, ASTEROIDS, SEED and TICK_MS.
func Load() (Settings, error) {
	s := DefaultSettings()
	var errs []error

	var err error
	if s.Stage, err = GetEnvInt("STAGE", s.Stage); err != nil {
		errs = append(errs, err)
	}
	if s.Width, err = GetEnvInt("WORLD_WIDTH", s.Width); err != nil {
		errs = append(errs, err)
	}
	if s.Height, err = GetEnvInt("WORLD_HEIGHT", s.Height); err != nil {
		errs = append(errs, err)
	}
	if s.Asteroids, err = GetEnvInt("ASTEROIDS", s.Asteroids); err != nil {
		errs = append(errs, err)
	}
	if s.Seed, err = GetEnvInt64("SEED", s.Seed); err != nil {
		errs = append(errs, err)
	}
	tickMS, err := GetEnvInt("TICK_MS", DefaultTickMS)
	if err != nil {
		errs = append(errs, err)
	}
	s.Tick = time.Duration(tickMS) * time.Millisecond

	if len(errs) > 0 {
		return s, errors.Join(errs...)
	}
	return s, s.Validate()
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	switch {
	case s.Stage < 1 || s.Stage > 3:
		return fmt.Errorf("%w: stage %d not in 1..3", ErrInvalidValue, s.Stage)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidValue, s.Width, s.Height)
	case s.Asteroids < 0:
		return fmt.Errorf("%w: asteroid count %d", ErrInvalidValue, s.Asteroids)
	case s.Tick <= 0:
		return fmt.Errorf("%w: tick %s", ErrInvalidValue, s.Tick)
	}
	return nil
}
