// Package desktop runs the game in a native window. The window itself needs
// the ebiten build tag; stepping the game does not.
package desktop

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shipdrift/internal/config"
	"github.com/tomz197/shipdrift/internal/game"
	"github.com/tomz197/shipdrift/internal/loop"
)

// ErrNoWindow is returned by Run in builds without the ebiten tag.
var ErrNoWindow = errors.New("desktop window requires the ebiten build tag")

// Controls is the input sampled for one frame.
type Controls struct {
	Keys  game.Keys
	Reset bool
	Stage int // 0 if no stage key was pressed
	Quit  bool
}

// Game steps a state from sampled controls at the window's frame rate.
type Game struct {
	state    *game.State
	settings config.Settings
	logger   *log.Logger
	last     time.Time
	now      func() time.Time
}

// New creates a Game from settings.
func New(settings config.Settings, logger *log.Logger) (*Game, error) {
	state, err := loop.NewState(settings)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		state:    state,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
	g.last = g.now()
	return g, nil
}

// State returns the game state.
func (g *Game) State() *game.State {
	return g.state
}

// Step applies c and advances the game by the time since the previous
// step. It returns loop.ErrQuit when the player quits.
func (g *Game) Step(c Controls) error {
	if c.Quit {
		return loop.ErrQuit
	}
	if c.Reset {
		g.state.Reset()
	}
	if c.Stage > 0 {
		stage, err := game.ParseStage(c.Stage)
		if err == nil {
			err = g.state.SetStage(stage)
		}
		if err != nil {
			g.logger.Warn("stage switch failed", "stage", c.Stage, "err", err)
		}
	}
	g.state.Keys = c.Keys

	now := g.now()
	g.state.Update(now.Sub(g.last))
	g.last = now
	return nil
}

// WindowSize is the window size in pixels for the configured field.
func (g *Game) WindowSize() (int, int) {
	return int(g.state.Bounds.Width), int(g.state.Bounds.Height)
}

// TPS is the update rate matching the configured tick.
func (g *Game) TPS() int {
	return max(1, int(time.Second/g.settings.Tick))
}
