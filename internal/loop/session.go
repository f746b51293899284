package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shipdrift/internal/config"
	"github.com/tomz197/shipdrift/internal/draw"
	"github.com/tomz197/shipdrift/internal/game"
	"github.com/tomz197/shipdrift/internal/input"
)

// Options configure a terminal session.
type Options struct {
	Settings     config.Settings
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// Session is one player's game on one terminal: it owns the state, reads
// keys from r and draws frames to w.
type Session struct {
	state    *game.State
	stream   *input.Stream
	canvas   *draw.Canvas
	out      *draw.ChunkWriter
	writer   io.Writer
	tick     time.Duration
	termSize draw.TermSizeFunc
	logger   *log.Logger
	fps      float64 // Smoothed frame rate for the HUD
}

// NewSession creates a session reading input from r and drawing to w.
func NewSession(r io.Reader, w io.Writer, opts Options) (*Session, error) {
	state, err := NewState(opts.Settings)
	if err != nil {
		return nil, err
	}

	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, err := termSize()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	return &Session{
		state:    state,
		stream:   input.StartStream(r),
		canvas:   draw.NewScaledCanvas(termWidth, termHeight, state.Bounds.Width, state.Bounds.Height),
		out:      draw.NewChunkWriter(w),
		writer:   w,
		tick:     opts.Settings.Tick,
		termSize: termSize,
		logger:   logger,
	}, nil
}

// NewState validates settings and builds the game state they describe.
func NewState(settings config.Settings) (*game.State, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	stage, err := game.ParseStage(settings.Stage)
	if err != nil {
		return nil, err
	}
	return game.New(game.Options{
		Stage:     stage,
		Width:     float64(settings.Width),
		Height:    float64(settings.Height),
		Asteroids: settings.Asteroids,
		Seed:      settings.Seed,
	})
}

// State exposes the session's game state. Only safe to read while Run is
// not executing.
func (s *Session) State() *game.State {
	return s.state
}

// Run plays until the player quits, the input closes or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)
	defer draw.ClearScreen(s.writer)

	s.logger.Debug("session started", "stage", s.state.Stage, "bounds", s.state.Bounds)
	err := Drive(ctx, s.tick, s.frame)
	s.logger.Debug("session ended", "ticks", s.state.Tick, "err", err)
	return err
}

// Run creates a session on r/w and plays it.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	s, err := NewSession(r, w, opts)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// frame is the input, update, draw cycle.
func (s *Session) frame(now time.Time, progress time.Duration) error {
	in := s.stream.ReadAt(now)
	if in.Quit || in.Closed {
		return ErrQuit
	}
	s.applyCommands(in)
	s.state.Keys = in.Keys()

	s.updateScreen()
	s.state.Update(progress)

	if progress > 0 {
		const smoothing = 0.1
		s.fps += (float64(time.Second)/float64(progress) - s.fps) * smoothing
	}

	return s.drawFrame()
}

// applyCommands handles the non-steering keys.
func (s *Session) applyCommands(in input.Input) {
	if in.Reset {
		s.state.Reset()
		s.logger.Debug("reset")
	}
	if in.Stage > 0 {
		stage, err := game.ParseStage(in.Stage)
		if err != nil {
			s.logger.Warn("ignoring stage key", "stage", in.Stage, "err", err)
			return
		}
		if err := s.state.SetStage(stage); err != nil {
			s.logger.Warn("stage switch failed", "err", err)
			return
		}
		s.logger.Debug("stage switched", "stage", stage)
	}
}

// updateScreen follows terminal resizes and field size changes.
func (s *Session) updateScreen() {
	if termWidth, termHeight, err := s.termSize(); err == nil {
		s.canvas.Resize(termWidth, termHeight)
	}
	s.canvas.SetLogicalSize(s.state.Bounds.Width, s.state.Bounds.Height)
}
