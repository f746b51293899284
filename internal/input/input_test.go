package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/shipdrift/internal/game"
)

// readAll polls the stream until it reports EOF, merging what it saw.
func readAll(t *testing.T, s *Stream, now time.Time) Input {
	t.Helper()
	merged := Input{Stage: -1}
	require.Eventually(t, func() bool {
		in := s.ReadAt(now)
		merged.Pressed = append(merged.Pressed, in.Pressed...)
		merged.Quit = merged.Quit || in.Quit
		merged.Reset = merged.Reset || in.Reset
		if in.Stage >= 0 {
			merged.Stage = in.Stage
		}
		merged.Left, merged.Right, merged.Up, merged.Down = in.Left, in.Right, in.Up, in.Down
		merged.Closed = in.Closed
		return in.Closed
	}, time.Second, time.Millisecond)
	return merged
}

func TestWASD(t *testing.T) {
	now := time.Now()
	s := StartStream(strings.NewReader("wa"))

	in := readAll(t, s, now)
	assert.True(t, in.Up)
	assert.True(t, in.Left)
	assert.False(t, in.Right)
	assert.False(t, in.Down)
	assert.Equal(t, game.Keys{Up: true, Left: true}, in.Keys())
	assert.Equal(t, []byte("wa"), in.Pressed)
}

func TestArrowKeys(t *testing.T) {
	now := time.Now()
	s := StartStream(strings.NewReader("\x1b[A\x1b[C"))

	in := readAll(t, s, now)
	assert.True(t, in.Up)
	assert.True(t, in.Right)
	assert.False(t, in.Left)
}

func TestKeysReleaseAfterHold(t *testing.T) {
	now := time.Now()
	s := StartStream(strings.NewReader("d"))

	in := readAll(t, s, now)
	require.True(t, in.Right)

	later := s.ReadAt(now.Add(s.HoldDuration / 2))
	assert.True(t, later.Right)

	released := s.ReadAt(now.Add(s.HoldDuration))
	assert.False(t, released.Right)
}

func TestCommands(t *testing.T) {
	s := StartStream(strings.NewReader("r2q"))

	in := readAll(t, s, time.Now())
	assert.True(t, in.Reset)
	assert.True(t, in.Quit)
	assert.Equal(t, 2, in.Stage)
}

func TestCtrlCQuits(t *testing.T) {
	s := StartStream(strings.NewReader("\x03"))
	assert.True(t, readAll(t, s, time.Now()).Quit)
}

func TestOpenStreamReportsNothing(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := StartStream(r)

	in := s.ReadAt(time.Now())
	assert.False(t, in.Closed)
	assert.Equal(t, -1, in.Stage)
	assert.Empty(t, in.Pressed)
	assert.Equal(t, game.Keys{}, in.Keys())
}
