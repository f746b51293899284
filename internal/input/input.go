// Package input turns a raw terminal byte stream into per-frame key state.
//
// Terminals report key presses (and auto-repeat) but never releases, so a
// key counts as held while its bytes keep arriving within HoldDuration.
package input

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/shipdrift/internal/game"
)

// DefaultHoldDuration is how long a key stays held after its last byte.
const DefaultHoldDuration = 50 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Quit    bool
	Reset   bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Stage   int    // Digit pressed this frame, -1 if none
	Closed  bool   // Reader hit EOF or an error
	Pressed []byte // Raw bytes drained this frame
}

// Keys returns the steering part of the input.
func (in Input) Keys() game.Keys {
	return game.Keys{Left: in.Left, Right: in.Right, Up: in.Up, Down: in.Down}
}

// keyState tracks the last time each key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and keeps held-key state.
type Stream struct {
	ch           chan byte
	state        keyState
	pending      []byte // Incomplete escape sequence carried to the next read
	closed       bool
	HoldDuration time.Duration
}

// StartStream spawns a goroutine that reads from r until it fails.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{
		ch:           make(chan byte, 128),
		HoldDuration: DefaultHoldDuration,
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadAt drains all available bytes without blocking and returns the key
// state as of now.
func (s *Stream) ReadAt(now time.Time) Input {
	buf := s.pending
	s.pending = nil
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Stage: -1, Closed: s.closed, Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI arrow keys: ESC [ A..D
		if b == '\x1b' && !s.closed && (i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '[')) {
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'r', 'R':
			in.Reset = true
		case 'a', 'A':
			s.state.left = now
		case 'd', 'D':
			s.state.right = now
		case 'w', 'W':
			s.state.up = now
		case 's', 'S':
			s.state.down = now
		case '1', '2', '3':
			in.Stage = int(b - '0')
		}
	}

	hold := s.HoldDuration
	in.Left = held(now, s.state.left, hold)
	in.Right = held(now, s.state.right, hold)
	in.Up = held(now, s.state.up, hold)
	in.Down = held(now, s.state.down, hold)
	return in
}

func held(now, last time.Time, hold time.Duration) bool {
	return !last.IsZero() && now.Sub(last) < hold
}
