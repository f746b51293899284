// Package wire defines the binary messages exchanged with browser clients.
// Both directions are MessagePack maps with short keys.
package wire

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/shipdrift/internal/game"
)

var (
	// ErrEmptyMessage is returned when decoding a zero-length payload.
	ErrEmptyMessage = errors.New("empty message")
	// ErrUnknownEvent is returned for events with an unrecognised type.
	ErrUnknownEvent = errors.New("unknown event type")
)

// ShipMessage is the ship as sent to clients.
type ShipMessage struct {
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"r"`
	Radius   float64 `msgpack:"rad"`
}

// AsteroidMessage is one asteroid as sent to clients.
type AsteroidMessage struct {
	ID     int     `msgpack:"id"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"rad"`
}

// FrameMessage is one rendered frame.
type FrameMessage struct {
	Tick       uint64            `msgpack:"tick"`
	Stage      int               `msgpack:"stage"`
	Width      float64           `msgpack:"w"`
	Height     float64           `msgpack:"h"`
	Ship       ShipMessage       `msgpack:"ship"`
	Asteroids  []AsteroidMessage `msgpack:"asteroids"`
	Collision  bool              `msgpack:"collision"`
	Collisions []int             `msgpack:"collisions"`
}

// FromFrame converts a game frame to its wire form.
func FromFrame(f game.Frame) FrameMessage {
	m := FrameMessage{
		Tick:   f.Tick,
		Stage:  int(f.Stage),
		Width:  f.Bounds.Width,
		Height: f.Bounds.Height,
		Ship: ShipMessage{
			X:        f.Ship.X,
			Y:        f.Ship.Y,
			Rotation: f.Ship.Rotation,
			Radius:   f.Ship.Radius,
		},
		Asteroids:  make([]AsteroidMessage, len(f.Asteroids)),
		Collision:  f.Collision,
		Collisions: f.Collisions,
	}
	if m.Collisions == nil {
		m.Collisions = []int{}
	}
	for i, a := range f.Asteroids {
		m.Asteroids[i] = AsteroidMessage{ID: a.ID, X: a.X, Y: a.Y, Radius: a.Radius}
	}
	return m
}

// EncodeFrame serialises a game frame.
func EncodeFrame(f game.Frame) ([]byte, error) {
	b, err := msgpack.Marshal(FromFrame(f))
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return b, nil
}

// DecodeFrame parses a frame produced by EncodeFrame.
func DecodeFrame(b []byte) (FrameMessage, error) {
	var m FrameMessage
	if len(b) == 0 {
		return m, ErrEmptyMessage
	}
	if err := msgpack.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("decode frame: %w", err)
	}
	return m, nil
}

// EventType identifies a client event.
type EventType string

const (
	EventKeyDown EventType = "down"
	EventKeyUp   EventType = "up"
	EventReset   EventType = "reset"
	EventStage   EventType = "stage"
	EventResize  EventType = "resize"
)

// Event is a client-to-server message: a key transition, a reset, a stage
// switch or a viewport resize.
type Event struct {
	Type   EventType `msgpack:"t"`
	Code   int       `msgpack:"c,omitempty"`
	Stage  int       `msgpack:"s,omitempty"`
	Width  float64   `msgpack:"w,omitempty"`
	Height float64   `msgpack:"h,omitempty"`
}

// EncodeEvent serialises a client event.
func EncodeEvent(e Event) ([]byte, error) {
	b, err := msgpack.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return b, nil
}

// DecodeEvent parses and validates a client event.
func DecodeEvent(b []byte) (Event, error) {
	var e Event
	if len(b) == 0 {
		return e, ErrEmptyMessage
	}
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("decode event: %w", err)
	}
	switch e.Type {
	case EventKeyDown, EventKeyUp, EventReset, EventStage, EventResize:
		return e, nil
	default:
		return e, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}

// Apply performs the event against a game state.
func (e Event) Apply(s *game.State) error {
	switch e.Type {
	case EventKeyDown:
		s.Keys.HandleKeyDown(e.Code)
	case EventKeyUp:
		s.Keys.HandleKeyUp(e.Code)
	case EventReset:
		s.Reset()
	case EventStage:
		stage, err := game.ParseStage(e.Stage)
		if err != nil {
			return err
		}
		return s.SetStage(stage)
	case EventResize:
		return s.Resize(e.Width, e.Height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	return nil
}
