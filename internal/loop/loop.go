// Package loop drives the game at a fixed tick and runs terminal sessions.
package loop

import (
	"context"
	"errors"
	"time"
)

// ErrQuit is returned by a frame function to end the loop cleanly.
var ErrQuit = errors.New("quit")

// FrameFunc runs one frame. progress is the time since the previous frame
// (or since the loop started, for the first one).
type FrameFunc func(now time.Time, progress time.Duration) error

// Drive calls frame once per tick until ctx is done or frame fails. A
// cancelled context and ErrQuit both end the loop without error.
func Drive(ctx context.Context, tick time.Duration, frame FrameFunc) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			progress := now.Sub(last)
			last = now

			if err := frame(now, progress); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}
