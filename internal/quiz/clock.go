package quiz

import (
	"context"
	"time"
)

// RunClock ticks a timed session in real time until it finishes or ctx
// is cancelled. onTick, if non-nil, is called after every tick. Drivers
// with their own event loop call Session.Tick directly instead.
func RunClock(ctx context.Context, s *Session, interval time.Duration, onTick func(remaining time.Duration, done bool)) {
	if !s.Timed() {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining, done := s.Tick()
			if onTick != nil {
				onTick(remaining, done)
			}
			if done {
				return
			}
		}
	}
}
