package quiz

import "time"

// TimerConfig configures the countdown of a timed session.
type TimerConfig struct {
	Start    time.Duration
	Bonus    time.Duration // Added on each correct answer
	Penalty  time.Duration // Subtracted on each wrong answer
	Interval time.Duration // Real time between ticks
}

// DefaultTimer returns the runner game's timing.
func DefaultTimer() TimerConfig {
	return TimerConfig{
		Start:    30 * time.Second,
		Bonus:    3 * time.Second,
		Penalty:  5 * time.Second,
		Interval: time.Second,
	}
}

// Countdown tracks the time left in a timed session. It is not safe for
// concurrent use on its own; Session guards it.
type Countdown struct {
	cfg       TimerConfig
	remaining time.Duration
}

// NewCountdown returns a countdown starting at cfg.Start.
func NewCountdown(cfg TimerConfig) *Countdown {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &Countdown{cfg: cfg, remaining: max(0, cfg.Start)}
}

// Tick removes one interval, never going below zero.
func (c *Countdown) Tick() {
	c.remaining = max(0, c.remaining-c.cfg.Interval)
}

// Reward adds the bonus for a correct answer.
func (c *Countdown) Reward() {
	c.remaining += c.cfg.Bonus
}

// Penalize subtracts the penalty for a wrong answer, clamped at zero.
func (c *Countdown) Penalize() {
	c.remaining = max(0, c.remaining-c.cfg.Penalty)
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration { return c.remaining }

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool { return c.remaining <= 0 }

// Interval returns the tick interval.
func (c *Countdown) Interval() time.Duration { return c.cfg.Interval }
