package main

import "time"

const (
	// TicksPerSecond is the rate of the animation clock.
	TicksPerSecond = 100

	// MaxTicksPerFrame bounds catch-up after a stall. Time beyond it is
	// dropped, so the animation slows down instead of jumping.
	MaxTicksPerFrame = 16
)

const tickDuration = time.Second / TicksPerSecond

// TickClock converts wall time into whole animation ticks.
type TickClock struct {
	Tick uint32

	last    time.Time
	pending time.Duration
}

// NewTickClock starts a clock at tick 0.
func NewTickClock(now time.Time) *TickClock {
	return &TickClock{last: now}
}

// Advance accounts for the time since the previous call and returns how
// many ticks elapsed, at most MaxTicksPerFrame. Tick is advanced by the
// same amount.
func (c *TickClock) Advance(now time.Time) int {
	if elapsed := now.Sub(c.last); elapsed > 0 {
		c.pending += elapsed
	}
	c.last = now

	n := int(c.pending / tickDuration)
	if n > MaxTicksPerFrame {
		n = MaxTicksPerFrame
		c.pending = 0
	} else {
		c.pending -= time.Duration(n) * tickDuration
	}
	c.Tick += uint32(n)
	return n
}
