package progress

import "time"

// Countdown is a one-shot timer advanced by explicit ticks.
// The zero value is idle.
type Countdown struct {
	remaining time.Duration
	running   bool
	used      bool
}

// Start arms the countdown for d. A non-positive d fires on the next Advance.
func (c *Countdown) Start(d time.Duration) {
	c.remaining = d
	c.running = true
	c.used = true
}

// Stop disarms the countdown without firing it.
func (c *Countdown) Stop() {
	c.running = false
	c.remaining = 0
}

// Advance subtracts dt and returns true exactly once, on the tick the
// countdown reaches zero.
func (c *Countdown) Advance(dt time.Duration) bool {
	if !c.running {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.running = false
	c.remaining = 0
	return true
}

// Running reports whether the countdown is armed and has not fired.
func (c *Countdown) Running() bool {
	return c.running
}

// Used reports whether Start has ever been called.
func (c *Countdown) Used() bool {
	return c.used
}

// Remaining returns the time left before the countdown fires.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}
