package engine

import "time"

// Clock supplies the current time to timer-driven behavior. Injecting it
// keeps anything built on timers deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameClock advances by a fixed interval per Tick. Headless runs use it so
// results do not depend on how fast frames are actually computed.
type FrameClock struct {
	now  time.Time
	step time.Duration
}

func NewFrameClock(start time.Time, step time.Duration) *FrameClock {
	return &FrameClock{now: start, step: step}
}

func (c *FrameClock) Now() time.Time { return c.now }

// Tick advances the clock by one frame interval.
func (c *FrameClock) Tick() { c.now = c.now.Add(c.step) }

// Advance moves the clock forward by an arbitrary duration.
func (c *FrameClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
