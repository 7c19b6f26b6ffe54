package game

import "time"

// Clock measures frame deltas and keeps the simulated time that
// time-driven systems read. Deltas are clamped so a stall (a breakpoint, a
// dragged window) advances the simulation by at most maxDelta.
type Clock struct {
	now   func() time.Time
	sleep func(time.Duration)

	maxDelta time.Duration
	target   time.Duration

	last    time.Time
	elapsed time.Duration
	frames  uint64
}

// NewClock creates a clock. target is the frame budget Cap sleeps towards;
// zero disables capping.
func NewClock(maxDelta, target time.Duration) *Clock {
	return &Clock{
		now:      time.Now,
		sleep:    time.Sleep,
		maxDelta: maxDelta,
		target:   target,
	}
}

// Tick starts a frame and returns its clamped delta. The first tick returns
// zero.
func (c *Clock) Tick() time.Duration {
	now := c.now()
	var dt time.Duration
	if !c.last.IsZero() {
		dt = now.Sub(c.last)
	}
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.elapsed += dt
	c.frames++
	return dt
}

// Now returns the simulated time since the first tick.
func (c *Clock) Now() time.Duration {
	return c.elapsed
}

// Frames returns the number of ticks so far.
func (c *Clock) Frames() uint64 {
	return c.frames
}

// Cap sleeps for whatever is left of the frame budget since the last tick.
func (c *Clock) Cap() {
	if c.target <= 0 || c.last.IsZero() {
		return
	}
	if wait := c.target - c.now().Sub(c.last); wait > 0 {
		c.sleep(wait)
	}
}
