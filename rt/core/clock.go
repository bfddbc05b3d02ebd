package core

import (
	"time"
)

type TimeoutCallback func()

// Clock tracks frame timing in seconds.
//
// After every Tick, DeltaTime == CurrentTime - LastTime (before LastTime is
// moved forward). AccumTime is the sum of every delta applied since the last
// Reset, whether it came from Tick or Advance.
type Clock struct {
	currentTime float64
	lastTime    float64
	deltaTime   float64
	accumTime   float64

	timeoutCallback TimeoutCallback
	timeout         float64
	repeat          bool

	now func() time.Time
}

type ClockOption func(*Clock)

// WithNow replaces the wall clock sampled by Reset and Tick.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

func NewClock(options ...ClockOption) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range options {
		opt(c)
	}
	c.Reset()
	return c
}

// NewFixedClock returns a reset clock whose delta is preset to deltaTime.
func NewFixedClock(deltaTime float64, options ...ClockOption) *Clock {
	c := NewClock(options...)
	c.deltaTime = deltaTime
	return c
}

func (c *Clock) sample() float64 {
	// millisecond resolution, matching the frame timer of the renderer
	return 0.001 * float64(c.now().UnixMilli())
}

// Reset samples the wall clock and zeroes delta and accumulated time.
// A pending timeout stays armed.
func (c *Clock) Reset() {
	c.currentTime = c.sample()
	c.lastTime = c.currentTime
	c.deltaTime = 0
	c.accumTime = 0
}

func (c *Clock) Tick() {
	c.currentTime = c.sample()
	c.deltaTime = c.currentTime - c.lastTime
	c.lastTime = c.currentTime
	c.accumTime += c.deltaTime

	c.onTick()
}

// Advance injects an explicit delta instead of sampling the wall clock.
// CurrentTime and LastTime are left untouched.
func (c *Clock) Advance(deltaTime float64) {
	c.deltaTime = deltaTime
	c.accumTime += c.deltaTime

	c.onTick()
}

// AdvanceClock advances c by the last delta of other.
func (c *Clock) AdvanceClock(other *Clock) {
	c.Advance(other.DeltaTime())
}

// SetTimeout arms a callback that fires once the accumulated delta since
// arming reaches timeout seconds.
//
// A repeating timeout is not re-armed after it fires: the remaining time stays
// at or below zero, so the callback runs again on every following tick until
// the caller re-arms it with SetTimeout or clears it.
func (c *Clock) SetTimeout(callback TimeoutCallback, timeout float64, repeat bool) {
	c.timeoutCallback = callback
	c.timeout = timeout
	c.repeat = repeat
}

func (c *Clock) ClearTimeout() {
	c.timeoutCallback = nil
	c.timeout = 0
	c.repeat = false
}

func (c *Clock) HasTimeout() bool {
	return c.timeoutCallback != nil
}

// RemainingTimeout is the time left before the armed callback fires.
func (c *Clock) RemainingTimeout() float64 {
	return c.timeout
}

func (c *Clock) onTick() {
	if c.timeoutCallback == nil {
		return
	}

	c.timeout -= c.deltaTime
	if c.timeout <= 0.0 {
		callback := c.timeoutCallback
		if !c.repeat {
			c.timeoutCallback = nil
		}
		callback()
	}
}

func (c *Clock) CurrentTime() float64 { return c.currentTime }
func (c *Clock) LastTime() float64    { return c.lastTime }
func (c *Clock) DeltaTime() float64   { return c.deltaTime }
func (c *Clock) AccumTime() float64   { return c.accumTime }
