package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWallClock struct {
	now time.Time
}

func (f *fakeWallClock) Now() time.Time { return f.now }

func (f *fakeWallClock) step(d time.Duration) { f.now = f.now.Add(d) }

func newTestClock() (*Clock, *fakeWallClock) {
	wall := &fakeWallClock{now: time.Unix(1000, 0)}
	return NewClock(WithNow(wall.Now)), wall
}

func TestClock_Reset(t *testing.T) {
	c, wall := newTestClock()
	wall.step(250 * time.Millisecond)
	c.Tick()
	require.InDelta(t, 0.25, c.AccumTime(), 1e-9)

	c.Reset()
	assert.Equal(t, 0.0, c.DeltaTime())
	assert.Equal(t, 0.0, c.AccumTime())
	assert.Equal(t, c.CurrentTime(), c.LastTime())
	assert.InDelta(t, 1000.25, c.CurrentTime(), 1e-9)
}

func TestClock_TickDelta(t *testing.T) {
	c, wall := newTestClock()

	for _, step := range []time.Duration{16 * time.Millisecond, 33 * time.Millisecond, 0, 100 * time.Millisecond} {
		before := c.LastTime()
		wall.step(step)
		c.Tick()

		assert.InDelta(t, c.CurrentTime()-before, c.DeltaTime(), 1e-9)
		assert.InDelta(t, step.Seconds(), c.DeltaTime(), 1e-9)
		assert.Equal(t, c.CurrentTime(), c.LastTime())
	}
}

func TestClock_AccumulatedTimeIsSumOfDeltas(t *testing.T) {
	c, wall := newTestClock()

	deltas := []float64{0.016, 0.5, 0, 1.25, 0.001}
	sum := 0.0
	for i, dt := range deltas {
		if i%2 == 0 {
			c.Advance(dt)
		} else {
			wall.step(time.Duration(dt * float64(time.Second)))
			c.Tick()
		}
		sum += dt
	}
	assert.InDelta(t, sum, c.AccumTime(), 1e-9)

	c.Reset()
	c.Advance(0.3)
	assert.InDelta(t, 0.3, c.AccumTime(), 1e-9)
}

func TestClock_AdvanceKeepsWallTime(t *testing.T) {
	c, _ := newTestClock()
	current := c.CurrentTime()

	c.Advance(2)
	assert.Equal(t, current, c.CurrentTime())
	assert.Equal(t, 2.0, c.DeltaTime())
}

func TestClock_FixedClockAndAdvanceClock(t *testing.T) {
	fixed := NewFixedClock(1.0 / 60.0)
	assert.InDelta(t, 1.0/60.0, fixed.DeltaTime(), 1e-12)
	assert.Equal(t, 0.0, fixed.AccumTime())

	c, _ := newTestClock()
	c.AdvanceClock(fixed)
	c.AdvanceClock(fixed)
	assert.InDelta(t, 2.0/60.0, c.AccumTime(), 1e-12)
}

func TestClock_SingleShotTimeout(t *testing.T) {
	c, _ := newTestClock()
	fired := 0
	c.SetTimeout(func() { fired++ }, 1.0, false)

	c.Advance(0.4)
	c.Advance(0.4)
	assert.Equal(t, 0, fired)
	assert.True(t, c.HasTimeout())

	c.Advance(0.4)
	assert.Equal(t, 1, fired)
	assert.False(t, c.HasTimeout())

	c.Advance(5)
	assert.Equal(t, 1, fired)
}

func TestClock_ResetKeepsTimeoutArmed(t *testing.T) {
	c, _ := newTestClock()
	fired := false
	c.SetTimeout(func() { fired = true }, 0.5, false)

	c.Reset()
	require.True(t, c.HasTimeout())

	c.Advance(0.5)
	assert.True(t, fired)
}

// A repeating timeout is never re-armed by the clock: after the first firing
// the remaining time stays non-positive and the callback runs on every tick.
func TestClock_RepeatingTimeoutIsNotRearmed(t *testing.T) {
	c, _ := newTestClock()
	fired := 0
	c.SetTimeout(func() { fired++ }, 1.0, true)

	c.Advance(0.5)
	assert.Equal(t, 0, fired)
	c.Advance(0.5)
	assert.Equal(t, 1, fired)

	// well short of another full period, yet it keeps firing
	c.Advance(0.1)
	c.Advance(0.1)
	assert.Equal(t, 3, fired)
	assert.True(t, c.HasTimeout())
	assert.LessOrEqual(t, c.RemainingTimeout(), 0.0)
}

func TestClock_RepeatingTimeoutRearmedByCaller(t *testing.T) {
	c, _ := newTestClock()
	const period = 1.0
	fired := 0
	var rearm TimeoutCallback
	rearm = func() {
		fired++
		c.SetTimeout(rearm, period, true)
	}
	c.SetTimeout(rearm, period, true)

	for i := 0; i < 50; i++ {
		c.Advance(0.1)
	}
	// 5 seconds of accumulated delta, at least one firing per period
	assert.GreaterOrEqual(t, fired, 4)
	assert.LessOrEqual(t, fired, 5)
}

func TestClock_ClearTimeout(t *testing.T) {
	c, _ := newTestClock()
	fired := false
	c.SetTimeout(func() { fired = true }, 0.1, true)
	c.ClearTimeout()

	c.Advance(1)
	assert.False(t, fired)
	assert.False(t, c.HasTimeout())
}
