package viewport

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameClockTicksUntilStopped(t *testing.T) {
	c := NewFrameClock(2 * time.Millisecond)
	var ticks atomic.Int32
	c.Start(func() { ticks.Add(1) })
	c.Start(func() { t.Error("second Start must not install another callback") })

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)

	c.Stop()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "no ticks after Stop returns")

	c.Stop()
}

func TestFrameClockStopBeforeStart(t *testing.T) {
	c := NewFrameClock(time.Millisecond)
	c.Stop()
	assert.Equal(t, time.Millisecond, c.Period())
}

func TestFrameClockElapsed(t *testing.T) {
	c := NewFrameClock(16 * time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Elapsed(), 5*time.Millisecond)
}

func TestRedrawRequestCoalesces(t *testing.T) {
	wakes := 0
	r := NewRedrawRequest(func() { wakes++ })

	assert.False(t, r.Take())

	for i := 0; i < 10; i++ {
		r.Request()
	}
	assert.Equal(t, 1, wakes)
	assert.True(t, r.Take())
	assert.False(t, r.Take(), "Take clears the request")

	r.Request()
	assert.Equal(t, 2, wakes)
}
