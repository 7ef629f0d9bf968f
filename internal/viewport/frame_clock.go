package viewport

import (
	"sync"
	"time"
)

// FrameClock fires a callback on a fixed period until stopped. It is the
// only thing that drives periodic redraws.
type FrameClock struct {
	period time.Duration
	start  time.Time

	mu      sync.Mutex
	started bool
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewFrameClock creates a stopped clock. Elapsed counts from creation.
func NewFrameClock(period time.Duration) *FrameClock {
	return &FrameClock{
		period: period,
		start:  time.Now(),
		done:   make(chan struct{}),
	}
}

// Start runs onTick every period on a background goroutine. onTick must be
// safe to call off the main thread. Calling Start twice has no effect.
func (c *FrameClock) Start(onTick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.period)
		defer ticker.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				onTick()
			}
		}
	}()
}

// Stop cancels the clock and waits until no further ticks can fire.
// Safe to call more than once and from any goroutine.
func (c *FrameClock) Stop() {
	c.once.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

// Elapsed returns the time since the clock was created
func (c *FrameClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Period returns the tick interval
func (c *FrameClock) Period() time.Duration {
	return c.period
}
