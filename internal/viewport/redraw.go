package viewport

import "sync/atomic"

// RedrawRequest coalesces redraw requests from timers and input into a
// single pending flag the event loop consumes.
type RedrawRequest struct {
	pending atomic.Bool
	wake    func()
}

// NewRedrawRequest returns a latch that calls wake whenever it goes from
// idle to pending. wake is glfw.PostEmptyEvent in the running viewport.
func NewRedrawRequest(wake func()) *RedrawRequest {
	return &RedrawRequest{wake: wake}
}

// Request marks a redraw as pending. Safe from any goroutine.
func (r *RedrawRequest) Request() {
	if r.pending.CompareAndSwap(false, true) && r.wake != nil {
		r.wake()
	}
}

// Take reports whether a redraw was pending and clears it.
func (r *RedrawRequest) Take() bool {
	return r.pending.Swap(false)
}
