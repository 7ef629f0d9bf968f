package config

import "sync"

// ViewportSettings holds the process-wide viewport dimensions in pixels.
type ViewportSettings struct {
	mu     sync.RWMutex
	width  int
	height int
}

var globalViewport = &ViewportSettings{}

// GetViewport returns the last framebuffer size reported by a resize.
func GetViewport() (width, height int) {
	globalViewport.mu.RLock()
	defer globalViewport.mu.RUnlock()
	return globalViewport.width, globalViewport.height
}

// SetViewport records the framebuffer size in pixels
func SetViewport(width, height int) {
	globalViewport.mu.Lock()
	defer globalViewport.mu.Unlock()

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	globalViewport.width = width
	globalViewport.height = height
}
