package renderer

import "github.com/go-gl/mathgl/mgl32"

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	// Time is seconds since the viewport started.
	Time float32
	// Cursor is the last cursor position in framebuffer pixels.
	Cursor mgl32.Vec2
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	// SetViewport receives the framebuffer size in pixels.
	SetViewport(width, height int)
}

// Reloader is implemented by renderables whose GPU programs can be rebuilt
// from source while running.
type Reloader interface {
	Reload() error
}
