package renderer

import (
	"errors"
	"math"

	"glviewport/internal/config"
	"glviewport/internal/graphics"
	"glviewport/internal/profiling"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	gpu         graphics.GPU
	renderables []Renderable
	clearColor  [4]float32
}

// NewRenderer initializes every renderable in order. If one fails, the ones
// already initialized are disposed.
func NewRenderer(gpu graphics.GPU, clearColor [4]float32, rs ...Renderable) (*Renderer, error) {
	r := &Renderer{
		gpu:        gpu,
		clearColor: clearColor,
	}

	for _, rr := range rs {
		if err := rr.Init(); err != nil {
			rr.Dispose()
			r.Dispose()
			return nil, err
		}
		r.renderables = append(r.renderables, rr)
	}

	return r, nil
}

// Render clears color and depth and draws every renderable
func (r *Renderer) Render(ctx RenderContext) {
	defer profiling.Track("renderer.Render")()

	c := r.clearColor
	r.gpu.ClearColor(c[0], c[1], c[2], c[3])
	r.gpu.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, rr := range r.renderables {
		rr.Render(ctx)
	}
}

// UpdateViewport takes a window size in screen coordinates and the display's
// pixel density, and forwards the framebuffer size to every renderable.
func (r *Renderer) UpdateViewport(width, height int, pixelRatio float64) {
	w, h := ScaleToPixels(width, height, pixelRatio)
	config.SetViewport(w, h)
	r.gpu.Viewport(0, 0, int32(w), int32(h))
	for _, rr := range r.renderables {
		rr.SetViewport(w, h)
	}
}

// Reload rebuilds the programs of every renderable that supports it.
func (r *Renderer) Reload() error {
	defer profiling.Track("renderer.Reload")()

	var errs []error
	for _, rr := range r.renderables {
		if rl, ok := rr.(Reloader); ok {
			if err := rl.Reload(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Dispose releases the GPU resources of all renderables
func (r *Renderer) Dispose() {
	for _, rr := range r.renderables {
		rr.Dispose()
	}
	r.renderables = nil
}

// ScaleToPixels converts a size in screen coordinates to framebuffer pixels.
func ScaleToPixels(width, height int, pixelRatio float64) (int, int) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return int(math.Round(float64(width) * pixelRatio)), int(math.Round(float64(height) * pixelRatio))
}
