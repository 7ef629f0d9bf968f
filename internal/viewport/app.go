package viewport

import (
	"log"
	"sync/atomic"
	"time"

	"glviewport/internal/config"
	"glviewport/internal/graphics"
	"glviewport/internal/graphics/renderables/polygon"
	"glviewport/internal/graphics/renderer"
	"glviewport/internal/input"
	"glviewport/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App is the viewport: one window, one renderer, driven by the frame clock
// and input events. All GL work happens on the goroutine that calls Run.
type App struct {
	cfg    config.Config
	window *glfw.Window

	renderer     *renderer.Renderer
	inputManager *input.InputManager

	clock   *FrameClock
	redraw  *RedrawRequest
	reload  atomic.Bool
	watcher *graphics.ShaderWatcher
}

// NewApp initializes GPU resources and installs window callbacks.
func NewApp(cfg config.Config, window *glfw.Window, gpu graphics.GPU) (*App, error) {
	a := &App{
		cfg:    cfg,
		window: window,
		clock:  NewFrameClock(cfg.FrameInterval),
		redraw: NewRedrawRequest(glfw.PostEmptyEvent),
	}

	poly := polygon.NewPolygon(gpu, polygon.OptionsFromConfig(cfg))
	r, err := renderer.NewRenderer(gpu, cfg.ClearColor, poly)
	if err != nil {
		return nil, err
	}
	a.renderer = r

	a.inputManager = input.NewInputManager(a.redraw.Request)
	a.inputManager.Attach(window, a.pixelRatio)

	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(width, height)
	})
	window.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		a.resize(w.GetSize())
	})
	window.SetRefreshCallback(func(w *glfw.Window) {
		a.paint()
	})
	a.resize(window.GetSize())

	if cfg.Assets.Watch {
		paths := []string{cfg.Assets.VertexPath(), cfg.Assets.FragmentPath()}
		a.watcher, err = graphics.WatchShaders(paths, func(path string) {
			a.reload.Store(true)
			glfw.PostEmptyEvent()
		})
		if err != nil {
			log.Printf("viewport: shader hot reload disabled: %v", err)
		}
	}

	return a, nil
}

// Run blocks until the window is closed.
func (a *App) Run() {
	a.clock.Start(a.redraw.Request)
	defer a.clock.Stop()

	a.redraw.Request()
	for !a.window.ShouldClose() {
		glfw.WaitEvents()

		a.handleInput()
		if a.reload.Swap(false) {
			a.reloadShaders()
		}
		if a.redraw.Take() {
			a.paint()
		}
	}
}

func (a *App) handleInput() {
	defer a.inputManager.PostUpdate()

	if a.inputManager.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.inputManager.JustPressed(input.ActionReloadShaders) {
		a.reloadShaders()
	}
}

func (a *App) reloadShaders() {
	if err := a.renderer.Reload(); err != nil {
		log.Printf("viewport: shader reload failed, keeping previous program: %v", err)
	}
	a.redraw.Request()
}

func (a *App) paint() {
	profiling.ResetFrame()
	start := time.Now()

	a.renderer.Render(renderer.RenderContext{
		Time:   float32(a.clock.Elapsed().Seconds()),
		Cursor: a.inputManager.Cursor(),
	})
	a.window.SwapBuffers()

	if d := time.Since(start); a.cfg.SlowFrame > 0 && d > a.cfg.SlowFrame {
		w, h := config.GetViewport()
		log.Printf("Slow frame: %v at %dx%d. Top tasks: %s", d, w, h, profiling.TopN(5))
	}
}

func (a *App) resize(width, height int) {
	a.renderer.UpdateViewport(width, height, a.pixelRatio())
	a.redraw.Request()
}

// pixelRatio is framebuffer pixels per screen coordinate.
func (a *App) pixelRatio() float64 {
	fbw, _ := a.window.GetFramebufferSize()
	w, _ := a.window.GetSize()
	if w <= 0 || fbw <= 0 {
		return 1
	}
	return float64(fbw) / float64(w)
}

// StopBackground halts the frame clock and the shader watcher. It does not
// touch the GL context, so it may run on any goroutine.
func (a *App) StopBackground() {
	a.clock.Stop()
	if a.watcher != nil {
		a.watcher.Close()
	}
}

// Close stops background work and releases GPU resources. Must run on the
// main thread while the context is still current.
func (a *App) Close() {
	a.StopBackground()
	a.renderer.Dispose()
}
