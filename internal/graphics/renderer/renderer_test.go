package renderer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewport/internal/config"
	"glviewport/internal/graphics/gputest"
	"glviewport/internal/graphics/renderables/polygon"
	"glviewport/internal/graphics/renderer"
)

// mockRenderable records lifecycle calls without touching the GPU.
type mockRenderable struct {
	initErr     error
	initCalls   int
	renderCalls int
	disposed    int
	width       int
	height      int
	reloadErr   error
	reloads     int
}

func (m *mockRenderable) Init() error                       { m.initCalls++; return m.initErr }
func (m *mockRenderable) Render(ctx renderer.RenderContext) { m.renderCalls++ }
func (m *mockRenderable) Dispose()                          { m.disposed++ }
func (m *mockRenderable) SetViewport(w, h int)              { m.width, m.height = w, h }
func (m *mockRenderable) Reload() error                     { m.reloads++; return m.reloadErr }

func TestScaleToPixels(t *testing.T) {
	w, h := renderer.ScaleToPixels(800, 600, 2)
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	w, h = renderer.ScaleToPixels(801, 601, 1.5)
	assert.Equal(t, 1202, w)
	assert.Equal(t, 902, h)

	w, h = renderer.ScaleToPixels(640, 480, 0)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestRenderClearsThenDraws(t *testing.T) {
	gpu := gputest.New()
	a, b := &mockRenderable{}, &mockRenderable{}
	r, err := renderer.NewRenderer(gpu, [4]float32{0.1, 0.2, 0.3, 1}, a, b)
	require.NoError(t, err)

	r.Render(renderer.RenderContext{})
	r.Render(renderer.RenderContext{})

	assert.Equal(t, []uint32{gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT, gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT}, gpu.Clears)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, gpu.ClearColorValue)
	assert.Equal(t, 2, a.renderCalls)
	assert.Equal(t, 2, b.renderCalls)
	assert.Equal(t, 1, a.initCalls)
}

func TestNewRendererDisposesOnInitFailure(t *testing.T) {
	ok, bad, never := &mockRenderable{}, &mockRenderable{initErr: errors.New("boom")}, &mockRenderable{}
	_, err := renderer.NewRenderer(gputest.New(), [4]float32{}, ok, bad, never)
	require.Error(t, err)

	assert.Equal(t, 1, ok.disposed)
	assert.Equal(t, 1, bad.disposed)
	assert.Zero(t, never.initCalls)
}

func TestUpdateViewportScalesByPixelRatio(t *testing.T) {
	gpu := gputest.New()
	m := &mockRenderable{}
	r, err := renderer.NewRenderer(gpu, [4]float32{}, m)
	require.NoError(t, err)

	r.UpdateViewport(800, 600, 2)

	assert.Equal(t, 1600, m.width)
	assert.Equal(t, 1200, m.height)
	assert.Equal(t, [4]int32{0, 0, 1600, 1200}, gpu.ViewportRect)
	w, h := config.GetViewport()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)
}

func TestReloadJoinsErrors(t *testing.T) {
	a := &mockRenderable{}
	b := &mockRenderable{reloadErr: errors.New("bad shader")}
	r, err := renderer.NewRenderer(gputest.New(), [4]float32{}, a, b)
	require.NoError(t, err)

	err = r.Reload()
	assert.ErrorContains(t, err, "bad shader")
	assert.Equal(t, 1, a.reloads)
	assert.Equal(t, 1, b.reloads)
}

func TestResizeForwardsToScreenUniform(t *testing.T) {
	dir := t.TempDir()
	vertex := `#version 150 core
uniform ivec2 u_ScreenDimensions;
in vec3 vs_Pos;
void main() {
	gl_Position = vec4(vs_Pos.xy * vec2(u_ScreenDimensions) / 1000.0, vs_Pos.z, 1.0);
}
`
	fragment := "#version 150 core\nout vec4 c;\nvoid main() {\n\tc = vec4(1.0);\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v.glsl"), []byte(vertex), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.glsl"), []byte(fragment), 0o644))

	gpu := gputest.New()
	p := polygon.NewPolygon(gpu, polygon.Options{
		VertexPath:   filepath.Join(dir, "v.glsl"),
		FragmentPath: filepath.Join(dir, "f.glsl"),
		Sides:        36,
		Radius:       0.5,
		Depth:        1,
		OnFailure:    config.FailFast,
	})
	r, err := renderer.NewRenderer(gpu, [4]float32{}, p)
	require.NoError(t, err)

	r.UpdateViewport(800, 600, 2)

	loc := gpu.UniformLocation(gpu.CurrentProgram, polygon.UniformScreenDimensions)
	require.GreaterOrEqual(t, loc, int32(0))
	assert.Equal(t, [2]int32{1600, 1200}, gpu.Uniforms[loc])

	r.Dispose()
	assert.Len(t, gpu.DeletedBuffers, 2)
}
