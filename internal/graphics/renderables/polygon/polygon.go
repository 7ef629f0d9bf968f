package polygon

import (
	"fmt"
	"log"

	"glviewport/internal/config"
	"glviewport/internal/graphics"
	renderer "glviewport/internal/graphics/renderer"
	"glviewport/internal/meshing"
	"glviewport/internal/profiling"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader variable names the polygon program is expected to declare.
const (
	AttribPosition          = "vs_Pos"
	UniformTime             = "u_Time"
	UniformModel            = "u_Model"
	UniformScreenDimensions = "u_ScreenDimensions"
	UniformMouse            = "u_Mouse"
)

var (
	attribNames  = []string{AttribPosition}
	uniformNames = []string{UniformTime, UniformModel, UniformScreenDimensions, UniformMouse}
)

// Options configures the polygon and where its shaders live.
type Options struct {
	VertexPath   string
	FragmentPath string
	Sides        int
	Radius       float32
	Depth        float32
	OnFailure    config.ShaderFailurePolicy
}

// OptionsFromConfig pulls the polygon settings out of the viewport config
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		VertexPath:   cfg.Assets.VertexPath(),
		FragmentPath: cfg.Assets.FragmentPath(),
		Sides:        cfg.Polygon.Sides,
		Radius:       cfg.Polygon.Radius,
		Depth:        cfg.Polygon.Depth,
		OnFailure:    cfg.ShaderFailure,
	}
}

// Polygon draws a single fan-triangulated regular polygon. Its geometry is
// uploaded once in Init and never touched again.
type Polygon struct {
	gpu  graphics.GPU
	opts Options

	shader   *graphics.ShaderProgram
	bindings *graphics.Bindings
	// disabled is set when no usable program exists; Render is then a no-op.
	disabled bool

	vao            uint32
	positionBuffer uint32
	indexBuffer    uint32
	indexCount     int32

	width, height int
}

// NewPolygon creates a new polygon renderable
func NewPolygon(gpu graphics.GPU, opts Options) *Polygon {
	return &Polygon{gpu: gpu, opts: opts}
}

// Init builds the program, resolves variable locations and uploads the mesh.
func (p *Polygon) Init() error {
	defer profiling.Track("polygon.Init")()

	// 3.2 core refuses to draw without a bound VAO; one is enough here.
	p.vao = p.gpu.GenVertexArray()
	p.gpu.BindVertexArray(p.vao)

	sp, bindings, err := p.buildProgram()
	p.shader, p.bindings = sp, bindings
	graphics.LogError(p.gpu, "shader build")
	if err != nil {
		if p.opts.OnFailure != config.NoOp {
			return err
		}
		log.Printf("polygon: %v; drawing disabled until shaders reload", err)
		p.disabled = true
	}

	if err := p.uploadMesh(); err != nil {
		return err
	}
	graphics.LogError(p.gpu, "buffer upload")

	return nil
}

func (p *Polygon) buildProgram() (*graphics.ShaderProgram, *graphics.Bindings, error) {
	sp, err := graphics.LoadShaderProgram(p.gpu, p.opts.VertexPath, p.opts.FragmentPath)
	if err != nil {
		return sp, nil, fmt.Errorf("polygon shader: %w", err)
	}

	b := graphics.BindVariables(p.gpu, sp.ID, attribNames, uniformNames)
	graphics.LogError(p.gpu, "variable binding")
	if _, err := b.Attrib(AttribPosition); err != nil {
		return sp, b, fmt.Errorf("polygon shader: %w", err)
	}
	if missing := b.Missing(); len(missing) > 0 {
		log.Printf("polygon: shader does not use %v", missing)
	}

	if loc, err := b.Uniform(UniformModel); err == nil {
		p.gpu.UniformMatrix4(loc, mgl32.Ident4())
	}
	return sp, b, nil
}

func (p *Polygon) uploadMesh() error {
	mesh, err := meshing.BuildRegularPolygon(p.opts.Sides, p.opts.Radius, p.opts.Depth)
	if err != nil {
		return fmt.Errorf("polygon mesh: %w", err)
	}
	p.indexCount = mesh.IndexCount()

	p.positionBuffer = p.gpu.GenBuffer()
	p.gpu.BindBuffer(gl.ARRAY_BUFFER, p.positionBuffer)
	p.gpu.BufferFloat32(gl.ARRAY_BUFFER, mesh.Flatten(), gl.STATIC_DRAW)

	p.indexBuffer = p.gpu.GenBuffer()
	p.gpu.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.indexBuffer)
	p.gpu.BufferUint32(gl.ELEMENT_ARRAY_BUFFER, mesh.Indices, gl.STATIC_DRAW)

	return nil
}

// Render issues one indexed triangle draw of the whole mesh.
func (p *Polygon) Render(ctx renderer.RenderContext) {
	if p.disabled {
		return
	}
	defer profiling.Track("polygon.Render")()

	pos, err := p.bindings.Attrib(AttribPosition)
	if err != nil {
		return
	}

	p.shader.Use()
	if loc, err := p.bindings.Uniform(UniformTime); err == nil {
		p.gpu.Uniform1f(loc, ctx.Time)
	}
	if loc, err := p.bindings.Uniform(UniformMouse); err == nil {
		p.gpu.Uniform2f(loc, ctx.Cursor.X(), ctx.Cursor.Y())
	}

	p.gpu.BindVertexArray(p.vao)
	p.gpu.BindBuffer(gl.ARRAY_BUFFER, p.positionBuffer)
	p.gpu.EnableVertexAttribArray(pos)
	p.gpu.VertexAttribPointer(pos, 3, gl.FLOAT, false, 0, 0)

	p.gpu.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.indexBuffer)
	p.gpu.DrawElements(gl.TRIANGLES, p.indexCount, gl.UNSIGNED_INT, 0)
	p.gpu.DisableVertexAttribArray(pos)
}

// SetViewport writes the framebuffer size into u_ScreenDimensions when the
// shader declares it.
func (p *Polygon) SetViewport(width, height int) {
	p.width, p.height = width, height
	p.applyScreenDimensions()
}

func (p *Polygon) applyScreenDimensions() {
	if p.disabled || p.width == 0 && p.height == 0 {
		return
	}
	loc, err := p.bindings.Uniform(UniformScreenDimensions)
	if err != nil {
		return
	}
	p.shader.Use()
	p.gpu.Uniform2i(loc, int32(p.width), int32(p.height))
}

// Reload rebuilds the program from the shader files. If the new program
// does not build, the current one stays in use.
func (p *Polygon) Reload() error {
	sp, b, err := p.buildProgram()
	if err != nil {
		if sp != nil {
			sp.Delete()
		}
		return err
	}

	if p.shader != nil {
		p.shader.Delete()
	}
	p.shader, p.bindings = sp, b
	p.disabled = false
	p.applyScreenDimensions()
	log.Printf("polygon: reloaded %s + %s", sp.VertexFile, sp.FragmentFile)
	return nil
}

// Dispose cleans up OpenGL resources
func (p *Polygon) Dispose() {
	if p.shader != nil {
		p.shader.Delete()
		p.shader = nil
	}
	if p.positionBuffer != 0 {
		p.gpu.DeleteBuffer(p.positionBuffer)
		p.positionBuffer = 0
	}
	if p.indexBuffer != 0 {
		p.gpu.DeleteBuffer(p.indexBuffer)
		p.indexBuffer = 0
	}
	if p.vao != 0 {
		p.gpu.DeleteVertexArray(p.vao)
		p.vao = 0
	}
	p.disabled = true
}

// Disabled reports whether the polygon is in the no-op state
func (p *Polygon) Disabled() bool {
	return p.disabled
}

// IndexCount returns the number of indices drawn each frame
func (p *Polygon) IndexCount() int32 {
	return p.indexCount
}
