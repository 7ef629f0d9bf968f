// Package gputest provides a recording GPU for tests that cannot open a GL context.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"glviewport/internal/graphics"
)

var _ graphics.GPU = (*GPU)(nil)

type shader struct {
	stage    uint32
	source   string
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	shaders   []uint32
	linked    bool
	log       string
	locations map[string]int32
	next      int32
	deleted   bool
}

// DrawCall captures the state an indexed draw was issued with.
type DrawCall struct {
	Mode          uint32
	Count         int32
	Program       uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	Enabled       []uint32
}

// AttribPointer captures a VertexAttribPointer call.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// GPU simulates the parts of a driver the viewport talks to.
//
// Compilation fails for empty sources, sources containing a line starting
// with #error, and sources with unbalanced braces. A variable has a location
// when it is declared ("in vec3 name;" or "uniform T name;") and referenced
// at least once more, mimicking a compiler that drops unused variables.
type GPU struct {
	nextID uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program

	CurrentProgram uint32
	ArrayBuffer    uint32
	ElementBuffer  uint32
	VertexArray    uint32

	VertexArrays    int
	BuffersCreated  int
	BufferUploads   map[uint32]int
	BufferData      map[uint32][]float32
	IndexData       map[uint32][]uint32
	BufferUsage     map[uint32]uint32
	DeletedBuffers  []uint32
	DeletedVAOs     []uint32
	enabled         map[uint32]bool
	AttribPointers  []AttribPointer
	Draws           []DrawCall
	Clears          []uint32
	ClearColorValue [4]float32
	ViewportRect    [4]int32

	Uniforms map[int32]any
	// UniformWrites counts every uniform write, keyed by location.
	UniformWrites map[int32]int

	// PendingErrors is drained by GetError, front first.
	PendingErrors []uint32
}

// New returns an empty simulated driver
func New() *GPU {
	return &GPU{
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		BufferUploads: make(map[uint32]int),
		BufferData:    make(map[uint32][]float32),
		IndexData:     make(map[uint32][]uint32),
		BufferUsage:   make(map[uint32]uint32),
		enabled:       make(map[uint32]bool),
		Uniforms:      make(map[int32]any),
		UniformWrites: make(map[int32]int),
	}
}

func (g *GPU) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *GPU) CreateShader(stage uint32) uint32 {
	id := g.id()
	g.shaders[id] = &shader{stage: stage}
	return id
}

func (g *GPU) ShaderSource(id uint32, source string) {
	if s, ok := g.shaders[id]; ok {
		s.source = source
	}
}

var errorDirective = regexp.MustCompile(`(?m)^\s*#error\b(.*)$`)

func (g *GPU) CompileShader(id uint32) {
	s, ok := g.shaders[id]
	if !ok {
		return
	}
	switch {
	case strings.TrimSpace(s.source) == "":
		s.compiled, s.log = false, "0:0: error: empty shader source"
	case errorDirective.MatchString(s.source):
		m := errorDirective.FindStringSubmatch(s.source)
		s.compiled, s.log = false, "0:1: error: '#error' :"+m[1]
	case strings.Count(s.source, "{") != strings.Count(s.source, "}"):
		s.compiled, s.log = false, "0:1: error: syntax error, unexpected end of file"
	default:
		s.compiled, s.log = true, ""
	}
}

func (g *GPU) ShaderCompiled(id uint32) bool {
	s, ok := g.shaders[id]
	return ok && s.compiled
}

func (g *GPU) ShaderInfoLog(id uint32) string {
	if s, ok := g.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (g *GPU) DeleteShader(id uint32) {
	if s, ok := g.shaders[id]; ok {
		s.deleted = true
	}
}

// ShaderDeleted reports whether DeleteShader was called for id
func (g *GPU) ShaderDeleted(id uint32) bool {
	s, ok := g.shaders[id]
	return ok && s.deleted
}

func (g *GPU) CreateProgram() uint32 {
	id := g.id()
	g.programs[id] = &program{locations: make(map[string]int32)}
	return id
}

func (g *GPU) AttachShader(p, s uint32) {
	if prog, ok := g.programs[p]; ok {
		prog.shaders = append(prog.shaders, s)
	}
}

func (g *GPU) LinkProgram(p uint32) {
	prog, ok := g.programs[p]
	if !ok {
		return
	}
	var hasVertex, hasFragment bool
	for _, sid := range prog.shaders {
		s := g.shaders[sid]
		if s == nil || !s.compiled {
			prog.linked = false
			prog.log = fmt.Sprintf("error: shader %d attached but not compiled", sid)
			return
		}
		hasVertex = hasVertex || s.stage == gl.VERTEX_SHADER
		hasFragment = hasFragment || s.stage == gl.FRAGMENT_SHADER
	}
	if !hasVertex || !hasFragment {
		prog.linked = false
		prog.log = "error: program needs a vertex and a fragment stage"
		return
	}
	prog.linked, prog.log = true, ""
}

func (g *GPU) ProgramLinked(p uint32) bool {
	prog, ok := g.programs[p]
	return ok && prog.linked
}

func (g *GPU) ProgramInfoLog(p uint32) string {
	if prog, ok := g.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (g *GPU) UseProgram(p uint32) { g.CurrentProgram = p }

func (g *GPU) DeleteProgram(p uint32) {
	if prog, ok := g.programs[p]; ok {
		prog.deleted = true
	}
	if g.CurrentProgram == p {
		g.CurrentProgram = 0
	}
}

// ProgramDeleted reports whether DeleteProgram was called for p
func (g *GPU) ProgramDeleted(p uint32) bool {
	prog, ok := g.programs[p]
	return ok && prog.deleted
}

func (g *GPU) AttribLocation(p uint32, name string) int32 {
	return g.locate(p, name, `\bin\s+\w+\s+`+regexp.QuoteMeta(name)+`\s*;`, gl.VERTEX_SHADER)
}

func (g *GPU) UniformLocation(p uint32, name string) int32 {
	return g.locate(p, name, `\buniform\s+\w+\s+`+regexp.QuoteMeta(name)+`\s*;`, 0)
}

func (g *GPU) locate(p uint32, name, decl string, stage uint32) int32 {
	prog, ok := g.programs[p]
	if !ok || !prog.linked {
		return -1
	}
	if loc, ok := prog.locations[name]; ok {
		return loc
	}
	declRe := regexp.MustCompile(decl)
	useRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for _, sid := range prog.shaders {
		s := g.shaders[sid]
		if stage != 0 && s.stage != stage {
			continue
		}
		if declRe.MatchString(s.source) && len(useRe.FindAllStringIndex(s.source, -1)) >= 2 {
			loc := prog.next
			prog.next++
			prog.locations[name] = loc
			return loc
		}
	}
	return -1
}

func (g *GPU) setUniform(loc int32, v any) {
	g.UniformWrites[loc]++
	if loc < 0 {
		return
	}
	g.Uniforms[loc] = v
}

func (g *GPU) Uniform1f(loc int32, v float32)         { g.setUniform(loc, v) }
func (g *GPU) Uniform2i(loc int32, x, y int32)        { g.setUniform(loc, [2]int32{x, y}) }
func (g *GPU) Uniform2f(loc int32, x, y float32)      { g.setUniform(loc, [2]float32{x, y}) }
func (g *GPU) UniformMatrix4(loc int32, m mgl32.Mat4) { g.setUniform(loc, m) }

func (g *GPU) GenVertexArray() uint32 {
	g.VertexArrays++
	return g.id()
}

func (g *GPU) BindVertexArray(vao uint32) { g.VertexArray = vao }

func (g *GPU) DeleteVertexArray(vao uint32) { g.DeletedVAOs = append(g.DeletedVAOs, vao) }

func (g *GPU) GenBuffer() uint32 {
	g.BuffersCreated++
	return g.id()
}

func (g *GPU) BindBuffer(target, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		g.ArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		g.ElementBuffer = buffer
	}
}

func (g *GPU) bound(target uint32) uint32 {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return g.ElementBuffer
	}
	return g.ArrayBuffer
}

func (g *GPU) BufferFloat32(target uint32, data []float32, usage uint32) {
	buf := g.bound(target)
	g.BufferUploads[buf]++
	g.BufferData[buf] = append([]float32(nil), data...)
	g.BufferUsage[buf] = usage
}

func (g *GPU) BufferUint32(target uint32, data []uint32, usage uint32) {
	buf := g.bound(target)
	g.BufferUploads[buf]++
	g.IndexData[buf] = append([]uint32(nil), data...)
	g.BufferUsage[buf] = usage
}

func (g *GPU) DeleteBuffer(buffer uint32) { g.DeletedBuffers = append(g.DeletedBuffers, buffer) }

func (g *GPU) EnableVertexAttribArray(i uint32)  { g.enabled[i] = true }
func (g *GPU) DisableVertexAttribArray(i uint32) { delete(g.enabled, i) }

// AttribEnabled reports whether the attribute array is currently enabled
func (g *GPU) AttribEnabled(i uint32) bool { return g.enabled[i] }

func (g *GPU) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.AttribPointers = append(g.AttribPointers, AttribPointer{index, size, xtype, normalized, stride, offset})
}

func (g *GPU) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	var enabled []uint32
	for i := range g.enabled {
		enabled = append(enabled, i)
	}
	g.Draws = append(g.Draws, DrawCall{
		Mode:          mode,
		Count:         count,
		Program:       g.CurrentProgram,
		ArrayBuffer:   g.ArrayBuffer,
		ElementBuffer: g.ElementBuffer,
		Enabled:       enabled,
	})
}

func (g *GPU) ClearColor(r, gr, b, a float32) { g.ClearColorValue = [4]float32{r, gr, b, a} }
func (g *GPU) Clear(mask uint32)              { g.Clears = append(g.Clears, mask) }

func (g *GPU) Viewport(x, y, w, h int32) { g.ViewportRect = [4]int32{x, y, w, h} }

func (g *GPU) GetError() uint32 {
	if len(g.PendingErrors) == 0 {
		return gl.NO_ERROR
	}
	code := g.PendingErrors[0]
	g.PendingErrors = g.PendingErrors[1:]
	return code
}

func (g *GPU) GetString(name uint32) string {
	switch name {
	case gl.VERSION:
		return "3.2.0 gputest"
	case gl.SHADING_LANGUAGE_VERSION:
		return "1.50 gputest"
	case gl.VENDOR:
		return "gputest"
	case gl.RENDERER:
		return "recording fake"
	}
	return ""
}
