package graphics

import (
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GPU is the slice of the OpenGL call surface the viewport uses. The
// production implementation forwards to go-gl; tests use gputest.GPU.
type GPU interface {
	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2i(location int32, x, y int32)
	Uniform2f(location int32, x, y float32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferFloat32(target uint32, data []float32, usage uint32)
	BufferUint32(target uint32, data []uint32, usage uint32)
	DeleteBuffer(buffer uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	GetError() uint32
	GetString(name uint32) string
}

// OpenGL forwards to the go-gl 3.2 core bindings. gl.Init must have
// succeeded on the current context before any call.
type OpenGL struct{}

var _ GPU = OpenGL{}

// NewOpenGL returns the go-gl backed GPU
func NewOpenGL() *OpenGL {
	return &OpenGL{}
}

func (OpenGL) CreateShader(stage uint32) uint32 { return gl.CreateShader(stage) }

func (OpenGL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (OpenGL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (OpenGL) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (OpenGL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (OpenGL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (OpenGL) CreateProgram() uint32 { return gl.CreateProgram() }

func (OpenGL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (OpenGL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (OpenGL) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (OpenGL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (OpenGL) UseProgram(program uint32) { gl.UseProgram(program) }

func (OpenGL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (OpenGL) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (OpenGL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (OpenGL) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (OpenGL) Uniform2i(location int32, x, y int32) { gl.Uniform2i(location, x, y) }

func (OpenGL) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }

func (OpenGL) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (OpenGL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (OpenGL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (OpenGL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (OpenGL) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (OpenGL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (OpenGL) BufferFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (OpenGL) BufferUint32(target uint32, data []uint32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (OpenGL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (OpenGL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (OpenGL) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (OpenGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (OpenGL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(int(offset)))
}

func (OpenGL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (OpenGL) Clear(mask uint32) { gl.Clear(mask) }

func (OpenGL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (OpenGL) GetError() uint32 { return gl.GetError() }

func (OpenGL) GetString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}
