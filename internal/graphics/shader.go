package graphics

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-gl/gl/v3.2-core/gl"
)

var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("shader link failed")
)

// CompileError carries the driver diagnostic for one stage.
type CompileError struct {
	Stage string
	File  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader %s: %s", e.Stage, e.File, e.Log)
}

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// LinkError carries the driver diagnostic for a failed link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program: %s", e.Log)
}

func (e *LinkError) Is(target error) bool { return target == ErrLink }

// ShaderProgram owns a vertex stage, a fragment stage and the program linking them.
type ShaderProgram struct {
	gpu GPU

	ID       uint32
	Vertex   uint32
	Fragment uint32

	VertexFile   string
	FragmentFile string
}

// LoadShaderProgram reads both stage sources and builds the program.
//
// The returned program is never nil. On failure the error describes every
// stage that failed and the handles may be unusable; the caller decides
// whether to abort or continue without drawing.
func LoadShaderProgram(gpu GPU, vertexPath, fragmentPath string) (*ShaderProgram, error) {
	vertexSrc, vertexErr := ReadSource(vertexPath)
	fragmentSrc, fragmentErr := ReadSource(fragmentPath)

	sp, err := BuildShaderProgram(gpu,
		ShaderSource{Name: filepath.Base(vertexPath), Text: vertexSrc},
		ShaderSource{Name: filepath.Base(fragmentPath), Text: fragmentSrc},
	)
	if err != nil {
		return sp, errors.Join(vertexErr, fragmentErr, err)
	}
	return sp, nil
}

// BuildShaderProgram compiles and links already loaded sources.
func BuildShaderProgram(gpu GPU, vertex, fragment ShaderSource) (*ShaderProgram, error) {
	sp := &ShaderProgram{
		gpu:          gpu,
		VertexFile:   vertex.Name,
		FragmentFile: fragment.Name,
	}

	sp.Vertex = gpu.CreateShader(gl.VERTEX_SHADER)
	sp.Fragment = gpu.CreateShader(gl.FRAGMENT_SHADER)
	sp.ID = gpu.CreateProgram()

	var errs []error
	if err := compileStage(gpu, sp.Vertex, "vertex", vertex); err != nil {
		errs = append(errs, err)
	}
	if err := compileStage(gpu, sp.Fragment, "fragment", fragment); err != nil {
		errs = append(errs, err)
	}

	gpu.AttachShader(sp.ID, sp.Vertex)
	gpu.AttachShader(sp.ID, sp.Fragment)
	gpu.LinkProgram(sp.ID)

	if !gpu.ProgramLinked(sp.ID) {
		msg := gpu.ProgramInfoLog(sp.ID)
		log.Printf("shader: link errors:\n%s", msg)
		errs = append(errs, &LinkError{Log: msg})
	}

	return sp, errors.Join(errs...)
}

func compileStage(gpu GPU, shader uint32, stage string, src ShaderSource) error {
	gpu.ShaderSource(shader, src.Text)
	gpu.CompileShader(shader)
	if gpu.ShaderCompiled(shader) {
		return nil
	}

	msg := gpu.ShaderInfoLog(shader)
	log.Printf("shader: errors from %s:\n%s", src.Name, msg)
	return &CompileError{Stage: stage, File: src.Name, Log: msg}
}

// Use binds the program for subsequent draws and uniform writes
func (sp *ShaderProgram) Use() {
	sp.gpu.UseProgram(sp.ID)
}

// Delete releases the program and both stages. Safe to call twice.
func (sp *ShaderProgram) Delete() {
	if sp.ID != 0 {
		sp.gpu.DeleteProgram(sp.ID)
		sp.ID = 0
	}
	if sp.Vertex != 0 {
		sp.gpu.DeleteShader(sp.Vertex)
		sp.Vertex = 0
	}
	if sp.Fragment != 0 {
		sp.gpu.DeleteShader(sp.Fragment)
		sp.Fragment = 0
	}
}
