package graphics

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// maxPendingErrors bounds the drain loop; a lost context can report errors forever.
const maxPendingErrors = 16

// GLError lists the error flags pending after a setup phase.
type GLError struct {
	Phase string
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = ErrorName(c)
	}
	return fmt.Sprintf("gl error after %s: %s", e.Phase, strings.Join(names, ", "))
}

// CheckError drains the driver's error flags. It returns nil when none were set.
func CheckError(gpu GPU, phase string) error {
	var codes []uint32
	for i := 0; i < maxPendingErrors; i++ {
		code := gpu.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return &GLError{Phase: phase, Codes: codes}
}

// LogError is CheckError for phases where errors are only reported.
func LogError(gpu GPU, phase string) {
	if err := CheckError(gpu, phase); err != nil {
		log.Printf("graphics: %v", err)
	}
}

// ErrorName returns the GL enum name for an error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// ContextInfo describes the current context.
type ContextInfo struct {
	Version     string
	GLSLVersion string
	Vendor      string
	Renderer    string
}

// QueryContextInfo reads the version strings of the current context.
func QueryContextInfo(gpu GPU) ContextInfo {
	return ContextInfo{
		Version:     gpu.GetString(gl.VERSION),
		GLSLVersion: gpu.GetString(gl.SHADING_LANGUAGE_VERSION),
		Vendor:      gpu.GetString(gl.VENDOR),
		Renderer:    gpu.GetString(gl.RENDERER),
	}
}

// LogContextInfo prints what the driver actually gave us.
func LogContextInfo(gpu GPU) {
	info := QueryContextInfo(gpu)
	log.Printf("graphics: OpenGL %s, GLSL %s (%s, %s)", info.Version, info.GLSLVersion, info.Vendor, info.Renderer)
}
