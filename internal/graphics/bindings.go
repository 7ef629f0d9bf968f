package graphics

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnboundVariable is returned when a shader variable has no GPU location.
var ErrUnboundVariable = errors.New("unbound shader variable")

// Bindings maps declared shader variable names to their GPU locations.
// It is filled once after linking and read-only afterwards.
type Bindings struct {
	attribs  map[string]int32
	uniforms map[string]int32
}

// BindVariables queries the location of each attribute and uniform name.
// Names the program does not declare (or the compiler optimized out) are
// stored as -1.
func BindVariables(gpu GPU, program uint32, attribs, uniforms []string) *Bindings {
	b := &Bindings{
		attribs:  make(map[string]int32, len(attribs)),
		uniforms: make(map[string]int32, len(uniforms)),
	}
	gpu.UseProgram(program)
	for _, name := range attribs {
		b.attribs[name] = gpu.AttribLocation(program, name)
	}
	for _, name := range uniforms {
		b.uniforms[name] = gpu.UniformLocation(program, name)
	}
	return b
}

// Attrib returns the location of a per-vertex input.
func (b *Bindings) Attrib(name string) (uint32, error) {
	loc, ok := b.attribs[name]
	if !ok || loc < 0 {
		return 0, fmt.Errorf("%w: attribute %q", ErrUnboundVariable, name)
	}
	return uint32(loc), nil
}

// Uniform returns the location of a per-draw uniform.
func (b *Bindings) Uniform(name string) (int32, error) {
	loc, ok := b.uniforms[name]
	if !ok || loc < 0 {
		return -1, fmt.Errorf("%w: uniform %q", ErrUnboundVariable, name)
	}
	return loc, nil
}

// HasUniform reports whether the uniform resolved to a location
func (b *Bindings) HasUniform(name string) bool {
	_, err := b.Uniform(name)
	return err == nil
}

// Missing lists every requested name that resolved to -1, attributes first.
func (b *Bindings) Missing() []string {
	var out []string
	out = append(out, missingIn(b.attribs)...)
	out = append(out, missingIn(b.uniforms)...)
	return out
}

func missingIn(m map[string]int32) []string {
	var names []string
	for name, loc := range m {
		if loc < 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
