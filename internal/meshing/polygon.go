package meshing

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrTooFewSides is returned for polygons with fewer than three sides.
var ErrTooFewSides = errors.New("polygon needs at least 3 sides")

// Mesh is CPU-side geometry ready for upload: positions plus triangle indices.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
}

// BuildRegularPolygon builds a regular polygon centered on the origin in the
// plane z = depth. Vertex 0 is the center, vertices 1..sides lie on the circle
// at angle (i-1)*2π/sides. Triangles fan out from the center.
func BuildRegularPolygon(sides int, radius, depth float32) (*Mesh, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSides, sides)
	}

	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, sides+1),
		Indices:   make([]uint32, 0, 3*sides),
	}

	m.Positions = append(m.Positions, mgl32.Vec3{0, 0, depth})
	step := 2 * math32.Pi / float32(sides)
	for i := 0; i < sides; i++ {
		a := float32(i) * step
		m.Positions = append(m.Positions, mgl32.Vec3{radius * math32.Cos(a), radius * math32.Sin(a), depth})
	}

	for i := uint32(1); i < uint32(sides); i++ {
		m.Indices = append(m.Indices, 0, i, i+1)
	}
	// closing triangle wraps back to the first rim vertex
	m.Indices = append(m.Indices, 0, uint32(sides), 1)

	return m, nil
}

// VertexCount returns the number of positions
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// IndexCount returns the number of indices, as passed to an indexed draw.
func (m *Mesh) IndexCount() int32 {
	return int32(len(m.Indices))
}

// Flatten returns positions as tightly packed xyz floats.
func (m *Mesh) Flatten() []float32 {
	out := make([]float32, 0, 3*len(m.Positions))
	for _, p := range m.Positions {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// Triangles groups the index list into triples.
func (m *Mesh) Triangles() [][3]uint32 {
	tris := make([][3]uint32, 0, len(m.Indices)/3)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]})
	}
	return tris
}

// Area sums the unsigned xy-plane area of every triangle.
func (m *Mesh) Area() float32 {
	var total float32
	for _, t := range m.Triangles() {
		a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		total += math32.Abs(signedArea(a, b, c))
	}
	return total
}

// RegularPolygonArea is the analytic area of a regular polygon with the given circumradius.
func RegularPolygonArea(sides int, radius float32) float32 {
	n := float32(sides)
	return 0.5 * n * radius * radius * math32.Sin(2*math32.Pi/n)
}

func signedArea(a, b, c mgl32.Vec3) float32 {
	return 0.5 * ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1]))
}
