package surface

import "fmt"

// DefaultSegments is the number of grid cells per side.
const DefaultSegments = 40

// Grid is the immutable parametric sample grid. Vertices are laid out row by
// row: row 0 is v = +1, the last row is v = -1, and u runs from -1 to +1
// within a row. Each cell is split into two triangles wound counter-clockwise
// when seen from +Z.
type Grid struct {
	segments int
	uv       [][2]float64
	indices  []uint32
}

// NewGrid builds a grid with the given number of segments per side.
func NewGrid(segments int) (*Grid, error) {
	if segments < 1 {
		return nil, fmt.Errorf("grid segments must be positive, got %d", segments)
	}

	n := segments + 1
	g := &Grid{
		segments: segments,
		uv:       make([][2]float64, 0, n*n),
		indices:  make([]uint32, 0, segments*segments*6),
	}

	for iy := 0; iy < n; iy++ {
		v := 1 - 2*float64(iy)/float64(segments)
		for ix := 0; ix < n; ix++ {
			u := 2*float64(ix)/float64(segments) - 1
			g.uv = append(g.uv, [2]float64{u, v})
		}
	}

	for iy := 0; iy < segments; iy++ {
		for ix := 0; ix < segments; ix++ {
			a := uint32(ix + n*iy)
			b := uint32(ix + n*(iy+1))
			c := uint32(ix + 1 + n*(iy+1))
			d := uint32(ix + 1 + n*iy)
			g.indices = append(g.indices, a, b, d, b, c, d)
		}
	}

	return g, nil
}

// Segments returns the number of cells per side.
func (g *Grid) Segments() int { return g.segments }

// VertexCount returns (segments+1)².
func (g *Grid) VertexCount() int { return len(g.uv) }

// TriangleCount returns 2·segments².
func (g *Grid) TriangleCount() int { return len(g.indices) / 3 }

// UV returns the normalized coordinates of vertex i.
func (g *Grid) UV(i int) (u, v float64) {
	p := g.uv[i]
	return p[0], p[1]
}

// Index returns the vertex index at grid column ix and row iy.
func (g *Grid) Index(ix, iy int) int {
	return iy*(g.segments+1) + ix
}

// Indices returns the triangle list. Callers must not modify it.
func (g *Grid) Indices() []uint32 { return g.indices }
