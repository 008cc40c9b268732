package surface

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/xgraphix/pkg/math"
)

// SceneHalfExtent is the half-width of the plotted surface in scene units.
// Whatever the domain, the surface spans [-2, 2] on X and Y; the tick labels
// carry the domain values.
const SceneHalfExtent = 2.0

// Mesh is the triangulated surface. Its vertex count and connectivity are
// fixed by the grid; only heights and normals change.
type Mesh struct {
	grid      *Grid
	positions []math.Vec3
	normals   []math.Vec3

	// version increments on every Ingest so renderers can skip re-uploads.
	version uint64
}

// NewMesh creates a flat mesh over grid.
func NewMesh(grid *Grid) *Mesh {
	n := grid.VertexCount()
	m := &Mesh{
		grid:      grid,
		positions: make([]math.Vec3, n),
		normals:   make([]math.Vec3, n),
	}
	for i := range m.positions {
		u, v := grid.UV(i)
		m.positions[i] = math.Vec3{X: u * SceneHalfExtent, Y: v * SceneHalfExtent}
		m.normals[i] = math.Up
	}
	return m
}

// Ingest overwrites every vertex height in place. heights must be in grid
// order with one entry per vertex. Normals are stale until RecomputeNormals.
func (m *Mesh) Ingest(heights []float64) error {
	if len(heights) != len(m.positions) {
		return fmt.Errorf("ingest: got %d heights for %d vertices", len(heights), len(m.positions))
	}
	for i, z := range heights {
		m.positions[i].Z = z
	}
	m.version++
	return nil
}

// RecomputeNormals rebuilds every vertex normal from the current positions.
// Face normals are accumulated unnormalized, so larger triangles weigh more.
func (m *Mesh) RecomputeNormals() {
	for i := range m.normals {
		m.normals[i] = math.Vec3{}
	}

	idx := m.grid.Indices()
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := idx[t], idx[t+1], idx[t+2]
		pa, pb, pc := m.positions[a], m.positions[b], m.positions[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		m.normals[a] = m.normals[a].Add(face)
		m.normals[b] = m.normals[b].Add(face)
		m.normals[c] = m.normals[c].Add(face)
	}

	for i, n := range m.normals {
		m.normals[i] = unitNormal(n)
	}
}

// unitNormal normalizes an accumulated normal. Dividing by the largest
// component first keeps Length finite for very steep surfaces. Degenerate or
// non-finite sums fall back to +Z.
func unitNormal(n math.Vec3) math.Vec3 {
	m := gomath.Max(gomath.Abs(n.X), gomath.Max(gomath.Abs(n.Y), gomath.Abs(n.Z)))
	if m < 1e-12 || gomath.IsInf(m, 0) || gomath.IsNaN(m) {
		return math.Up
	}
	return n.Scale(1 / m).Normalize()
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return m.grid.TriangleCount() }

// Height returns the current height of vertex i.
func (m *Mesh) Height(i int) float64 { return m.positions[i].Z }

// Positions returns vertex positions in scene space. Callers must not modify it.
func (m *Mesh) Positions() []math.Vec3 { return m.positions }

// Normals returns per-vertex unit normals. Callers must not modify it.
func (m *Mesh) Normals() []math.Vec3 { return m.normals }

// Indices returns the fixed triangle list.
func (m *Mesh) Indices() []uint32 { return m.grid.Indices() }

// Grid returns the sample grid the mesh is built on.
func (m *Mesh) Grid() *Grid { return m.grid }

// Version returns a counter that changes whenever heights change.
func (m *Mesh) Version() uint64 { return m.version }

// HeightAt interpolates the surface height at scene position (x, y). It
// reports false outside the plotted square.
func (m *Mesh) HeightAt(x, y float64) (float64, bool) {
	if x < -SceneHalfExtent || x > SceneHalfExtent || y < -SceneHalfExtent || y > SceneHalfExtent {
		return 0, false
	}

	s := m.grid.Segments()
	// Scene x grows with column, scene y shrinks with row.
	fx := (x/SceneHalfExtent + 1) / 2 * float64(s)
	fy := (1 - y/SceneHalfExtent) / 2 * float64(s)

	ix := min(int(fx), s-1)
	iy := min(int(fy), s-1)
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	z00 := m.positions[m.grid.Index(ix, iy)].Z
	z10 := m.positions[m.grid.Index(ix+1, iy)].Z
	z01 := m.positions[m.grid.Index(ix, iy+1)].Z
	z11 := m.positions[m.grid.Index(ix+1, iy+1)].Z

	top := z00 + (z10-z00)*tx
	bottom := z01 + (z11-z01)*tx
	return top + (bottom-top)*ty, true
}
