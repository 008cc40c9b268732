package plotter

import (
	"github.com/Faultbox/xgraphix/internal/engine/picking"
	"github.com/Faultbox/xgraphix/internal/surface"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Pick is the surface point under a screen position.
type Pick struct {
	// X and Y are domain coordinates, Z the plotted height.
	X, Y, Z float64
	Scene   math.Vec3
}

// Pick casts a ray through pixel (sx, sy) of a width x height viewport and
// returns the first point where it meets the committed surface.
func (p *Plotter) Pick(sx, sy, width, height float64) (Pick, bool) {
	if !p.hasDomain || width <= 0 || height <= 0 {
		return Pick{}, false
	}

	ray := picking.ScreenToRay(sx, sy, width, height, p.view.Eye(), p.view.ViewMatrix(), p.view.FovY())

	r := p.last.Range
	box := picking.AABB{
		Min: math.Vec3{X: -surface.SceneHalfExtent, Y: -surface.SceneHalfExtent, Z: min(r.Min, 0) - 1e-3},
		Max: math.Vec3{X: surface.SceneHalfExtent, Y: surface.SceneHalfExtent, Z: max(r.Max, 0) + 1e-3},
	}

	hit, ok := ray.IntersectHeightfield(p.mesh.HeightAt, box)
	if !ok {
		return Pick{}, false
	}

	x, y := p.domain.Map(hit.X/surface.SceneHalfExtent, hit.Y/surface.SceneHalfExtent)
	return Pick{X: x, Y: y, Z: hit.Z, Scene: hit}, true
}
