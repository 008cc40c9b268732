// Package picking casts rays from the screen into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/xgraphix/pkg/math"
)

// Ray is a half-line in scene space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates to a ray leaving the eye of a
// perspective camera. view must come from math.LookAt and fovY is the
// vertical field of view in radians.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, eye math.Vec3, view math.Mat4, fovY float64) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	right, up, forward := view.ViewBasis()
	tanHalf := gomath.Tan(fovY / 2)
	aspect := viewportW / viewportH

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))

	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// IntersectPlaneZ intersects the ray with the horizontal plane at height z.
func (r Ray) IntersectPlaneZ(z float64) (math.Vec3, bool) {
	if gomath.Abs(r.Direction.Z) < 1e-9 {
		return math.Vec3{}, false // Parallel
	}
	t := (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec3{}, false // Behind the origin
	}
	return r.At(t), true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// IntersectAABB returns the entry and exit distances of the ray through box.
// A ray starting inside the box enters at zero.
func (r Ray) IntersectAABB(box AABB) (tEnter, tExit float64, hit bool) {
	tEnter, tExit = 0, gomath.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = gomath.Max(tEnter, t1)
		tExit = gomath.Min(tExit, t2)
	}

	if tExit < tEnter {
		return 0, 0, false
	}
	return tEnter, tExit, true
}

// Heightfield returns the surface height at (x, y), or false where the
// surface is undefined.
type Heightfield func(x, y float64) (float64, bool)

// Marching resolution for IntersectHeightfield.
const (
	marchSteps     = 256
	bisectionSteps = 32
)

// IntersectHeightfield returns the first point where the ray crosses the
// heightfield inside box. box bounds the search and should enclose the
// surface.
func (r Ray) IntersectHeightfield(h Heightfield, box AABB) (math.Vec3, bool) {
	t0, t1, ok := r.IntersectAABB(box)
	if !ok {
		return math.Vec3{}, false
	}

	// above reports the sign of ray height minus surface height.
	above := func(t float64) (bool, bool) {
		p := r.At(t)
		z, ok := h(p.X, p.Y)
		return p.Z >= z, ok
	}

	step := (t1 - t0) / marchSteps
	prevT := t0
	prevAbove, prevOK := above(t0)

	for i := 1; i <= marchSteps; i++ {
		t := t0 + float64(i)*step
		cur, ok := above(t)
		if ok && prevOK && cur != prevAbove {
			lo, hi := prevT, t
			for j := 0; j < bisectionSteps; j++ {
				mid := (lo + hi) / 2
				m, _ := above(mid)
				if m == prevAbove {
					lo = mid
				} else {
					hi = mid
				}
			}
			return r.At((lo + hi) / 2), true
		}
		prevT, prevAbove, prevOK = t, cur, ok
	}
	return math.Vec3{}, false
}
