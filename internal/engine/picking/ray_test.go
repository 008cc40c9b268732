package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/xgraphix/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 1e-6
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 3, Y: 3, Z: 3}
	view := math.LookAt(eye, math.Vec3{}, math.Up)

	r := ScreenToRay(400, 300, 800, 600, eye, view, gomath.Pi/3)
	want := math.Vec3{X: -1, Y: -1, Z: -1}.Normalize()
	if !near(r.Direction, want) {
		t.Errorf("center direction = %v, want %v", r.Direction, want)
	}
	if r.Origin != eye {
		t.Errorf("origin = %v, want %v", r.Origin, eye)
	}
}

func TestScreenToRayTopEdge(t *testing.T) {
	eye := math.Vec3{Y: -5}
	view := math.LookAt(eye, math.Vec3{}, math.Up)
	fov := gomath.Pi / 2

	// Top-center pixel: 45 degrees above the view axis.
	r := ScreenToRay(50, 0, 100, 100, eye, view, fov)
	want := math.Vec3{Y: 1, Z: 1}.Normalize()
	if !near(r.Direction, want) {
		t.Errorf("top direction = %v, want %v", r.Direction, want)
	}
}

func TestIntersectPlaneZ(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 1, Z: 2}, Direction: math.Vec3{Z: -1}}

	p, ok := r.IntersectPlaneZ(0)
	if !ok || !near(p, math.Vec3{X: 1, Y: 1}) {
		t.Errorf("IntersectPlaneZ(0) = %v, %v, want (1, 1, 0), true", p, ok)
	}
	if _, ok := r.IntersectPlaneZ(3); ok {
		t.Error("plane behind the origin reported a hit")
	}

	flat := Ray{Direction: math.Vec3{X: 1}}
	if _, ok := flat.IntersectPlaneZ(1); ok {
		t.Error("parallel ray reported a hit")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name       string
		ray        Ray
		enter, out float64
		hit        bool
	}{
		{"through", Ray{Origin: math.Vec3{X: -5}, Direction: math.Vec3{X: 1}}, 4, 6, true},
		{"inside", Ray{Direction: math.Vec3{Z: 1}}, 0, 1, true},
		{"miss", Ray{Origin: math.Vec3{X: -5, Y: 3}, Direction: math.Vec3{X: 1}}, 0, 0, false},
		{"behind", Ray{Origin: math.Vec3{X: 5}, Direction: math.Vec3{X: 1}}, 0, 0, false},
	}

	for _, tt := range tests {
		enter, out, hit := tt.ray.IntersectAABB(box)
		if hit != tt.hit {
			t.Errorf("%s: hit = %v, want %v", tt.name, hit, tt.hit)
			continue
		}
		if hit && (gomath.Abs(enter-tt.enter) > 1e-9 || gomath.Abs(out-tt.out) > 1e-9) {
			t.Errorf("%s: t = [%v, %v], want [%v, %v]", tt.name, enter, out, tt.enter, tt.out)
		}
	}
}

func TestIntersectHeightfield(t *testing.T) {
	bowl := func(x, y float64) (float64, bool) {
		if gomath.Abs(x) > 2 || gomath.Abs(y) > 2 {
			return 0, false
		}
		return (x*x + y*y) / 4, true
	}
	box := AABB{Min: math.Vec3{X: -2, Y: -2, Z: -0.1}, Max: math.Vec3{X: 2, Y: 2, Z: 2.1}}

	// Straight down onto (1, 0.5).
	r := Ray{Origin: math.Vec3{X: 1, Y: 0.5, Z: 5}, Direction: math.Vec3{Z: -1}}
	p, ok := r.IntersectHeightfield(bowl, box)
	if !ok {
		t.Fatal("no hit")
	}
	if want := (1 + 0.25) / 4.0; gomath.Abs(p.Z-want) > 1e-6 {
		t.Errorf("hit z = %v, want %v", p.Z, want)
	}

	// A ray that passes outside the box.
	miss := Ray{Origin: math.Vec3{X: 5, Y: 5, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := miss.IntersectHeightfield(bowl, box); ok {
		t.Error("ray outside the box reported a hit")
	}
}
