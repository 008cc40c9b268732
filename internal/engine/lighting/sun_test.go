package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/xgraphix/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestShadeFacingLight(t *testing.T) {
	r := DefaultRig()
	base := Hex(0x0088ff)

	facing := r.Shade(base, r.Direction)
	edge := r.Shade(base, math.Vec3{X: 1, Y: -1}.Normalize())

	// Facing the light gets ambient + full diffuse.
	amb := float32(0x40) / 255 * 0.6
	if want := base[2] * (amb + 0.8); !near(facing[2], want) {
		t.Errorf("facing blue = %v, want %v", facing[2], want)
	}
	// Perpendicular to the light only gets ambient.
	if want := base[2] * amb; !near(edge[2], want) {
		t.Errorf("edge blue = %v, want %v", edge[2], want)
	}
	if facing[0] != 0 || edge[0] != 0 {
		t.Error("red channel lit on a blue base")
	}
}

func TestShadeBackFace(t *testing.T) {
	r := DefaultRig()
	base := [3]float32{1, 1, 1}
	front := r.Shade(base, math.Up)
	back := r.Shade(base, math.Up.Scale(-1))
	if front != back {
		t.Errorf("front %v != back %v", front, back)
	}
}

func TestShadeAllReusesBuffer(t *testing.T) {
	r := DefaultRig()
	normals := []math.Vec3{math.Up, math.Up, math.Up}
	buf := make([][3]float32, 0, 8)
	out := r.ShadeAll(buf, [3]float32{1, 1, 1}, normals)
	if len(out) != 3 || cap(out) != 8 {
		t.Errorf("len = %d cap = %d", len(out), cap(out))
	}
}
