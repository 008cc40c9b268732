package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/3), 16.0/9.0, 0.1, 1000)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 3, 3}
	m := LookAt(eye, Vec3{}, Up)

	got := m.TransformPoint(eye.F32())
	for i, c := range got {
		if abs(c) > 1e-5 {
			t.Errorf("LookAt eye component %d = %f, want 0", i, c)
		}
	}

	// The target sits straight ahead on -Z in view space.
	target := m.TransformPoint([3]float32{0, 0, 0})
	if abs(target[0]) > 1e-5 || abs(target[1]) > 1e-5 || target[2] >= 0 {
		t.Errorf("LookAt target = %v, want (0, 0, -d)", target)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestOrthoScreenSpace(t *testing.T) {
	// Pixel space with y down: top-left maps to (-1, 1), bottom-right to (1, -1).
	m := Ortho(0, 800, 600, 0, -1, 1)

	tl := m.TransformPoint([3]float32{0, 0, 0})
	if math.Abs(float64(tl[0]+1)) > 1e-6 || math.Abs(float64(tl[1]-1)) > 1e-6 {
		t.Errorf("top-left = %v, want (-1, 1)", tl)
	}
	br := m.TransformPoint([3]float32{800, 600, 0})
	if math.Abs(float64(br[0]-1)) > 1e-6 || math.Abs(float64(br[1]+1)) > 1e-6 {
		t.Errorf("bottom-right = %v, want (1, -1)", br)
	}
}

func TestViewBasis(t *testing.T) {
	view := LookAt(Vec3{Y: -5}, Vec3{}, Up)
	right, up, forward := view.ViewBasis()

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"right", right, Vec3{X: 1}},
		{"up", up, Vec3{Z: 1}},
		{"forward", forward, Vec3{Y: 1}},
	}
	for _, tt := range tests {
		if tt.got.Distance(tt.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
