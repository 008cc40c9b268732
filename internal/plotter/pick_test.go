package plotter

import (
	"math"
	"testing"

	"github.com/Faultbox/xgraphix/internal/surface"
)

func TestPickBeforeUpdate(t *testing.T) {
	p := newTestPlotter(t)
	if _, ok := p.Pick(400, 300, 800, 600); ok {
		t.Error("Pick without a committed surface reported a hit")
	}
}

func TestPickParaboloidAtScreenCenter(t *testing.T) {
	p := newTestPlotter(t)
	if _, err := p.UpdateSurface(paraboloid, -2, 2, -2, 2); err != nil {
		t.Fatalf("UpdateSurface: %v", err)
	}

	// The default camera looks from (3, 3, 3) at the origin; its center ray
	// meets z = x² + y² where s = 2s², at s = 0.5.
	got, ok := p.Pick(400, 300, 800, 600)
	if !ok {
		t.Fatal("no hit")
	}
	for name, v := range map[string]float64{"x": got.X, "y": got.Y, "z": got.Z} {
		if math.Abs(v-0.5) > 1e-3 {
			t.Errorf("%s = %v, want 0.5", name, v)
		}
	}
}

func TestPickMapsToDomain(t *testing.T) {
	p := newTestPlotter(t)
	flat := surface.Func(func(x, y float64) float64 { return 0.5 })
	if _, err := p.UpdateSurface(flat, -4, 4, 0, 10); err != nil {
		t.Fatalf("UpdateSurface: %v", err)
	}

	// Scene hit (0.5, 0.5, 0.5) is u = v = 0.25 in normalized coordinates.
	got, ok := p.Pick(400, 300, 800, 600)
	if !ok {
		t.Fatal("no hit")
	}
	if math.Abs(got.X-1) > 1e-3 || math.Abs(got.Y-6.25) > 1e-3 {
		t.Errorf("pick = (%v, %v), want (1, 6.25)", got.X, got.Y)
	}
	if math.Abs(got.Scene.X-0.5) > 1e-3 {
		t.Errorf("scene x = %v, want 0.5", got.Scene.X)
	}
}
