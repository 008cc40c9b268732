package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/xgraphix/pkg/math"
)

const eps = 1e-9

func near(a, b math.Vec3) bool {
	return a.Distance(b) < eps
}

func TestDefaultPose(t *testing.T) {
	c := NewOrbitCamera()
	want := math.Vec3{X: 3, Y: 3, Z: 3}
	if got := c.Position(); !near(got, want) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestResetClearsInteraction(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(120, -40)
	c.HandleZoom(3)
	c.HandlePan(50, 25)

	if near(c.Position(), math.Vec3{X: 3, Y: 3, Z: 3}) {
		t.Fatal("interaction did not move the camera")
	}

	c.Reset()
	if got := c.Position(); !near(got, math.Vec3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("Position() after Reset = %v", got)
	}
	if c.Center != (math.Vec3{}) {
		t.Errorf("Center after Reset = %v", c.Center)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MinPitch)
	}
}

func TestZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestPanKeepsDistance(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Position().Distance(c.Center)
	c.HandlePan(30, -10)
	after := c.Position().Distance(c.Center)
	if gomath.Abs(before-after) > eps {
		t.Errorf("distance changed from %v to %v", before, after)
	}
	if c.Center == (math.Vec3{}) {
		t.Error("pan did not move the center")
	}
}
