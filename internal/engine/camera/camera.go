// Package camera provides the orbit camera used to inspect the plot.
package camera

import (
	gomath "math"

	"github.com/Faultbox/xgraphix/pkg/math"
)

// Default pose: eye at (3, 3, 3) looking at the origin.
var (
	DefaultDistance = gomath.Sqrt(27)
	DefaultYaw      = gomath.Pi / 4
	DefaultPitch    = gomath.Asin(1 / gomath.Sqrt(3))
)

// OrbitCamera orbits around a center point with Z up.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float64 // Distance from center
	Pitch    float64 // Elevation above the XY plane, radians
	Yaw      float64 // Angle from +X toward +Y, radians

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
	PanSensitivity  float64

	FovY float32
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera in the default pose.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     0.5,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
		FovY:            float32(60 * gomath.Pi / 180),
		Near:            0.1,
		Far:             1000,
	}
	c.Reset()
	return c
}

// Reset restores the default pose and drops any pan.
func (c *OrbitCamera) Reset() {
	c.Center = math.Vec3{}
	c.Distance = DefaultDistance
	c.Yaw = DefaultYaw
	c.Pitch = DefaultPitch
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(c.Pitch)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * gomath.Cos(c.Yaw),
		Y: c.Distance * cp * gomath.Sin(c.Yaw),
		Z: c.Distance * gomath.Sin(c.Pitch),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center in the camera's screen plane. Speed scales with
// distance so panning feels the same at any zoom.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float64) {
	forward := c.Center.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Up).Normalize()
	if right.Length() == 0 {
		right = math.Vec3{X: -gomath.Sin(c.Yaw), Y: gomath.Cos(c.Yaw)}
	}
	up := right.Cross(forward)

	speed := c.Distance * c.PanSensitivity
	c.Center = c.Center.
		Add(right.Scale(-deltaX * speed)).
		Add(up.Scale(deltaY * speed))
}
