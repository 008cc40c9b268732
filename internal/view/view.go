// Package view holds the user-facing view state: visibility toggles and the
// orbit camera pose.
package view

import (
	"github.com/Faultbox/xgraphix/internal/engine/camera"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Visibility is the pair of display toggles.
type Visibility struct {
	ShowGrid    bool
	ShowNumbers bool
}

// DefaultVisibility shows both the grid and the numbers.
var DefaultVisibility = Visibility{ShowGrid: true, ShowNumbers: true}

// State is the view state of one plot window.
type State struct {
	vis    Visibility
	camera *camera.OrbitCamera
}

// New creates a view state with the given initial visibility.
func New(vis Visibility) *State {
	return &State{
		vis:    vis,
		camera: camera.NewOrbitCamera(),
	}
}

// Visibility returns the current toggles.
func (s *State) Visibility() Visibility { return s.vis }

// SetGridVisible records the grid toggle.
func (s *State) SetGridVisible(v bool) { s.vis.ShowGrid = v }

// SetNumbersVisible records the numbers toggle.
func (s *State) SetNumbersVisible(v bool) { s.vis.ShowNumbers = v }

// ResetView restores the default camera pose.
func (s *State) ResetView() { s.camera.Reset() }

// Drag orbits the camera.
func (s *State) Drag(dx, dy float64) { s.camera.HandleDrag(dx, dy) }

// Zoom moves the camera toward (positive) or away from the target.
func (s *State) Zoom(delta float64) { s.camera.HandleZoom(delta) }

// Pan shifts the orbit target in the screen plane.
func (s *State) Pan(dx, dy float64) { s.camera.HandlePan(dx, dy) }

// Eye returns the camera position.
func (s *State) Eye() math.Vec3 { return s.camera.Position() }

// Target returns the orbit center.
func (s *State) Target() math.Vec3 { return s.camera.Center }

// ViewMatrix returns the current view matrix.
func (s *State) ViewMatrix() math.Mat4 { return s.camera.ViewMatrix() }

// FovY returns the vertical field of view in radians.
func (s *State) FovY() float64 { return float64(s.camera.FovY) }

// Projection returns the projection matrix for the given aspect ratio.
func (s *State) Projection(aspect float32) math.Mat4 { return s.camera.Projection(aspect) }
