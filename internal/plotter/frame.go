package plotter

import (
	"github.com/Faultbox/xgraphix/internal/axis"
	"github.com/Faultbox/xgraphix/internal/surface"
	"github.com/Faultbox/xgraphix/internal/view"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Frame is the committed state a renderer draws. The slices and pointers are
// shared with the plotter and stay valid until the next mutating call.
type Frame struct {
	Mesh   *surface.Mesh
	Domain surface.Domain
	Range  surface.ValueRange

	Axes   []axis.Segment
	Grid   *axis.Grid
	Labels []*axis.Label
	Titles []*axis.Label

	Visibility view.Visibility
	View       math.Mat4
	Eye        math.Vec3

	Generation  uint64
	MeshVersion uint64

	camera *view.State
}

// Projection returns the projection matrix for the given aspect ratio.
func (f Frame) Projection(aspect float32) math.Mat4 {
	if f.camera == nil {
		return math.Perspective(1.3, aspect, 0.1, 1000)
	}
	return f.camera.Projection(aspect)
}

// Frame snapshots the committed state for drawing.
func (p *Plotter) Frame() Frame {
	return Frame{
		Mesh:        p.mesh,
		Domain:      p.domain,
		Range:       p.last.Range,
		Axes:        p.annotator.Axes(),
		Grid:        p.annotator.Grid(),
		Labels:      p.annotator.Labels(),
		Titles:      p.annotator.Titles(),
		Visibility:  p.view.Visibility(),
		View:        p.view.ViewMatrix(),
		Eye:         p.view.Eye(),
		Generation:  p.generation,
		MeshVersion: p.mesh.Version(),
		camera:      p.view,
	}
}
