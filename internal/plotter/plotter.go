// Package plotter owns one plotted surface and everything derived from it:
// the sampled mesh, the axis annotations and the view state. All mutation
// goes through UpdateSurface and the visibility toggles, so the pieces never
// disagree about which domain is on screen.
package plotter

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/axis"
	"github.com/Faultbox/xgraphix/internal/logger"
	"github.com/Faultbox/xgraphix/internal/surface"
	"github.com/Faultbox/xgraphix/internal/view"
)

// ErrNilEvaluator is returned when UpdateSurface is called without a function.
var ErrNilEvaluator = errors.New("nil evaluator")

// Options configures a Plotter.
type Options struct {
	// Segments per grid side. Zero means surface.DefaultSegments.
	Segments int
	// Visibility is the initial grid/number visibility.
	Visibility view.Visibility
	// Ticks overrides the tick positions. Nil means axis.DefaultTicks.
	Ticks []float64
	// Logger receives update diagnostics. Nil means the global logger.
	Logger *zap.Logger
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Segments:   surface.DefaultSegments,
		Visibility: view.DefaultVisibility,
	}
}

// UpdateResult describes a committed update.
type UpdateResult struct {
	surface.SampleResult

	Domain     surface.Domain
	Generation uint64
}

// Plotter is the surface context. It is not safe for concurrent use; all
// calls must come from the thread that renders.
type Plotter struct {
	grid      *surface.Grid
	sampler   *surface.Sampler
	mesh      *surface.Mesh
	annotator *axis.Annotator
	view      *view.State
	log       *zap.Logger

	// scratch receives samples before anything visible changes.
	scratch []float64

	domain     surface.Domain
	hasDomain  bool
	last       surface.SampleResult
	generation uint64
}

// New creates a plotter with a flat mesh and no committed domain.
func New(opts Options) (*Plotter, error) {
	if opts.Segments == 0 {
		opts.Segments = surface.DefaultSegments
	}
	grid, err := surface.NewGrid(opts.Segments)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("plotter")
	}

	p := &Plotter{
		grid:      grid,
		sampler:   surface.NewSampler(grid),
		mesh:      surface.NewMesh(grid),
		annotator: axis.NewAnnotator(opts.Ticks, opts.Visibility.ShowGrid),
		view:      view.New(opts.Visibility),
		log:       log,
		scratch:   make([]float64, grid.VertexCount()),
	}

	log.Debug("plotter created",
		zap.Int("segments", grid.Segments()),
		zap.Int("vertices", grid.VertexCount()),
		zap.Int("triangles", grid.TriangleCount()))

	return p, nil
}

// UpdateSurface samples eval over the domain, rebuilds the mesh heights and
// normals, relabels the axes and commits the domain.
//
// A non-nil error means the update was refused (nil evaluator or invalid
// domain) and nothing changed. Sample failures do not refuse the update:
// failed vertices are drawn at height 0 and UpdateResult.Err reports
// surface.ErrEvaluationFailure or surface.ErrTotalEvaluationFailure.
func (p *Plotter) UpdateSurface(eval surface.Evaluator, xMin, xMax, yMin, yMax float64) (UpdateResult, error) {
	if eval == nil {
		return UpdateResult{}, ErrNilEvaluator
	}
	d, err := surface.NewDomain(xMin, xMax, yMin, yMax)
	if err != nil {
		p.log.Warn("update refused", zap.Error(err))
		return UpdateResult{}, err
	}

	res, err := p.sampler.Sample(eval, d, p.scratch)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("sampling: %w", err)
	}

	// Nothing below can fail, so the commit is all-or-nothing.
	if err := p.mesh.Ingest(p.scratch); err != nil {
		return UpdateResult{}, fmt.Errorf("ingest: %w", err)
	}
	p.mesh.RecomputeNormals()
	p.annotator.Relabel(d, p.view.Visibility().ShowNumbers)

	p.domain = d
	p.hasDomain = true
	p.last = res
	p.generation++

	fields := []zap.Field{
		zap.Stringer("domain", d),
		zap.Stringer("range", res.Range),
		zap.Uint64("generation", p.generation),
	}
	if res.Degraded() {
		p.log.Warn("surface updated with failures",
			append(fields, zap.Int("failures", res.Failures.Len()), zap.Error(res.Err()))...)
	} else {
		p.log.Debug("surface updated", fields...)
	}

	return UpdateResult{
		SampleResult: res,
		Domain:       d,
		Generation:   p.generation,
	}, nil
}

// SetGridVisibility shows or hides the ground grid.
func (p *Plotter) SetGridVisibility(visible bool) {
	p.view.SetGridVisible(visible)
	p.annotator.SetGridVisible(visible)
}

// SetNumbersVisibility shows or hides every live tick label.
func (p *Plotter) SetNumbersVisibility(visible bool) {
	p.view.SetNumbersVisible(visible)
	p.annotator.SetLabelsVisible(visible)
}

// ToggleGrid flips grid visibility and returns the new state.
func (p *Plotter) ToggleGrid() bool {
	v := !p.view.Visibility().ShowGrid
	p.SetGridVisibility(v)
	return v
}

// ToggleNumbers flips number visibility and returns the new state.
func (p *Plotter) ToggleNumbers() bool {
	v := !p.view.Visibility().ShowNumbers
	p.SetNumbersVisibility(v)
	return v
}

// ResetView restores the default camera pose.
func (p *Plotter) ResetView() {
	p.view.ResetView()
}

// View returns the view state for camera interaction.
func (p *Plotter) View() *view.State { return p.view }

// Domain returns the committed domain and whether any update has committed.
func (p *Plotter) Domain() (surface.Domain, bool) { return p.domain, p.hasDomain }

// LastResult returns the sample result of the last committed update.
func (p *Plotter) LastResult() surface.SampleResult { return p.last }

// Generation returns the number of committed updates.
func (p *Plotter) Generation() uint64 { return p.generation }

// Mesh returns the surface mesh. Callers must treat it as read-only.
func (p *Plotter) Mesh() *surface.Mesh { return p.mesh }

// Annotator returns the axis annotator. Callers must treat it as read-only.
func (p *Plotter) Annotator() *axis.Annotator { return p.annotator }
