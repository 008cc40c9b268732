// Package axis builds the reference geometry drawn around a surface: axes
// lines, axis titles, numeric tick labels and the ground grid.
package axis

import (
	"strconv"

	"github.com/Faultbox/xgraphix/internal/surface"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Axis identifies one of the three plot axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Layout constants in scene units.
const (
	AxisLength    = 2.0
	TitleDistance = 2.5
	TitleSize     = 0.2
	TickSize      = 0.1
	TickOffset    = 0.1
)

// DefaultTicks are the scene positions labeled on every axis.
var DefaultTicks = []float64{-2, -1, 0, 1, 2}

// Label is a piece of text anchored in scene space.
type Label struct {
	Axis     Axis
	Text     string
	Value    float64
	Position math.Vec3
	Size     float64
	Visible  bool

	// Generation is the relabel pass that produced the label.
	Generation uint64
	retired    bool
}

// Retired reports whether a later relabel discarded this label.
func (l *Label) Retired() bool { return l.retired }

// Tick pairs a scene position with its label.
type Tick struct {
	Position float64
	Label    *Label
}

// TickSet holds the ticks of all three axes from one relabel pass.
type TickSet struct {
	X, Y, Z    []Tick
	Generation uint64
}

// Axis returns the ticks of axis a.
func (ts TickSet) Axis(a Axis) []Tick {
	switch a {
	case X:
		return ts.X
	case Y:
		return ts.Y
	default:
		return ts.Z
	}
}

// Annotator owns the tick labels and the static reference geometry.
type Annotator struct {
	ticks      []float64
	labels     []*Label
	titles     []*Label
	axes       []Segment
	grid       *Grid
	generation uint64
}

// NewAnnotator creates an annotator with the given tick positions (nil means
// DefaultTicks). Axes, titles and the ground grid are built here once; no
// labels exist until the first Relabel.
func NewAnnotator(ticks []float64, gridVisible bool) *Annotator {
	if ticks == nil {
		ticks = DefaultTicks
	}
	a := &Annotator{
		ticks: append([]float64(nil), ticks...),
		axes:  buildAxes(AxisLength),
		grid:  NewGrid(DefaultGridSize, DefaultGridDivisions, gridVisible),
	}
	a.titles = []*Label{
		{Axis: X, Text: "X", Position: math.Vec3{X: TitleDistance}, Size: TitleSize, Visible: true},
		{Axis: Y, Text: "Y", Position: math.Vec3{Y: TitleDistance}, Size: TitleSize, Visible: true},
		{Axis: Z, Text: "Z", Position: math.Vec3{Z: TitleDistance}, Size: TitleSize, Visible: true},
	}
	return a
}

// Relabel retires every existing tick label and creates exactly one new label
// per tick position per axis for domain d. New labels start with the given
// visibility.
//
// X and Y values go through the domain mapping; Z labels show the scene
// position itself because height is the function's output, not a bounded
// input.
func (a *Annotator) Relabel(d surface.Domain, visible bool) TickSet {
	for _, l := range a.labels {
		l.retired = true
	}
	a.generation++
	a.labels = make([]*Label, 0, 3*len(a.ticks))

	ts := TickSet{
		X:          make([]Tick, 0, len(a.ticks)),
		Y:          make([]Tick, 0, len(a.ticks)),
		Z:          make([]Tick, 0, len(a.ticks)),
		Generation: a.generation,
	}

	for _, p := range a.ticks {
		norm := p / surface.SceneHalfExtent

		xl := a.newLabel(X, d.MapX(norm), math.Vec3{X: p, Z: -TickOffset}, visible)
		yl := a.newLabel(Y, d.MapY(norm), math.Vec3{Y: p, Z: -TickOffset}, visible)
		zl := a.newLabel(Z, p, math.Vec3{X: -TickOffset, Z: p}, visible)

		ts.X = append(ts.X, Tick{Position: p, Label: xl})
		ts.Y = append(ts.Y, Tick{Position: p, Label: yl})
		ts.Z = append(ts.Z, Tick{Position: p, Label: zl})
	}

	return ts
}

func (a *Annotator) newLabel(axis Axis, value float64, pos math.Vec3, visible bool) *Label {
	l := &Label{
		Axis:       axis,
		Text:       FormatTick(value),
		Value:      value,
		Position:   pos,
		Size:       TickSize,
		Visible:    visible,
		Generation: a.generation,
	}
	a.labels = append(a.labels, l)
	return l
}

// SetLabelsVisible applies visibility to every live tick label.
func (a *Annotator) SetLabelsVisible(visible bool) {
	for _, l := range a.labels {
		l.Visible = visible
	}
}

// SetGridVisible applies visibility to the ground grid.
func (a *Annotator) SetGridVisible(visible bool) {
	a.grid.Visible = visible
}

// Labels returns the live tick labels. Callers must not modify the slice.
func (a *Annotator) Labels() []*Label { return a.labels }

// Titles returns the static axis titles.
func (a *Annotator) Titles() []*Label { return a.titles }

// Axes returns the axes line segments.
func (a *Annotator) Axes() []Segment { return a.axes }

// Grid returns the ground grid.
func (a *Annotator) Grid() *Grid { return a.grid }

// Generation returns the number of completed relabel passes.
func (a *Annotator) Generation() uint64 { return a.generation }

// FormatTick formats a tick value with one decimal.
func FormatTick(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
