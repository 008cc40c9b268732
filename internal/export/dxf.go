// Package export writes the committed plot to DXF so it can be opened in CAD
// tools.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/Faultbox/xgraphix/internal/axis"
	"github.com/Faultbox/xgraphix/internal/plotter"
)

// Layer names.
const (
	LayerSurface = "SURFACE"
	LayerAxes    = "AXES"
	LayerGrid    = "GRID"
	LayerLabels  = "LABELS"
)

// ErrNothingToExport is returned for a frame without a committed surface.
var ErrNothingToExport = errors.New("no surface to export")

// Filename returns a timestamped file name in dir.
func Filename(dir, prefix, ext string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, now.Format("20060102-150405"), ext))
}

// WriteDXF writes the surface as one 3DFACE per triangle, the axes as lines
// and the visible labels as text, all in scene coordinates. Hidden grid and
// labels are left out.
func WriteDXF(path string, f plotter.Frame) error {
	if f.Mesh == nil || f.Generation == 0 {
		return ErrNothingToExport
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	d.AddLayer(LayerSurface, color.Cyan, dxf.DefaultLineType, true)
	pos := f.Mesh.Positions()
	idx := f.Mesh.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := pos[idx[i]], pos[idx[i+1]], pos[idx[i+2]]
		// A triangle is a 3DFACE with the last corner repeated.
		pts := [][]float64{
			{a.X, a.Y, a.Z},
			{b.X, b.Y, b.Z},
			{c.X, c.Y, c.Z},
			{c.X, c.Y, c.Z},
		}
		if _, err := d.ThreeDFace(pts); err != nil {
			return fmt.Errorf("writing face %d: %w", i/3, err)
		}
	}

	d.AddLayer(LayerAxes, color.White, dxf.DefaultLineType, true)
	if err := writeSegments(d, f.Axes); err != nil {
		return err
	}
	if err := writeLabels(d, f.Titles); err != nil {
		return err
	}

	if f.Grid != nil && f.Grid.Visible {
		d.AddLayer(LayerGrid, color.Blue, dxf.DefaultLineType, true)
		if err := writeSegments(d, f.Grid.Lines); err != nil {
			return err
		}
	}

	if f.Visibility.ShowNumbers {
		d.AddLayer(LayerLabels, color.Yellow, dxf.DefaultLineType, true)
		if err := writeLabels(d, f.Labels); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSegments(d *drawing.Drawing, segs []axis.Segment) error {
	for _, s := range segs {
		if _, err := d.Line(s.From.X, s.From.Y, s.From.Z, s.To.X, s.To.Y, s.To.Z); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

func writeLabels(d *drawing.Drawing, labels []*axis.Label) error {
	for _, l := range labels {
		if !l.Visible {
			continue
		}
		p := l.Position
		if _, err := d.Text(l.Text, p.X, p.Y, p.Z, l.Size); err != nil {
			return fmt.Errorf("writing label %q: %w", l.Text, err)
		}
	}
	return nil
}
