package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/xgraphix/internal/plotter"
	"github.com/Faultbox/xgraphix/internal/surface"
)

func committedFrame(t *testing.T) plotter.Frame {
	t.Helper()
	opts := plotter.DefaultOptions()
	opts.Segments = 4
	opts.Logger = zaptest.NewLogger(t)
	p, err := plotter.New(opts)
	if err != nil {
		t.Fatalf("plotter.New: %v", err)
	}
	eval := surface.Func(func(x, y float64) float64 { return x*x + y*y })
	if _, err := p.UpdateSurface(eval, -2, 2, -2, 2); err != nil {
		t.Fatalf("UpdateSurface: %v", err)
	}
	return p.Frame()
}

func TestWriteDXF(t *testing.T) {
	f := committedFrame(t)
	path := filepath.Join(t.TempDir(), "surface.dxf")

	if err := WriteDXF(path, f); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)

	// 4x4 cells, two triangles each.
	if got := strings.Count(out, "3DFACE"); got != 32 {
		t.Errorf("3DFACE count = %d, want 32", got)
	}
	for _, layer := range []string{LayerSurface, LayerAxes, LayerGrid, LayerLabels} {
		if !strings.Contains(out, layer) {
			t.Errorf("layer %s missing", layer)
		}
	}
	for _, text := range []string{"-2.0", "1.0"} {
		if !strings.Contains(out, text) {
			t.Errorf("label %q missing", text)
		}
	}
}

func TestWriteDXFSkipsHiddenLayers(t *testing.T) {
	f := committedFrame(t)
	f.Grid.Visible = false
	f.Visibility.ShowNumbers = false

	path := filepath.Join(t.TempDir(), "surface.dxf")
	if err := WriteDXF(path, f); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), LayerGrid) || strings.Contains(string(data), LayerLabels) {
		t.Error("hidden layers exported")
	}
}

func TestWriteDXFNothingCommitted(t *testing.T) {
	p, err := plotter.New(plotter.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	err = WriteDXF(filepath.Join(t.TempDir(), "x.dxf"), p.Frame())
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("WriteDXF error = %v, want ErrNothingToExport", err)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := Filename("out", "surface", ".dxf", now)
	want := filepath.Join("out", "surface-20240309-140507.dxf")
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
