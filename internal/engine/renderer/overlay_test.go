package renderer

import (
	"testing"
)

func TestRasterizeLinesSize(t *testing.T) {
	img := RasterizeLines([]string{"f(x, y) = x*x", "ok"}, OverlayText, OverlayPanel, 6)

	// 13 glyphs of 7 px, two 13 px lines, 6 px padding on every side.
	if got, want := img.Bounds().Dx(), 13*7+12; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 2*13+12; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

func TestRasterizeLinesPanelBackground(t *testing.T) {
	img := RasterizeLines([]string{"a"}, OverlayText, OverlayPanel, 4)

	// Corners are padding, so they carry the panel color.
	if got := img.RGBAAt(0, 0); got != OverlayPanel {
		t.Errorf("corner = %v, want %v", got, OverlayPanel)
	}
}

func TestScreenQuad(t *testing.T) {
	q := ScreenQuad(10, 20, 100, 50)
	if len(q) != 6*quadStride {
		t.Fatalf("len = %d, want %d", len(q), 6*quadStride)
	}

	// Third vertex is the bottom-right corner with uv (1, 1).
	br := q[2*quadStride : 3*quadStride]
	want := []float32{110, 70, 0, 1, 1}
	for i := range want {
		if br[i] != want[i] {
			t.Errorf("bottom-right[%d] = %v, want %v", i, br[i], want[i])
		}
	}
}
