package renderer

import (
	"image/color"
	"testing"
)

func TestRasterizeTextSize(t *testing.T) {
	tests := []struct {
		text  string
		width int
	}{
		{"X", 7},
		{"-1.5", 28},
		{"10.0", 28},
		{"", 1},
	}

	for _, tt := range tests {
		img := RasterizeText(tt.text, LabelColor)
		if got := img.Bounds().Dx(); got != tt.width {
			t.Errorf("RasterizeText(%q) width = %d, want %d", tt.text, got, tt.width)
		}
		if got := img.Bounds().Dy(); got != 13 {
			t.Errorf("RasterizeText(%q) height = %d, want 13", tt.text, got)
		}
	}
}

func TestRasterizeTextDrawsGlyphs(t *testing.T) {
	img := RasterizeText("8", color.RGBA{R: 0xff, A: 0xff})

	var opaque int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff {
			opaque++
			if img.Pix[i-3] != 0xff {
				t.Fatalf("glyph pixel red = %d, want 255", img.Pix[i-3])
			}
		}
	}
	if opaque == 0 {
		t.Error("no glyph pixels drawn")
	}
	if opaque == len(img.Pix)/4 {
		t.Error("background not transparent")
	}
}

func TestRasterizeTextEmptyIsTransparent(t *testing.T) {
	img := RasterizeText("", LabelColor)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("empty label has visible pixels")
		}
	}
}
