package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFlipPixels(t *testing.T) {
	// Two rows, one pixel wide: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipPixels: %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel = %v, want blue", img.At(0, 0))
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel = %v, want red", img.At(0, 1))
	}
}

func TestFlipPixelsSizeMismatch(t *testing.T) {
	if _, err := FlipPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("FlipPixels accepted short buffer")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "frame.png")
	img := RasterizeText("Z", LabelColor)

	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
