package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/engine/framebuffer"
	"github.com/Faultbox/xgraphix/internal/export"
	"github.com/Faultbox/xgraphix/internal/plotter"
)

// ScreenshotPrefix names captured images.
const ScreenshotPrefix = "xgraphix"

// FlipPixels converts bottom-up RGBA rows as read from OpenGL into a
// top-down image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePNG encodes img to path, creating the parent directory.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Screenshot renders f offscreen at the drawable size, without the status
// overlay, and writes it as a PNG in dir.
func (r *Renderer) Screenshot(f plotter.Frame, dir string) (string, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("invalid framebuffer size %dx%d", w, h)
	}

	if r.target == nil {
		target, err := framebuffer.New(w, h)
		if err != nil {
			return "", fmt.Errorf("screenshot target: %w", err)
		}
		r.target = target
	} else {
		r.target.Resize(w, h)
	}

	restore := r.target.Bind()
	r.renderScene(f)
	pixels := r.target.ReadPixels()
	restore()

	img, err := FlipPixels(pixels, w, h)
	if err != nil {
		return "", err
	}

	path := export.Filename(dir, ScreenshotPrefix, ".png", time.Now())
	if err := SavePNG(path, img); err != nil {
		return "", err
	}

	r.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
