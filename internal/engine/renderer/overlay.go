package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/xgraphix/internal/engine/shader"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Overlay panel colors and layout in pixels.
var (
	OverlayText  = color.RGBA{0x20, 0x20, 0x20, 0xff}
	OverlayPanel = color.RGBA{0xe8, 0xe8, 0xe8, 0xe8} // premultiplied translucent white
)

const (
	overlayPadding = 6
	overlayMargin  = 10
)

// RasterizeLines draws lines of text on a padded panel.
func RasterizeLines(lines []string, fg, bg color.Color, pad int) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	img := image.NewRGBA(image.Rect(0, 0, width+2*pad, lineHeight*len(lines)+2*pad))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	for i, l := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(pad),
			Y: fixed.I(pad+i*lineHeight) + metrics.Ascent,
		}
		d.DrawString(l)
	}
	return img
}

// ScreenQuad returns two triangles covering a pixel rectangle for a y-down
// orthographic projection. Texture row zero is the top edge.
func ScreenQuad(x, y, w, h float32) []float32 {
	return []float32{
		x, y, 0, 0, 0,
		x + w, y, 0, 1, 0,
		x + w, y + h, 0, 1, 1,
		x, y, 0, 0, 0,
		x + w, y + h, 0, 1, 1,
		x, y + h, 0, 0, 1,
	}
}

// overlay is the status panel drawn over the scene.
type overlay struct {
	text    string
	tex     uint32
	w, h    int
	visible bool
}

// SetOverlay replaces the status panel text. Nil or empty lines hide it.
func (r *Renderer) SetOverlay(lines []string) {
	text := strings.Join(lines, "\n")
	r.overlay.visible = len(lines) > 0
	if !r.overlay.visible || text == r.overlay.text {
		return
	}
	r.overlay.text = text

	img := RasterizeLines(lines, OverlayText, OverlayPanel, overlayPadding)
	if r.overlay.tex == 0 {
		gl.GenTextures(1, &r.overlay.tex)
	}
	r.overlay.w, r.overlay.h = img.Rect.Dx(), img.Rect.Dy()

	gl.BindTexture(gl.TEXTURE_2D, r.overlay.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(r.overlay.w), int32(r.overlay.h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) drawOverlay() {
	if !r.overlay.visible || r.overlay.tex == 0 {
		return
	}

	scale := float32(max(r.config.OverlayScale, 1))
	proj := math.Ortho(0, float32(r.config.Width), float32(r.config.Height), 0, -1, 1)
	quad := ScreenQuad(overlayMargin*scale, overlayMargin*scale,
		float32(r.overlay.w)*scale, float32(r.overlay.h)*scale)

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.labelProgram)
	shader.SetMat4(r.labelMVP, proj.Ptr())
	shader.SetInt(r.labelTex, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.overlay.tex)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) releaseOverlay() {
	if r.overlay.tex != 0 {
		gl.DeleteTextures(1, &r.overlay.tex)
		r.overlay.tex = 0
	}
}
