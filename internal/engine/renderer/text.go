package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelColor is the text color of axis labels.
var LabelColor = color.RGBA{A: 0xff}

// RasterizeText draws text on a transparent image sized to fit it exactly.
// Empty text yields a single transparent column.
func RasterizeText(text string, col color.Color) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	width := font.MeasureString(face, text).Ceil()
	if width < 1 {
		width = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)
	return img
}
