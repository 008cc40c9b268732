package renderer

import (
	"github.com/Faultbox/xgraphix/internal/axis"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// Floats per vertex in the interleaved buffers.
const (
	colorStride = 6 // position(3) + color(3)
	quadStride  = 5 // position(3) + uv(2)
)

// SurfaceVertices interleaves positions with lit colors into dst, growing it
// as needed.
func SurfaceVertices(dst []float32, positions []math.Vec3, colors [][3]float32) []float32 {
	n := len(positions) * colorStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for i, p := range positions {
		o := i * colorStride
		dst[o+0] = float32(p.X)
		dst[o+1] = float32(p.Y)
		dst[o+2] = float32(p.Z)
		var c [3]float32
		if i < len(colors) {
			c = colors[i]
		}
		dst[o+3] = c[0]
		dst[o+4] = c[1]
		dst[o+5] = c[2]
	}
	return dst
}

// LineVertices appends two colored vertices per segment to dst.
func LineVertices(dst []float32, segs []axis.Segment) []float32 {
	for _, s := range segs {
		dst = append(dst,
			float32(s.From.X), float32(s.From.Y), float32(s.From.Z), s.Color[0], s.Color[1], s.Color[2],
			float32(s.To.X), float32(s.To.Y), float32(s.To.Z), s.Color[0], s.Color[1], s.Color[2],
		)
	}
	return dst
}

// BillboardQuad returns two triangles of a camera-facing quad centered on
// center, width by height in world units.
func BillboardQuad(center math.Vec3, width, height float64, right, up math.Vec3) []float32 {
	hw := right.Scale(width / 2)
	hh := up.Scale(height / 2)

	bl := center.Sub(hw).Sub(hh)
	br := center.Add(hw).Sub(hh)
	tr := center.Add(hw).Add(hh)
	tl := center.Sub(hw).Add(hh)

	v := func(p math.Vec3, u, t float32) []float32 {
		return []float32{float32(p.X), float32(p.Y), float32(p.Z), u, t}
	}

	// Texture rows run top-down, so v=0 is the top edge.
	out := make([]float32, 0, 6*quadStride)
	out = append(out, v(bl, 0, 1)...)
	out = append(out, v(br, 1, 1)...)
	out = append(out, v(tr, 1, 0)...)
	out = append(out, v(bl, 0, 1)...)
	out = append(out, v(tr, 1, 0)...)
	out = append(out, v(tl, 0, 0)...)
	return out
}

// drawableLabels filters labels that should be drawn this frame.
func drawableLabels(dst []*axis.Label, labels ...[]*axis.Label) []*axis.Label {
	dst = dst[:0]
	for _, set := range labels {
		for _, l := range set {
			if l == nil || !l.Visible || l.Retired() || l.Text == "" {
				continue
			}
			dst = append(dst, l)
		}
	}
	return dst
}
