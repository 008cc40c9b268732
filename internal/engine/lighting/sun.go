// Package lighting provides the scene lighting model: one ambient term and
// one directional light, evaluated per vertex.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/xgraphix/pkg/math"
)

// Rig is an ambient light plus a directional light fixed in world space.
type Rig struct {
	AmbientColor     [3]float32
	AmbientIntensity float32

	// Direction points from the surface toward the light.
	Direction math.Vec3
	Color     [3]float32
	Intensity float32
}

// DefaultRig is a dim grey ambient light and a white light shining from
// (1, 1, 1).
func DefaultRig() Rig {
	return Rig{
		AmbientColor:     Hex(0x404040),
		AmbientIntensity: 0.6,
		Direction:        math.Vec3{X: 1, Y: 1, Z: 1}.Normalize(),
		Color:            [3]float32{1, 1, 1},
		Intensity:        0.8,
	}
}

// Shade returns the Lambert-lit color of a surface with the given base color
// and unit normal. Both faces are lit so the underside of a surface is not
// black.
func (r Rig) Shade(base [3]float32, normal math.Vec3) [3]float32 {
	diffuse := float32(gomath.Abs(normal.Dot(r.Direction)))

	var out [3]float32
	for i := range out {
		light := r.AmbientColor[i]*r.AmbientIntensity + r.Color[i]*r.Intensity*diffuse
		c := base[i] * light
		if c > 1 {
			c = 1
		}
		out[i] = c
	}
	return out
}

// ShadeAll writes one lit color per normal into dst, growing it as needed.
func (r Rig) ShadeAll(dst [][3]float32, base [3]float32, normals []math.Vec3) [][3]float32 {
	if cap(dst) < len(normals) {
		dst = make([][3]float32, len(normals))
	}
	dst = dst[:len(normals)]
	for i, n := range normals {
		dst[i] = r.Shade(base, n)
	}
	return dst
}

// Hex converts 0xRRGGBB to normalized RGB.
func Hex(c uint32) [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}
