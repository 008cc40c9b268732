package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/xgraphix/internal/axis"
)

type labelTexture struct {
	id            uint32
	width, height int
}

// labelCache holds one texture per distinct label text. Textures not used by
// the current label generation are released when the generation changes.
type labelCache struct {
	textures   map[string]*labelTexture
	generation uint64
}

func newLabelCache() *labelCache {
	return &labelCache{textures: make(map[string]*labelTexture)}
}

func (c *labelCache) get(text string) *labelTexture {
	if t, ok := c.textures[text]; ok {
		return t
	}

	img := RasterizeText(text, LabelColor)
	t := &labelTexture{width: img.Rect.Dx(), height: img.Rect.Dy()}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.width), int32(t.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	c.textures[text] = t
	return t
}

// retain drops textures whose text no live label uses.
func (c *labelCache) retain(generation uint64, live []*axis.Label) {
	if generation == c.generation {
		return
	}
	c.generation = generation

	keep := make(map[string]bool, len(live))
	for _, l := range live {
		keep[l.Text] = true
	}
	for text, t := range c.textures {
		if !keep[text] {
			gl.DeleteTextures(1, &t.id)
			delete(c.textures, text)
		}
	}
}

func (c *labelCache) release() {
	for text, t := range c.textures {
		gl.DeleteTextures(1, &t.id)
		delete(c.textures, text)
	}
}
