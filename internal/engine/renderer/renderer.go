// Package renderer draws plotter frames with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/axis"
	"github.com/Faultbox/xgraphix/internal/engine/framebuffer"
	"github.com/Faultbox/xgraphix/internal/engine/lighting"
	"github.com/Faultbox/xgraphix/internal/engine/shader"
	"github.com/Faultbox/xgraphix/internal/logger"
	"github.com/Faultbox/xgraphix/internal/plotter"
	"github.com/Faultbox/xgraphix/pkg/math"
)

// SurfaceColor is the base color of the plotted surface.
const SurfaceColor = 0x0088ff

// ClearColor is the background.
var ClearColor = [4]float32{1, 1, 1, 1}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Wireframe draws the surface as triangle edges.
	Wireframe bool
	Lights    lighting.Rig
	// OverlayScale multiplies the status panel size, for high-DPI drawables.
	OverlayScale int
}

// DefaultConfig returns the standard look: wireframe surface, default lights.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:        width,
		Height:       height,
		Wireframe:    true,
		Lights:       lighting.DefaultRig(),
		OverlayScale: 1,
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	colorProgram uint32
	colorMVP     int32

	labelProgram uint32
	labelMVP     int32
	labelTex     int32

	surfaceVAO, surfaceVBO, surfaceEBO uint32
	surfaceIndexCount                  int32
	surfaceVersion                     uint64
	uploadedIndices                    bool

	lineVAO, lineVBO uint32
	quadVAO, quadVBO uint32

	// Scratch buffers reused across frames.
	shaded   [][3]float32
	vertices []float32
	lines    []float32
	visible  []*axis.Label

	labels  *labelCache
	overlay overlay

	// Offscreen target for screenshots, created on first use.
	target *framebuffer.Framebuffer
}

const colorVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
uniform mat4 uMVP;
out vec3 vColor;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const colorFragmentSrc = `#version 410 core
in vec3 vColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(vColor, 1.0);
}
`

const labelVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
uniform mat4 uMVP;
out vec2 vUV;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vUV = aUV;
}
`

const labelFragmentSrc = `#version 410 core
in vec2 vUV;
uniform sampler2D uTex;
out vec4 FragColor;
void main() {
	vec4 c = texture(uTex, vUV);
	if (c.a < 0.1) discard;
	FragColor = c;
}
`

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		labels: newLabelCache(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])

	var err error
	r.colorProgram, err = shader.CompileProgram(colorVertexSrc, colorFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("color program: %w", err)
	}
	r.colorMVP = shader.MustGetUniform(r.colorProgram, "uMVP")

	r.labelProgram, err = shader.CompileProgram(labelVertexSrc, labelFragmentSrc)
	if err != nil {
		gl.DeleteProgram(r.colorProgram)
		return nil, fmt.Errorf("label program: %w", err)
	}
	r.labelMVP = shader.MustGetUniform(r.labelProgram, "uMVP")
	r.labelTex = shader.MustGetUniform(r.labelProgram, "uTex")

	r.createBuffers()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createBuffers() {
	// Surface: interleaved position + color, indexed.
	gl.GenVertexArrays(1, &r.surfaceVAO)
	gl.BindVertexArray(r.surfaceVAO)
	gl.GenBuffers(1, &r.surfaceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.surfaceVBO)
	gl.GenBuffers(1, &r.surfaceEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.surfaceEBO)
	colorAttribs()
	gl.BindVertexArray(0)

	// Lines: axes and grid.
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	colorAttribs()
	gl.BindVertexArray(0)

	// Label quads: position + uv.
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*quadStride*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, quadStride*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, quadStride*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

func colorAttribs() {
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, colorStride*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, colorStride*4, 3*4)
	gl.EnableVertexAttribArray(1)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.labels.release()
	r.releaseOverlay()
	if r.target != nil {
		r.target.Destroy()
	}
	for _, vao := range []*uint32{&r.surfaceVAO, &r.lineVAO, &r.quadVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, buf := range []*uint32{&r.surfaceVBO, &r.surfaceEBO, &r.lineVBO, &r.quadVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	if r.colorProgram != 0 {
		gl.DeleteProgram(r.colorProgram)
	}
	if r.labelProgram != 0 {
		gl.DeleteProgram(r.labelProgram)
	}
}

// Resize handles drawable size changes.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns width over height of the drawable.
func (r *Renderer) Aspect() float32 {
	if r.config.Height <= 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe switches between wireframe and filled surface rendering.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
}

// RenderFrame clears the screen and draws the surface, axes, grid, labels
// and the status overlay.
func (r *Renderer) RenderFrame(f plotter.Frame) {
	r.renderScene(f)
	r.drawOverlay()
}

func (r *Renderer) renderScene(f plotter.Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mvp := f.Projection(r.Aspect()).Mul(f.View)

	gl.UseProgram(r.colorProgram)
	shader.SetMat4(r.colorMVP, mvp.Ptr())

	if f.Mesh != nil {
		r.drawSurface(f)
	}
	r.drawLines(f)
	r.drawLabels(f, mvp)

	gl.UseProgram(0)
}

func (r *Renderer) drawSurface(f plotter.Frame) {
	gl.BindVertexArray(r.surfaceVAO)

	if !r.uploadedIndices {
		idx := f.Mesh.Indices()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.surfaceEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, gl.Ptr(idx), gl.STATIC_DRAW)
		r.surfaceIndexCount = int32(len(idx))
		r.uploadedIndices = true
	}

	// Reupload vertices only when the plotter committed new heights.
	if f.MeshVersion != r.surfaceVersion || r.vertices == nil {
		r.shaded = r.config.Lights.ShadeAll(r.shaded, lighting.Hex(SurfaceColor), f.Mesh.Normals())
		r.vertices = SurfaceVertices(r.vertices, f.Mesh.Positions(), r.shaded)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.surfaceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, gl.Ptr(r.vertices), gl.DYNAMIC_DRAW)
		r.surfaceVersion = f.MeshVersion
	}

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.DrawElements(gl.TRIANGLES, r.surfaceIndexCount, gl.UNSIGNED_INT, nil)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLines(f plotter.Frame) {
	r.lines = LineVertices(r.lines[:0], f.Axes)
	if f.Grid != nil && f.Grid.Visible {
		r.lines = LineVertices(r.lines, f.Grid.Lines)
	}
	if len(r.lines) == 0 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.lines)*4, gl.Ptr(r.lines), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.lines)/colorStride))
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLabels(f plotter.Frame, mvp math.Mat4) {
	r.visible = drawableLabels(r.visible, f.Labels, f.Titles)
	r.labels.retain(f.Generation, r.visible)
	if len(r.visible) == 0 {
		return
	}

	right, up, _ := f.View.ViewBasis()

	gl.UseProgram(r.labelProgram)
	shader.SetMat4(r.labelMVP, mvp.Ptr())
	shader.SetInt(r.labelTex, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)

	for _, l := range r.visible {
		tex := r.labels.get(l.Text)
		aspect := float64(tex.width) / float64(tex.height)
		quad := BillboardQuad(l.Position, l.Size*aspect, l.Size, right, up)

		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
}
