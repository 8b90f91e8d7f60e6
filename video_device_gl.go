// video_device_gl.go - GL-class device contract and its software raster

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package zeni

import (
	"fmt"
)

// GLCap is a capability toggled with Enable/Disable. Lights are GLLight0+n.
type GLCap int

const (
	GLCullFace GLCap = iota
	GLDepthTest
	GLAlphaTest
	GLLighting
	GLFog
	GLTexture2D
	GLMultisample
	GLLight0
)

type GLMatrixMode int

const (
	GLModelView GLMatrixMode = iota
	GLProjection
)

// GLDevice is the fixed-function GL surface the GL backend drives.
// Matrices arrive column-major; the viewport origin is bottom-left.
type GLDevice interface {
	Enable(c GLCap)
	Disable(c GLCap)
	DepthMask(write bool)
	DepthFunc(fn TestFunc)
	AlphaFunc(fn TestFunc, ref float32)
	Color4f(c Color)
	ClearColor(c Color)
	Clear() error
	MatrixMode(mode GLMatrixMode)
	LoadMatrixf(m [16]float32)
	MultMatrixf(m [16]float32)
	PushMatrix()
	PopMatrix() error
	Viewport(x, y, width, height int)
	SwapInterval(n int)
	BindTexture(tex *Texture)
	Light(n int, l Light)
	LightModelAmbient(c Color)
	Material(m Material)
	Fog(f Fog)
	ShadeModel(smooth bool)
	DrawArrays(p Primitive, vs []Vertex) error
	BindFramebuffer(target *Texture) error
	FramebufferSize() Point2i
	MaxAnisotropy() int
	HasVertexBufferObjects() bool
	SwapBuffers() error
	Close() error
}

// glRaster implements GLDevice on the software pipeline.
type glRaster struct {
	sink  frameSink
	vsync func(on bool)

	caps       map[GLCap]bool
	depthMask  bool
	depthFunc  TestFunc
	alphaFunc  TestFunc
	alphaRef   float32
	color      Color
	clearColor Color
	smooth     bool

	mode       GLMatrixMode
	modelview  []Matrix4f
	projection []Matrix4f

	viewport [4]int // x, y, w, h with a bottom-left origin
	texture  *Texture
	target   *Texture
	ambient  Color
	lights   map[int]Light
	material Material
	fog      Fog
	closed   bool
}

func newGLRaster(sink frameSink, vsync func(bool)) *glRaster {
	size := sink.TargetSize(nil)
	return &glRaster{
		sink:       sink,
		vsync:      vsync,
		caps:       map[GLCap]bool{},
		depthMask:  true,
		depthFunc:  TestLess,
		alphaFunc:  TestAlways,
		color:      ColorWhite,
		smooth:     true,
		modelview:  []Matrix4f{Identity()},
		projection: []Matrix4f{Identity()},
		viewport:   [4]int{0, 0, size.X, size.Y},
		lights:     map[int]Light{},
		material:   NewMaterial(ColorWhite),
	}
}

func (g *glRaster) Enable(c GLCap)  { g.caps[c] = true }
func (g *glRaster) Disable(c GLCap) { g.caps[c] = false }

func (g *glRaster) DepthMask(write bool)               { g.depthMask = write }
func (g *glRaster) DepthFunc(fn TestFunc)              { g.depthFunc = fn }
func (g *glRaster) AlphaFunc(fn TestFunc, ref float32) { g.alphaFunc, g.alphaRef = fn, ref }
func (g *glRaster) Color4f(c Color)                    { g.color = c }
func (g *glRaster) ClearColor(c Color)                 { g.clearColor = c }
func (g *glRaster) ShadeModel(smooth bool)             { g.smooth = smooth }
func (g *glRaster) LightModelAmbient(c Color)          { g.ambient = c }
func (g *glRaster) Light(n int, l Light)               { g.lights[n] = l }
func (g *glRaster) Material(m Material)                { g.material = m }
func (g *glRaster) Fog(f Fog)                          { g.fog = f }
func (g *glRaster) BindTexture(tex *Texture)           { g.texture = tex }
func (g *glRaster) MaxAnisotropy() int                 { return 16 }
func (g *glRaster) HasVertexBufferObjects() bool       { return false }

func (g *glRaster) Clear() error {
	return g.sink.Clear(g.target, g.clearColor)
}

func (g *glRaster) stack() *[]Matrix4f {
	if g.mode == GLProjection {
		return &g.projection
	}
	return &g.modelview
}

func (g *glRaster) MatrixMode(mode GLMatrixMode) { g.mode = mode }

func (g *glRaster) LoadMatrixf(m [16]float32) {
	s := *g.stack()
	s[len(s)-1] = Matrix4f(m).Transposed()
}

func (g *glRaster) MultMatrixf(m [16]float32) {
	s := *g.stack()
	s[len(s)-1] = s[len(s)-1].Mul(Matrix4f(m).Transposed())
}

func (g *glRaster) PushMatrix() {
	s := g.stack()
	*s = append(*s, (*s)[len(*s)-1])
}

func (g *glRaster) PopMatrix() error {
	s := g.stack()
	if len(*s) < 2 {
		return ErrWorldStackUnderflow
	}
	*s = (*s)[:len(*s)-1]
	return nil
}

func (g *glRaster) Viewport(x, y, width, height int) {
	g.viewport = [4]int{x, y, width, height}
}

func (g *glRaster) SwapInterval(n int) {
	if g.vsync != nil {
		g.vsync(n != 0)
	}
}

// windowViewport converts the bottom-left GL viewport to window space.
func (g *glRaster) windowViewport() Viewport {
	h := g.sink.TargetSize(g.target).Y
	x, y, w, vh := g.viewport[0], g.viewport[1], g.viewport[2], g.viewport[3]
	top := h - (y + vh)
	return Viewport{Min: Point2i{x, top}, Max: Point2i{x + w, top + vh}}
}

func (g *glRaster) DrawArrays(p Primitive, vs []Vertex) error {
	if g.closed {
		return fmt.Errorf("gl: draw on closed device")
	}
	rs := rasterState{
		mvp:      g.projection[len(g.projection)-1].Mul(g.modelview[len(g.modelview)-1]),
		viewport: g.windowViewport(),
		color:    g.color,
	}
	if g.caps[GLCullFace] {
		rs.cull = cullBack
	}
	if g.caps[GLTexture2D] {
		rs.texture = g.texture
	}
	out, idx, err := rs.project(p, vs)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return nil
	}
	return g.sink.Triangles(g.target, rs.texture, out, idx)
}

func (g *glRaster) BindFramebuffer(target *Texture) error {
	if target != nil && !target.IsRenderTarget() {
		return fmt.Errorf("gl: texture %q is not a framebuffer", target.Name())
	}
	g.target = target
	return nil
}

func (g *glRaster) FramebufferSize() Point2i {
	return g.sink.TargetSize(g.target)
}

func (g *glRaster) SwapBuffers() error {
	return g.sink.Present()
}

func (g *glRaster) Close() error {
	g.closed = true
	return nil
}
