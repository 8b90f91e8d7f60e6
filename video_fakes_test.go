package zeni

import (
	"errors"
	"image"
	"image/color"
)

// callLog records device calls by name. hook runs after each record.
type callLog struct {
	calls []string
	hook  func(name string)
}

func (l *callLog) rec(name string) {
	l.calls = append(l.calls, name)
	if l.hook != nil {
		l.hook(name)
	}
}

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

var errFakeDraw = errors.New("fake draw failure")

// fakeGL records every call and forwards it to a real glRaster.
type fakeGL struct {
	callLog
	r         *glRaster
	sink      *countingSink
	drawErr   error
	drawPanic bool
	loaded    map[GLMatrixMode][16]float32
	bound     *Texture
}

func newFakeGL(size Point2i) *fakeGL {
	sink := newCountingSink(size)
	return &fakeGL{r: newGLRaster(sink, nil), sink: sink, loaded: map[GLMatrixMode][16]float32{}}
}

func (f *fakeGL) Enable(c GLCap)                     { f.rec("Enable"); f.r.Enable(c) }
func (f *fakeGL) Disable(c GLCap)                    { f.rec("Disable"); f.r.Disable(c) }
func (f *fakeGL) DepthMask(write bool)               { f.rec("DepthMask"); f.r.DepthMask(write) }
func (f *fakeGL) DepthFunc(fn TestFunc)              { f.rec("DepthFunc"); f.r.DepthFunc(fn) }
func (f *fakeGL) AlphaFunc(fn TestFunc, ref float32) { f.rec("AlphaFunc"); f.r.AlphaFunc(fn, ref) }
func (f *fakeGL) Color4f(c Color)                    { f.rec("Color4f"); f.r.Color4f(c) }
func (f *fakeGL) ClearColor(c Color)                 { f.rec("ClearColor"); f.r.ClearColor(c) }
func (f *fakeGL) Clear() error                       { f.rec("Clear"); return f.r.Clear() }
func (f *fakeGL) MatrixMode(mode GLMatrixMode)       { f.rec("MatrixMode"); f.r.MatrixMode(mode) }

func (f *fakeGL) LoadMatrixf(m [16]float32) {
	f.rec("LoadMatrixf")
	f.loaded[f.r.mode] = m
	f.r.LoadMatrixf(m)
}

func (f *fakeGL) MultMatrixf(m [16]float32)        { f.rec("MultMatrixf"); f.r.MultMatrixf(m) }
func (f *fakeGL) PushMatrix()                      { f.rec("PushMatrix"); f.r.PushMatrix() }
func (f *fakeGL) PopMatrix() error                 { f.rec("PopMatrix"); return f.r.PopMatrix() }
func (f *fakeGL) Viewport(x, y, width, height int) { f.rec("Viewport"); f.r.Viewport(x, y, width, height) }
func (f *fakeGL) SwapInterval(n int)               { f.rec("SwapInterval"); f.r.SwapInterval(n) }
func (f *fakeGL) Light(n int, l Light)             { f.rec("Light"); f.r.Light(n, l) }
func (f *fakeGL) LightModelAmbient(c Color)        { f.rec("LightModelAmbient"); f.r.LightModelAmbient(c) }
func (f *fakeGL) Material(m Material)              { f.rec("Material"); f.r.Material(m) }
func (f *fakeGL) Fog(fg Fog)                       { f.rec("Fog"); f.r.Fog(fg) }
func (f *fakeGL) ShadeModel(smooth bool)           { f.rec("ShadeModel"); f.r.ShadeModel(smooth) }
func (f *fakeGL) FramebufferSize() Point2i         { f.rec("FramebufferSize"); return f.r.FramebufferSize() }
func (f *fakeGL) MaxAnisotropy() int               { f.rec("MaxAnisotropy"); return f.r.MaxAnisotropy() }
func (f *fakeGL) HasVertexBufferObjects() bool     { f.rec("HasVertexBufferObjects"); return false }
func (f *fakeGL) SwapBuffers() error               { f.rec("SwapBuffers"); return f.r.SwapBuffers() }
func (f *fakeGL) Close() error                     { f.rec("Close"); return f.r.Close() }

func (f *fakeGL) BindTexture(tex *Texture) {
	f.rec("BindTexture")
	f.bound = tex
	f.r.BindTexture(tex)
}

func (f *fakeGL) BindFramebuffer(target *Texture) error {
	f.rec("BindFramebuffer")
	return f.r.BindFramebuffer(target)
}

func (f *fakeGL) DrawArrays(p Primitive, vs []Vertex) error {
	f.rec("DrawArrays")
	if f.drawPanic {
		panic("fake GL device lost")
	}
	if f.drawErr != nil {
		return f.drawErr
	}
	return f.r.DrawArrays(p, vs)
}

// fakeD3D records every call and forwards it to a real d3dRaster.
type fakeD3D struct {
	callLog
	r          *d3dRaster
	sink       *countingSink
	drawErr    error
	states     map[D3DRenderState]uint32
	transforms map[D3DTransform][16]float32
	intervals  []uint32
}

func newFakeD3D(size Point2i) *fakeD3D {
	sink := newCountingSink(size)
	return &fakeD3D{
		r:          newD3DRaster(sink, nil),
		sink:       sink,
		states:     map[D3DRenderState]uint32{},
		transforms: map[D3DTransform][16]float32{},
	}
}

func (f *fakeD3D) SetRenderState(s D3DRenderState, value uint32) error {
	f.rec("SetRenderState")
	f.states[s] = value
	return f.r.SetRenderState(s, value)
}

func (f *fakeD3D) SetTransform(t D3DTransform, m [16]float32) error {
	f.rec("SetTransform")
	f.transforms[t] = m
	return f.r.SetTransform(t, m)
}

func (f *fakeD3D) SetViewport(vp Viewport, minZ, maxZ float32) error {
	f.rec("SetViewport")
	return f.r.SetViewport(vp, minZ, maxZ)
}

func (f *fakeD3D) SetTexture(stage int, tex *Texture) error {
	f.rec("SetTexture")
	return f.r.SetTexture(stage, tex)
}

func (f *fakeD3D) SetLight(n int, l Light) error      { f.rec("SetLight"); return f.r.SetLight(n, l) }
func (f *fakeD3D) LightEnable(n int, on bool) error   { f.rec("LightEnable"); return f.r.LightEnable(n, on) }
func (f *fakeD3D) SetMaterial(m Material) error       { f.rec("SetMaterial"); return f.r.SetMaterial(m) }
func (f *fakeD3D) SetFog(fg Fog) error                { f.rec("SetFog"); return f.r.SetFog(fg) }
func (f *fakeD3D) Clear(argb uint32) error            { f.rec("Clear"); return f.r.Clear(argb) }
func (f *fakeD3D) BeginScene() error                  { f.rec("BeginScene"); return f.r.BeginScene() }
func (f *fakeD3D) EndScene() error                    { f.rec("EndScene"); return f.r.EndScene() }
func (f *fakeD3D) Present() error                     { f.rec("Present"); return f.r.Present() }
func (f *fakeD3D) SetRenderTarget(tex *Texture) error { f.rec("SetRenderTarget"); return f.r.SetRenderTarget(tex) }
func (f *fakeD3D) RenderTargetSize() Point2i          { f.rec("RenderTargetSize"); return f.r.RenderTargetSize() }
func (f *fakeD3D) MaxAnisotropy() int                 { f.rec("MaxAnisotropy"); return f.r.MaxAnisotropy() }
func (f *fakeD3D) Release() error                     { f.rec("Release"); return f.r.Release() }

func (f *fakeD3D) Reset(presentInterval uint32) error {
	f.rec("Reset")
	f.intervals = append(f.intervals, presentInterval)
	return f.r.Reset(presentInterval)
}

func (f *fakeD3D) DrawPrimitiveUP(p Primitive, vs []Vertex) error {
	f.rec("DrawPrimitiveUP")
	if f.drawErr != nil {
		return f.drawErr
	}
	return f.r.DrawPrimitiveUP(p, vs)
}

// fakeSurface counts Close calls.
type fakeSurface struct {
	size   Point2i
	title  string
	closes int
}

func (s *fakeSurface) Size() Point2i         { return s.size }
func (s *fakeSurface) SetTitle(title string) { s.title = title }
func (s *fakeSurface) SetFullscreen(bool)    {}
func (s *fakeSurface) SetFrameVisible(bool)  {}

func (s *fakeSurface) Close() error {
	s.closes++
	return nil
}

// hookRecorder is a Renderable that logs the order of its hooks.
type hookRecorder struct {
	events []string
}

func (h *hookRecorder) PreRender()  { h.events = append(h.events, "pre") }
func (h *hookRecorder) PostRender() { h.events = append(h.events, "post") }

func (h *hookRecorder) RenderTo(dst DrawTarget) error {
	h.events = append(h.events, "draw")
	return dst.DrawVertices(PrimitiveTriangles, []Vertex{
		{Position: Point3f{0, 0, 0}, Color: ColorWhite},
		{Position: Point3f{0, 10, 0}, Color: ColorWhite},
		{Position: Point3f{10, 10, 0}, Color: ColorWhite},
	})
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testVideoConfig(api string) VideoConfig {
	cfg := DefaultConfig().Video
	cfg.API = api
	cfg.Width, cfg.Height = 320, 240
	return cfg
}
