//go:build !zeni_nogl

// video_gl.go - GL-class rendering backend

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

// GLBackend translates Video operations into fixed-function GL calls. The
// view matrix and the world transforms share the modelview stack.
type GLBackend struct {
	v   *Video
	dev GLDevice
}

func newGLBackend(v *Video, dev GLDevice) *GLBackend {
	b := &GLBackend{v: v, dev: dev}

	dev.DepthMask(v.ZWrite())
	dev.ShadeModel(v.NormalInterpolation())
	dev.Color4f(v.Color())
	dev.ClearColor(v.ClearColor())
	b.setVerticalSyncImpl(v.VerticalSync())
	if v.Multisampling() > 1 {
		dev.Enable(GLMultisample)
	}
	return b
}

func (b *GLBackend) vtype() VideoMode { return VideoGL }

func (b *GLBackend) toggle(c GLCap, on bool) {
	if on {
		b.dev.Enable(c)
	} else {
		b.dev.Disable(c)
	}
}

func (b *GLBackend) uninitImpl() error {
	return b.dev.Close()
}

func (b *GLBackend) renderImpl(r Renderable) error {
	return r.RenderTo(b)
}

// DrawVertices implements DrawTarget.
func (b *GLBackend) DrawVertices(p Primitive, vs []Vertex) error {
	return b.dev.DrawArrays(p, vs)
}

func (b *GLBackend) maximumAnisotropyImpl() int { return b.dev.MaxAnisotropy() }
func (b *GLBackend) hasVertexBuffersImpl() bool { return b.dev.HasVertexBufferObjects() }

func (b *GLBackend) set2DViewImpl(_ Camera2D, vp Viewport) {
	b.applyView(vp)
}

func (b *GLBackend) set3DViewImpl(_ Camera, vp Viewport) {
	b.applyView(vp)
}

// applyView uploads the matrices the facade has just cached.
func (b *GLBackend) applyView(vp Viewport) {
	b.setViewportImpl(vp)
	b.setProjectionMatrixImpl(b.v.ProjectionMatrix())
	b.setViewMatrixImpl(b.v.ViewMatrix())
}

func (b *GLBackend) setBackfaceCullingImpl(on bool) { b.toggle(GLCullFace, on) }

func (b *GLBackend) setVerticalSyncImpl(on bool) {
	if on {
		b.dev.SwapInterval(1)
	} else {
		b.dev.SwapInterval(0)
	}
}

func (b *GLBackend) setZWriteImpl(on bool) { b.dev.DepthMask(on) }

func (b *GLBackend) setZTestImpl(on bool) {
	b.toggle(GLDepthTest, on)
	if on {
		b.dev.DepthFunc(TestLessOrEqual)
	}
}

func (b *GLBackend) setAlphaTestImpl(enabled bool, fn TestFunc, value float32) {
	b.toggle(GLAlphaTest, enabled)
	b.dev.AlphaFunc(fn, value)
}

func (b *GLBackend) setColorImpl(c Color)               { b.dev.Color4f(c) }
func (b *GLBackend) setClearColorImpl(c Color)          { b.dev.ClearColor(c) }
func (b *GLBackend) setLightingImpl(on bool)            { b.toggle(GLLighting, on) }
func (b *GLBackend) setNormalInterpolationImpl(on bool) { b.dev.ShadeModel(on) }
func (b *GLBackend) setAmbientLightingImpl(c Color)     { b.dev.LightModelAmbient(c) }

func (b *GLBackend) setLightImpl(n int, l Light) {
	b.dev.Light(n, l)
	b.dev.Enable(GLLight0 + GLCap(n))
}

func (b *GLBackend) unsetLightImpl(n int) {
	b.dev.Disable(GLLight0 + GLCap(n))
}

func (b *GLBackend) setMaterialImpl(m Material) { b.dev.Material(m) }
func (b *GLBackend) unsetMaterialImpl()         { b.dev.Material(NewMaterial(ColorWhite)) }

func (b *GLBackend) setFogImpl(f Fog) {
	b.dev.Fog(f)
	b.dev.Enable(GLFog)
}

func (b *GLBackend) unsetFogImpl() { b.dev.Disable(GLFog) }

func (b *GLBackend) applyTextureImpl(tex *Texture) {
	b.dev.Enable(GLTexture2D)
	b.dev.BindTexture(tex)
}

func (b *GLBackend) unapplyTextureImpl() {
	b.dev.BindTexture(nil)
	b.dev.Disable(GLTexture2D)
}

func (b *GLBackend) setRenderTargetImpl(tex *Texture) error {
	if err := b.dev.BindFramebuffer(tex); err != nil {
		return &VideoError{Operation: "set render target", Details: tex.Name(), Err: err}
	}
	size := tex.Size()
	b.dev.Viewport(0, 0, size.X, size.Y)
	return nil
}

func (b *GLBackend) unsetRenderTargetImpl() error {
	if err := b.dev.BindFramebuffer(nil); err != nil {
		return &VideoError{Operation: "unset render target", Details: "default framebuffer", Err: err}
	}
	b.setViewportImpl(b.v.Viewport())
	return nil
}

func (b *GLBackend) clearRenderTargetImpl(c Color) error {
	b.dev.ClearColor(c)
	err := b.dev.Clear()
	b.dev.ClearColor(b.v.ClearColor())
	return err
}

func (b *GLBackend) renderTargetSizeImpl() Point2i { return b.dev.FramebufferSize() }

func (b *GLBackend) selectWorldMatrixImpl() { b.dev.MatrixMode(GLModelView) }
func (b *GLBackend) pushWorldStackImpl()    { b.dev.PushMatrix() }

func (b *GLBackend) popWorldStackImpl() error {
	return b.dev.PopMatrix()
}

func (b *GLBackend) translateSceneImpl(by Vector3f) {
	b.dev.MultMatrixf(Translate(by).ColumnMajor())
}

func (b *GLBackend) rotateSceneImpl(axis Vector3f, radians float32) {
	b.dev.MultMatrixf(Rotate(axis, radians).ColumnMajor())
}

func (b *GLBackend) scaleSceneImpl(by Vector3f) {
	b.dev.MultMatrixf(Scale(by).ColumnMajor())
}

func (b *GLBackend) transformSceneImpl(m Matrix4f) {
	b.dev.MultMatrixf(m.ColumnMajor())
}

// GL samples texel centres at pixel centres already.
func (b *GLBackend) pixelOffsetImpl() Point2f { return Point2f{} }

func (b *GLBackend) setViewMatrixImpl(m Matrix4f) {
	b.dev.MatrixMode(GLModelView)
	b.dev.LoadMatrixf(m.ColumnMajor())
}

func (b *GLBackend) setProjectionMatrixImpl(m Matrix4f) {
	b.dev.MatrixMode(GLProjection)
	b.dev.LoadMatrixf(m.ColumnMajor())
	b.dev.MatrixMode(GLModelView)
}

func (b *GLBackend) setViewportImpl(vp Viewport) {
	h := b.dev.FramebufferSize().Y
	b.dev.Viewport(vp.Min.X, h-vp.Max.Y, vp.Width(), vp.Height())
}

func (b *GLBackend) beginRenderImpl() error {
	b.dev.ClearColor(b.v.ClearColor())
	return b.dev.Clear()
}

func (b *GLBackend) endRenderImpl() error {
	return b.dev.SwapBuffers()
}
