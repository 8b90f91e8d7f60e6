//go:build !zeni_nodx9

// video_dx9.go - D3D9-class rendering backend

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

// dx9DepthRemap takes GL clip depth [-1,1] to the D3D range [0,1].
var dx9DepthRemap = Matrix4f{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0.5,
	0, 0, 0, 1,
}

// DX9Backend translates Video operations into D3D9 device calls. D3D keeps
// the world transform apart from the view, so the backend owns the world
// matrix stack.
type DX9Backend struct {
	v     *Video
	dev   D3DDevice
	world []Matrix4f
	tint  Color
}

func newDX9Backend(v *Video, dev D3DDevice) *DX9Backend {
	b := &DX9Backend{
		v:     v,
		dev:   dev,
		world: []Matrix4f{Identity()},
		tint:  v.Color(),
	}
	b.setState("init", D3DRSCullMode, D3DCullNone)
	b.setState("init", D3DRSLighting, 0)
	b.setState("init", D3DRSZWriteEnable, boolState(v.ZWrite()))
	b.setNormalInterpolationImpl(v.NormalInterpolation())
	b.setVerticalSyncImpl(v.VerticalSync())
	b.setState("init", D3DRSMultisampleAntialias, boolState(v.Multisampling() > 1))
	b.uploadWorld()
	return b
}

func (b *DX9Backend) vtype() VideoMode { return VideoDX9 }

func boolState(on bool) uint32 {
	if on {
		return 1
	}
	return 0
}

func d3dMatrix(m Matrix4f) [16]float32 {
	return [16]float32(m.Transposed())
}

// setState reports device failures through the logger; the facade setters
// have no error result.
func (b *DX9Backend) setState(op string, s D3DRenderState, value uint32) {
	if err := b.dev.SetRenderState(s, value); err != nil {
		Logger().Warn("d3d9 render state rejected", "op", op, "state", int(s), "err", err)
	}
}

func (b *DX9Backend) warn(op string, err error) {
	if err != nil {
		Logger().Warn("d3d9 call failed", "op", op, "err", err)
	}
}

func (b *DX9Backend) uninitImpl() error {
	return b.dev.Release()
}

func (b *DX9Backend) renderImpl(r Renderable) error {
	return r.RenderTo(b)
}

// DrawVertices implements DrawTarget. D3D has no current colour, so the
// facade colour is folded into the vertices.
func (b *DX9Backend) DrawVertices(p Primitive, vs []Vertex) error {
	if b.tint != ColorWhite {
		tinted := make([]Vertex, len(vs))
		for i, v := range vs {
			v.Color = v.Color.Mul(b.tint)
			tinted[i] = v
		}
		vs = tinted
	}
	if err := b.dev.DrawPrimitiveUP(p, vs); err != nil {
		return &VideoError{Operation: "render", Details: "DrawPrimitiveUP", Err: err}
	}
	return nil
}

func (b *DX9Backend) maximumAnisotropyImpl() int { return b.dev.MaxAnisotropy() }

// Vertex data is always submitted from user memory.
func (b *DX9Backend) hasVertexBuffersImpl() bool { return false }

func (b *DX9Backend) set2DViewImpl(_ Camera2D, vp Viewport) {
	b.applyView(vp)
}

func (b *DX9Backend) set3DViewImpl(_ Camera, vp Viewport) {
	b.applyView(vp)
}

// applyView uploads the matrices the facade has just cached and resets the
// world stack.
func (b *DX9Backend) applyView(vp Viewport) {
	b.setViewportImpl(vp)
	b.setViewMatrixImpl(b.v.ViewMatrix())
	b.setProjectionMatrixImpl(b.v.ProjectionMatrix())
	b.world = b.world[:1]
	b.world[0] = Identity()
	b.uploadWorld()
}

func (b *DX9Backend) setBackfaceCullingImpl(on bool) {
	if on {
		b.setState("SetBackfaceCulling", D3DRSCullMode, D3DCullCCW)
	} else {
		b.setState("SetBackfaceCulling", D3DRSCullMode, D3DCullNone)
	}
}

// setVerticalSyncImpl resets the device with the matching present interval.
func (b *DX9Backend) setVerticalSyncImpl(on bool) {
	interval := D3DPresentIntervalImmediate
	if on {
		interval = D3DPresentIntervalOne
	}
	b.warn("SetVerticalSync", b.dev.Reset(interval))
}

func (b *DX9Backend) setZWriteImpl(on bool) {
	b.setState("SetZWrite", D3DRSZWriteEnable, boolState(on))
}

func (b *DX9Backend) setZTestImpl(on bool) {
	b.setState("SetZTest", D3DRSZEnable, boolState(on))
	if on {
		b.setState("SetZTest", D3DRSZFunc, uint32(TestLessOrEqual))
	}
}

func (b *DX9Backend) setAlphaTestImpl(enabled bool, fn TestFunc, value float32) {
	b.setState("SetAlphaTest", D3DRSAlphaTestEnable, boolState(enabled))
	b.setState("SetAlphaTest", D3DRSAlphaFunc, uint32(fn))
	b.setState("SetAlphaTest", D3DRSAlphaRef, uint32(channel8(value)))
}

func (b *DX9Backend) setColorImpl(c Color) { b.tint = c }

// The clear colour is read back from the facade at BeginRender.
func (b *DX9Backend) setClearColorImpl(Color) {}

func (b *DX9Backend) setLightingImpl(on bool) {
	b.setState("SetLighting", D3DRSLighting, boolState(on))
}

func (b *DX9Backend) setNormalInterpolationImpl(on bool) {
	if on {
		b.setState("SetNormalInterpolation", D3DRSShadeMode, D3DShadeGouraud)
	} else {
		b.setState("SetNormalInterpolation", D3DRSShadeMode, D3DShadeFlat)
	}
}

func (b *DX9Backend) setAmbientLightingImpl(c Color) {
	b.setState("SetAmbientLighting", D3DRSAmbient, c.ARGB())
}

func (b *DX9Backend) setLightImpl(n int, l Light) {
	b.warn("SetLight", b.dev.SetLight(n, l))
	b.warn("SetLight", b.dev.LightEnable(n, true))
}

func (b *DX9Backend) unsetLightImpl(n int) {
	b.warn("UnsetLight", b.dev.LightEnable(n, false))
}

func (b *DX9Backend) setMaterialImpl(m Material) {
	b.warn("SetMaterial", b.dev.SetMaterial(m))
}

func (b *DX9Backend) unsetMaterialImpl() {
	b.warn("UnsetMaterial", b.dev.SetMaterial(NewMaterial(ColorWhite)))
}

func (b *DX9Backend) setFogImpl(f Fog) {
	b.warn("SetFog", b.dev.SetFog(f))
	b.setState("SetFog", D3DRSFogColor, f.Color.ARGB())
	b.setState("SetFog", D3DRSFogEnable, 1)
}

func (b *DX9Backend) unsetFogImpl() {
	b.setState("UnsetFog", D3DRSFogEnable, 0)
}

func (b *DX9Backend) applyTextureImpl(tex *Texture) {
	b.warn("ApplyTexture", b.dev.SetTexture(0, tex))
}

func (b *DX9Backend) unapplyTextureImpl() {
	b.warn("UnapplyTexture", b.dev.SetTexture(0, nil))
}

func (b *DX9Backend) setRenderTargetImpl(tex *Texture) error {
	if err := b.dev.SetRenderTarget(tex); err != nil {
		return &VideoError{Operation: "set render target", Details: tex.Name(), Err: err}
	}
	if err := b.dev.SetViewport(FullViewport(tex.Size()), 0, 1); err != nil {
		return &VideoError{Operation: "set render target", Details: "viewport", Err: err}
	}
	return nil
}

func (b *DX9Backend) unsetRenderTargetImpl() error {
	if err := b.dev.SetRenderTarget(nil); err != nil {
		return &VideoError{Operation: "unset render target", Details: "back buffer", Err: err}
	}
	b.setViewportImpl(b.v.Viewport())
	return nil
}

func (b *DX9Backend) clearRenderTargetImpl(c Color) error {
	return b.dev.Clear(c.ARGB())
}

func (b *DX9Backend) renderTargetSizeImpl() Point2i { return b.dev.RenderTargetSize() }

// The world matrix is always the one addressed by scene transforms.
func (b *DX9Backend) selectWorldMatrixImpl() {}

func (b *DX9Backend) pushWorldStackImpl() {
	b.world = append(b.world, b.world[len(b.world)-1])
}

func (b *DX9Backend) popWorldStackImpl() error {
	if len(b.world) < 2 {
		return ErrWorldStackUnderflow
	}
	b.world = b.world[:len(b.world)-1]
	b.uploadWorld()
	return nil
}

func (b *DX9Backend) multWorld(m Matrix4f) {
	top := len(b.world) - 1
	b.world[top] = b.world[top].Mul(m)
	b.uploadWorld()
}

func (b *DX9Backend) uploadWorld() {
	b.warn("SetTransform", b.dev.SetTransform(D3DTSWorld, d3dMatrix(b.world[len(b.world)-1])))
}

func (b *DX9Backend) translateSceneImpl(by Vector3f) { b.multWorld(Translate(by)) }

func (b *DX9Backend) rotateSceneImpl(axis Vector3f, radians float32) {
	b.multWorld(Rotate(axis, radians))
}

func (b *DX9Backend) scaleSceneImpl(by Vector3f)    { b.multWorld(Scale(by)) }
func (b *DX9Backend) transformSceneImpl(m Matrix4f) { b.multWorld(m) }

// D3D9 maps texel centres to pixel corners; shift by half a pixel.
func (b *DX9Backend) pixelOffsetImpl() Point2f { return Point2f{0.5, 0.5} }

func (b *DX9Backend) setViewMatrixImpl(m Matrix4f) {
	b.warn("SetViewMatrix", b.dev.SetTransform(D3DTSView, d3dMatrix(m)))
}

func (b *DX9Backend) setProjectionMatrixImpl(m Matrix4f) {
	b.warn("SetProjectionMatrix", b.dev.SetTransform(D3DTSProjection, d3dMatrix(dx9DepthRemap.Mul(m))))
}

func (b *DX9Backend) setViewportImpl(vp Viewport) {
	b.warn("SetViewport", b.dev.SetViewport(vp, 0, 1))
}

func (b *DX9Backend) beginRenderImpl() error {
	if err := b.dev.Clear(b.v.ClearColor().ARGB()); err != nil {
		return &VideoError{Operation: "begin render", Details: "Clear", Err: err}
	}
	if err := b.dev.BeginScene(); err != nil {
		return &VideoError{Operation: "begin render", Details: "BeginScene", Err: err}
	}
	return nil
}

func (b *DX9Backend) endRenderImpl() error {
	if err := b.dev.EndScene(); err != nil {
		return &VideoError{Operation: "end render", Details: "EndScene", Err: err}
	}
	if err := b.dev.Present(); err != nil {
		return &VideoError{Operation: "end render", Details: "Present", Err: err}
	}
	return nil
}
