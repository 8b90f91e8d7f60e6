// video.go - Rendering facade forwarding to the GL or DX9 backend

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

	"github.com/chewxy/math32"
)

// Video caches shared render state and forwards every operation to the
// backend selected by Init. A setter always updates the cache before it
// forwards, so a backend that queries the facade sees the new value.
//
// Video is not safe for concurrent use; all calls belong on the render
// goroutine.
type Video struct {
	backends backendSet
	textures TextureRegistry
	surface  DisplaySurface

	initialized bool

	screenSize          Point2i
	fullscreen          bool
	frameVisible        bool
	backfaceCulling     bool
	lighting            bool
	normalInterpolation bool
	verticalSync        bool
	multisampling       int
	anisotropy          int
	zwrite              bool
	ztest               bool
	alphaTest           bool
	alphaFunc           TestFunc
	alphaValue          float32
	color               Color
	clearColor          Color
	viewMatrix          Matrix4f
	projectionMatrix    Matrix4f
	viewport            Viewport
	title               string
	taskMsg             string
}

func NewVideo(textures TextureRegistry) *Video {
	return &Video{
		textures:            textures,
		frameVisible:        true,
		normalInterpolation: true,
		zwrite:              true,
		alphaFunc:           TestAlways,
		color:               ColorWhite,
		clearColor:          ColorBlack,
		viewMatrix:          Identity(),
		projectionMatrix:    Identity(),
	}
}

// Init selects the backend named by cfg.API and opens it over the matching
// device. Only the device for the selected mode is used; the other may be
// nil. The surface becomes owned by v and is closed by Uninit.
func (v *Video) Init(cfg VideoConfig, surface DisplaySurface, gl GLDevice, dx9 D3DDevice) error {
	if v.initialized {
		return ErrAlreadyInitialized
	}
	mode, err := ParseVideoMode(cfg.API)
	if err != nil {
		return err
	}
	if mode == VideoAny {
		mode = defaultVideoMode()
	}

	v.screenSize = Point2i{cfg.Width, cfg.Height}
	if surface != nil {
		if s := surface.Size(); s.X > 0 && s.Y > 0 {
			v.screenSize = s
		}
	}
	v.fullscreen = cfg.Fullscreen
	v.frameVisible = cfg.FrameVisible
	v.verticalSync = cfg.VSync
	v.multisampling = cfg.Multisampling
	v.anisotropy = cfg.Anisotropy
	v.title = cfg.Title
	v.viewport = FullViewport(v.screenSize)

	if err := v.backends.open(mode, v, gl, dx9); err != nil {
		return err
	}
	v.surface = surface
	v.initialized = true

	if surface != nil {
		surface.SetTitle(v.title)
		surface.SetFullscreen(v.fullscreen)
		surface.SetFrameVisible(v.frameVisible)
	}
	Logger().Info("video initialized", "mode", mode, "size", fmt.Sprintf("%dx%d", v.screenSize.X, v.screenSize.Y))
	return nil
}

// Uninit closes the display surface, then tears the backend down and
// returns the facade to VideoAny. Teardown runs even when closing the
// surface fails; the first error is returned.
func (v *Video) Uninit() error {
	if !v.initialized {
		return nil
	}

	var surfaceErr error
	if v.surface != nil {
		surfaceErr = v.surface.Close()
		v.surface = nil
	}
	v.initialized = false

	err := v.impl("Uninit").uninitImpl()
	v.backends.close()
	Logger().Info("video uninitialized")

	if surfaceErr != nil {
		return &VideoError{Operation: "uninit", Details: "closing display surface", Err: surfaceErr}
	}
	return err
}

// impl is the single point where an unselected backend is detected.
func (v *Video) impl(op string) *backendSet {
	if v.backends.mode == VideoAny {
		panic(&DispatchAbort{Operation: op, Mode: v.backends.mode})
	}
	return &v.backends
}

func (v *Video) Mode() VideoMode     { return v.backends.mode }
func (v *Video) IsInitialized() bool { return v.initialized }

// Render draws r. PostRender runs after PreRender on every exit path,
// including a panicking backend.
func (v *Video) Render(r Renderable) error {
	be := v.impl("Render")
	r.PreRender()
	defer r.PostRender()
	return be.renderImpl(r)
}

func (v *Video) MaximumAnisotropy() int {
	return v.impl("MaximumAnisotropy").maximumAnisotropyImpl()
}

func (v *Video) HasVertexBuffers() bool {
	return v.impl("HasVertexBuffers").hasVertexBuffersImpl()
}

// Set2D shows the whole screen with one unit per pixel.
func (v *Video) Set2D() {
	v.Set2DCamera(Camera2D{{}, {float32(v.screenSize.X), float32(v.screenSize.Y)}})
}

func (v *Video) Set2DCamera(cam Camera2D) {
	v.Set2DView(cam, FullViewport(v.screenSize))
}

// Set2DView maps the rectangle cam onto vp with an identity view and an
// orthographic projection corrected by the backend's pixel offset.
func (v *Video) Set2DView(cam Camera2D, vp Viewport) {
	be := v.impl("Set2DView")
	off := v.PixelOffset()

	v.viewMatrix = Identity()
	v.projectionMatrix = Orthographic(
		cam[0].X+off.X, cam[1].X+off.X,
		cam[1].Y+off.Y, cam[0].Y+off.Y,
		Near2D, Far2D)
	v.viewport = vp
	be.set2DViewImpl(cam, vp)
}

func (v *Video) Set3D(cam Camera) {
	v.Set3DView(cam, FullViewport(v.screenSize))
}

func (v *Video) Set3DView(cam Camera, vp Viewport) {
	be := v.impl("Set3DView")
	v.viewMatrix = cam.ViewMatrix()
	v.projectionMatrix = cam.ProjectionMatrix(vp)
	v.viewport = vp
	be.set3DViewImpl(cam, vp)
}

func (v *Video) SetBackfaceCulling(on bool) {
	be := v.impl("SetBackfaceCulling")
	v.backfaceCulling = on
	be.setBackfaceCullingImpl(on)
}

func (v *Video) SetVerticalSync(on bool) {
	be := v.impl("SetVerticalSync")
	v.verticalSync = on
	be.setVerticalSyncImpl(on)
}

func (v *Video) SetZWrite(on bool) {
	be := v.impl("SetZWrite")
	v.zwrite = on
	be.setZWriteImpl(on)
}

func (v *Video) SetZTest(on bool) {
	be := v.impl("SetZTest")
	v.ztest = on
	be.setZTestImpl(on)
}

// SetAlphaTest discards fragments whose alpha fails fn against value.
func (v *Video) SetAlphaTest(enabled bool, fn TestFunc, value float32) {
	be := v.impl("SetAlphaTest")
	v.alphaTest = enabled
	v.alphaFunc = fn
	v.alphaValue = value
	be.setAlphaTestImpl(enabled, fn, value)
}

func (v *Video) SetColor(c Color) {
	be := v.impl("SetColor")
	v.color = c
	be.setColorImpl(c)
}

func (v *Video) SetClearColor(c Color) {
	be := v.impl("SetClearColor")
	v.clearColor = c
	be.setClearColorImpl(c)
}

func (v *Video) SetLighting(on bool) {
	be := v.impl("SetLighting")
	v.lighting = on
	be.setLightingImpl(on)
}

func (v *Video) SetNormalInterpolation(on bool) {
	be := v.impl("SetNormalInterpolation")
	v.normalInterpolation = on
	be.setNormalInterpolationImpl(on)
}

func (v *Video) SetAmbientLighting(c Color) {
	v.impl("SetAmbientLighting").setAmbientLightingImpl(c)
}

func (v *Video) SetLight(n int, l Light) {
	v.impl("SetLight").setLightImpl(n, l)
}

func (v *Video) UnsetLight(n int) {
	v.impl("UnsetLight").unsetLightImpl(n)
}

// SetMaterial also applies the material's texture when it names one.
func (v *Video) SetMaterial(m Material) error {
	be := v.impl("SetMaterial")
	be.setMaterialImpl(m)
	if m.Texture != "" {
		return v.ApplyTextureName(m.Texture)
	}
	return nil
}

func (v *Video) UnsetMaterial(m Material) {
	be := v.impl("UnsetMaterial")
	be.unsetMaterialImpl()
	if m.Texture != "" {
		be.unapplyTextureImpl()
	}
}

func (v *Video) SetFog(f Fog) {
	v.impl("SetFog").setFogImpl(f)
}

func (v *Video) UnsetFog() {
	v.impl("UnsetFog").unsetFogImpl()
}

// ApplyTextureName resolves name through the texture registry.
func (v *Video) ApplyTextureName(name string) error {
	be := v.impl("ApplyTextureName")
	if v.textures == nil {
		return &VideoError{Operation: "apply texture", Details: name, Err: ErrTextureNotFound}
	}
	id, err := v.textures.ID(name)
	if err != nil {
		return err
	}
	tex, err := v.textures.Lookup(id)
	if err != nil {
		return err
	}
	be.applyTextureImpl(tex)
	return nil
}

func (v *Video) ApplyTextureID(id uint32) error {
	be := v.impl("ApplyTextureID")
	if v.textures == nil {
		return &VideoError{Operation: "apply texture", Details: fmt.Sprintf("id %d", id), Err: ErrTextureNotFound}
	}
	tex, err := v.textures.Lookup(id)
	if err != nil {
		return err
	}
	be.applyTextureImpl(tex)
	return nil
}

func (v *Video) ApplyTexture(tex *Texture) {
	v.impl("ApplyTexture").applyTextureImpl(tex)
}

func (v *Video) UnapplyTexture() {
	v.impl("UnapplyTexture").unapplyTextureImpl()
}

// SetRenderTarget redirects drawing into tex, which must have been made
// with Textures.Create.
func (v *Video) SetRenderTarget(tex *Texture) error {
	be := v.impl("SetRenderTarget")
	if tex == nil || !tex.IsRenderTarget() {
		return &VideoError{Operation: "set render target", Details: "texture is not a render target"}
	}
	return be.setRenderTargetImpl(tex)
}

func (v *Video) UnsetRenderTarget() error {
	return v.impl("UnsetRenderTarget").unsetRenderTargetImpl()
}

func (v *Video) ClearRenderTarget(c Color) error {
	return v.impl("ClearRenderTarget").clearRenderTargetImpl(c)
}

func (v *Video) RenderTargetSize() Point2i {
	return v.impl("RenderTargetSize").renderTargetSizeImpl()
}

func (v *Video) SelectWorldMatrix() {
	v.impl("SelectWorldMatrix").selectWorldMatrixImpl()
}

func (v *Video) PushWorldStack() {
	v.impl("PushWorldStack").pushWorldStackImpl()
}

func (v *Video) PopWorldStack() error {
	return v.impl("PopWorldStack").popWorldStackImpl()
}

func (v *Video) TranslateScene(by Vector3f) {
	v.impl("TranslateScene").translateSceneImpl(by)
}

func (v *Video) RotateScene(axis Vector3f, radians float32) {
	v.impl("RotateScene").rotateSceneImpl(axis, radians)
}

// RotateSceneQuat rotates by q expressed as an axis and angle.
func (v *Video) RotateSceneQuat(q Quaternion) {
	q = q.Normalize()
	angle := 2 * math32.Acos(clampf(q.W, -1, 1))
	s := math32.Sqrt(1 - q.W*q.W)
	if s < 1e-6 {
		v.impl("RotateSceneQuat")
		return
	}
	v.RotateScene(q.V.Mul(1/s), angle)
}

func (v *Video) ScaleScene(by Vector3f) {
	v.impl("ScaleScene").scaleSceneImpl(by)
}

func (v *Video) TransformScene(m Matrix4f) {
	v.impl("TransformScene").transformSceneImpl(m)
}

// PixelOffset is the backend's texel-to-pixel alignment correction.
func (v *Video) PixelOffset() Point2f {
	return v.impl("PixelOffset").pixelOffsetImpl()
}

func (v *Video) SetViewMatrix(m Matrix4f) {
	be := v.impl("SetViewMatrix")
	v.viewMatrix = m
	be.setViewMatrixImpl(m)
}

func (v *Video) SetProjectionMatrix(m Matrix4f) {
	be := v.impl("SetProjectionMatrix")
	v.projectionMatrix = m
	be.setProjectionMatrixImpl(m)
}

func (v *Video) SetViewport(vp Viewport) {
	be := v.impl("SetViewport")
	v.viewport = vp
	be.setViewportImpl(vp)
}

func (v *Video) BeginRender() error {
	return v.impl("BeginRender").beginRenderImpl()
}

func (v *Video) EndRender() error {
	return v.impl("EndRender").endRenderImpl()
}

func (v *Video) SetTitle(title string) {
	v.title = title
	if v.surface != nil {
		v.surface.SetTitle(title)
	}
}

// SetTaskMsg sets the status text shown by the overlay.
func (v *Video) SetTaskMsg(msg string) {
	v.taskMsg = msg
}

func (v *Video) SetFullscreen(on bool) {
	v.fullscreen = on
	if v.surface != nil {
		v.surface.SetFullscreen(on)
	}
}

func (v *Video) SetFrameVisible(on bool) {
	v.frameVisible = on
	if v.surface != nil {
		v.surface.SetFrameVisible(on)
	}
}

// Resize records a new screen size reported by the display surface.
func (v *Video) Resize(size Point2i) {
	v.screenSize = size
}

func (v *Video) ScreenSize() Point2i        { return v.screenSize }
func (v *Video) IsFullscreen() bool         { return v.fullscreen }
func (v *Video) IsFrameVisible() bool       { return v.frameVisible }
func (v *Video) BackfaceCulling() bool      { return v.backfaceCulling }
func (v *Video) Lighting() bool             { return v.lighting }
func (v *Video) NormalInterpolation() bool  { return v.normalInterpolation }
func (v *Video) VerticalSync() bool         { return v.verticalSync }
func (v *Video) Multisampling() int         { return v.multisampling }
func (v *Video) Anisotropy() int            { return v.anisotropy }
func (v *Video) ZWrite() bool               { return v.zwrite }
func (v *Video) ZTest() bool                { return v.ztest }
func (v *Video) Color() Color               { return v.color }
func (v *Video) ClearColor() Color          { return v.clearColor }
func (v *Video) ViewMatrix() Matrix4f       { return v.viewMatrix }
func (v *Video) ProjectionMatrix() Matrix4f { return v.projectionMatrix }
func (v *Video) Viewport() Viewport         { return v.viewport }
func (v *Video) Title() string              { return v.title }
func (v *Video) TaskMsg() string            { return v.taskMsg }

func (v *Video) AlphaTest() (enabled bool, fn TestFunc, value float32) {
	return v.alphaTest, v.alphaFunc, v.alphaValue
}

func clampf(x, lo, hi float32) float32 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
