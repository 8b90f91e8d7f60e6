//go:build !zeni_nogl && !zeni_nodx9

// video_dispatch_dual.go - Tag-switched dispatch when both backends are compiled

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
	"runtime"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:gl", "video:dx9")
}

// backendSet holds whichever backend Init opened. Each forwarded call
// switches on the mode cached at Init; the mode is never recomputed.
type backendSet struct {
	mode VideoMode
	gl   *GLBackend
	dx9  *DX9Backend
}

// defaultVideoMode resolves video.api "auto".
func defaultVideoMode() VideoMode {
	if runtime.GOOS == "windows" {
		return VideoDX9
	}
	return VideoGL
}

func (s *backendSet) open(mode VideoMode, v *Video, gl GLDevice, dx9 D3DDevice) error {
	switch mode {
	case VideoGL:
		if gl == nil {
			return &VideoError{Operation: "init", Details: "no GL device", Err: ErrVideoInit}
		}
		s.gl = newGLBackend(v, gl)
	case VideoDX9:
		if dx9 == nil {
			return &VideoError{Operation: "init", Details: "no D3D9 device", Err: ErrVideoInit}
		}
		s.dx9 = newDX9Backend(v, dx9)
	default:
		return &VideoError{Operation: "init", Details: "mode " + mode.String() + " has no backend", Err: ErrVideoInit}
	}
	s.mode = mode
	return nil
}

func (s *backendSet) close() {
	*s = backendSet{}
}

func (s *backendSet) abort(op string) *DispatchAbort {
	return &DispatchAbort{Operation: op, Mode: s.mode}
}

func (s *backendSet) uninitImpl() error {
	switch s.mode {
	case VideoGL:
		return s.gl.uninitImpl()
	case VideoDX9:
		return s.dx9.uninitImpl()
	}
	panic(s.abort("uninitImpl"))
}

func (s *backendSet) renderImpl(r Renderable) error {
	switch s.mode {
	case VideoGL:
		return s.gl.renderImpl(r)
	case VideoDX9:
		return s.dx9.renderImpl(r)
	}
	panic(s.abort("renderImpl"))
}

func (s *backendSet) maximumAnisotropyImpl() int {
	switch s.mode {
	case VideoGL:
		return s.gl.maximumAnisotropyImpl()
	case VideoDX9:
		return s.dx9.maximumAnisotropyImpl()
	}
	panic(s.abort("maximumAnisotropyImpl"))
}

func (s *backendSet) hasVertexBuffersImpl() bool {
	switch s.mode {
	case VideoGL:
		return s.gl.hasVertexBuffersImpl()
	case VideoDX9:
		return s.dx9.hasVertexBuffersImpl()
	}
	panic(s.abort("hasVertexBuffersImpl"))
}

func (s *backendSet) set2DViewImpl(cam Camera2D, vp Viewport) {
	switch s.mode {
	case VideoGL:
		s.gl.set2DViewImpl(cam, vp)
		return
	case VideoDX9:
		s.dx9.set2DViewImpl(cam, vp)
		return
	}
	panic(s.abort("set2DViewImpl"))
}

func (s *backendSet) set3DViewImpl(cam Camera, vp Viewport) {
	switch s.mode {
	case VideoGL:
		s.gl.set3DViewImpl(cam, vp)
		return
	case VideoDX9:
		s.dx9.set3DViewImpl(cam, vp)
		return
	}
	panic(s.abort("set3DViewImpl"))
}

func (s *backendSet) setBackfaceCullingImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setBackfaceCullingImpl(on)
		return
	case VideoDX9:
		s.dx9.setBackfaceCullingImpl(on)
		return
	}
	panic(s.abort("setBackfaceCullingImpl"))
}

func (s *backendSet) setVerticalSyncImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setVerticalSyncImpl(on)
		return
	case VideoDX9:
		s.dx9.setVerticalSyncImpl(on)
		return
	}
	panic(s.abort("setVerticalSyncImpl"))
}

func (s *backendSet) setZWriteImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setZWriteImpl(on)
		return
	case VideoDX9:
		s.dx9.setZWriteImpl(on)
		return
	}
	panic(s.abort("setZWriteImpl"))
}

func (s *backendSet) setZTestImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setZTestImpl(on)
		return
	case VideoDX9:
		s.dx9.setZTestImpl(on)
		return
	}
	panic(s.abort("setZTestImpl"))
}

func (s *backendSet) setAlphaTestImpl(enabled bool, fn TestFunc, value float32) {
	switch s.mode {
	case VideoGL:
		s.gl.setAlphaTestImpl(enabled, fn, value)
		return
	case VideoDX9:
		s.dx9.setAlphaTestImpl(enabled, fn, value)
		return
	}
	panic(s.abort("setAlphaTestImpl"))
}

func (s *backendSet) setColorImpl(c Color) {
	switch s.mode {
	case VideoGL:
		s.gl.setColorImpl(c)
		return
	case VideoDX9:
		s.dx9.setColorImpl(c)
		return
	}
	panic(s.abort("setColorImpl"))
}

func (s *backendSet) setClearColorImpl(c Color) {
	switch s.mode {
	case VideoGL:
		s.gl.setClearColorImpl(c)
		return
	case VideoDX9:
		s.dx9.setClearColorImpl(c)
		return
	}
	panic(s.abort("setClearColorImpl"))
}

func (s *backendSet) setLightingImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setLightingImpl(on)
		return
	case VideoDX9:
		s.dx9.setLightingImpl(on)
		return
	}
	panic(s.abort("setLightingImpl"))
}

func (s *backendSet) setNormalInterpolationImpl(on bool) {
	switch s.mode {
	case VideoGL:
		s.gl.setNormalInterpolationImpl(on)
		return
	case VideoDX9:
		s.dx9.setNormalInterpolationImpl(on)
		return
	}
	panic(s.abort("setNormalInterpolationImpl"))
}

func (s *backendSet) setAmbientLightingImpl(c Color) {
	switch s.mode {
	case VideoGL:
		s.gl.setAmbientLightingImpl(c)
		return
	case VideoDX9:
		s.dx9.setAmbientLightingImpl(c)
		return
	}
	panic(s.abort("setAmbientLightingImpl"))
}

func (s *backendSet) setLightImpl(n int, l Light) {
	switch s.mode {
	case VideoGL:
		s.gl.setLightImpl(n, l)
		return
	case VideoDX9:
		s.dx9.setLightImpl(n, l)
		return
	}
	panic(s.abort("setLightImpl"))
}

func (s *backendSet) unsetLightImpl(n int) {
	switch s.mode {
	case VideoGL:
		s.gl.unsetLightImpl(n)
		return
	case VideoDX9:
		s.dx9.unsetLightImpl(n)
		return
	}
	panic(s.abort("unsetLightImpl"))
}

func (s *backendSet) setMaterialImpl(m Material) {
	switch s.mode {
	case VideoGL:
		s.gl.setMaterialImpl(m)
		return
	case VideoDX9:
		s.dx9.setMaterialImpl(m)
		return
	}
	panic(s.abort("setMaterialImpl"))
}

func (s *backendSet) unsetMaterialImpl() {
	switch s.mode {
	case VideoGL:
		s.gl.unsetMaterialImpl()
		return
	case VideoDX9:
		s.dx9.unsetMaterialImpl()
		return
	}
	panic(s.abort("unsetMaterialImpl"))
}

func (s *backendSet) setFogImpl(f Fog) {
	switch s.mode {
	case VideoGL:
		s.gl.setFogImpl(f)
		return
	case VideoDX9:
		s.dx9.setFogImpl(f)
		return
	}
	panic(s.abort("setFogImpl"))
}

func (s *backendSet) unsetFogImpl() {
	switch s.mode {
	case VideoGL:
		s.gl.unsetFogImpl()
		return
	case VideoDX9:
		s.dx9.unsetFogImpl()
		return
	}
	panic(s.abort("unsetFogImpl"))
}

func (s *backendSet) applyTextureImpl(tex *Texture) {
	switch s.mode {
	case VideoGL:
		s.gl.applyTextureImpl(tex)
		return
	case VideoDX9:
		s.dx9.applyTextureImpl(tex)
		return
	}
	panic(s.abort("applyTextureImpl"))
}

func (s *backendSet) unapplyTextureImpl() {
	switch s.mode {
	case VideoGL:
		s.gl.unapplyTextureImpl()
		return
	case VideoDX9:
		s.dx9.unapplyTextureImpl()
		return
	}
	panic(s.abort("unapplyTextureImpl"))
}

func (s *backendSet) setRenderTargetImpl(tex *Texture) error {
	switch s.mode {
	case VideoGL:
		return s.gl.setRenderTargetImpl(tex)
	case VideoDX9:
		return s.dx9.setRenderTargetImpl(tex)
	}
	panic(s.abort("setRenderTargetImpl"))
}

func (s *backendSet) unsetRenderTargetImpl() error {
	switch s.mode {
	case VideoGL:
		return s.gl.unsetRenderTargetImpl()
	case VideoDX9:
		return s.dx9.unsetRenderTargetImpl()
	}
	panic(s.abort("unsetRenderTargetImpl"))
}

func (s *backendSet) clearRenderTargetImpl(c Color) error {
	switch s.mode {
	case VideoGL:
		return s.gl.clearRenderTargetImpl(c)
	case VideoDX9:
		return s.dx9.clearRenderTargetImpl(c)
	}
	panic(s.abort("clearRenderTargetImpl"))
}

func (s *backendSet) renderTargetSizeImpl() Point2i {
	switch s.mode {
	case VideoGL:
		return s.gl.renderTargetSizeImpl()
	case VideoDX9:
		return s.dx9.renderTargetSizeImpl()
	}
	panic(s.abort("renderTargetSizeImpl"))
}

func (s *backendSet) selectWorldMatrixImpl() {
	switch s.mode {
	case VideoGL:
		s.gl.selectWorldMatrixImpl()
		return
	case VideoDX9:
		s.dx9.selectWorldMatrixImpl()
		return
	}
	panic(s.abort("selectWorldMatrixImpl"))
}

func (s *backendSet) pushWorldStackImpl() {
	switch s.mode {
	case VideoGL:
		s.gl.pushWorldStackImpl()
		return
	case VideoDX9:
		s.dx9.pushWorldStackImpl()
		return
	}
	panic(s.abort("pushWorldStackImpl"))
}

func (s *backendSet) popWorldStackImpl() error {
	switch s.mode {
	case VideoGL:
		return s.gl.popWorldStackImpl()
	case VideoDX9:
		return s.dx9.popWorldStackImpl()
	}
	panic(s.abort("popWorldStackImpl"))
}

func (s *backendSet) translateSceneImpl(by Vector3f) {
	switch s.mode {
	case VideoGL:
		s.gl.translateSceneImpl(by)
		return
	case VideoDX9:
		s.dx9.translateSceneImpl(by)
		return
	}
	panic(s.abort("translateSceneImpl"))
}

func (s *backendSet) rotateSceneImpl(axis Vector3f, radians float32) {
	switch s.mode {
	case VideoGL:
		s.gl.rotateSceneImpl(axis, radians)
		return
	case VideoDX9:
		s.dx9.rotateSceneImpl(axis, radians)
		return
	}
	panic(s.abort("rotateSceneImpl"))
}

func (s *backendSet) scaleSceneImpl(by Vector3f) {
	switch s.mode {
	case VideoGL:
		s.gl.scaleSceneImpl(by)
		return
	case VideoDX9:
		s.dx9.scaleSceneImpl(by)
		return
	}
	panic(s.abort("scaleSceneImpl"))
}

func (s *backendSet) transformSceneImpl(m Matrix4f) {
	switch s.mode {
	case VideoGL:
		s.gl.transformSceneImpl(m)
		return
	case VideoDX9:
		s.dx9.transformSceneImpl(m)
		return
	}
	panic(s.abort("transformSceneImpl"))
}

func (s *backendSet) pixelOffsetImpl() Point2f {
	switch s.mode {
	case VideoGL:
		return s.gl.pixelOffsetImpl()
	case VideoDX9:
		return s.dx9.pixelOffsetImpl()
	}
	panic(s.abort("pixelOffsetImpl"))
}

func (s *backendSet) setViewMatrixImpl(m Matrix4f) {
	switch s.mode {
	case VideoGL:
		s.gl.setViewMatrixImpl(m)
		return
	case VideoDX9:
		s.dx9.setViewMatrixImpl(m)
		return
	}
	panic(s.abort("setViewMatrixImpl"))
}

func (s *backendSet) setProjectionMatrixImpl(m Matrix4f) {
	switch s.mode {
	case VideoGL:
		s.gl.setProjectionMatrixImpl(m)
		return
	case VideoDX9:
		s.dx9.setProjectionMatrixImpl(m)
		return
	}
	panic(s.abort("setProjectionMatrixImpl"))
}

func (s *backendSet) setViewportImpl(vp Viewport) {
	switch s.mode {
	case VideoGL:
		s.gl.setViewportImpl(vp)
		return
	case VideoDX9:
		s.dx9.setViewportImpl(vp)
		return
	}
	panic(s.abort("setViewportImpl"))
}

func (s *backendSet) beginRenderImpl() error {
	switch s.mode {
	case VideoGL:
		return s.gl.beginRenderImpl()
	case VideoDX9:
		return s.dx9.beginRenderImpl()
	}
	panic(s.abort("beginRenderImpl"))
}

func (s *backendSet) endRenderImpl() error {
	switch s.mode {
	case VideoGL:
		return s.gl.endRenderImpl()
	case VideoDX9:
		return s.dx9.endRenderImpl()
	}
	panic(s.abort("endRenderImpl"))
}
