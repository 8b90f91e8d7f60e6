//go:build !zeni_nogl && !zeni_nodx9

package zeni

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVideo(t *testing.T, api string) (*Video, *fakeGL, *fakeD3D, *fakeSurface) {
	t.Helper()
	size := Point2i{320, 240}
	gl, dx := newFakeGL(size), newFakeD3D(size)
	surface := &fakeSurface{size: size}
	v := NewVideo(NewTextures())
	require.NoError(t, v.Init(testVideoConfig(api), surface, gl, dx))
	return v, gl, dx, surface
}

func exerciseVideo(t *testing.T, v *Video) {
	t.Helper()
	v.Set2D()
	v.SetBackfaceCulling(true)
	v.SetVerticalSync(false)
	v.SetZWrite(false)
	v.SetZTest(true)
	v.SetAlphaTest(true, TestGreater, 0.5)
	v.SetColor(ColorARGB(1, 1, 0, 0))
	v.SetClearColor(ColorBlack)
	v.SetLighting(true)
	v.SetNormalInterpolation(false)
	v.SetAmbientLighting(ColorWhite)
	v.SetLight(0, NewLight())
	v.UnsetLight(0)
	require.NoError(t, v.SetMaterial(NewMaterial(ColorWhite)))
	v.UnsetMaterial(NewMaterial(ColorWhite))
	v.SetFog(Fog{Color: ColorWhite, Density: 0.1})
	v.UnsetFog()
	v.SelectWorldMatrix()
	v.PushWorldStack()
	v.TranslateScene(Vector3f{1, 2, 3})
	v.RotateScene(Vector3f{0, 0, 1}, 1)
	v.ScaleScene(Vector3f{2, 2, 2})
	v.TransformScene(Identity())
	require.NoError(t, v.PopWorldStack())
	require.NoError(t, v.BeginRender())
	require.NoError(t, v.Render(&hookRecorder{}))
	require.NoError(t, v.EndRender())
}

func TestVideo_DispatchRoutesOnlyToSelectedBackend(t *testing.T) {
	t.Run("gl", func(t *testing.T) {
		v, gl, dx, _ := newTestVideo(t, "gl")
		assert.Equal(t, VideoGL, v.Mode())
		exerciseVideo(t, v)
		assert.NotEmpty(t, gl.calls)
		assert.Empty(t, dx.calls, "DX9 device must not see GL-mode traffic")
		assert.Equal(t, 1, gl.count("DrawArrays"))
	})
	t.Run("dx9", func(t *testing.T) {
		v, gl, dx, _ := newTestVideo(t, "dx9")
		assert.Equal(t, VideoDX9, v.Mode())
		exerciseVideo(t, v)
		assert.NotEmpty(t, dx.calls)
		assert.Empty(t, gl.calls, "GL device must not see DX9-mode traffic")
		assert.Equal(t, 1, dx.count("DrawPrimitiveUP"))
	})
}

func TestVideo_BackendsReportTheirType(t *testing.T) {
	v, _, _, _ := newTestVideo(t, "gl")
	assert.Equal(t, VideoGL, v.backends.gl.vtype())
	assert.Nil(t, v.backends.dx9)

	v, _, _, _ = newTestVideo(t, "dx9")
	assert.Equal(t, VideoDX9, v.backends.dx9.vtype())
	assert.Nil(t, v.backends.gl)
}

func TestVideo_DispatchWithoutBackendAborts(t *testing.T) {
	v := NewVideo(nil)

	defer func() {
		r := recover()
		abort, ok := r.(*DispatchAbort)
		require.True(t, ok, "expected *DispatchAbort, got %#v", r)
		assert.Equal(t, "SetColor", abort.Operation)
		assert.Equal(t, VideoAny, abort.Mode)
	}()
	v.SetColor(ColorWhite)
	t.Fatal("dispatch on an uninitialized facade returned")
}

func TestVideo_RenderHooksPairOnBackendFailure(t *testing.T) {
	for _, api := range []string{"gl", "dx9"} {
		t.Run(api, func(t *testing.T) {
			v, gl, dx, _ := newTestVideo(t, api)
			gl.drawErr = errFakeDraw
			dx.drawErr = errFakeDraw
			require.NoError(t, v.BeginRender())

			r := &hookRecorder{}
			err := v.Render(r)
			assert.ErrorIs(t, err, errFakeDraw)
			assert.Equal(t, []string{"pre", "draw", "post"}, r.events)
		})
	}
}

func TestVideo_RenderHooksPairOnBackendPanic(t *testing.T) {
	v, gl, _, _ := newTestVideo(t, "gl")
	gl.drawPanic = true

	r := &hookRecorder{}
	assert.Panics(t, func() { _ = v.Render(r) })
	assert.Equal(t, []string{"pre", "draw", "post"}, r.events)
}

func TestVideo_CacheUpdatedBeforeForwarding(t *testing.T) {
	v, gl, _, _ := newTestVideo(t, "gl")
	want := ColorARGB(0.5, 0.25, 0.5, 0.75)

	var seen Color
	gl.hook = func(name string) {
		if name == "Color4f" {
			seen = v.Color()
		}
	}
	v.SetColor(want)
	assert.Equal(t, want, seen)
	assert.Equal(t, want, v.Color())
}

func TestVideo_SetterQueriesReflectState(t *testing.T) {
	v, _, _, _ := newTestVideo(t, "dx9")
	v.SetBackfaceCulling(true)
	v.SetZWrite(false)
	v.SetZTest(true)
	v.SetLighting(true)
	v.SetVerticalSync(false)
	v.SetAlphaTest(true, TestGreaterOrEqual, 0.25)
	v.SetClearColor(ColorARGB(1, 0, 0, 1))

	assert.True(t, v.BackfaceCulling())
	assert.False(t, v.ZWrite())
	assert.True(t, v.ZTest())
	assert.True(t, v.Lighting())
	assert.False(t, v.VerticalSync())
	enabled, fn, value := v.AlphaTest()
	assert.True(t, enabled)
	assert.Equal(t, TestGreaterOrEqual, fn)
	assert.Equal(t, float32(0.25), value)
	assert.Equal(t, ColorARGB(1, 0, 0, 1), v.ClearColor())
}

func TestVideo_Set2DAppliesPixelOffset(t *testing.T) {
	t.Run("gl", func(t *testing.T) {
		v, gl, _, _ := newTestVideo(t, "gl")
		v.Set2D()
		want := Orthographic(0, 320, 240, 0, Near2D, Far2D)
		assert.Equal(t, want, v.ProjectionMatrix())
		assert.Equal(t, Identity(), v.ViewMatrix())
		assert.Equal(t, want.ColumnMajor(), gl.loaded[GLProjection])
	})
	t.Run("dx9", func(t *testing.T) {
		v, _, dx, _ := newTestVideo(t, "dx9")
		v.Set2D()
		want := Orthographic(0.5, 320.5, 240.5, 0.5, Near2D, Far2D)
		assert.Equal(t, want, v.ProjectionMatrix())
		assert.Equal(t, d3dMatrix(dx9DepthRemap.Mul(want)), dx.transforms[D3DTSProjection])
	})
}

func TestVideo_Set3DUsesCamera(t *testing.T) {
	v, _, dx, _ := newTestVideo(t, "dx9")
	cam := NewPerspectiveCamera(Point3f{-50, 0, 0})
	v.Set3D(cam)

	assert.Equal(t, cam.ViewMatrix(), v.ViewMatrix())
	assert.Equal(t, cam.ProjectionMatrix(v.Viewport()), v.ProjectionMatrix())
	assert.Equal(t, d3dMatrix(cam.ViewMatrix()), dx.transforms[D3DTSView])
}

func TestVideo_DX9DepthRemap(t *testing.T) {
	p := Perspective(1, 1, 1, 100)
	remapped := dx9DepthRemap.Mul(p)
	near := remapped.TransformPoint(Point3f{0, 0, -1})
	far := remapped.TransformPoint(Point3f{0, 0, -100})
	assert.InDelta(t, 0, near.Z, 1e-5)
	assert.InDelta(t, 1, far.Z, 1e-4)
}

func TestVideo_DX9VerticalSyncResetsDevice(t *testing.T) {
	v, _, dx, _ := newTestVideo(t, "dx9")
	v.SetVerticalSync(false)
	v.SetVerticalSync(true)
	n := len(dx.intervals)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, D3DPresentIntervalImmediate, dx.intervals[n-2])
	assert.Equal(t, D3DPresentIntervalOne, dx.intervals[n-1])
}

func TestVideo_DX9CullingState(t *testing.T) {
	v, _, dx, _ := newTestVideo(t, "dx9")
	v.SetBackfaceCulling(true)
	assert.Equal(t, D3DCullCCW, dx.states[D3DRSCullMode])
	v.SetBackfaceCulling(false)
	assert.Equal(t, D3DCullNone, dx.states[D3DRSCullMode])
}

func TestVideo_UninitReleasesSurfaceOnce(t *testing.T) {
	v, gl, _, surface := newTestVideo(t, "gl")

	require.NoError(t, v.Uninit())
	require.NoError(t, v.Uninit())
	assert.Equal(t, 1, surface.closes)
	assert.Equal(t, 1, gl.count("Close"))
	assert.False(t, v.IsInitialized())
	assert.Equal(t, VideoAny, v.Mode())

	assert.Panics(t, func() { v.SetZWrite(true) })
}

func TestVideo_InitErrors(t *testing.T) {
	v, _, _, _ := newTestVideo(t, "gl")
	assert.ErrorIs(t, v.Init(testVideoConfig("gl"), nil, newFakeGL(Point2i{1, 1}), nil), ErrAlreadyInitialized)

	err := NewVideo(nil).Init(testVideoConfig("vulkan"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrVideoInit)
	var verr *VideoError
	assert.True(t, errors.As(err, &verr))

	err = NewVideo(nil).Init(testVideoConfig("dx9"), nil, newFakeGL(Point2i{1, 1}), nil)
	assert.ErrorIs(t, err, ErrVideoInit)
}

func TestVideo_AutoSelectsPlatformDefault(t *testing.T) {
	v, _, _, surface := newTestVideo(t, "auto")
	assert.Equal(t, defaultVideoMode(), v.Mode())
	assert.Equal(t, "Zenilib Application", surface.title)
}

func TestVideo_ApplyTextureByNameAndID(t *testing.T) {
	textures := NewTextures()
	tex, err := textures.Register("crate", solidImage(4, 4, color.White), false)
	require.NoError(t, err)

	gl := newFakeGL(Point2i{320, 240})
	v := NewVideo(textures)
	require.NoError(t, v.Init(testVideoConfig("gl"), nil, gl, nil))

	require.NoError(t, v.ApplyTextureName("crate"))
	assert.Same(t, tex, gl.bound)

	v.UnapplyTexture()
	assert.Nil(t, gl.bound)

	require.NoError(t, v.ApplyTextureID(tex.ID()))
	assert.Same(t, tex, gl.bound)

	assert.ErrorIs(t, v.ApplyTextureName("missing"), ErrTextureNotFound)
	assert.ErrorIs(t, v.ApplyTextureID(999), ErrTextureNotFound)
}

func TestVideo_MaterialAppliesItsTexture(t *testing.T) {
	textures := NewTextures()
	tex, err := textures.Register("skin", solidImage(2, 2, color.White), true)
	require.NoError(t, err)

	dx := newFakeD3D(Point2i{320, 240})
	v := NewVideo(textures)
	require.NoError(t, v.Init(testVideoConfig("dx9"), nil, nil, dx))

	m := NewMaterial(ColorWhite)
	m.Texture = "skin"
	require.NoError(t, v.SetMaterial(m))
	assert.Same(t, tex, dx.r.texture)

	v.UnsetMaterial(m)
	assert.Nil(t, dx.r.texture)
}

func TestVideo_WorldStackUnderflow(t *testing.T) {
	for _, api := range []string{"gl", "dx9"} {
		t.Run(api, func(t *testing.T) {
			v, _, _, _ := newTestVideo(t, api)
			v.SelectWorldMatrix()
			assert.ErrorIs(t, v.PopWorldStack(), ErrWorldStackUnderflow)
			v.PushWorldStack()
			assert.NoError(t, v.PopWorldStack())
		})
	}
}

func TestVideo_RenderTargetRoundTrip(t *testing.T) {
	textures := NewTextures()
	target, err := textures.Create("minimap", Point2i{64, 32}, false)
	require.NoError(t, err)

	for _, api := range []string{"gl", "dx9"} {
		t.Run(api, func(t *testing.T) {
			size := Point2i{320, 240}
			gl, dx := newFakeGL(size), newFakeD3D(size)
			v := NewVideo(textures)
			require.NoError(t, v.Init(testVideoConfig(api), nil, gl, dx))

			require.NoError(t, v.SetRenderTarget(target))
			assert.Equal(t, Point2i{64, 32}, v.RenderTargetSize())
			require.NoError(t, v.ClearRenderTarget(ColorWhite))
			require.NoError(t, v.UnsetRenderTarget())
			assert.Equal(t, size, v.RenderTargetSize())

			plain, err := textures.Register("plain", solidImage(1, 1, color.White), false)
			require.NoError(t, err)
			var verr *VideoError
			assert.True(t, errors.As(v.SetRenderTarget(plain), &verr))
		})
	}
}

func TestVideo_RotateSceneQuat(t *testing.T) {
	v, gl, _, _ := newTestVideo(t, "gl")
	before := gl.count("MultMatrixf")
	v.RotateSceneQuat(mgl32.QuatRotate(1, Vector3f{0, 0, 1}))
	assert.Equal(t, before+1, gl.count("MultMatrixf"))

	// The identity rotation forwards nothing.
	v.RotateSceneQuat(Quaternion{W: 1})
	assert.Equal(t, before+1, gl.count("MultMatrixf"))
}
