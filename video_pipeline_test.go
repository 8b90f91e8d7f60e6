package zeni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenState(w, h int) rasterState {
	return rasterState{
		mvp:      Orthographic(0, float32(w), float32(h), 0, Near2D, Far2D),
		viewport: FullViewport(Point2i{w, h}),
		color:    ColorWhite,
	}
}

func TestPipeline_ScreenRectMapsToPixels(t *testing.T) {
	rs := screenState(320, 240)
	q := NewRect2D(Point2f{10, 20}, Point2f{110, 70}, ColorWhite)

	out, idx, err := rs.project(PrimitiveQuads, q.Vertices[:])
	require.NoError(t, err)
	require.Len(t, out, 6)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5}, idx)

	assert.InDelta(t, 10, out[0].X, 1e-4)
	assert.InDelta(t, 20, out[0].Y, 1e-4)
	assert.InDelta(t, 110, out[2].X, 1e-4)
	assert.InDelta(t, 70, out[2].Y, 1e-4)
	assert.Equal(t, float32(1), out[2].U)
	assert.Equal(t, float32(1), out[2].V)
}

func TestPipeline_ViewportOffset(t *testing.T) {
	rs := screenState(100, 100)
	rs.viewport = Viewport{Min: Point2i{50, 10}, Max: Point2i{150, 110}}
	q := NewRect2D(Point2f{0, 0}, Point2f{100, 100}, ColorWhite)

	out, _, err := rs.project(PrimitiveQuads, q.Vertices[:])
	require.NoError(t, err)
	assert.InDelta(t, 50, out[0].X, 1e-4)
	assert.InDelta(t, 10, out[0].Y, 1e-4)
	assert.InDelta(t, 150, out[2].X, 1e-4)
	assert.InDelta(t, 110, out[2].Y, 1e-4)
}

func TestPipeline_BackfaceCulling(t *testing.T) {
	front := NewRect2D(Point2f{0, 0}, Point2f{10, 10}, ColorWhite)
	back := *front
	back.Vertices[1], back.Vertices[3] = back.Vertices[3], back.Vertices[1]

	rs := screenState(100, 100)
	rs.cull = cullBack

	out, _, err := rs.project(PrimitiveQuads, front.Vertices[:])
	require.NoError(t, err)
	assert.Len(t, out, 6)

	out, _, err = rs.project(PrimitiveQuads, back.Vertices[:])
	require.NoError(t, err)
	assert.Empty(t, out)

	rs.cull = cullFront
	out, _, err = rs.project(PrimitiveQuads, back.Vertices[:])
	require.NoError(t, err)
	assert.Len(t, out, 6)

	rs.cull = cullNone
	out, _, err = rs.project(PrimitiveQuads, back.Vertices[:])
	require.NoError(t, err)
	assert.Len(t, out, 6)
}

func TestPipeline_DropsFacesBehindEye(t *testing.T) {
	cam := NewPerspectiveCamera(Point3f{})
	vp := FullViewport(Point2i{100, 100})
	rs := rasterState{mvp: cam.ProjectionMatrix(vp).Mul(cam.ViewMatrix()), viewport: vp, color: ColorWhite}

	ahead := []Vertex{
		{Position: Point3f{100, 0, 0}},
		{Position: Point3f{100, 1, 0}},
		{Position: Point3f{100, 0, 1}},
	}
	behind := []Vertex{
		{Position: Point3f{-100, 0, 0}},
		{Position: Point3f{-100, 1, 0}},
		{Position: Point3f{-100, 0, 1}},
	}
	out, _, err := rs.project(PrimitiveTriangles, append(ahead, behind...))
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestPipeline_TintsAndIgnoresPartialFaces(t *testing.T) {
	rs := screenState(10, 10)
	rs.color = ColorARGB(0.5, 1, 0.5, 0)
	vs := []Vertex{
		{Position: Point3f{0, 0, 0}, Color: ColorWhite},
		{Position: Point3f{0, 5, 0}, Color: ColorWhite},
		{Position: Point3f{5, 5, 0}, Color: ColorWhite},
		{Position: Point3f{9, 9, 0}, Color: ColorWhite},
	}
	out, _, err := rs.project(PrimitiveTriangles, vs)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, Color{R: 1, G: 0.5, B: 0, A: 0.5}, out[0].Color)
}

func TestGLRaster_ViewportOriginIsBottomLeft(t *testing.T) {
	sink := newCountingSink(Point2i{200, 100})
	g := newGLRaster(sink, nil)
	g.MatrixMode(GLProjection)
	g.LoadMatrixf(Orthographic(0, 10, 10, 0, Near2D, Far2D).ColumnMajor())
	g.MatrixMode(GLModelView)

	// Lower-left 50x50 quarter of the window in GL terms.
	g.Viewport(0, 0, 50, 50)
	q := NewRect2D(Point2f{0, 0}, Point2f{10, 10}, ColorWhite)
	require.NoError(t, g.DrawArrays(PrimitiveQuads, q.Vertices[:]))

	require.Equal(t, 2, sink.triangles)
	assert.InDelta(t, 0, sink.last[0].X, 1e-4)
	assert.InDelta(t, 50, sink.last[0].Y, 1e-4)
	assert.InDelta(t, 100, sink.last[2].Y, 1e-4)
}

func TestGLRaster_MatrixStackPerMode(t *testing.T) {
	g := newGLRaster(newCountingSink(Point2i{10, 10}), nil)
	g.MatrixMode(GLModelView)
	g.PushMatrix()
	g.MultMatrixf(Translate(Vector3f{1, 0, 0}).ColumnMajor())
	assert.Equal(t, Translate(Vector3f{1, 0, 0}), g.modelview[1])

	g.MatrixMode(GLProjection)
	assert.ErrorIs(t, g.PopMatrix(), ErrWorldStackUnderflow)

	g.MatrixMode(GLModelView)
	require.NoError(t, g.PopMatrix())
	assert.Equal(t, Identity(), g.modelview[0])
}

func TestGLRaster_TextureOnlyWhenEnabled(t *testing.T) {
	sink := newCountingSink(Point2i{10, 10})
	g := newGLRaster(sink, nil)
	tex := &Texture{id: 1, name: "t", size: Point2i{1, 1}}
	g.BindTexture(tex)

	tri := (&hookRecorder{})
	require.NoError(t, tri.RenderTo(glDrawTarget{g}))
	assert.Nil(t, sink.lastTex)

	g.Enable(GLTexture2D)
	require.NoError(t, tri.RenderTo(glDrawTarget{g}))
	assert.Same(t, tex, sink.lastTex)
}

type glDrawTarget struct{ g *glRaster }

func (d glDrawTarget) DrawVertices(p Primitive, vs []Vertex) error { return d.g.DrawArrays(p, vs) }

func TestGLRaster_SwapIntervalDrivesVsync(t *testing.T) {
	var got []bool
	g := newGLRaster(newCountingSink(Point2i{1, 1}), func(on bool) { got = append(got, on) })
	g.SwapInterval(1)
	g.SwapInterval(0)
	assert.Equal(t, []bool{true, false}, got)
}

func TestD3DRaster_SceneDiscipline(t *testing.T) {
	sink := newCountingSink(Point2i{10, 10})
	d := newD3DRaster(sink, nil)
	tri := []Vertex{{}, {Position: Point3f{0, 1, 0}}, {Position: Point3f{1, 1, 0}}}

	assert.ErrorIs(t, d.DrawPrimitiveUP(PrimitiveTriangles, tri), errInvalidCall)
	assert.ErrorIs(t, d.EndScene(), errInvalidCall)

	require.NoError(t, d.BeginScene())
	assert.ErrorIs(t, d.BeginScene(), errInvalidCall)
	assert.ErrorIs(t, d.Present(), errInvalidCall)
	require.NoError(t, d.SetRenderState(D3DRSCullMode, D3DCullNone))
	require.NoError(t, d.DrawPrimitiveUP(PrimitiveTriangles, tri))
	require.NoError(t, d.EndScene())
	require.NoError(t, d.Present())

	assert.Equal(t, 1, sink.triangles)
	assert.Equal(t, 1, sink.presents)
}

func TestD3DRaster_CullModes(t *testing.T) {
	// Counter-clockwise in normalized device space.
	ccw := []Vertex{
		{Position: Point3f{0, 0, 0}},
		{Position: Point3f{0.5, 0, 0}},
		{Position: Point3f{0, 0.5, 0}},
	}
	cases := []struct {
		mode uint32
		want int
	}{
		{D3DCullNone, 1},
		{D3DCullCCW, 1},
		{D3DCullCW, 0},
	}
	for _, c := range cases {
		sink := newCountingSink(Point2i{10, 10})
		d := newD3DRaster(sink, nil)
		require.NoError(t, d.SetRenderState(D3DRSCullMode, c.mode))
		require.NoError(t, d.BeginScene())
		require.NoError(t, d.DrawPrimitiveUP(PrimitiveTriangles, ccw))
		assert.Equal(t, c.want, sink.triangles, "cull mode %d", c.mode)
	}
}

func TestD3DRaster_ResetMapsPresentInterval(t *testing.T) {
	var got []bool
	d := newD3DRaster(newCountingSink(Point2i{1, 1}), func(on bool) { got = append(got, on) })
	require.NoError(t, d.Reset(D3DPresentIntervalOne))
	require.NoError(t, d.Reset(D3DPresentIntervalImmediate))
	assert.Equal(t, []bool{true, false}, got)

	require.NoError(t, d.BeginScene())
	assert.ErrorIs(t, d.Reset(D3DPresentIntervalOne), errInvalidCall)
}
