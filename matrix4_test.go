package zeni

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixTol = float32(1e-5)

func sampleMatrix() Matrix4f {
	return Translate(Vector3f{3, -2, 7}).
		Mul(Rotate(Vector3f{1, 2, 3}, 0.7)).
		Mul(Scale(Vector3f{2, 0.5, 4}))
}

func TestMatrix_TransposeIsInvolution(t *testing.T) {
	for _, m := range []Matrix4f{Identity(), sampleMatrix(), {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}} {
		assert.Equal(t, m, m.Transposed().Transposed())

		inPlace := m
		inPlace.Transpose().Transpose()
		assert.Equal(t, m, inPlace)
	}
}

func TestMatrix_TransposeInPlaceMatchesCopy(t *testing.T) {
	m := Matrix4f{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	want := m.Transposed()
	m.Transpose()
	assert.Equal(t, want, m)
	assert.Equal(t, float32(5), m.At(0, 1))
}

func TestMatrix_DeterminantIdentity(t *testing.T) {
	assert.Equal(t, float32(1), Identity().Determinant())
}

func TestMatrix_DeterminantKnownValues(t *testing.T) {
	assert.InDelta(t, 2*0.5*4, sampleMatrix().Determinant(), 1e-4)
	assert.Equal(t, float32(0), Matrix4f{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}.Determinant())

	// A single row swap flips the sign.
	swapped := Matrix4f{
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, float32(-1), swapped.Determinant())

	// Odd permutation (0,3,2,1).
	perm := Matrix4f{
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	}
	assert.Equal(t, float32(-1), perm.Determinant())
}

func TestMatrix_DeterminantMatchesTranspose(t *testing.T) {
	m := sampleMatrix()
	assert.InDelta(t, m.Determinant(), m.Transposed().Determinant(), 1e-4)
}

func TestMatrix_InverseRoundTrip(t *testing.T) {
	m := sampleMatrix()
	inv, err := m.Inverted()
	require.NoError(t, err)
	assert.True(t, m.Mul(inv).ApproxEqual(Identity(), matrixTol), "M*inv(M) = %v", m.Mul(inv))
	assert.True(t, inv.Mul(m).ApproxEqual(Identity(), matrixTol))

	m2 := m
	require.NoError(t, m2.Invert())
	assert.Equal(t, inv, m2)
}

func TestMatrix_InverseSingular(t *testing.T) {
	m := Scale(Vector3f{1, 0, 1})
	_, err := m.Inverted()
	assert.ErrorIs(t, err, ErrSingularMatrix)

	before := m
	assert.ErrorIs(t, m.Invert(), ErrSingularMatrix)
	assert.Equal(t, before, m)
}

func TestMatrix_OrthographicScreenCorners(t *testing.T) {
	const w, h = 800, 600
	proj := Orthographic(0, w, h, 0, Near2D, Far2D)
	mvp := proj.Mul(Identity())

	topLeft := mvp.TransformPoint(Point3f{0, 0, 0})
	assert.InDelta(t, -1, topLeft.X, 1e-6)
	assert.InDelta(t, 1, topLeft.Y, 1e-6)

	bottomRight := mvp.TransformPoint(Point3f{w, h, 0})
	assert.InDelta(t, 1, bottomRight.X, 1e-6)
	assert.InDelta(t, -1, bottomRight.Y, 1e-6)
}

func TestMatrix_PerspectiveDepthRange(t *testing.T) {
	p := Perspective(math32.Pi/2, 1, 1, 100)
	near := p.TransformPoint(Point3f{0, 0, -1})
	far := p.TransformPoint(Point3f{0, 0, -100})
	assert.InDelta(t, -1, near.Z, 1e-5)
	assert.InDelta(t, 1, far.Z, 1e-4)
}

func TestMatrix_MglRoundTrip(t *testing.T) {
	m := sampleMatrix()
	assert.Equal(t, m, Matrix4fFromMgl(m.Mgl()))

	tr := mgl32.Translate3D(1, 2, 3)
	assert.Equal(t, Translate(Vector3f{1, 2, 3}), Matrix4fFromMgl(tr))
}

func TestMatrix_RotateMatchesMgl(t *testing.T) {
	axis := Vector3f{0, 0, 1}
	got := Rotate(axis, math32.Pi/2)
	want := Matrix4fFromMgl(mgl32.HomogRotate3D(math32.Pi/2, axis))
	assert.True(t, got.ApproxEqual(want, matrixTol))

	p := got.TransformPoint(Point3f{1, 0, 0})
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 1, p.Y, 1e-6)
}

func TestPerspectiveCamera_LooksForward(t *testing.T) {
	cam := NewPerspectiveCamera(Point3f{})
	vp := FullViewport(Point2i{640, 480})
	mvp := cam.ProjectionMatrix(vp).Mul(cam.ViewMatrix())

	ahead := mvp.TransformPoint(Point3f{100, 0, 0})
	assert.InDelta(t, 0, ahead.X, 1e-5)
	assert.InDelta(t, 0, ahead.Y, 1e-5)
	assert.True(t, ahead.Z > -1 && ahead.Z < 1)

	assert.InDelta(t, 1, cam.Left()[1], 1e-6)
}
