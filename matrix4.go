// matrix4.go - 4x4 float matrix for view, projection and world transforms

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
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix4f is a 4x4 matrix stored row-major: element (row r, column c) is
// m[r*4+c]. Points are column vectors (p' = M*p), so translation lives in
// column 3.
type Matrix4f [16]float32

// Near and far planes of the orthographic projection built by Video.Set2D.
const (
	Near2D float32 = 0
	Far2D  float32 = 1
)

func Identity() Matrix4f {
	return Matrix4f{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Orthographic maps the box [left,right]x[bottom,top]x[-near,-far] onto the
// unit cube, GL style.
func Orthographic(left, right, bottom, top, near, far float32) Matrix4f {
	return Matrix4f{
		2 / (right - left), 0, 0, -(right + left) / (right - left),
		0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom),
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}

// Perspective builds a GL-style perspective projection; fovy is the full
// vertical field of view in radians.
func Perspective(fovy, aspect, near, far float32) Matrix4f {
	f := 1 / math32.Tan(fovy/2)
	return Matrix4f{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

func Translate(v Vector3f) Matrix4f {
	return Matrix4f{
		1, 0, 0, v[0],
		0, 1, 0, v[1],
		0, 0, 1, v[2],
		0, 0, 0, 1,
	}
}

func Scale(v Vector3f) Matrix4f {
	return Matrix4f{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}

// Rotate is a right-handed rotation of radians about axis.
func Rotate(axis Vector3f, radians float32) Matrix4f {
	if axis.Len() == 0 {
		return Identity()
	}
	a := axis.Normalize()
	x, y, z := a[0], a[1], a[2]
	s, c := math32.Sincos(radians)
	t := 1 - c
	return Matrix4f{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

func (m Matrix4f) At(row, col int) float32 {
	return m[row*4+col]
}

func (m *Matrix4f) Set(row, col int, v float32) {
	m[row*4+col] = v
}

// Mul returns m*o.
func (m Matrix4f) Mul(o Matrix4f) Matrix4f {
	var r Matrix4f
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i*4+k] * o[k*4+j]
			}
			r[i*4+j] = sum
		}
	}
	return r
}

func (m Matrix4f) TransformVec4(v [4]float32) [4]float32 {
	var r [4]float32
	for i := 0; i < 4; i++ {
		r[i] = m[i*4]*v[0] + m[i*4+1]*v[1] + m[i*4+2]*v[2] + m[i*4+3]*v[3]
	}
	return r
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func (m Matrix4f) TransformPoint(p Point3f) Point3f {
	r := m.TransformVec4([4]float32{p.X, p.Y, p.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return Point3f{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return Point3f{r[0], r[1], r[2]}
}

// Transpose transposes m in place.
func (m *Matrix4f) Transpose() *Matrix4f {
	for i := 1; i < 4; i++ {
		for j := 0; j < i; j++ {
			m[i*4+j], m[j*4+i] = m[j*4+i], m[i*4+j]
		}
	}
	return m
}

func (m Matrix4f) Transposed() Matrix4f {
	var r Matrix4f
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i*4+j] = m[j*4+i]
		}
	}
	return r
}

// Determinant is the full Leibniz expansion: one signed product per
// permutation (a,b,c,d) of the column indices.
func (m Matrix4f) Determinant() float32 {
	term := func(a, b, c, d int) float32 {
		return m[a] * m[4+b] * m[8+c] * m[12+d]
	}

	return +term(0, 1, 2, 3) - term(0, 1, 3, 2) -
		term(0, 2, 1, 3) + term(0, 2, 3, 1) +
		term(0, 3, 1, 2) - term(0, 3, 2, 1) -

		term(1, 0, 2, 3) + term(1, 0, 3, 2) +
		term(1, 2, 0, 3) - term(1, 2, 3, 0) -
		term(1, 3, 0, 2) + term(1, 3, 2, 0) +

		term(2, 0, 1, 3) - term(2, 0, 3, 1) -
		term(2, 1, 0, 3) + term(2, 1, 3, 0) +
		term(2, 3, 0, 1) - term(2, 3, 1, 0) -

		term(3, 0, 1, 2) + term(3, 0, 2, 1) +
		term(3, 1, 0, 2) - term(3, 1, 2, 0) -
		term(3, 2, 0, 1) + term(3, 2, 1, 0)
}

// Inverted returns the inverse computed from the adjugate. A zero
// determinant yields ErrSingularMatrix and the zero matrix.
func (m Matrix4f) Inverted() (Matrix4f, error) {
	var inv Matrix4f

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]

	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]

	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]

	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Matrix4f{}, ErrSingularMatrix
	}

	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, nil
}

// Invert replaces m with its inverse. m is left untouched on error.
func (m *Matrix4f) Invert() error {
	inv, err := m.Inverted()
	if err != nil {
		return err
	}
	*m = inv
	return nil
}

// ColumnMajor returns the elements in GL / D3D upload order.
func (m Matrix4f) ColumnMajor() [16]float32 {
	return [16]float32(m.Transposed())
}

// Mgl converts to a column-major mathgl matrix.
func (m Matrix4f) Mgl() mgl32.Mat4 {
	return mgl32.Mat4(m.ColumnMajor())
}

func Matrix4fFromMgl(mm mgl32.Mat4) Matrix4f {
	return Matrix4f(mm).Transposed()
}

// ApproxEqual reports whether every element of m and o differs by at most eps.
func (m Matrix4f) ApproxEqual(o Matrix4f, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
