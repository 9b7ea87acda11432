package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// column-major matrix
type Matrix4 [16]Element

func NewMatrix4() *Matrix4 {
	m := Matrix4(mgl32.Ident4())
	return &m
}

func NewMatrix4FromSlice(a []Element) *Matrix4 {
	mat := &Matrix4{}
	copy(mat[:], a)
	return mat
}

// NewMatrix4FromColumns builds a rotation/scale matrix from three basis vectors.
func NewMatrix4FromColumns(x, y, z *Vector3) *Matrix4 {
	return &Matrix4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}

func NewScaleMatrix4(x, y, z Element) *Matrix4 {
	m := Matrix4(mgl32.Scale3D(x, y, z))
	return &m
}

func NewTranslateMatrix4(x, y, z Element) *Matrix4 {
	m := Matrix4(mgl32.Translate3D(x, y, z))
	return &m
}

// NewAxisRotationMatrix4 returns a rotation of deg degrees around axis.
func NewAxisRotationMatrix4(deg Element, axis *Vector3) *Matrix4 {
	if axis.LenSqr() == 0 {
		return NewMatrix4()
	}
	m := Matrix4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis.vec3().Normalize()))
	return &m
}

// NewLookAtMatrix4 returns a view matrix looking from eye to center.
func NewLookAtMatrix4(eye, center, up *Vector3) *Matrix4 {
	m := Matrix4(mgl32.LookAtV(eye.vec3(), center.vec3(), up.vec3()))
	return &m
}

// Mul returns m * a.
func (m *Matrix4) Mul(a *Matrix4) *Matrix4 {
	r := Matrix4(mgl32.Mat4(*m).Mul4(mgl32.Mat4(*a)))
	return &r
}

// Inverse returns a zero matrix if m is singular.
func (m *Matrix4) Inverse() *Matrix4 {
	r := Matrix4(mgl32.Mat4(*m).Inv())
	return &r
}

func (m *Matrix4) Transposed() *Matrix4 {
	r := Matrix4(mgl32.Mat4(*m).Transpose())
	return &r
}

func (mat *Matrix4) ToArray(a []Element) {
	copy(a, mat[:])
}

// Axis returns the i-th basis column (0:X 1:Y 2:Z 3:translation).
func (m *Matrix4) Axis(i int) *Vector3 {
	return &Vector3{m[i*4], m[i*4+1], m[i*4+2]}
}

func (m *Matrix4) IsIdentity() bool {
	return *m == Matrix4(mgl32.Ident4())
}

// ApproxEqual compares element-wise with tolerance eps.
func (m *Matrix4) ApproxEqual(m2 *Matrix4, eps Element) bool {
	return mgl32.Mat4(*m).ApproxEqualThreshold(mgl32.Mat4(*m2), eps)
}
