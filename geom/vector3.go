package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Element = float32

type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

// NewVector3FromSlice reads the first three elements of arr.
func NewVector3FromSlice(arr []Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Add(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Dot(v2 *Vector3) Element {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

func (v *Vector3) Cross(v2 *Vector3) *Vector3 {
	return &Vector3{
		X: v.Y*v2.Z - v.Z*v2.Y,
		Y: v.Z*v2.X - v.X*v2.Z,
		Z: v.X*v2.Y - v.Y*v2.X,
	}
}

func (v *Vector3) Scale(s Element) *Vector3 {
	return &Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v *Vector3) Len() Element {
	return Element(math.Sqrt(float64(v.LenSqr())))
}

func (v *Vector3) LenSqr() Element {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize scales v to unit length in place. A zero vector becomes +X.
func (v *Vector3) Normalize() *Vector3 {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
		v.Z /= l
	} else {
		v.X = 1
	}
	return v
}

// Normalized returns a unit-length copy of v. A zero vector stays zero.
func (v *Vector3) Normalized() *Vector3 {
	l := v.Len()
	if l == 0 {
		return &Vector3{}
	}
	return v.Scale(1 / l)
}

func (v *Vector3) ToArray(array []Element) {
	array[0] = v.X
	array[1] = v.Y
	array[2] = v.Z
}

func (v *Vector3) vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// ApplyTo transforms a point (w=1).
func (mat *Matrix4) ApplyTo(v *Vector3) *Vector3 {
	r := mgl32.TransformCoordinate(v.vec3(), mgl32.Mat4(*mat))
	return &Vector3{r[0], r[1], r[2]}
}

// ApplyToDir transforms a direction (w=0).
func (mat *Matrix4) ApplyToDir(v *Vector3) *Vector3 {
	r := mgl32.TransformNormal(v.vec3(), mgl32.Mat4(*mat))
	return &Vector3{r[0], r[1], r[2]}
}
