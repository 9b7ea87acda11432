package geom

// Vector4 is also used as an RGBA color.
type Vector4 struct {
	X Element
	Y Element
	Z Element
	W Element
}

func NewVector4(x, y, z, w float32) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

func NewVector4FromSlice(arr []Element) *Vector4 {
	v := &Vector4{}
	switch {
	case len(arr) >= 4:
		v.W = arr[3]
		fallthrough
	case len(arr) == 3:
		v.Z = arr[2]
		fallthrough
	case len(arr) == 2:
		v.Y = arr[1]
		fallthrough
	case len(arr) == 1:
		v.X = arr[0]
	}
	return v
}

func (v *Vector4) Add(v2 *Vector4) *Vector4 {
	return &Vector4{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z, W: v.W + v2.W}
}

func (v *Vector4) Dot(v2 *Vector4) Element {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z + v.W*v2.W
}

func (v *Vector4) XYZ() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector4) ToArray() [4]Element {
	return [4]Element{v.X, v.Y, v.Z, v.W}
}
