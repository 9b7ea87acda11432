package model

type PrimitiveType int

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
	PrimitivePolygon
)

var primitiveTypeNames = []string{"points", "lines", "line_strip", "triangles", "triangle_strip", "triangle_fan", "polygon"}

func (t PrimitiveType) String() string {
	if t >= 0 && int(t) < len(primitiveTypeNames) {
		return primitiveTypeNames[t]
	}
	return "unknown"
}

// HasTriangles reports whether the primitive type produces filled faces.
func (t PrimitiveType) HasTriangles() bool {
	return t == PrimitiveTriangles || t == PrimitiveTriangleStrip || t == PrimitiveTriangleFan || t == PrimitivePolygon
}

// DrawCall is an indexed draw of one primitive type.
type DrawCall struct {
	Type    PrimitiveType
	Indices []uint32
}

func NewDrawCall(t PrimitiveType, indices []uint32) *DrawCall {
	return &DrawCall{Type: t, Indices: indices}
}

// Triangles expands the draw call into triangles. Polygons are fanned;
// use Geometry.Triangles for concave polygons.
func (d *DrawCall) Triangles() [][3]uint32 {
	var tris [][3]uint32
	idx := d.Indices
	switch d.Type {
	case PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			tris = append(tris, [3]uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]uint32{idx[i], idx[i+1], idx[i+2]})
			} else {
				tris = append(tris, [3]uint32{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case PrimitiveTriangleFan, PrimitivePolygon:
		for i := 1; i+1 < len(idx); i++ {
			tris = append(tris, [3]uint32{idx[0], idx[i], idx[i+1]})
		}
	}
	return tris
}
