package model

import (
	"github.com/binzume/daeconv/geom"
)

type Geometry struct {
	Name           string
	VertexArray    *Array
	NormalArray    *Array
	ColorArray     *Array
	TexCoordArrays []*Array
	DrawCalls      []*DrawCall
}

func (g *Geometry) SetTexCoordArray(unit int, a *Array) {
	for len(g.TexCoordArrays) <= unit {
		g.TexCoordArrays = append(g.TexCoordArrays, nil)
	}
	g.TexCoordArrays[unit] = a
}

func (g *Geometry) TexCoordArray(unit int) *Array {
	if unit < len(g.TexCoordArrays) {
		return g.TexCoordArrays[unit]
	}
	return nil
}

func (g *Geometry) VertexCount() int {
	if g.VertexArray == nil {
		return 0
	}
	return g.VertexArray.Len()
}

// Triangles returns the faces of dc. Polygons with more than 3 vertices
// are triangulated by ear clipping when positions are available.
func (g *Geometry) Triangles(dc *DrawCall) [][3]uint32 {
	if dc.Type != PrimitivePolygon || len(dc.Indices) <= 3 || g.VertexArray == nil {
		return dc.Triangles()
	}
	poly := make([]*geom.Vector3, len(dc.Indices))
	for i, idx := range dc.Indices {
		if int(idx) >= g.VertexArray.Len() {
			return dc.Triangles()
		}
		poly[i] = g.VertexArray.Vector3(int(idx))
	}
	var tris [][3]uint32
	for _, t := range geom.Triangulate(poly) {
		tris = append(tris, [3]uint32{dc.Indices[t[0]], dc.Indices[t[1]], dc.Indices[t[2]]})
	}
	return tris
}

// ComputeNormals replaces the normal array with area weighted vertex normals.
// Vertices not referenced by any triangle get a zero normal.
func (g *Geometry) ComputeNormals() *Array {
	if g.VertexArray == nil {
		return nil
	}
	count := g.VertexArray.Len()
	acc := make([]geom.Vector3, count)
	for _, dc := range g.DrawCalls {
		for _, t := range g.Triangles(dc) {
			if int(t[0]) >= count || int(t[1]) >= count || int(t[2]) >= count {
				continue
			}
			n := geom.FaceNormal(g.VertexArray.Vector3(int(t[0])), g.VertexArray.Vector3(int(t[1])), g.VertexArray.Vector3(int(t[2])))
			for _, i := range t {
				acc[i] = *acc[i].Add(n)
			}
		}
	}
	normals := NewArray("NORMAL", 3, count)
	for i := range acc {
		normals.SetVector3(i, acc[i].Normalized())
	}
	g.NormalArray = normals
	return normals
}

// MergeDrawCallsWithTriangles replaces all face producing draw calls with
// a single triangle list. Line and point draw calls are kept.
func (g *Geometry) MergeDrawCallsWithTriangles() {
	var indices []uint32
	var rest []*DrawCall
	merged := 0
	for _, dc := range g.DrawCalls {
		if !dc.Type.HasTriangles() {
			rest = append(rest, dc)
			continue
		}
		merged++
		for _, t := range g.Triangles(dc) {
			indices = append(indices, t[0], t[1], t[2])
		}
	}
	if merged == 0 {
		return
	}
	if len(indices) > 0 {
		rest = append([]*DrawCall{NewDrawCall(PrimitiveTriangles, indices)}, rest...)
	}
	g.DrawCalls = rest
}
