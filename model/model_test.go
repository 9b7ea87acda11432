package model

import (
	"testing"

	"github.com/binzume/daeconv/geom"
)

func quadGeometry() *Geometry {
	g := &Geometry{Name: "quad"}
	g.VertexArray = &Array{Name: "POSITION", Components: 3, Data: []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}}
	g.DrawCalls = []*DrawCall{
		NewDrawCall(PrimitivePolygon, []uint32{0, 1, 2, 3}),
		NewDrawCall(PrimitiveLines, []uint32{0, 2}),
	}
	return g
}

func TestDrawCallTriangles(t *testing.T) {
	strip := NewDrawCall(PrimitiveTriangleStrip, []uint32{0, 1, 2, 3})
	tris := strip.Triangles()
	if len(tris) != 2 || tris[1] != [3]uint32{2, 1, 3} {
		t.Error("strip", tris)
	}

	fan := NewDrawCall(PrimitiveTriangleFan, []uint32{0, 1, 2, 3, 4})
	if len(fan.Triangles()) != 3 {
		t.Error("fan", fan.Triangles())
	}

	if len(NewDrawCall(PrimitiveLines, []uint32{0, 1}).Triangles()) != 0 {
		t.Error("lines should not produce triangles")
	}
}

func TestComputeNormals(t *testing.T) {
	g := quadGeometry()
	normals := g.ComputeNormals()
	if g.NormalArray != normals || normals.Len() != 4 {
		t.Fatal("normal array", normals)
	}
	for i := 0; i < 4; i++ {
		if n := normals.Vector3(i); n.Sub(geom.NewVector3(0, 0, 1)).Len() > 0.0001 {
			t.Error("normal", i, n)
		}
	}
}

func TestMergeDrawCallsWithTriangles(t *testing.T) {
	g := quadGeometry()
	g.DrawCalls = append(g.DrawCalls, NewDrawCall(PrimitiveTriangles, []uint32{0, 1, 2}))
	g.MergeDrawCallsWithTriangles()
	if len(g.DrawCalls) != 2 {
		t.Fatal("draw calls", g.DrawCalls)
	}
	if g.DrawCalls[0].Type != PrimitiveTriangles || len(g.DrawCalls[0].Indices) != 9 {
		t.Error("merged", g.DrawCalls[0])
	}
	if g.DrawCalls[1].Type != PrimitiveLines {
		t.Error("lines should be kept", g.DrawCalls[1])
	}
}

func TestTransformHierarchy(t *testing.T) {
	root := NewTransform()
	child := NewTransform()
	grandChild := NewTransform()
	root.AddChild(child)
	child.AddChild(grandChild)

	root.PostMultiply(geom.NewTranslateMatrix4(1, 0, 0))
	child.PostMultiply(geom.NewScaleMatrix4(2, 2, 2))
	grandChild.PostMultiply(geom.NewTranslateMatrix4(0, 1, 0))
	root.PreMultiply(geom.NewTranslateMatrix4(0, 0, 1))
	root.ComputeWorldMatrixRecursive(nil)

	p := grandChild.World.ApplyTo(geom.NewVector3(0, 0, 0))
	if p.Sub(geom.NewVector3(1, 2, 1)).Len() > 0.0001 {
		t.Error("world", p)
	}

	count := 0
	root.Walk(func(*Transform) { count++ })
	if count != 3 {
		t.Error("walk", count)
	}

	grandChild.RemoveFromParent()
	if grandChild.Parent() != nil || len(child.Children()) != 0 {
		t.Error("RemoveFromParent")
	}

	child.AddChild(grandChild)
	root.EraseAllChildrenRecursive()
	if len(root.Children()) != 0 || child.Parent() != nil || len(child.Children()) != 0 {
		t.Error("EraseAllChildrenRecursive")
	}
}

func TestMaterialTransparency(t *testing.T) {
	m := NewMaterial()
	m.SetTransparency(0.5)
	m.MultiplyTransparency(0.5)
	if m.Diffuse.W != 0.25 || m.Emission.W != 0.25 {
		t.Error("alpha", m)
	}

	m.SetFlatColor(Fuchsia)
	if m.Emission != Fuchsia || m.Diffuse.X != 0 {
		t.Error("flat color", m)
	}
}

func TestResources(t *testing.T) {
	g := quadGeometry()
	e := NewEffect("e")
	r := &Resources{Actors: []*Actor{
		{Geometry: g, Effect: e},
		{Geometry: g, Effect: NewEffect("e2")},
	}}
	if len(r.Geometries()) != 1 || len(r.Effects()) != 2 {
		t.Error("resources")
	}
}
