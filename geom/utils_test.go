package geom

import (
	"testing"
)

func TestTriangulate(t *testing.T) {
	tris := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
	})
	if len(tris) != 1 {
		t.Error("triangle: ", tris)
	}

	tris2 := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0, 1},
	})
	if len(tris2) != 2 {
		t.Error("quad: ", tris2)
	}

	// non-convex
	tris3 := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0.8, 0.2},
	})
	if len(tris3) != 2 {
		t.Error("non-convex: ", tris3)
	}

	// Empty
	if len(Triangulate(nil)) != 0 {
		t.Error("not empty")
	}
}

func TestTriangulateConcave(t *testing.T) {
	poly := []*Vector3{
		{0, 0, 0},
		{2, 0, 0},
		{2, 2, 0},
		{1, 1, 0},
		{0, 2, 0},
	}
	tris := Triangulate(poly)
	if len(tris) != 3 {
		t.Fatal("count: ", tris)
	}
	var area Element
	for _, tri := range tris {
		n := FaceNormal(poly[tri[0]], poly[tri[1]], poly[tri[2]])
		if n.Z <= 0 {
			t.Error("winding: ", tri)
		}
		area += n.Len() / 2
	}
	if area < 2.999 || area > 3.001 {
		t.Error("area: ", area)
	}
}

func TestPolygonNormal(t *testing.T) {
	n := PolygonNormal([]*Vector3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}})
	if n.X != -2 || n.Y != 0 || n.Z != 0 {
		t.Error("PolygonNormal: ", n)
	}
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))
	if *n != *NewVector3(0, 0, 1) {
		t.Error("FaceNormal: ", n)
	}
}
