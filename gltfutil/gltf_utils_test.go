package gltfutil

import (
	"path/filepath"
	"testing"

	"github.com/binzume/daeconv/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func testDocument() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{{
		Indices:    gltf.Index(idx),
		Attributes: map[string]uint32{"POSITION": pos},
	}}}}
	doc.Nodes = []*gltf.Node{
		{Name: "a", Mesh: gltf.Index(0), Translation: [3]float32{1, 0, 0}, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}},
		{Name: "b", Mesh: gltf.Index(0), Matrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 3, 0, 1}},
	}
	doc.Scenes[0].Nodes = []uint32{0, 1}
	return doc
}

func TestNodeMatrix(t *testing.T) {
	doc := testDocument()
	if m := NodeMatrix(doc.Nodes[0]); m[12] != 1 || m[0] != 1 {
		t.Error("trs", m)
	}
	if m := NodeMatrix(doc.Nodes[1]); m[13] != 3 {
		t.Error("matrix", m)
	}
}

func TestTransform(t *testing.T) {
	doc := testDocument()
	Transform(doc, geom.NewVector3(2, 2, 2), geom.NewVector3(0, 0, 5))

	a := doc.Nodes[0]
	if a.Matrix[0] != 2 || a.Matrix[12] != 2 || a.Matrix[14] != 5 {
		t.Error("node a", a.Matrix)
	}
	if a.Translation != [3]float32{} {
		t.Error("translation should be folded into the matrix", a.Translation)
	}
	if b := doc.Nodes[1]; b.Matrix[13] != 6 || b.Matrix[14] != 5 {
		t.Error("node b", b.Matrix)
	}

	before := doc.Nodes[1].Matrix
	Transform(doc, nil, nil)
	if doc.Nodes[1].Matrix != before {
		t.Error("nil transform should do nothing")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.glb", "out.gltf"} {
		path := filepath.Join(dir, name)
		if err := Save(testDocument(), path); err != nil {
			t.Fatal(name, err)
		}
		doc, err := Load(path)
		if err != nil {
			t.Fatal(name, err)
		}
		if len(doc.Meshes) != 1 || len(doc.Nodes) != 2 {
			t.Error(name, "meshes", len(doc.Meshes))
		}
		pos, err := modeler.ReadPosition(doc, doc.Accessors[doc.Meshes[0].Primitives[0].Attributes["POSITION"]], nil)
		if err != nil || len(pos) != 3 || pos[1][0] != 1 {
			t.Error(name, "position", pos, err)
		}
	}
}
