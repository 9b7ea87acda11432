package dae

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

const testDocument = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset>
    <contributor><authoring_tool>Google SketchUp 6.4.112</authoring_tool></contributor>
    <unit name="meter" meter="1"/>
    <up_axis>Z_UP</up_axis>
  </asset>
  <library_images>
    <image id="img14"><init_from>tex%20a.png</init_from></image>
    <image id="img15"><init_from><ref>b.png</ref></init_from></image>
  </library_images>
  <library_geometries>
    <geometry id="geom">
      <mesh>
        <source id="pos">
          <float_array id="pos-array" count="6">0 0 0
            1 0.5 -2</float_array>
          <technique_common>
            <accessor source="#pos-array" count="2" stride="3">
              <param name="X" type="float"/><param name="Y" type="float"/><param name="Z" type="float"/>
            </accessor>
          </technique_common>
        </source>
        <vertices id="verts"><input semantic="POSITION" source="#pos"/></vertices>
        <triangles count="1" material="mat0"><input semantic="VERTEX" source="#verts" offset="0"/><p>0 1 0</p></triangles>
        <lines count="1"><input semantic="VERTEX" source="#verts" offset="0"/><p>0 1</p></lines>
      </mesh>
    </geometry>
  </library_geometries>
  <library_visual_scenes>
    <visual_scene id="scene">
      <node id="root" name="Root">
        <translate sid="t">1 2 3</translate>
        <rotate>0 0 1 90</rotate>
        <extra><technique profile="X"><foo>1</foo></technique></extra>
        <scale>2 2 2</scale>
        <instance_geometry url="#geom">
          <bind_material><technique_common>
            <instance_material symbol="mat0" target="#m"/>
          </technique_common></bind_material>
        </instance_geometry>
        <node id="child"><matrix>1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1</matrix></node>
        <instance_node url="#lib-node"/>
      </node>
    </visual_scene>
  </library_visual_scenes>
  <library_nodes><node id="lib-node"/></library_nodes>
  <scene><instance_visual_scene url="#scene"/></scene>
</COLLADA>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(testDocument))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Asset == nil || doc.Asset.UpAxis != "Z_UP" || doc.Asset.Contributors[0].AuthoringTool != "Google SketchUp 6.4.112" {
		t.Error("asset", doc.Asset)
	}

	if doc.Image("img14").URI() != "tex%20a.png" || doc.Image("img15").URI() != "b.png" {
		t.Error("image init_from")
	}

	src := doc.Source("#pos")
	if src == nil || len(src.FloatArray.Values) != 6 || src.FloatArray.Values[5] != -2 {
		t.Fatal("source", src)
	}
	if src.Accessor.Stride != 3 || len(src.Accessor.Params) != 3 {
		t.Error("accessor", src.Accessor)
	}

	geom := doc.Geometry("#geom")
	prims := geom.Mesh.Primitives()
	if len(prims) != 2 || prims[0].Kind != PrimitiveTriangles || prims[1].Kind != PrimitiveLines {
		t.Error("primitives", prims)
	}
	if prims[0].Material != "mat0" || len(prims[0].P) != 1 || len(prims[0].P[0]) != 3 {
		t.Error("triangles", prims[0])
	}
	if doc.Vertices("#verts") == nil {
		t.Error("vertices not indexed")
	}

	scene := doc.VisualScene()
	if scene == nil || scene.ID != "scene" {
		t.Fatal("visual scene", scene)
	}
	root := scene.Nodes[0]
	if root.Name != "Root" || len(root.Transforms) != 3 {
		t.Fatal("node", root)
	}
	kinds := []TransformKind{TransformTranslate, TransformRotate, TransformScale}
	for i, k := range kinds {
		if root.Transforms[i].Kind != k {
			t.Error("transform order", i, root.Transforms[i].Kind)
		}
	}
	if root.Transforms[0].SID != "t" || root.Transforms[1].Values[3] != 90 {
		t.Error("transform values", root.Transforms)
	}
	if len(root.InstanceGeometries) != 1 || root.InstanceGeometries[0].BindMaterial.InstanceMaterials[0].Target != "#m" {
		t.Error("instance_geometry", root.InstanceGeometries)
	}
	if len(root.Nodes) != 1 || len(root.Nodes[0].Transforms) != 1 || root.Nodes[0].Transforms[0].Kind != TransformMatrix {
		t.Error("child node", root.Nodes)
	}
	if len(root.InstanceNodes) != 1 || doc.Node(root.InstanceNodes[0].URL) == nil {
		t.Error("instance_node")
	}
	if doc.Node("#child") == nil {
		t.Error("nested node not indexed")
	}
	if doc.Geometry("#pos") != nil {
		t.Error("lookup should check element type")
	}
}

func TestParseCharset(t *testing.T) {
	src := `<?xml version="1.0" encoding="Shift_JIS"?>
<COLLADA version="1.4.1"><library_visual_scenes><visual_scene id="s"><node name="立方体"/></visual_scene></library_visual_scenes></COLLADA>`
	encoded, err := japanese.ShiftJIS.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(strings.NewReader(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if doc.VisualScenes[0].Nodes[0].Name != "立方体" {
		t.Error("name", doc.VisualScenes[0].Nodes[0].Name)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse(strings.NewReader("<COLLADA><library_geometries>")); err == nil {
		t.Error("truncated document should fail")
	}
	if _, err := Parse(strings.NewReader(`<COLLADA><library_geometries><geometry><mesh><source><float_array>1 x</float_array></source></mesh></geometry></library_geometries></COLLADA>`)); err == nil {
		t.Error("invalid number should fail")
	}
}

func TestFloatListRange(t *testing.T) {
	var l FloatList
	if err := l.UnmarshalText([]byte("1 1e39 -1e39 0.5")); err != nil {
		t.Fatal(err)
	}
	if len(l) != 4 || !math.IsInf(float64(l[1]), 1) || !math.IsInf(float64(l[2]), -1) || l[3] != 0.5 {
		t.Error("values", l)
	}
	if err := l.UnmarshalText([]byte("1 1e39x")); err == nil {
		t.Error("syntax error should fail")
	}
}

func TestFragmentID(t *testing.T) {
	if id, ok := FragmentID("#abc"); !ok || id != "abc" {
		t.Error("#abc", id)
	}
	if _, ok := FragmentID("other.dae#abc"); ok {
		t.Error("external reference")
	}
	if _, ok := FragmentID("#"); ok {
		t.Error("empty fragment")
	}
}

func TestExtraParam(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<COLLADA><library_effects><effect id="e"><profile_COMMON><technique sid="c"><phong/>
<extra><technique profile="GOOGLEEARTH"><double_sided>1</double_sided></technique></extra></technique></profile_COMMON></effect></library_effects></COLLADA>`))
	if err != nil {
		t.Fatal(err)
	}
	e := doc.Effect("#e")
	if e == nil || e.ProfileCommon.Technique.Phong == nil {
		t.Fatal("effect", e)
	}
	v, ok := e.ProfileCommon.Technique.Extras[0].Techniques[0].Param("double_sided")
	if !ok || v != "1" {
		t.Error("double_sided", v)
	}
}
