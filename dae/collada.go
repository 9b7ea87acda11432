// Package dae decodes COLLADA 1.4/1.5 documents.
package dae

import (
	"encoding/xml"
	"strings"
)

type Collada struct {
	XMLName xml.Name `xml:"COLLADA"`
	Version string   `xml:"version,attr"`
	Asset   *Asset   `xml:"asset"`

	Images       []*Image       `xml:"library_images>image"`
	Effects      []*Effect      `xml:"library_effects>effect"`
	Materials    []*Material    `xml:"library_materials>material"`
	Geometries   []*Geometry    `xml:"library_geometries>geometry"`
	Controllers  []*Controller  `xml:"library_controllers>controller"`
	VisualScenes []*VisualScene `xml:"library_visual_scenes>visual_scene"`
	Nodes        []*Node        `xml:"library_nodes>node"`
	Scene        *Scene         `xml:"scene"`

	index map[string]interface{}
}

type Asset struct {
	Contributors []*Contributor `xml:"contributor"`
	Created      string         `xml:"created"`
	Unit         *Unit          `xml:"unit"`
	UpAxis       string         `xml:"up_axis"`
}

type Contributor struct {
	Author        string `xml:"author"`
	AuthoringTool string `xml:"authoring_tool"`
	Comments      string `xml:"comments"`
}

type Unit struct {
	Name  string  `xml:"name,attr"`
	Meter float32 `xml:"meter,attr"`
}

type Scene struct {
	InstanceVisualScene *InstanceURL `xml:"instance_visual_scene"`
}

type InstanceURL struct {
	URL  string `xml:"url,attr"`
	Name string `xml:"name,attr"`
}

// Image.InitFrom holds a file name (1.4) or a <ref> child (1.5).
type Image struct {
	ID       string     `xml:"id,attr"`
	Name     string     `xml:"name,attr"`
	InitFrom *ImageFrom `xml:"init_from"`
}

type ImageFrom struct {
	Value string `xml:",chardata"`
	Ref   string `xml:"ref"`
}

func (img *Image) URI() string {
	if img.InitFrom == nil {
		return ""
	}
	if ref := strings.TrimSpace(img.InitFrom.Ref); ref != "" {
		return ref
	}
	return strings.TrimSpace(img.InitFrom.Value)
}

type Effect struct {
	ID            string         `xml:"id,attr"`
	Name          string         `xml:"name,attr"`
	NewParams     []*NewParam    `xml:"newparam"`
	Images        []*Image       `xml:"image"`
	ProfileCommon *ProfileCommon `xml:"profile_COMMON"`
	Extras        []*Extra       `xml:"extra"`
}

type ProfileCommon struct {
	ID        string           `xml:"id,attr"`
	NewParams []*NewParam      `xml:"newparam"`
	Images    []*Image         `xml:"image"`
	Technique *CommonTechnique `xml:"technique"`
	Extras    []*Extra         `xml:"extra"`
}

type CommonTechnique struct {
	SID      string   `xml:"sid,attr"`
	Constant *Shader  `xml:"constant"`
	Lambert  *Shader  `xml:"lambert"`
	Phong    *Shader  `xml:"phong"`
	Blinn    *Shader  `xml:"blinn"`
	Images   []*Image `xml:"image"`
	Extras   []*Extra `xml:"extra"`
}

// Shader is the body of <constant>, <lambert>, <phong> or <blinn>.
type Shader struct {
	Emission          *ColorOrTexture `xml:"emission"`
	Ambient           *ColorOrTexture `xml:"ambient"`
	Diffuse           *ColorOrTexture `xml:"diffuse"`
	Specular          *ColorOrTexture `xml:"specular"`
	Shininess         *FloatOrParam   `xml:"shininess"`
	Reflective        *ColorOrTexture `xml:"reflective"`
	Reflectivity      *FloatOrParam   `xml:"reflectivity"`
	Transparent       *ColorOrTexture `xml:"transparent"`
	Transparency      *FloatOrParam   `xml:"transparency"`
	IndexOfRefraction *FloatOrParam   `xml:"index_of_refraction"`
}

type ColorOrTexture struct {
	Opaque  string      `xml:"opaque,attr"`
	Color   *SIDFloats  `xml:"color"`
	Param   *ParamRef   `xml:"param"`
	Texture *TextureRef `xml:"texture"`
}

type FloatOrParam struct {
	Float *SIDFloats `xml:"float"`
	Param *ParamRef  `xml:"param"`
}

type SIDFloats struct {
	SID    string    `xml:"sid,attr"`
	Values FloatList `xml:",chardata"`
}

type ParamRef struct {
	Ref string `xml:"ref,attr"`
}

type TextureRef struct {
	Texture  string `xml:"texture,attr"`
	TexCoord string `xml:"texcoord,attr"`
}

type NewParam struct {
	SID       string     `xml:"sid,attr"`
	Semantic  string     `xml:"semantic"`
	Float     *FloatList `xml:"float"`
	Float2    *FloatList `xml:"float2"`
	Float3    *FloatList `xml:"float3"`
	Float4    *FloatList `xml:"float4"`
	Surface   *Surface   `xml:"surface"`
	Sampler2D *Sampler2D `xml:"sampler2D"`
}

// Floats returns the value of a float..float4 param.
func (p *NewParam) Floats() []float32 {
	for _, f := range []*FloatList{p.Float, p.Float2, p.Float3, p.Float4} {
		if f != nil {
			return *f
		}
	}
	return nil
}

type Surface struct {
	Type     string `xml:"type,attr"`
	InitFrom string `xml:"init_from"`
}

type Sampler2D struct {
	Source        string       `xml:"source"`
	InstanceImage *InstanceURL `xml:"instance_image"`
	WrapS         string       `xml:"wrap_s"`
	WrapT         string       `xml:"wrap_t"`
	MinFilter     string       `xml:"minfilter"`
	MagFilter     string       `xml:"magfilter"`
	MipFilter     string       `xml:"mipfilter"`
}

type Extra struct {
	Techniques []*ExtraTechnique `xml:"technique"`
}

type ExtraTechnique struct {
	Profile  string        `xml:"profile,attr"`
	Elements []*AnyElement `xml:",any"`
}

type AnyElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Param returns the text of the first child element named name.
func (t *ExtraTechnique) Param(name string) (string, bool) {
	for _, e := range t.Elements {
		if e.XMLName.Local == name {
			return strings.TrimSpace(e.Value), true
		}
	}
	return "", false
}

type Material struct {
	ID             string       `xml:"id,attr"`
	Name           string       `xml:"name,attr"`
	InstanceEffect *InstanceURL `xml:"instance_effect"`
}

type Geometry struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Mesh *Mesh  `xml:"mesh"`
}

type Mesh struct {
	Sources    []*Source    `xml:"source"`
	Vertices   *Vertices    `xml:"vertices"`
	Lines      []*Primitive `xml:"lines"`
	LineStrips []*Primitive `xml:"linestrips"`
	Polygons   []*Primitive `xml:"polygons"`
	Polylist   []*Primitive `xml:"polylist"`
	Triangles  []*Primitive `xml:"triangles"`
	Trifans    []*Primitive `xml:"trifans"`
	Tristrips  []*Primitive `xml:"tristrips"`
}

type PrimitiveKind int

const (
	PrimitiveLines PrimitiveKind = iota
	PrimitiveLineStrips
	PrimitivePolygons
	PrimitivePolylist
	PrimitiveTriangles
	PrimitiveTrifans
	PrimitiveTristrips
)

var primitiveKindNames = []string{"lines", "linestrips", "polygons", "polylist", "triangles", "trifans", "tristrips"}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveKindNames) {
		return primitiveKindNames[k]
	}
	return "unknown"
}

// Primitives returns all primitive groups with Kind set, in the order
// triangles, trifans, tristrips, polygons, polylist, linestrips, lines.
func (m *Mesh) Primitives() []*Primitive {
	groups := []struct {
		kind  PrimitiveKind
		prims []*Primitive
	}{
		{PrimitiveTriangles, m.Triangles},
		{PrimitiveTrifans, m.Trifans},
		{PrimitiveTristrips, m.Tristrips},
		{PrimitivePolygons, m.Polygons},
		{PrimitivePolylist, m.Polylist},
		{PrimitiveLineStrips, m.LineStrips},
		{PrimitiveLines, m.Lines},
	}
	var prims []*Primitive
	for _, g := range groups {
		for _, p := range g.prims {
			p.Kind = g.kind
			prims = append(prims, p)
		}
	}
	return prims
}

type Primitive struct {
	Kind     PrimitiveKind `xml:"-"`
	Name     string        `xml:"name,attr"`
	Count    int           `xml:"count,attr"`
	Material string        `xml:"material,attr"`
	Inputs   []*Input      `xml:"input"`
	VCount   IntList       `xml:"vcount"`
	P        []IntList     `xml:"p"`
}

type Input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
	Set      int    `xml:"set,attr"`
}

type Vertices struct {
	ID     string   `xml:"id,attr"`
	Inputs []*Input `xml:"input"`
}

type Source struct {
	ID         string      `xml:"id,attr"`
	Name       string      `xml:"name,attr"`
	FloatArray *FloatArray `xml:"float_array"`
	IntArray   *IntArray   `xml:"int_array"`
	BoolArray  *BoolArray  `xml:"bool_array"`
	Accessor   *Accessor   `xml:"technique_common>accessor"`
}

type FloatArray struct {
	ID     string    `xml:"id,attr"`
	Count  int       `xml:"count,attr"`
	Values FloatList `xml:",chardata"`
}

type IntArray struct {
	ID     string  `xml:"id,attr"`
	Count  int     `xml:"count,attr"`
	Values IntList `xml:",chardata"`
}

type BoolArray struct {
	ID     string   `xml:"id,attr"`
	Count  int      `xml:"count,attr"`
	Values BoolList `xml:",chardata"`
}

type Accessor struct {
	Source string   `xml:"source,attr"`
	Count  int      `xml:"count,attr"`
	Offset int      `xml:"offset,attr"`
	Stride int      `xml:"stride,attr"`
	Params []*Param `xml:"param"`
}

type Param struct {
	Name string `xml:"name,attr"`
	SID  string `xml:"sid,attr"`
	Type string `xml:"type,attr"`
}

type Controller struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Skin  *Skin  `xml:"skin"`
	Morph *Morph `xml:"morph"`
}

type Skin struct {
	Source string `xml:"source,attr"`
}

type Morph struct {
	Source string `xml:"source,attr"`
	Method string `xml:"method,attr"`
}

type VisualScene struct {
	ID    string  `xml:"id,attr"`
	Name  string  `xml:"name,attr"`
	Nodes []*Node `xml:"node"`
}

type InstanceGeometry struct {
	URL          string        `xml:"url,attr"`
	Name         string        `xml:"name,attr"`
	BindMaterial *BindMaterial `xml:"bind_material"`
}

type BindMaterial struct {
	InstanceMaterials []*InstanceMaterial `xml:"technique_common>instance_material"`
}

type InstanceMaterial struct {
	Symbol           string             `xml:"symbol,attr"`
	Target           string             `xml:"target,attr"`
	BindVertexInputs []*BindVertexInput `xml:"bind_vertex_input"`
}

type BindVertexInput struct {
	Semantic      string `xml:"semantic,attr"`
	InputSemantic string `xml:"input_semantic,attr"`
	InputSet      int    `xml:"input_set,attr"`
}
