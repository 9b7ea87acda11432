package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/draw"
)

const unlitMaterialExt = "KHR_materials_unlit"

type ModelToGLTFOption struct {
	Scale      float32 // Default: 1.0
	ForceUnlit bool

	// Write world matrices for every actor even if the hierarchy was kept.
	IgnoreHierarchy bool

	TextureResolutionLimit int     // 0: unlimited
	TextureScale           float32 // Default: 1.0
	TextureJPEG            bool    // opaque textures only
}

type modelToGltf struct {
	*ModelToGLTFOption
	*gltf.Document

	meshes     map[meshKey]*uint32
	attributes map[*model.Geometry]map[string]uint32
	materials  map[*model.Effect]uint32
	textures   map[*model.Texture]uint32
	images     map[*model.Image]uint32
	useUnlit   bool
}

type meshKey struct {
	geometry *model.Geometry
	effect   *model.Effect
}

func NewModelToGLTFConverter(options *ModelToGLTFOption) *modelToGltf {
	if options == nil {
		options = &ModelToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 1.0
	}
	if options.TextureScale == 0 {
		options.TextureScale = 1.0
	}
	return &modelToGltf{ModelToGLTFOption: options}
}

var primitiveModes = map[model.PrimitiveType]gltf.PrimitiveMode{
	model.PrimitivePoints:        gltf.PrimitivePoints,
	model.PrimitiveLines:         gltf.PrimitiveLines,
	model.PrimitiveLineStrip:     gltf.PrimitiveLineStrip,
	model.PrimitiveTriangles:     gltf.PrimitiveTriangles,
	model.PrimitiveTriangleStrip: gltf.PrimitiveTriangleStrip,
	model.PrimitiveTriangleFan:   gltf.PrimitiveTriangleFan,
}

var minFilters = map[model.TextureFilter]gltf.MinFilter{
	model.FilterNearest:              gltf.MinNearest,
	model.FilterLinear:               gltf.MinLinear,
	model.FilterNearestMipmapNearest: gltf.MinNearestMipMapNearest,
	model.FilterLinearMipmapNearest:  gltf.MinLinearMipMapNearest,
	model.FilterNearestMipmapLinear:  gltf.MinNearestMipMapLinear,
	model.FilterLinearMipmapLinear:   gltf.MinLinearMipMapLinear,
}

var wrapModes = map[model.TextureWrap]gltf.WrappingMode{
	model.WrapRepeat:         gltf.WrapRepeat,
	model.WrapMirroredRepeat: gltf.WrapMirroredRepeat,
	model.WrapClamp:          gltf.WrapClampToEdge,
	model.WrapClampToEdge:    gltf.WrapClampToEdge,
	model.WrapClampToBorder:  gltf.WrapClampToEdge,
}

func (m *modelToGltf) addNode(node *gltf.Node) uint32 {
	m.Nodes = append(m.Nodes, node)
	return uint32(len(m.Nodes) - 1)
}

func (m *modelToGltf) actorNode(actor *model.Actor, matrix *geom.Matrix4) uint32 {
	node := &gltf.Node{Name: actor.Name}
	matrix.ToArray(node.Matrix[:])
	node.Mesh = m.convertMesh(actor)
	return m.addNode(node)
}

func (m *modelToGltf) convertTransform(t *model.Transform, actors map[*model.Transform][]*model.Actor) uint32 {
	node := &gltf.Node{}
	t.Local.ToArray(node.Matrix[:])
	id := m.addNode(node)
	for _, c := range t.Children() {
		node.Children = append(node.Children, m.convertTransform(c, actors))
	}
	for _, a := range actors[t] {
		if node.Name == "" {
			node.Name = a.Name
		}
		node.Children = append(node.Children, m.actorNode(a, geom.NewMatrix4()))
	}
	return id
}

func (m *modelToGltf) convertMesh(actor *model.Actor) *uint32 {
	g := actor.Geometry
	if g == nil || g.VertexArray == nil || g.VertexCount() == 0 {
		return nil
	}
	key := meshKey{geometry: g, effect: actor.Effect}
	if id, ok := m.meshes[key]; ok {
		return id
	}

	attributes := m.writeAttributes(g)
	var material *uint32
	if actor.Effect != nil {
		material = gltf.Index(m.convertMaterial(actor.Effect))
	}
	mesh := &gltf.Mesh{Name: g.Name}
	for _, dc := range g.DrawCalls {
		var indices []uint32
		mode, ok := primitiveModes[dc.Type]
		if dc.Type == model.PrimitivePolygon {
			mode = gltf.PrimitiveTriangles
			for _, tri := range g.Triangles(dc) {
				indices = append(indices, tri[:]...)
			}
		} else if ok {
			indices = dc.Indices
		} else {
			log.Print("Unsupported draw call: ", dc.Type)
			continue
		}
		if len(indices) == 0 {
			continue
		}
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(m.Document, indices)),
			Attributes: attributes,
			Material:   material,
			Mode:       mode,
		})
	}
	if len(mesh.Primitives) == 0 {
		m.meshes[key] = nil
		return nil
	}
	m.Meshes = append(m.Meshes, mesh)
	id := gltf.Index(uint32(len(m.Meshes) - 1))
	m.meshes[key] = id
	return id
}

func (m *modelToGltf) writeAttributes(g *model.Geometry) map[string]uint32 {
	if attributes, ok := m.attributes[g]; ok {
		return attributes
	}
	n := g.VertexCount()
	attributes := map[string]uint32{}

	positions := make([][3]float32, n)
	for i := range positions {
		g.VertexArray.Vector3(i).ToArray(positions[i][:])
	}
	attributes["POSITION"] = modeler.WritePosition(m.Document, positions)

	if g.NormalArray != nil && g.NormalArray.Len() == n && g.NormalArray.Components == 3 {
		normals := make([][3]float32, n)
		for i := range normals {
			g.NormalArray.Vector3(i).Normalized().ToArray(normals[i][:])
		}
		attributes["NORMAL"] = modeler.WriteNormal(m.Document, normals)
	}

	unit := 0
	for _, arr := range g.TexCoordArrays {
		if arr == nil || arr.Len() != n || arr.Components < 2 {
			continue
		}
		uv := make([][2]float32, n)
		for i := range uv {
			v := arr.At(i)
			uv[i] = [2]float32{v[0], 1 - v[1]}
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", unit)] = modeler.WriteTextureCoord(m.Document, uv)
		unit++
	}

	if g.ColorArray != nil && g.ColorArray.Len() == n && g.ColorArray.Components >= 3 {
		colors := make([][4]float32, n)
		for i := range colors {
			colors[i] = [4]float32{0, 0, 0, 1}
			copy(colors[i][:], g.ColorArray.At(i))
		}
		attributes["COLOR_0"] = modeler.WriteAccessor(m.Document, gltf.TargetArrayBuffer, colors)
	}

	m.attributes[g] = attributes
	return attributes
}

func (m *modelToGltf) convertMaterial(fx *model.Effect) uint32 {
	if id, ok := m.materials[fx]; ok {
		return id
	}
	mat := &fx.Material
	unlit := m.ForceUnlit || isFlatColor(fx)
	base := mat.Diffuse
	if isFlatColor(fx) {
		base = mat.Emission
	}
	var mf float32 = 0
	rf := roughness(fx.Shading, mat.Shininess)
	color := base.ToArray()
	mm := &gltf.Material{
		Name: fx.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			RoughnessFactor: &rf,
			MetallicFactor:  &mf,
		},
		DoubleSided: fx.DoubleSided || !fx.CullFace,
	}
	if !isFlatColor(fx) {
		mm.EmissiveFactor = [3]float32{clamp(mat.Emission.X, 0, 1), clamp(mat.Emission.Y, 0, 1), clamp(mat.Emission.Z, 0, 1)}
	}
	if fx.Blend || base.W < 0.99 {
		mm.AlphaMode = gltf.AlphaBlend
	}
	if unlit {
		mm.Extensions = map[string]interface{}{unlitMaterialExt: map[string]string{}}
		if !m.useUnlit {
			m.useUnlit = true
			m.ExtensionsUsed = append(m.ExtensionsUsed, unlitMaterialExt)
		}
	}

	if fx.Texture != nil && fx.Texture.Image != nil {
		if tex, err := m.addTexture(fx.Texture); err == nil {
			mm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: tex}
		} else {
			log.Print("Texture write error:", err)
		}
	}

	m.Materials = append(m.Materials, mm)
	id := uint32(len(m.Materials) - 1)
	m.materials[fx] = id
	return id
}

// isFlatColor reports whether fx renders its emission color only.
func isFlatColor(fx *model.Effect) bool {
	if fx.Shading == model.ShadingConstant || !fx.Lighting {
		return true
	}
	d := fx.Material.Diffuse.XYZ()
	return d.LenSqr() == 0 && fx.Material.Emission.XYZ().LenSqr() > 0
}

// roughness approximates a specular exponent as a PBR roughness factor.
func roughness(shading model.ShadingModel, shininess float32) float32 {
	if shading != model.ShadingPhong && shading != model.ShadingBlinn || shininess <= 0 {
		return 1
	}
	return float32(math.Sqrt(2 / (float64(shininess) + 2)))
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

func scaleTexture(img image.Image, mime string, scale float32, limit int) (io.Reader, error) {
	rect := img.Bounds()

	if limit > 0 {
		sz := int(float32(rect.Dx()) * scale)
		if h := int(float32(rect.Dy()) * scale); h > sz {
			sz = h
		}
		if sz > limit {
			scale *= float32(limit) / float32(sz)
		}
	}

	if scale != 1.0 {
		w := int(float32(rect.Dx()) * scale)
		h := int(float32(rect.Dy()) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Over, nil)
		img = dst
	}

	w := new(bytes.Buffer)
	var err error
	if mime == "image/png" {
		err = png.Encode(w, img)
	} else {
		err = jpeg.Encode(w, img, nil)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (m *modelToGltf) addImage(img *model.Image) (uint32, error) {
	if id, ok := m.images[img]; ok {
		return id, nil
	}
	mimeType := "image/png"
	name := strings.TrimSuffix(filepath.Base(img.Path), filepath.Ext(img.Path)) + ".png"
	if m.TextureJPEG && !hasAlpha(img.Image) {
		mimeType = "image/jpeg"
		name = strings.TrimSuffix(name, ".png") + ".jpg"
	}
	r, err := scaleTexture(img.Image, mimeType, m.TextureScale, m.TextureResolutionLimit)
	if err != nil {
		return 0, err
	}
	id, err := modeler.WriteImage(m.Document, name, mimeType, r)
	if err != nil {
		return 0, err
	}
	m.Buffers[0].ByteLength = uint32(len(m.Buffers[0].Data)) // avoid AddImage bug
	m.images[img] = id
	return id, nil
}

func (m *modelToGltf) addTexture(tex *model.Texture) (uint32, error) {
	if id, ok := m.textures[tex]; ok {
		return id, nil
	}
	img, err := m.addImage(tex.Image)
	if err != nil {
		return 0, err
	}
	mag := gltf.MagLinear
	if tex.MagFilter == model.FilterNearest {
		mag = gltf.MagNearest
	}
	min := minFilters[tex.MinFilter]
	if !tex.Mipmaps && tex.MinFilter.IsMipmap() {
		min = gltf.MinLinear
	}
	m.Samplers = append(m.Samplers, &gltf.Sampler{
		MagFilter: mag,
		MinFilter: min,
		WrapS:     wrapModes[tex.WrapS],
		WrapT:     wrapModes[tex.WrapT],
	})
	m.Textures = append(m.Textures, &gltf.Texture{
		Sampler: gltf.Index(uint32(len(m.Samplers) - 1)),
		Source:  gltf.Index(img),
	})
	id := uint32(len(m.Textures) - 1)
	m.textures[tex] = id
	return id, nil
}

// Convert writes the actors of res into a new glTF document.
// Resources with a hierarchy keep it unless IgnoreHierarchy is set.
func (m *modelToGltf) Convert(res *model.Resources) (*gltf.Document, error) {
	m.Document = gltf.NewDocument()
	m.meshes = map[meshKey]*uint32{}
	m.attributes = map[*model.Geometry]map[string]uint32{}
	m.materials = map[*model.Effect]uint32{}
	m.textures = map[*model.Texture]uint32{}
	m.images = map[*model.Image]uint32{}
	m.useUnlit = false

	scale := geom.NewScaleMatrix4(m.Scale, m.Scale, m.Scale)
	if res.Root != nil && !m.IgnoreHierarchy {
		actors := map[*model.Transform][]*model.Actor{}
		for _, a := range res.Actors {
			actors[a.Transform] = append(actors[a.Transform], a)
		}
		root := m.convertTransform(res.Root, actors)
		node := m.Nodes[root]
		node.Name = "Root"
		scale.Mul(&res.Root.Local).ToArray(node.Matrix[:])
		m.Scenes[0].Nodes = append(m.Scenes[0].Nodes, root)
	} else {
		for _, a := range res.Actors {
			world := a.Transform.World
			m.Scenes[0].Nodes = append(m.Scenes[0].Nodes, m.actorNode(a, scale.Mul(&world)))
		}
	}
	return m.Document, nil
}
