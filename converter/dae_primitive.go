package converter

import (
	"fmt"

	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/model"
)

const (
	noMaterialSymbol = "<NO_MATERIAL_SPECIFIED>"
	maxInputOffset   = 1 << 16
)

type daeInput struct {
	semantic string
	source   *daeSource
	offset   int
	set      int
}

type daePrimitive struct {
	kind        dae.PrimitiveKind
	material    string
	indexStride int
	channels    []*daeInput
	indices     [][]int
	geometry    *model.Geometry
}

type daeMesh struct {
	vertexInputs []*daeInput
	primitives   []*daePrimitive
}

var drawTypes = map[dae.PrimitiveKind]model.PrimitiveType{
	dae.PrimitiveLines:      model.PrimitiveLines,
	dae.PrimitiveLineStrips: model.PrimitiveLineStrip,
	dae.PrimitivePolygons:   model.PrimitivePolygon,
	dae.PrimitivePolylist:   model.PrimitivePolygon,
	dae.PrimitiveTriangles:  model.PrimitiveTriangles,
	dae.PrimitiveTrifans:    model.PrimitiveTriangleFan,
	dae.PrimitiveTristrips:  model.PrimitiveTriangleStrip,
}

func (c *daeToModel) parseMesh(g *dae.Geometry) *daeMesh {
	mesh := &daeMesh{}
	if v := g.Mesh.Vertices; v != nil {
		for _, in := range v.Inputs {
			src := c.resolveSource(in.Source)
			if src == nil {
				continue
			}
			mesh.vertexInputs = append(mesh.vertexInputs, &daeInput{semantic: in.Semantic, source: src})
		}
	}

	for i, p := range g.Mesh.Primitives() {
		prim := c.assemblePrimitive(mesh, p)
		name := g.Name
		if name == "" {
			name = g.ID
		}
		if i > 0 {
			name = fmt.Sprintf("%s-%d-%s", name, i, prim.material)
		}
		prim.geometry = c.buildGeometry(name, prim)
		mesh.primitives = append(mesh.primitives, prim)
	}
	return mesh
}

// assemblePrimitive expands VERTEX inputs, computes the index stride
// and splits the <p> data into one index stream per draw call.
func (c *daeToModel) assemblePrimitive(mesh *daeMesh, p *dae.Primitive) *daePrimitive {
	prim := &daePrimitive{kind: p.Kind, material: p.Material}
	if prim.material == "" {
		prim.material = noMaterialSymbol
	}

	maxOffset := 0
	for _, in := range p.Inputs {
		if in.Offset < 0 || in.Offset > maxInputOffset {
			c.warnf("%s input %q dropped: offset %d", in.Semantic, in.Source, in.Offset)
			continue
		}
		if in.Offset > maxOffset {
			maxOffset = in.Offset
		}
		if in.Semantic == "VERTEX" {
			for _, v := range mesh.vertexInputs {
				prim.channels = append(prim.channels, &daeInput{semantic: v.semantic, source: v.source, offset: in.Offset, set: in.Set})
			}
			continue
		}
		src := c.resolveSource(in.Source)
		if src == nil {
			c.warnf("%s input %q dropped", in.Semantic, in.Source)
			continue
		}
		prim.channels = append(prim.channels, &daeInput{semantic: in.Semantic, source: src, offset: in.Offset, set: in.Set})
	}
	prim.indexStride = maxOffset + 1

	if p.Kind == dae.PrimitivePolylist {
		if len(p.P) == 0 {
			return prim
		}
		raw := p.P[0]
		pos := 0
		for _, vc := range p.VCount {
			n := vc * prim.indexStride
			if n < 0 || pos+n > len(raw) {
				c.warnf("polylist has fewer indices than <vcount> requires")
				break
			}
			prim.indices = append(prim.indices, raw[pos:pos+n])
			pos += n
		}
		return prim
	}
	for _, ps := range p.P {
		prim.indices = append(prim.indices, ps)
	}
	return prim
}
