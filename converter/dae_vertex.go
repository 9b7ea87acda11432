package converter

import (
	"fmt"

	"github.com/binzume/daeconv/model"
)

const maxVertexChannels = 8

// VertexKey identifies a unique combination of per-channel attribute indices.
// Unused slots are -1.
type VertexKey [maxVertexChannels]int

func newVertexKey() VertexKey {
	var k VertexKey
	for i := range k {
		k[i] = -1
	}
	return k
}

// buildGeometry deduplicates vertex tuples and fills one attribute array
// per usable channel.
func (c *daeToModel) buildGeometry(name string, prim *daePrimitive) *model.Geometry {
	g := &model.Geometry{Name: name}

	channels := prim.channels
	if len(channels) > maxVertexChannels {
		c.warnf("%s: %d inputs, only the first %d are used", name, len(channels), maxVertexChannels)
		channels = channels[:maxVertexChannels]
	}

	vertexIndex := map[VertexKey]uint32{}
	var keys []VertexKey
	drawType := drawTypes[prim.kind]
	for _, stream := range prim.indices {
		dc := model.NewDrawCall(drawType, make([]uint32, 0, len(stream)/prim.indexStride))
		for i := 0; i+prim.indexStride <= len(stream); i += prim.indexStride {
			key := newVertexKey()
			for ch, in := range channels {
				key[ch] = stream[i+in.offset]
			}
			idx, ok := vertexIndex[key]
			if !ok {
				idx = uint32(len(keys))
				vertexIndex[key] = idx
				keys = append(keys, key)
			}
			dc.Indices = append(dc.Indices, idx)
		}
		g.DrawCalls = append(g.DrawCalls, dc)
	}

	texUnit := 0
	for ch, in := range channels {
		size := in.source.DataSize()
		if size < 1 || size > 4 {
			c.warnf("%s: %s@SET%d skipped because parameter count is %d", name, in.semantic, in.set, size)
			continue
		}
		arr := model.NewArray(fmt.Sprintf("%s@SET%d", in.semantic, in.set), size, len(keys))
		switch in.semantic {
		case "POSITION":
			g.VertexArray = arr
		case "NORMAL":
			g.NormalArray = arr
		case "COLOR":
			g.ColorArray = arr
		case "TEXCOORD":
			g.SetTexCoordArray(texUnit, arr)
			texUnit++
		default:
			c.warnf("%s: semantic %q not supported", name, in.semantic)
			continue
		}
		outOfRange := false
		for idx, key := range keys {
			if !in.source.Read(key[ch], arr.At(idx)) {
				outOfRange = true
			}
		}
		if outOfRange {
			c.warnf("%s: %s index out of range", name, arr.Name)
		}
	}

	if g.NormalArray != nil && c.FixBadNormals {
		c.fixBadNormals(g)
	}
	if g.NormalArray == nil && c.ComputeMissingNormals && g.VertexArray != nil {
		g.ComputeNormals()
	}
	return g
}

// fixBadNormals replaces degenerate normals with computed ones, renormalizes
// the rest and flips normals facing away from the geometry.
func (c *daeToModel) fixBadNormals(g *model.Geometry) {
	old := g.NormalArray
	if old.Components != 3 || g.VertexArray == nil {
		return
	}
	computed := g.ComputeNormals()
	fixed := model.NewArray(old.Name, 3, old.Len())
	degenerate, renormalized, flipped := 0, 0, 0
	for i := 0; i < old.Len(); i++ {
		n := old.Vector3(i)
		ref := computed.Vector3(i)
		if l := n.Len(); l < 0.5 {
			n = ref
			degenerate++
		} else if l < 0.9 || l > 1.1 {
			n = n.Normalized()
			renormalized++
		}
		if ref.Dot(n) < -0.1 {
			n = n.Scale(-1)
			flipped++
		}
		fixed.SetVector3(i, n)
	}
	g.NormalArray = fixed
	if degenerate+renormalized+flipped > 0 {
		c.infof("%s: normals fixed: %d degenerate, %d renormalized, %d flipped", g.Name, degenerate, renormalized, flipped)
	}
}
