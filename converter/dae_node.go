package converter

import (
	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/model"
)

type daeNode struct {
	name      string
	transform *model.Transform
	actors    []*model.Actor
}

// visitNode builds a node under parent. Instanced nodes become fresh subtrees.
func (c *daeToModel) visitNode(n *dae.Node, parent *daeNode) {
	if c.activeNodes[n] {
		c.errorf("node %q instantiates itself", n.ID)
		return
	}
	c.activeNodes[n] = true
	defer delete(c.activeNodes, n)

	node := &daeNode{name: n.Name, transform: model.NewTransform()}
	if node.name == "" {
		node.name = n.ID
	}
	c.nodes = append(c.nodes, node)
	parent.transform.AddChild(node.transform)

	for _, inst := range n.InstanceGeometries {
		mesh := c.resolveMesh(inst.URL)
		if mesh == nil {
			continue
		}
		c.bindMaterials(node, mesh, inst.BindMaterial)
	}

	if c.ExtractSkins {
		for _, inst := range n.InstanceControllers {
			mesh := c.controllerMesh(inst.URL)
			if mesh == nil {
				continue
			}
				c.bindMaterials(node, mesh, inst.BindMaterial)
		}
	}

	// transforms are post-multiplied in document order
	for _, op := range n.Transforms {
		c.applyTransform(node.transform, op)
	}

	for _, inst := range n.InstanceNodes {
		if target := c.lookupNode(inst.URL); target != nil {
			c.visitNode(target, node)
		}
	}
	for _, child := range n.Nodes {
		c.visitNode(child, node)
	}
}

// controllerMesh returns the source geometry of a skin or morph controller.
func (c *daeToModel) controllerMesh(uri string) *daeMesh {
	ctrl := c.doc.Controller(uri)
	if ctrl == nil {
		c.errorf("controller %q not found", uri)
		return nil
	}
	switch {
	case ctrl.Skin != nil:
		return c.resolveMesh(ctrl.Skin.Source)
	case ctrl.Morph != nil:
		return c.resolveMesh(ctrl.Morph.Source)
	}
	c.warnf("controller %q has no <skin> or <morph>", uri)
	return nil
}

var transformValueCount = map[dae.TransformKind]int{
	dae.TransformMatrix:    16,
	dae.TransformTranslate: 3,
	dae.TransformRotate:    4,
	dae.TransformScale:     3,
	dae.TransformLookAt:    9,
}

func (c *daeToModel) applyTransform(t *model.Transform, op *dae.TransformOp) {
	v := op.Values
	if op.Kind == dae.TransformSkew {
		c.errorf("<skew> transform not supported")
		return
	}
	if len(v) < transformValueCount[op.Kind] {
		c.warnf("transform %q has %d values, %d required", op.SID, len(v), transformValueCount[op.Kind])
		return
	}
	switch op.Kind {
	case dae.TransformMatrix:
		// row-major in the document
		t.PostMultiply(geom.NewMatrix4FromSlice(v).Transposed())
	case dae.TransformTranslate:
		t.PostMultiply(geom.NewTranslateMatrix4(v[0], v[1], v[2]))
	case dae.TransformRotate:
		t.PostMultiply(geom.NewAxisRotationMatrix4(v[3], geom.NewVector3(v[0], v[1], v[2])))
	case dae.TransformScale:
		t.PostMultiply(geom.NewScaleMatrix4(v[0], v[1], v[2]))
	case dae.TransformLookAt:
		eye := geom.NewVector3(v[0], v[1], v[2])
		center := geom.NewVector3(v[3], v[4], v[5])
		up := geom.NewVector3(v[6], v[7], v[8])
		t.PreMultiply(geom.NewLookAtMatrix4(eye, center, up).Inverse())
	}
}

// bindMaterials creates one actor per primitive of mesh.
func (c *daeToModel) bindMaterials(node *daeNode, mesh *daeMesh, bind *dae.BindMaterial) {
	materials := map[string]*daeMaterial{}
	if bind != nil {
		for _, im := range bind.InstanceMaterials {
			if m := c.resolveMaterial(im.Target); m != nil {
				materials[im.Symbol] = m
			}
		}
	}

	for _, prim := range mesh.primitives {
		fx := c.defaultEffect
		if m, ok := materials[prim.material]; ok {
			fx = c.materialEffect(m)
		} else {
			c.warnf("material symbol %q could not be resolved", prim.material)
		}
		node.actors = append(node.actors, &model.Actor{
			Name:      node.name,
			Geometry:  prim.geometry,
			Effect:    fx,
			Transform: node.transform,
		})
	}
}
