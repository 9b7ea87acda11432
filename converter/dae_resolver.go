package converter

import (
	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/model"
)

// Every resolve* method caches its result by id, including failures
// (stored as nil) so each broken reference is reported once.

func (c *daeToModel) parseImages() {
	for _, img := range c.doc.Images {
		c.resolveImage(img.ID)
	}
}

func (c *daeToModel) parseEffects() {
	for _, e := range c.doc.Effects {
		c.resolveEffect("#" + e.ID)
	}
}

func (c *daeToModel) parseMaterials() {
	for _, m := range c.doc.Materials {
		c.resolveMaterial("#" + m.ID)
	}
}

func (c *daeToModel) resolveImage(id string) *model.Image {
	if img, ok := c.imagesByID[id]; ok {
		return img
	}
	c.imagesByID[id] = nil
	image := c.doc.Image(id)
	if image == nil {
		c.errorf("image %q not found", id)
		return nil
	}
	img, err := c.images.get(image.URI())
	if err != nil {
		c.errorf("image %q: %v", id, err)
		return nil
	}
	c.imagesByID[id] = img
	return img
}

func (c *daeToModel) resolveSource(uri string) *daeSource {
	if s, ok := c.sources[uri]; ok {
		return s
	}
	c.sources[uri] = nil
	src := c.doc.Source(uri)
	if src == nil {
		c.errorf("source %q not found", uri)
		return nil
	}
	s, err := newDAESource(src)
	if err != nil {
		c.errorf("%v", err)
		return nil
	}
	c.sources[uri] = s
	return s
}

func (c *daeToModel) resolveMesh(uri string) *daeMesh {
	if m, ok := c.meshes[uri]; ok {
		return m
	}
	c.meshes[uri] = nil
	g := c.doc.Geometry(uri)
	if g == nil {
		c.errorf("geometry %q not found", uri)
		return nil
	}
	if g.Mesh == nil {
		c.warnf("geometry %q has no <mesh>", uri)
		return nil
	}
	m := c.parseMesh(g)
	c.meshes[uri] = m
	return m
}

func (c *daeToModel) resolveEffect(uri string) *daeEffect {
	if e, ok := c.effects[uri]; ok {
		return e
	}
	c.effects[uri] = nil
	e := c.doc.Effect(uri)
	if e == nil {
		c.errorf("effect %q not found", uri)
		return nil
	}
	de := c.parseEffect(e)
	c.effects[uri] = de
	return de
}

type daeMaterial struct {
	id     string
	effect *daeEffect
	fx     *model.Effect
}

func (c *daeToModel) resolveMaterial(uri string) *daeMaterial {
	if m, ok := c.materials[uri]; ok {
		return m
	}
	c.materials[uri] = nil
	mat := c.doc.Material(uri)
	if mat == nil {
		c.errorf("material %q not found", uri)
		return nil
	}
	if mat.InstanceEffect == nil {
		c.warnf("material %q has no <instance_effect>", uri)
		return nil
	}
	e := c.resolveEffect(mat.InstanceEffect.URL)
	if e == nil {
		return nil
	}
	m := &daeMaterial{id: mat.ID, effect: e}
	c.materials[uri] = m
	return m
}

// materialEffect returns the render effect shared by all actors using m.
func (c *daeToModel) materialEffect(m *daeMaterial) *model.Effect {
	if m.fx == nil {
		m.fx = c.newEffect(m.id, m.effect.technique)
	}
	return m.fx
}

func (c *daeToModel) lookupNode(uri string) *dae.Node {
	n := c.doc.Node(uri)
	if n == nil {
		c.errorf("node %q not found", uri)
	}
	return n
}
