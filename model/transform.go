package model

import "github.com/binzume/daeconv/geom"

// Transform is a node of the transform hierarchy.
type Transform struct {
	Local geom.Matrix4
	World geom.Matrix4

	parent   *Transform
	children []*Transform
}

func NewTransform() *Transform {
	return &Transform{Local: *geom.NewMatrix4(), World: *geom.NewMatrix4()}
}

func (t *Transform) Parent() *Transform {
	return t.parent
}

func (t *Transform) Children() []*Transform {
	return t.children
}

func (t *Transform) AddChild(c *Transform) {
	c.RemoveFromParent()
	c.parent = t
	t.children = append(t.children, c)
}

func (t *Transform) RemoveChild(c *Transform) {
	for i, child := range t.children {
		if child == c {
			t.children = append(t.children[:i], t.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (t *Transform) RemoveFromParent() {
	if t.parent != nil {
		t.parent.RemoveChild(t)
	}
}

func (t *Transform) EraseAllChildrenRecursive() {
	for _, c := range t.children {
		c.EraseAllChildrenRecursive()
		c.parent = nil
	}
	t.children = nil
}

// PostMultiply sets Local = Local * m.
func (t *Transform) PostMultiply(m *geom.Matrix4) {
	t.Local = *t.Local.Mul(m)
}

// PreMultiply sets Local = m * Local.
func (t *Transform) PreMultiply(m *geom.Matrix4) {
	t.Local = *m.Mul(&t.Local)
}

// ComputeWorldMatrixRecursive updates World of t and all descendants.
// parent may be nil for the root.
func (t *Transform) ComputeWorldMatrixRecursive(parent *geom.Matrix4) {
	if parent != nil {
		t.World = *parent.Mul(&t.Local)
	} else {
		t.World = t.Local
	}
	for _, c := range t.children {
		c.ComputeWorldMatrixRecursive(&t.World)
	}
}

// Walk visits t and its descendants depth first.
func (t *Transform) Walk(f func(*Transform)) {
	f(t)
	for _, c := range t.children {
		c.Walk(f)
	}
}
