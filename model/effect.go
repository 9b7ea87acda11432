package model

import "github.com/binzume/daeconv/geom"

type ShadingModel int

const (
	ShadingUnknown ShadingModel = iota
	ShadingConstant
	ShadingLambert
	ShadingPhong
	ShadingBlinn
)

var shadingModelNames = []string{"unknown", "constant", "lambert", "phong", "blinn"}

func (s ShadingModel) String() string {
	if s >= 0 && int(s) < len(shadingModelNames) {
		return shadingModelNames[s]
	}
	return "unknown"
}

type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// Fuchsia is used for materials that could not be resolved.
var Fuchsia = geom.Vector4{X: 1, Y: 0, Z: 1, W: 1}

type Material struct {
	Emission  geom.Vector4
	Ambient   geom.Vector4
	Diffuse   geom.Vector4
	Specular  geom.Vector4
	Shininess float32
}

func NewMaterial() Material {
	return Material{
		Emission: geom.Vector4{W: 1},
		Ambient:  geom.Vector4{X: 0.2, Y: 0.2, Z: 0.2, W: 1},
		Diffuse:  geom.Vector4{X: 0.8, Y: 0.8, Z: 0.8, W: 1},
		Specular: geom.Vector4{W: 1},
	}
}

// SetFlatColor makes the material render c regardless of lighting.
func (m *Material) SetFlatColor(c geom.Vector4) {
	m.Emission = c
	m.Ambient = geom.Vector4{W: c.W}
	m.Diffuse = geom.Vector4{W: c.W}
	m.Specular = geom.Vector4{W: c.W}
	m.Shininess = 0
}

func (m *Material) colors() []*geom.Vector4 {
	return []*geom.Vector4{&m.Emission, &m.Ambient, &m.Diffuse, &m.Specular}
}

// SetTransparency sets the alpha of every color.
func (m *Material) SetTransparency(a float32) {
	for _, c := range m.colors() {
		c.W = a
	}
}

// MultiplyTransparency scales the alpha of every color.
func (m *Material) MultiplyTransparency(a float32) {
	for _, c := range m.colors() {
		c.W *= a
	}
}

// Effect is the render state and material shared by actors.
type Effect struct {
	Name     string
	Shading  ShadingModel
	Material Material
	Texture  *Texture
	// TexCoord names the texture coordinate set bound to Texture.
	TexCoord string

	Lighting          bool
	DepthTest         bool
	Blend             bool
	LightModelTwoSide bool
	CullFace          bool
	DoubleSided       bool
	PolygonMode       PolygonMode
}

func NewEffect(name string) *Effect {
	return &Effect{Name: name, Material: NewMaterial(), DepthTest: true}
}
