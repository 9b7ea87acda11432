package converter

import (
	"strings"

	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/model"
)

type opaqueMode int

const (
	opaqueAOne opaqueMode = iota
	opaqueRGBZero
)

var luminance = geom.Vector4{X: 0.2126, Y: 0.7152, Z: 0.0722}

type colorOrTexture struct {
	color    geom.Vector4
	sampler  *model.Texture
	texCoord string
}

type daeTechnique struct {
	mode model.ShadingModel

	emission    colorOrTexture
	ambient     colorOrTexture
	diffuse     colorOrTexture
	specular    colorOrTexture
	reflective  colorOrTexture
	transparent colorOrTexture

	shininess         float32
	reflectivity      float32
	transparency      float32
	indexOfRefraction float32

	opaque            opaqueMode
	blendingRequested bool
	doubleSided       bool
}

func newDAETechnique() *daeTechnique {
	return &daeTechnique{
		emission:     colorOrTexture{color: geom.Vector4{W: 1}},
		ambient:      colorOrTexture{color: geom.Vector4{W: 1}},
		diffuse:      colorOrTexture{color: geom.Vector4{X: 1, Y: 1, Z: 1, W: 1}},
		specular:     colorOrTexture{color: geom.Vector4{W: 1}},
		shininess:    40,
		reflective:   colorOrTexture{color: geom.Vector4{X: 1, Y: 1, Z: 1, W: 1}},
		transparent:  colorOrTexture{color: geom.Vector4{W: 1}},
		transparency: 1,
		opaque:       opaqueAOne,
	}
}

type daeNewParam struct {
	param    *dae.NewParam
	texture  *model.Texture
	resolved bool
}

type daeEffect struct {
	id            string
	effectParams  map[string]*daeNewParam
	profileParams map[string]*daeNewParam
	technique     *daeTechnique
	imageTextures map[string]*model.Texture
}

func newParamMap(params []*dae.NewParam) map[string]*daeNewParam {
	m := map[string]*daeNewParam{}
	for _, p := range params {
		if p.SID != "" {
			m[p.SID] = &daeNewParam{param: p}
		}
	}
	return m
}

// param resolves sid in the profile scope, then the effect scope.
func (e *daeEffect) param(sid string) *daeNewParam {
	sid = strings.TrimSpace(sid)
	if p, ok := e.profileParams[sid]; ok {
		return p
	}
	return e.effectParams[sid]
}

func (c *daeToModel) parseEffect(e *dae.Effect) *daeEffect {
	de := &daeEffect{id: e.ID, effectParams: newParamMap(e.NewParams)}
	prof := e.ProfileCommon
	if prof == nil {
		return de
	}
	de.profileParams = newParamMap(prof.NewParams)

	if prof.Technique != nil {
		de.technique = c.parseTechnique(de, prof.Technique)
	}
	if de.technique == nil {
		c.errorf("effect %q: technique not supported", e.ID)
		return de
	}

	extras := append(append([]*dae.Extra(nil), prof.Extras...), prof.Technique.Extras...)
	extras = append(extras, e.Extras...)
	for _, extra := range extras {
		for _, t := range extra.Techniques {
			if !strings.Contains(t.Profile, "GOOGLEEARTH") {
				continue
			}
			if v, ok := t.Param("double_sided"); ok && v == "1" {
				de.technique.doubleSided = true
			}
		}
	}
	return de
}

func (c *daeToModel) parseTechnique(e *daeEffect, t *dae.CommonTechnique) *daeTechnique {
	tech := newDAETechnique()
	var sh *dae.Shader
	switch {
	case t.Blinn != nil:
		tech.mode, sh = model.ShadingBlinn, t.Blinn
	case t.Phong != nil:
		tech.mode, sh = model.ShadingPhong, t.Phong
	case t.Lambert != nil:
		tech.mode, sh = model.ShadingLambert, t.Lambert
	case t.Constant != nil:
		tech.mode, sh = model.ShadingConstant, t.Constant
	default:
		return nil
	}

	c.readColor(e, sh.Emission, &tech.emission)
	c.readColor(e, sh.Reflective, &tech.reflective)
	c.readFloat(e, sh.Reflectivity, &tech.reflectivity)
	c.readFloat(e, sh.IndexOfRefraction, &tech.indexOfRefraction)
	if sh.Transparent != nil {
		tech.blendingRequested = true
		c.readColor(e, sh.Transparent, &tech.transparent)
		if sh.Transparent.Opaque != "" && sh.Transparent.Opaque != "A_ONE" {
			tech.opaque = opaqueRGBZero
		}
	}
	if c.readFloat(e, sh.Transparency, &tech.transparency) {
		tech.blendingRequested = true
		if c.asset.invertTransparency {
			tech.transparency = 1 - tech.transparency
		}
	}

	switch tech.mode {
	case model.ShadingConstant:
		tech.ambient.color = geom.Vector4{W: 1}
		tech.diffuse.color = geom.Vector4{W: 1}
		tech.specular.color = geom.Vector4{W: 1}
		tech.shininess = 0
	case model.ShadingLambert:
		c.readColor(e, sh.Ambient, &tech.ambient)
		c.readColor(e, sh.Diffuse, &tech.diffuse)
		tech.specular.color = geom.Vector4{W: 1}
		tech.shininess = 0
	default:
		c.readColor(e, sh.Ambient, &tech.ambient)
		c.readColor(e, sh.Diffuse, &tech.diffuse)
		c.readColor(e, sh.Specular, &tech.specular)
		c.readFloat(e, sh.Shininess, &tech.shininess)
	}
	return tech
}

func colorFromFloats(v []float32) geom.Vector4 {
	col := *geom.NewVector4FromSlice(v)
	if len(v) < 4 {
		col.W = 1
	}
	return col
}

func (c *daeToModel) readColor(e *daeEffect, src *dae.ColorOrTexture, dst *colorOrTexture) {
	if src == nil {
		return
	}
	if src.Color != nil {
		dst.color = colorFromFloats(src.Color.Values)
	} else if src.Param != nil {
		if p := e.param(src.Param.Ref); p != nil && len(p.param.Floats()) > 0 {
			dst.color = colorFromFloats(p.param.Floats())
		} else {
			c.warnf("effect %q: color param %q not found", e.id, src.Param.Ref)
		}
	}
	if src.Texture != nil {
		dst.sampler = c.samplerTexture(e, src.Texture.Texture)
		dst.texCoord = src.Texture.TexCoord
	}
}

func (c *daeToModel) readFloat(e *daeEffect, src *dae.FloatOrParam, dst *float32) bool {
	if src == nil {
		return false
	}
	if src.Float != nil && len(src.Float.Values) > 0 {
		*dst = src.Float.Values[0]
		return true
	}
	if src.Param != nil {
		if p := e.param(src.Param.Ref); p != nil && len(p.param.Floats()) > 0 {
			*dst = p.param.Floats()[0]
			return true
		}
		c.warnf("effect %q: float param %q not found", e.id, src.Param.Ref)
	}
	return false
}

// samplerTexture follows <texture> -> sampler2D -> surface -> image.
// A texture attribute naming an image id directly is accepted too.
func (c *daeToModel) samplerTexture(e *daeEffect, sid string) *model.Texture {
	p := e.param(sid)
	if p == nil || p.param.Sampler2D == nil {
		if c.doc.Image(sid) != nil {
			return c.imageTexture(e, sid)
		}
		c.errorf("effect %q: sampler %q not found", e.id, sid)
		return nil
	}
	if p.resolved {
		return p.texture
	}
	p.resolved = true

	sampler := p.param.Sampler2D
	var img *model.Image
	if source := strings.TrimSpace(sampler.Source); source != "" {
		surface := e.param(source)
		if surface == nil || surface.param.Surface == nil {
			c.errorf("effect %q: surface %q not found", e.id, source)
			return nil
		}
		img = c.resolveImage(strings.TrimSpace(surface.param.Surface.InitFrom))
	} else if sampler.InstanceImage != nil {
		if id, ok := dae.FragmentID(sampler.InstanceImage.URL); ok {
			img = c.resolveImage(id)
		}
	}
	if img == nil {
		return nil
	}
	p.texture = c.newTexture(img, sampler)
	return p.texture
}

func (c *daeToModel) imageTexture(e *daeEffect, id string) *model.Texture {
	if t, ok := e.imageTextures[id]; ok {
		return t
	}
	var t *model.Texture
	if img := c.resolveImage(id); img != nil {
		t = c.newTexture(img, nil)
	}
	if e.imageTextures == nil {
		e.imageTextures = map[string]*model.Texture{}
	}
	e.imageTextures[id] = t
	return t
}

var textureFilters = map[string]model.TextureFilter{
	"NEAREST":                model.FilterNearest,
	"LINEAR":                 model.FilterLinear,
	"NEAREST_MIPMAP_NEAREST": model.FilterNearestMipmapNearest,
	"LINEAR_MIPMAP_NEAREST":  model.FilterLinearMipmapNearest,
	"NEAREST_MIPMAP_LINEAR":  model.FilterNearestMipmapLinear,
	"LINEAR_MIPMAP_LINEAR":   model.FilterLinearMipmapLinear,
}

var textureWraps = map[string]model.TextureWrap{
	"WRAP":   model.WrapRepeat,
	"MIRROR": model.WrapMirroredRepeat,
	"CLAMP":  model.WrapClamp,
	"BORDER": model.WrapClampToBorder,
}

func (c *daeToModel) newTexture(img *model.Image, s *dae.Sampler2D) *model.Texture {
	t := model.NewTexture(img)
	if s != nil {
		if f, ok := textureFilters[strings.TrimSpace(s.MinFilter)]; ok {
			t.MinFilter = f
		}
		if f, ok := textureFilters[strings.TrimSpace(s.MagFilter)]; ok && !f.IsMipmap() {
			t.MagFilter = f
		}
		if w, ok := textureWraps[strings.TrimSpace(s.WrapS)]; ok {
			t.WrapS = w
		}
		if w, ok := textureWraps[strings.TrimSpace(s.WrapT)]; ok {
			t.WrapT = w
		}
	}
	t.Mipmaps = true
	if t.MinFilter == model.FilterLinear || t.MinFilter == model.FilterNearest {
		if c.UseAlwaysMipmapping {
			t.MinFilter = model.FilterLinearMipmapNearest
		} else {
			t.Mipmaps = false
		}
	}
	return t
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// newEffect builds the render state for a material.
func (c *daeToModel) newEffect(name string, tech *daeTechnique) *model.Effect {
	fx := model.NewEffect(name)
	fx.Lighting = true
	fx.DepthTest = true
	fx.LightModelTwoSide = true

	if tech == nil {
		c.errorf("material %q: technique or profile not supported", name)
		fx.Material.Diffuse = model.Fuchsia
		return fx
	}

	fx.Shading = tech.mode
	fx.DoubleSided = tech.doubleSided
	m := &fx.Material
	m.Emission = tech.emission.color
	m.Ambient = tech.ambient.color
	m.Diffuse = tech.diffuse.color
	m.Specular = tech.specular.color
	m.Shininess = clamp(tech.shininess, 0, 128)

	if tech.diffuse.sampler != nil {
		fx.Texture = tech.diffuse.sampler
		fx.TexCoord = tech.diffuse.texCoord
	}

	if c.asset.assumeOpaque {
		m.SetTransparency(1)
		return fx
	}

	var transparency float32
	if tech.opaque == opaqueAOne {
		transparency = tech.transparent.color.W * tech.transparency
	} else {
		rgb := tech.transparent.color
		rgb.W = 0
		transparency = (1 - rgb.Dot(&luminance)) * tech.transparency
	}
	m.MultiplyTransparency(transparency)

	totalAlpha := tech.diffuse.color.W + tech.ambient.color.W + tech.emission.color.W + tech.specular.color.W
	if totalAlpha < 1 || (tech.transparent.sampler != nil && tech.transparent.sampler == tech.diffuse.sampler) {
		fx.Blend = true
	}
	return fx
}
