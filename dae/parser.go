package dae

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Parse decodes a COLLADA document and indexes every element id.
func Parse(r io.Reader) (*Collada, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	var doc Collada
	if err := d.Decode(&doc); err != nil {
		return nil, err
	}
	doc.buildIndex()
	return &doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// FragmentID returns the id part of a local URI ("#id").
// External document references are not supported.
func FragmentID(uri string) (string, bool) {
	if !strings.HasPrefix(uri, "#") {
		return "", false
	}
	return uri[1:], len(uri) > 1
}

func (doc *Collada) add(id string, v interface{}) {
	if id == "" {
		return
	}
	if _, exists := doc.index[id]; !exists {
		doc.index[id] = v
	}
}

func (doc *Collada) addImages(images []*Image) {
	for _, img := range images {
		doc.add(img.ID, img)
	}
}

func (doc *Collada) addNodes(nodes []*Node) {
	for _, n := range nodes {
		doc.add(n.ID, n)
		doc.addNodes(n.Nodes)
	}
}

func (doc *Collada) buildIndex() {
	doc.index = map[string]interface{}{}
	doc.addImages(doc.Images)
	for _, e := range doc.Effects {
		doc.add(e.ID, e)
		doc.addImages(e.Images)
		if e.ProfileCommon != nil {
			doc.addImages(e.ProfileCommon.Images)
			if e.ProfileCommon.Technique != nil {
				doc.addImages(e.ProfileCommon.Technique.Images)
			}
		}
	}
	for _, m := range doc.Materials {
		doc.add(m.ID, m)
	}
	for _, g := range doc.Geometries {
		doc.add(g.ID, g)
		if g.Mesh == nil {
			continue
		}
		for _, s := range g.Mesh.Sources {
			doc.add(s.ID, s)
		}
		if g.Mesh.Vertices != nil {
			doc.add(g.Mesh.Vertices.ID, g.Mesh.Vertices)
		}
	}
	for _, c := range doc.Controllers {
		doc.add(c.ID, c)
	}
	for _, s := range doc.VisualScenes {
		doc.add(s.ID, s)
		doc.addNodes(s.Nodes)
	}
	doc.addNodes(doc.Nodes)
}

func (doc *Collada) lookupURI(uri string) interface{} {
	id, ok := FragmentID(uri)
	if !ok {
		return nil
	}
	return doc.index[id]
}

func (doc *Collada) Image(id string) *Image {
	v, _ := doc.index[id].(*Image)
	return v
}

func (doc *Collada) Effect(uri string) *Effect {
	v, _ := doc.lookupURI(uri).(*Effect)
	return v
}

func (doc *Collada) Material(uri string) *Material {
	v, _ := doc.lookupURI(uri).(*Material)
	return v
}

func (doc *Collada) Geometry(uri string) *Geometry {
	v, _ := doc.lookupURI(uri).(*Geometry)
	return v
}

func (doc *Collada) Source(uri string) *Source {
	v, _ := doc.lookupURI(uri).(*Source)
	return v
}

func (doc *Collada) Vertices(uri string) *Vertices {
	v, _ := doc.lookupURI(uri).(*Vertices)
	return v
}

func (doc *Collada) Controller(uri string) *Controller {
	v, _ := doc.lookupURI(uri).(*Controller)
	return v
}

func (doc *Collada) Node(uri string) *Node {
	v, _ := doc.lookupURI(uri).(*Node)
	return v
}

// VisualScene returns the scene instantiated by <scene> or the first visual scene.
func (doc *Collada) VisualScene() *VisualScene {
	if doc.Scene != nil && doc.Scene.InstanceVisualScene != nil {
		if v, ok := doc.lookupURI(doc.Scene.InstanceVisualScene.URL).(*VisualScene); ok {
			return v
		}
	}
	if len(doc.VisualScenes) > 0 {
		return doc.VisualScenes[0]
	}
	return nil
}
