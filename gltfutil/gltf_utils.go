package gltfutil

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/daeconv/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func Load(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// Save writes .glb files as a single binary, and .gltf files with an
// external .bin buffer next to them.
func Save(doc *gltf.Document, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".glb" {
		if err := ToSingleFile(doc, filepath.Dir(path)); err != nil {
			return err
		}
		return gltf.SaveBinary(doc, path)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, b := range doc.Buffers {
		if b.URI == "" && len(b.Data) > 0 {
			b.URI = base + ".bin"
			if i > 0 {
				b.URI = fmt.Sprintf("%s_%d.bin", base, i)
			}
		}
	}
	return gltf.Save(doc, path)
}

// ToSingleFile embeds buffers and external images into the binary chunk.
func ToSingleFile(doc *gltf.Document, srcDir string) error {
	for _, b := range doc.Buffers {
		b.URI = ""
	}
	for _, m := range doc.Images {
		if m.BufferView == nil && m.URI != "" && !m.IsEmbeddedResource() {
			buf, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(m.URI)))
			if err != nil {
				log.Print(err)
				continue
			}
			if m.MimeType == "" {
				if strings.HasSuffix(strings.ToLower(m.URI), ".png") {
					m.MimeType = "image/png"
				} else {
					m.MimeType = "image/jpeg"
				}
			}
			m.BufferView = gltf.Index(modeler.WriteBufferView(doc, gltf.TargetNone, buf))
			m.URI = ""
		}
	}
	return nil
}

// NodeMatrix returns the local matrix of node, composing TRS if needed.
func NodeMatrix(node *gltf.Node) *geom.Matrix4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return geom.NewMatrix4FromSlice(m[:])
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
	mat := mgl32.Translate3D(t[0], t[1], t[2]).Mul4(q.Mat4()).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	return geom.NewMatrix4FromSlice(mat[:])
}

// Transform scales and then offsets every root node of the default scene.
func Transform(doc *gltf.Document, scale *geom.Vector3, offset *geom.Vector3) {
	if scale == nil && offset == nil || len(doc.Scenes) == 0 {
		return
	}
	mat := geom.NewMatrix4()
	if scale != nil {
		mat = geom.NewScaleMatrix4(scale.X, scale.Y, scale.Z)
	}
	if offset != nil {
		mat = geom.NewTranslateMatrix4(offset.X, offset.Y, offset.Z).Mul(mat)
	}

	scene := doc.Scenes[0]
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		scene = doc.Scenes[*doc.Scene]
	}
	for _, n := range scene.Nodes {
		node := doc.Nodes[n]
		mat.Mul(NodeMatrix(node)).ToArray(node.Matrix[:])
		node.Translation = [3]float32{}
		node.Rotation = [4]float32{0, 0, 0, 1}
		node.Scale = [3]float32{1, 1, 1}
	}
}
