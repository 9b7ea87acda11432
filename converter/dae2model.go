package converter

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/model"
	"github.com/binzume/daeconv/vfs"
)

var (
	ErrEmptyDocument = errors.New("empty document")
	ErrNoVisualScene = errors.New("<visual_scene> not found")
)

const normalScaleTolerance = 0.1

type daeToModel struct {
	*DAEToModelOption
	logger *log.Logger

	doc    *dae.Collada
	asset  assetInfo
	images *imageCache

	sources       map[string]*daeSource
	meshes        map[string]*daeMesh
	effects       map[string]*daeEffect
	materials     map[string]*daeMaterial
	imagesByID    map[string]*model.Image
	activeNodes   map[*dae.Node]bool
	nodes         []*daeNode
	defaultEffect *model.Effect
}

func NewDAEToModelConverter(options *DAEToModelOption) *daeToModel {
	if options == nil {
		options = DefaultDAEToModelOption()
	}
	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &daeToModel{DAEToModelOption: options, logger: logger}
}

func (c *daeToModel) warnf(format string, args ...interface{}) {
	c.logger.Printf("daeconv: warning: "+format, args...)
}

func (c *daeToModel) errorf(format string, args ...interface{}) {
	c.logger.Printf("daeconv: error: "+format, args...)
}

func (c *daeToModel) infof(format string, args ...interface{}) {
	c.logger.Printf("daeconv: "+format, args...)
}

func (c *daeToModel) reset(file vfs.File) {
	dir := filepath.Dir(file.Path())
	var fs *vfs.FileSystem
	if c.FileSystem != nil {
		fs = c.FileSystem.WithDirs(dir)
	} else {
		fs = vfs.NewFileSystem(dir)
	}
	c.doc = nil
	c.asset = assetInfo{}
	c.images = newImageCache(fs)
	c.sources = map[string]*daeSource{}
	c.meshes = map[string]*daeMesh{}
	c.effects = map[string]*daeEffect{}
	c.materials = map[string]*daeMaterial{}
	c.imagesByID = map[string]*model.Image{}
	c.activeNodes = map[*dae.Node]bool{}
	c.nodes = nil
	c.defaultEffect = newDefaultEffect()
}

// ConvertFile locates path in the option's FileSystem (or on disk) and converts it.
func (c *daeToModel) ConvertFile(path string) (*model.Resources, error) {
	var f vfs.File
	if c.FileSystem != nil {
		f = c.FileSystem.LocateFile(path)
	} else {
		f = vfs.NewFileSystem().LocateFile(path)
	}
	if f == nil {
		return nil, fmt.Errorf("could not locate %q", path)
	}
	return c.Convert(f)
}

// Convert imports a COLLADA document. Unsupported or broken elements are
// logged and skipped; only unreadable documents return an error.
func (c *daeToModel) Convert(file vfs.File) (*model.Resources, error) {
	c.reset(file)

	data, err := file.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file.Path(), err)
	}
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	doc, err := dae.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open COLLADA document: %w", err)
	}
	c.doc = doc
	c.asset = c.parseAsset(doc.Asset)

	c.parseImages()
	c.parseEffects()
	c.parseMaterials()

	scene := doc.VisualScene()
	if scene == nil {
		return nil, ErrNoVisualScene
	}

	root := &daeNode{transform: model.NewTransform()}
	for _, n := range scene.Nodes {
		c.visitNode(n, root)
	}

	root.transform.PreMultiply(c.asset.upMatrix)
	root.transform.ComputeWorldMatrixRecursive(nil)

	res := &model.Resources{UpAxis: c.asset.upAxis, UnitMeter: c.asset.unitMeter}
	for _, node := range c.nodes {
		for _, actor := range node.actors {
			res.Actors = append(res.Actors, actor)

			if c.FlattenTransformHierarchy {
				actor.Transform.RemoveFromParent()
			}
			if c.MergeDrawCallsWithTriangles && actor.Geometry != nil {
				actor.Geometry.MergeDrawCallsWithTriangles()
			}
			if actor.Effect.Lighting && hasScaledNormals(&actor.Transform.World) {
				actor.NormalizeNormals = true
			}
		}
	}

	if c.FlattenTransformHierarchy {
		root.transform.EraseAllChildrenRecursive()
		for _, actor := range res.Actors {
			actor.Transform.EraseAllChildrenRecursive()
		}
	} else {
		res.Root = root.transform
	}
	return res, nil
}

// hasScaledNormals reports whether normals transformed by world need renormalization.
func hasScaledNormals(world *geom.Matrix4) bool {
	m := *world
	m[12], m[13], m[14] = 0, 0, 0
	nmat := m.Inverse().Transposed()
	for i := 0; i < 3; i++ {
		if l := nmat.Axis(i).Len(); l-1 > normalScaleTolerance || 1-l > normalScaleTolerance {
			return true
		}
	}
	return false
}

func newDefaultEffect() *model.Effect {
	fx := model.NewEffect("default")
	fx.Lighting = true
	fx.Material.SetFlatColor(model.Fuchsia)
	fx.PolygonMode = model.PolygonLine
	return fx
}
