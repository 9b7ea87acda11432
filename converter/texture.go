package converter

import (
	"bytes"
	"fmt"
	"image"
	"net/url"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/binzume/daeconv/model"
	"github.com/binzume/daeconv/vfs"
	"github.com/blezek/tga"
	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type imageCache struct {
	fs     *vfs.FileSystem
	images map[string]*imageInfo
}

type imageInfo struct {
	path string
	img  *model.Image
	err  error
}

func newImageCache(fs *vfs.FileSystem) *imageCache {
	return &imageCache{fs: fs, images: map[string]*imageInfo{}}
}

// imagePath converts an <init_from> URI to a file path.
// Only file URIs and plain paths are supported.
func imagePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid image uri %q: %w", uri, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "file":
	default:
		if len(u.Scheme) != 1 {
			return "", fmt.Errorf("protocol not supported: %s", uri)
		}
		// drive letter
		p, err := url.PathUnescape(uri)
		if err != nil {
			return "", err
		}
		return filepath.FromSlash(p), nil
	}
	p := u.Path
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}

func (c *imageCache) get(uri string) (*model.Image, error) {
	if t, ok := c.images[uri]; ok {
		return t.img, t.err
	}
	t := &imageInfo{}
	c.images[uri] = t

	t.path, t.err = imagePath(uri)
	if t.err != nil {
		return nil, t.err
	}
	f := c.fs.LocateFile(t.path)
	if f == nil {
		t.err = fmt.Errorf("could not locate %q", t.path)
		return nil, t.err
	}
	img, err := decodeImage(f)
	if err != nil {
		t.err = fmt.Errorf("%s: %w", f.Path(), err)
		return nil, t.err
	}
	t.img = &model.Image{Path: f.Path(), Image: img}
	return t.img, nil
}

func decodeImage(f vfs.File) (image.Image, error) {
	data, err := f.Load()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil && strings.ToLower(filepath.Ext(f.Path())) == ".tga" {
		// retry
		img, err = tga.Decode(bytes.NewReader(data))
	}
	return img, err
}
