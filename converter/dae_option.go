package converter

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/binzume/daeconv/vfs"
	"gopkg.in/yaml.v2"
)

// InvertTransparency selects how <transparency> values are interpreted.
type InvertTransparency int

const (
	// InvertTransparencyAuto inverts only for authoring tools known to write inverted values.
	InvertTransparencyAuto InvertTransparency = iota
	InvertTransparencyAlways
	InvertTransparencyNever
)

var invertTransparencyNames = map[InvertTransparency]string{
	InvertTransparencyAuto:   "auto",
	InvertTransparencyAlways: "invert",
	InvertTransparencyNever:  "noinvert",
}

func (v InvertTransparency) String() string {
	if s, ok := invertTransparencyNames[v]; ok {
		return s
	}
	return fmt.Sprintf("InvertTransparency(%d)", int(v))
}

func ParseInvertTransparency(s string) (InvertTransparency, error) {
	for v, name := range invertTransparencyNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return InvertTransparencyAuto, fmt.Errorf("unknown transparency mode %q (auto, invert or noinvert)", s)
}

func (v InvertTransparency) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

func (v *InvertTransparency) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseInvertTransparency(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type DAEToModelOption struct {
	ExtractSkins                bool `yaml:"extract_skins"`           // Default: false
	FlattenTransformHierarchy   bool `yaml:"flatten"`                 // Default: true
	MergeDrawCallsWithTriangles bool `yaml:"merge_draw_calls"`        // Default: true
	FixBadNormals               bool `yaml:"fix_bad_normals"`         // Default: true
	ComputeMissingNormals       bool `yaml:"compute_missing_normals"` // Default: true
	UseAlwaysMipmapping         bool `yaml:"always_mipmapping"`       // Default: true

	InvertTransparency InvertTransparency `yaml:"invert_transparency"` // Default: auto

	// Logger receives warnings. nil: log.Default()
	Logger *log.Logger `yaml:"-"`

	// FileSystem locates textures. The document directory is always searched first.
	FileSystem *vfs.FileSystem `yaml:"-"`
}

func DefaultDAEToModelOption() *DAEToModelOption {
	return &DAEToModelOption{
		FlattenTransformHierarchy:   true,
		MergeDrawCallsWithTriangles: true,
		FixBadNormals:               true,
		ComputeMissingNormals:       true,
		UseAlwaysMipmapping:         true,
		InvertTransparency:          InvertTransparencyAuto,
	}
}

// LoadDAEToModelOption reads options from YAML. Missing keys keep their defaults.
func LoadDAEToModelOption(r io.Reader) (*DAEToModelOption, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opt := DefaultDAEToModelOption()
	if err := yaml.UnmarshalStrict(data, opt); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	return opt, nil
}
