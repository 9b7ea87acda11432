package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/binzume/daeconv/converter"
	"github.com/binzume/daeconv/geom"
	"github.com/binzume/daeconv/gltfutil"
	"github.com/binzume/daeconv/model"
	"github.com/binzume/daeconv/vfs"
)

func defaultOutputFile(input string) string {
	ext := filepath.Ext(input)
	return input[0:len(input)-len(ext)] + ".glb"
}

func loadOptions(confFile string) (*converter.DAEToModelOption, error) {
	if confFile == "" {
		return converter.DefaultDAEToModelOption(), nil
	}
	f, err := os.Open(confFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return converter.LoadDAEToModelOption(f)
}

func parseVector(s string) (*geom.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("x,y,z expected: %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		v[i] = float32(f)
	}
	return geom.NewVector3FromSlice(v[:]), nil
}

func dump(res *model.Resources) {
	fmt.Printf("up: %s, unit: %gm\n", res.UpAxis, res.UnitMeter)
	fmt.Printf("actors: %d, geometries: %d, effects: %d\n", len(res.Actors), len(res.Geometries()), len(res.Effects()))
	for _, a := range res.Actors {
		g := a.Geometry
		indices := 0
		for _, dc := range g.DrawCalls {
			indices += len(dc.Indices)
		}
		fmt.Printf("  %s: %s vertices=%d drawcalls=%d indices=%d effect=%s(%v)", a.Name, g.Name, g.VertexCount(), len(g.DrawCalls), indices, a.Effect.Name, a.Effect.Shading)
		if a.Effect.Texture != nil {
			fmt.Printf(" texture=%s", a.Effect.Texture.Image.Path)
		}
		if a.Effect.Blend {
			fmt.Print(" blend")
		}
		fmt.Println()
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.dae [output.glb]\n", os.Args[0])
		flag.PrintDefaults()
	}
	def := converter.DefaultDAEToModelOption()
	confFile := flag.String("config", "", "import options (yaml)")
	flatten := flag.Bool("flatten", def.FlattenTransformHierarchy, "flatten transform hierarchy")
	merge := flag.Bool("merge", def.MergeDrawCallsWithTriangles, "merge draw calls into a triangle list")
	fixNormals := flag.Bool("fixnormals", def.FixBadNormals, "fix degenerate and flipped normals")
	computeNormals := flag.Bool("computenormals", def.ComputeMissingNormals, "compute missing normals")
	skins := flag.Bool("skins", def.ExtractSkins, "import skin and morph controller meshes")
	mipmaps := flag.Bool("mipmaps", def.UseAlwaysMipmapping, "always use mipmaps")
	transparency := flag.String("transparency", def.InvertTransparency.String(), "auto, invert or noinvert")
	texDirs := flag.String("texdir", "", "additional texture directories (comma separated)")
	forceUnlit := flag.Bool("unlit", false, "unlit all materials")
	scale := flag.Float64("scale", 1, "scale")
	offset := flag.String("offset", "", "x,y,z")
	texLimit := flag.Int("texlimit", 0, "texture resolution limit (0: unlimited)")
	dumpOnly := flag.Bool("dump", false, "print imported resources")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := defaultOutputFile(input)
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	opt, err := loadOptions(*confFile)
	if err != nil {
		log.Fatal(err)
	}
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "flatten":
			opt.FlattenTransformHierarchy = *flatten
		case "merge":
			opt.MergeDrawCallsWithTriangles = *merge
		case "fixnormals":
			opt.FixBadNormals = *fixNormals
		case "computenormals":
			opt.ComputeMissingNormals = *computeNormals
		case "skins":
			opt.ExtractSkins = *skins
		case "mipmaps":
			opt.UseAlwaysMipmapping = *mipmaps
		case "transparency":
			opt.InvertTransparency, flagErr = converter.ParseInvertTransparency(*transparency)
		}
	})
	if flagErr != nil {
		log.Fatal(flagErr)
	}
	if *texDirs != "" {
		opt.FileSystem = vfs.NewFileSystem(strings.Split(*texDirs, ",")...)
	}

	res, err := converter.NewDAEToModelConverter(opt).ConvertFile(input)
	if err != nil {
		log.Fatal(err)
	}
	if *dumpOnly {
		dump(res)
		return
	}

	conv := converter.NewModelToGLTFConverter(&converter.ModelToGLTFOption{
		Scale:                  float32(*scale),
		ForceUnlit:             *forceUnlit,
		TextureResolutionLimit: *texLimit,
	})
	doc, err := conv.Convert(res)
	if err != nil {
		log.Fatal(err)
	}
	if *offset != "" {
		v, err := parseVector(*offset)
		if err != nil {
			log.Fatal(err)
		}
		gltfutil.Transform(doc, nil, v)
	}

	log.Printf("%s -> %s", input, output)
	if err := gltfutil.Save(doc, output); err != nil {
		log.Fatal(err)
	}
}
