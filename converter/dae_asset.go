package converter

import (
	"strconv"
	"strings"

	"github.com/binzume/daeconv/dae"
	"github.com/binzume/daeconv/geom"
)

// assetInfo is derived from <asset> once per import.
type assetInfo struct {
	upAxis             string
	upMatrix           *geom.Matrix4
	unitMeter          float32
	tools              []string
	invertTransparency bool
	assumeOpaque       bool
}

func upAxisMatrix(axis string) *geom.Matrix4 {
	switch strings.TrimSpace(axis) {
	case "X_UP":
		return geom.NewMatrix4FromColumns(geom.NewVector3(0, 1, 0), geom.NewVector3(-1, 0, 0), geom.NewVector3(0, 0, 1))
	case "Z_UP":
		return geom.NewMatrix4FromColumns(geom.NewVector3(1, 0, 0), geom.NewVector3(0, 0, -1), geom.NewVector3(0, 1, 0))
	}
	return geom.NewMatrix4()
}

// toolVersion reads the number starting at tool[pos:]. Returns 1000 if there is none.
func toolVersion(tool string, pos int) float32 {
	if pos > len(tool) {
		return 1000
	}
	s := strings.TrimLeft(tool[pos:], " \t")
	end := 0
	dot := false
	for end < len(s) {
		ch := s[end]
		if ch == '.' && !dot {
			dot = true
		} else if ch < '0' || ch > '9' {
			break
		}
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 32)
	if err != nil {
		return 1000
	}
	return float32(v)
}

func olderThan(version float32, v100 float32) bool {
	return version*100+0.5 < v100
}

func (c *daeToModel) parseAsset(asset *dae.Asset) assetInfo {
	info := assetInfo{upAxis: "Y_UP", upMatrix: geom.NewMatrix4(), unitMeter: 1}
	if asset == nil {
		asset = &dae.Asset{}
	}
	if asset.UpAxis != "" {
		info.upAxis = strings.TrimSpace(asset.UpAxis)
		info.upMatrix = upAxisMatrix(info.upAxis)
	}
	if asset.Unit != nil && asset.Unit.Meter > 0 {
		info.unitMeter = asset.Unit.Meter
	}
	for _, contrib := range asset.Contributors {
		if contrib.AuthoringTool != "" {
			info.tools = append(info.tools, contrib.AuthoringTool)
		}
	}

	switch c.InvertTransparency {
	case InvertTransparencyAlways:
		info.invertTransparency = true
	case InvertTransparencyAuto:
		for _, tool := range info.tools {
			// SketchUp before 7.1 writes inverted <transparency>.
			if i := strings.Index(tool, "Google SketchUp"); i >= 0 {
				if olderThan(toolVersion(tool, i+16), 710) {
					info.invertTransparency = true
					c.infof("inverting transparency for %q", tool)
				}
				break
			}
			// ColladaMaya/ColladaMax before 3.03 mix <transparent> and <transparency> unpredictably.
			if i := strings.Index(tool, "ColladaMaya"); i >= 0 && olderThan(toolVersion(tool, i+13), 303) {
				info.assumeOpaque = true
			}
			if i := strings.Index(tool, "ColladaMax"); i >= 0 && olderThan(toolVersion(tool, i+12), 303) {
				info.assumeOpaque = true
			}
		}
		if info.assumeOpaque {
			c.infof("assuming opaque materials for %v", info.tools)
		}
	}
	return info
}
