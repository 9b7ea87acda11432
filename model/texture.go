package model

import "image"

type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

func (f TextureFilter) IsMipmap() bool {
	return f >= FilterNearestMipmapNearest
}

type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapMirroredRepeat
	WrapClamp
	WrapClampToEdge
	WrapClampToBorder
)

type Image struct {
	Path  string
	Image image.Image
}

type Texture struct {
	Image     *Image
	MinFilter TextureFilter
	MagFilter TextureFilter
	WrapS     TextureWrap
	WrapT     TextureWrap
	Mipmaps   bool
}

func NewTexture(img *Image) *Texture {
	return &Texture{Image: img, MinFilter: FilterLinear, MagFilter: FilterLinear}
}
