// Package model holds renderer-ready scene resources: indexed geometry,
// effects, textures and a transform hierarchy of drawable actors.
package model

import "github.com/binzume/daeconv/geom"

// Array is a flat per-vertex attribute buffer with 1 to 4 components per vertex.
type Array struct {
	Name       string
	Components int
	Data       []float32
}

func NewArray(name string, components, count int) *Array {
	return &Array{Name: name, Components: components, Data: make([]float32, components*count)}
}

func (a *Array) Len() int {
	if a.Components == 0 {
		return 0
	}
	return len(a.Data) / a.Components
}

func (a *Array) At(i int) []float32 {
	return a.Data[i*a.Components : (i+1)*a.Components]
}

func (a *Array) Set(i int, v []float32) {
	copy(a.Data[i*a.Components:(i+1)*a.Components], v)
}

// Vector3 returns element i. Missing components are zero.
func (a *Array) Vector3(i int) *geom.Vector3 {
	var v [3]float32
	copy(v[:], a.At(i))
	return geom.NewVector3FromSlice(v[:])
}

func (a *Array) SetVector3(i int, v *geom.Vector3) {
	var buf [3]float32
	v.ToArray(buf[:])
	a.Set(i, buf[:])
}
