package converter

import (
	"fmt"
	"math/bits"

	"github.com/binzume/daeconv/dae"
)

type sourceKind int

const (
	sourceFloat sourceKind = iota
	sourceInt
	sourceBool
)

// daeSource reads strided elements out of a <source> array.
// Only params with a non-empty name are read, up to 32 per element.
type daeSource struct {
	kind   sourceKind
	floats []float32
	ints   []int
	bools  []bool

	offset    int
	stride    int
	count     int
	fieldMask uint32
	dataSize  int
}

func newDAESource(src *dae.Source) (*daeSource, error) {
	acc := src.Accessor
	if acc == nil {
		return nil, fmt.Errorf("source %q has no accessor", src.ID)
	}
	s := &daeSource{offset: acc.Offset, stride: acc.Stride, count: acc.Count}
	if s.stride <= 0 {
		s.stride = 1
	}
	switch {
	case src.FloatArray != nil:
		s.kind, s.floats = sourceFloat, src.FloatArray.Values
	case src.IntArray != nil:
		s.kind, s.ints = sourceInt, src.IntArray.Values
	case src.BoolArray != nil:
		s.kind, s.bools = sourceBool, src.BoolArray.Values
	default:
		return nil, fmt.Errorf("source %q: array type not supported", src.ID)
	}
	for i, p := range acc.Params {
		if i >= 32 {
			break
		}
		if p.Name != "" {
			s.fieldMask |= 1 << uint(i)
		}
	}
	s.dataSize = bits.OnesCount32(s.fieldMask)
	return s, nil
}

func (s *daeSource) Count() int {
	return s.count
}

// DataSize is the number of scalars Read writes.
func (s *daeSource) DataSize() int {
	return s.dataSize
}

func (s *daeSource) len() int {
	switch s.kind {
	case sourceInt:
		return len(s.ints)
	case sourceBool:
		return len(s.bools)
	}
	return len(s.floats)
}

func (s *daeSource) at(pos int) float32 {
	switch s.kind {
	case sourceInt:
		return float32(s.ints[pos])
	case sourceBool:
		if s.bools[pos] {
			return 1
		}
		return 0
	}
	return s.floats[pos]
}

// Read writes element n into out. Values outside the array read as zero
// and Read returns false.
func (s *daeSource) Read(n int, out []float32) bool {
	ok := n >= 0
	readPos := s.offset + n*s.stride
	j := 0
	for i := 0; i < 32 && i < s.stride; i++ {
		if s.fieldMask&(1<<uint(i)) == 0 {
			continue
		}
		pos := readPos + i
		if n < 0 || pos < 0 || pos >= s.len() {
			out[j] = 0
			ok = false
		} else {
			out[j] = s.at(pos)
		}
		j++
	}
	return ok
}
