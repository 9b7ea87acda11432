package converter

import (
	"testing"

	"github.com/binzume/daeconv/dae"
)

func TestDAESourceRead(t *testing.T) {
	src := &dae.Source{
		ID:         "uv",
		FloatArray: &dae.FloatArray{Values: dae.FloatList{9, 0, 0.5, 1, 2, 0.25, 3, 4}},
		Accessor: &dae.Accessor{Offset: 1, Stride: 3, Count: 2, Params: []*dae.Param{
			{Name: "S"}, {Name: ""}, {Name: "T"},
		}},
	}
	s, err := newDAESource(src)
	if err != nil {
		t.Fatal(err)
	}
	if s.DataSize() != 2 || s.Count() != 2 {
		t.Error("data size", s.DataSize(), s.Count())
	}

	out := make([]float32, 2)
	if !s.Read(0, out) || out[0] != 0 || out[1] != 1 {
		t.Error("read 0", out)
	}
	if !s.Read(1, out) || out[0] != 2 || out[1] != 3 {
		t.Error("read 1", out)
	}
	if s.Read(5, out) || out[0] != 0 || out[1] != 0 {
		t.Error("out of range should read zero", out)
	}
	if s.Read(-1, out) {
		t.Error("negative index")
	}
}

func TestDAESourceTypes(t *testing.T) {
	ints, err := newDAESource(&dae.Source{
		IntArray: &dae.IntArray{Values: dae.IntList{4, 5}},
		Accessor: &dae.Accessor{Count: 2, Params: []*dae.Param{{Name: "I"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := make([]float32, 1)
	if ints.Read(1, out); out[0] != 5 {
		t.Error("int", out)
	}

	bools, err := newDAESource(&dae.Source{
		BoolArray: &dae.BoolArray{Values: dae.BoolList{false, true}},
		Accessor:  &dae.Accessor{Stride: 1, Count: 2, Params: []*dae.Param{{Name: "B"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if bools.Read(1, out); out[0] != 1 {
		t.Error("bool", out)
	}

	if _, err := newDAESource(&dae.Source{FloatArray: &dae.FloatArray{}}); err == nil {
		t.Error("source without accessor should fail")
	}
	if _, err := newDAESource(&dae.Source{Accessor: &dae.Accessor{}}); err == nil {
		t.Error("source without array should fail")
	}
}
