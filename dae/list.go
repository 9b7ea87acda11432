package dae

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// FloatList is a whitespace separated list of numbers.
type FloatList []float32

func (l *FloatList) UnmarshalText(b []byte) error {
	fields := bytes.Fields(b)
	values := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(string(f), 32)
		// out of range literals keep the +-Inf ParseFloat returns
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("invalid float %q: %w", f, err)
		}
		values[i] = float32(v)
	}
	*l = values
	return nil
}

type IntList []int

func (l *IntList) UnmarshalText(b []byte) error {
	fields := bytes.Fields(b)
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return fmt.Errorf("invalid int %q: %w", f, err)
		}
		values[i] = v
	}
	*l = values
	return nil
}

// BoolList accepts true/false and 1/0.
type BoolList []bool

func (l *BoolList) UnmarshalText(b []byte) error {
	fields := bytes.Fields(b)
	values := make([]bool, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseBool(string(f))
		if err != nil {
			return fmt.Errorf("invalid bool %q: %w", f, err)
		}
		values[i] = v
	}
	*l = values
	return nil
}
