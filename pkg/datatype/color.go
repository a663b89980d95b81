package datatype

import (
	"github.com/rawbytedev/swfcodec/internal/common"
	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Opaque is 1.0 in the 8.8 fixed point used for multiply terms.
const Opaque = 1 << 8

const (
	colorWidth = 4
	minTerm    = -1 << 14
	maxTerm    = 1<<14 - 1
)

// ColorTransform scales and offsets the red, green, blue and alpha
// channels. Multiply terms are 8.8 fixed point. The alpha terms are only
// coded when the enclosing structure sets coder.Transparent.
type ColorTransform struct {
	mul [4]int
	add [4]int
}

// NewColorTransform returns the transform that leaves colours unchanged.
func NewColorTransform() ColorTransform {
	return ColorTransform{mul: [4]int{Opaque, Opaque, Opaque, Opaque}}
}

// AddTransform returns a transform that offsets each channel.
func AddTransform(r, g, b, a int) (ColorTransform, error) {
	t := NewColorTransform()
	if err := t.SetAdd(r, g, b, a); err != nil {
		return ColorTransform{}, err
	}
	return t, nil
}

func checkTerms(field string, terms [4]int) error {
	for _, v := range terms {
		if err := coder.CheckRange(field, v, minTerm, maxTerm); err != nil {
			return err
		}
	}
	return nil
}

func (t *ColorTransform) SetMultiply(r, g, b, a int) error {
	terms := [4]int{r, g, b, a}
	if err := checkTerms("multiply", terms); err != nil {
		return err
	}
	t.mul = terms
	return nil
}

func (t *ColorTransform) SetAdd(r, g, b, a int) error {
	terms := [4]int{r, g, b, a}
	if err := checkTerms("add", terms); err != nil {
		return err
	}
	t.add = terms
	return nil
}

func (t ColorTransform) Multiply() (r, g, b, a int) { return t.mul[0], t.mul[1], t.mul[2], t.mul[3] }
func (t ColorTransform) Add() (r, g, b, a int)      { return t.add[0], t.add[1], t.add[2], t.add[3] }

func channels(ctx *coder.Context) int {
	if ctx.Transparent() {
		return 4
	}
	return 3
}

func (t ColorTransform) hasMultiply(k int) bool {
	for _, v := range t.mul[:k] {
		if v != Opaque {
			return true
		}
	}
	return false
}

func (t ColorTransform) hasAdd(k int) bool {
	for _, v := range t.add[:k] {
		if v != 0 {
			return true
		}
	}
	return false
}

func (t ColorTransform) width(k int) int {
	n := 0
	if t.hasMultiply(k) {
		n = max(n, common.MaxSignedBits(t.mul[:k]...))
	}
	if t.hasAdd(k) {
		n = max(n, common.MaxSignedBits(t.add[:k]...))
	}
	return n
}

// Measure returns the encoded size in bytes.
func (t ColorTransform) Measure(ctx *coder.Context) (int, error) {
	k := channels(ctx)
	n := t.width(k)
	bits := 2 + colorWidth
	if t.hasMultiply(k) {
		bits += k * n
	}
	if t.hasAdd(k) {
		bits += k * n
	}
	return common.BytesFor(bits), nil
}

// Encode writes the transform and pads to a byte boundary.
func (t ColorTransform) Encode(w *coder.Writer, ctx *coder.Context) error {
	k := channels(ctx)
	n := t.width(k)
	if err := w.WriteFlag(t.hasAdd(k)); err != nil {
		return err
	}
	if err := w.WriteFlag(t.hasMultiply(k)); err != nil {
		return err
	}
	if err := w.WriteBits(int64(n), colorWidth); err != nil {
		return err
	}
	if t.hasMultiply(k) {
		for _, v := range t.mul[:k] {
			if err := w.WriteBits(int64(v), n); err != nil {
				return err
			}
		}
	}
	if t.hasAdd(k) {
		for _, v := range t.add[:k] {
			if err := w.WriteBits(int64(v), n); err != nil {
				return err
			}
		}
	}
	w.Align()
	return nil
}

// DecodeColorTransform reads a transform written by Encode.
func DecodeColorTransform(r *coder.Reader, ctx *coder.Context) (ColorTransform, error) {
	t := NewColorTransform()
	k := channels(ctx)
	hasAdd, err := r.ReadFlag()
	if err != nil {
		return t, err
	}
	hasMul, err := r.ReadFlag()
	if err != nil {
		return t, err
	}
	n, err := r.ReadBits(colorWidth, false)
	if err != nil {
		return t, err
	}
	read := func(terms []int) error {
		for i := range terms {
			v, err := r.ReadBits(int(n), true)
			if err != nil {
				return err
			}
			terms[i] = int(v)
		}
		return nil
	}
	if hasMul {
		if err := read(t.mul[:k]); err != nil {
			return t, err
		}
	}
	if hasAdd {
		if err := read(t.add[:k]); err != nil {
			return t, err
		}
	}
	r.Align()
	return t, nil
}
