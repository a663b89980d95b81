// Package datatype holds the structures nested inside records: transforms
// and sound settings. Each one follows the same measure, encode and decode
// contract as a record body.
package datatype

import (
	"github.com/rawbytedev/swfcodec/internal/common"
	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Unity is 1.0 in the 16.16 fixed point used for scale terms.
const Unity = 1 << 16

const (
	fieldWidth = 5
	minCoord   = -1 << 30
	maxCoord   = 1<<30 - 1
)

// CoordTransform is a 2x3 affine matrix. Scale and rotate terms are 16.16
// fixed point, translation is in twips.
type CoordTransform struct {
	scaleX, scaleY         int
	rotate0, rotate1       int
	translateX, translateY int
}

// Identity returns the transform that leaves coordinates unchanged.
func Identity() CoordTransform {
	return CoordTransform{scaleX: Unity, scaleY: Unity}
}

// Translate returns a transform that moves by x and y twips.
func Translate(x, y int) (CoordTransform, error) {
	t := Identity()
	if err := t.SetTranslate(x, y); err != nil {
		return CoordTransform{}, err
	}
	return t, nil
}

func checkCoord(field string, v int) error {
	return coder.CheckRange(field, v, minCoord, maxCoord)
}

func (t *CoordTransform) SetTranslate(x, y int) error {
	if err := checkCoord("translateX", x); err != nil {
		return err
	}
	if err := checkCoord("translateY", y); err != nil {
		return err
	}
	t.translateX, t.translateY = x, y
	return nil
}

func (t *CoordTransform) SetScale(x, y int) error {
	if err := checkCoord("scaleX", x); err != nil {
		return err
	}
	if err := checkCoord("scaleY", y); err != nil {
		return err
	}
	t.scaleX, t.scaleY = x, y
	return nil
}

func (t *CoordTransform) SetRotate(r0, r1 int) error {
	if err := checkCoord("rotate0", r0); err != nil {
		return err
	}
	if err := checkCoord("rotate1", r1); err != nil {
		return err
	}
	t.rotate0, t.rotate1 = r0, r1
	return nil
}

func (t CoordTransform) Translation() (x, y int) { return t.translateX, t.translateY }
func (t CoordTransform) Scale() (x, y int)       { return t.scaleX, t.scaleY }
func (t CoordTransform) Rotation() (r0, r1 int)  { return t.rotate0, t.rotate1 }

func (t CoordTransform) hasScale() bool  { return t.scaleX != Unity || t.scaleY != Unity }
func (t CoordTransform) hasRotate() bool { return t.rotate0 != 0 || t.rotate1 != 0 }

func (t CoordTransform) bits() int {
	n := 1
	if t.hasScale() {
		n += fieldWidth + 2*common.MaxSignedBits(t.scaleX, t.scaleY)
	}
	n++
	if t.hasRotate() {
		n += fieldWidth + 2*common.MaxSignedBits(t.rotate0, t.rotate1)
	}
	return n + fieldWidth + 2*common.MaxSignedBits(t.translateX, t.translateY)
}

// Measure returns the encoded size in bytes.
func (t CoordTransform) Measure(*coder.Context) (int, error) {
	return common.BytesFor(t.bits()), nil
}

func writePair(w *coder.Writer, a, b int) error {
	n := common.MaxSignedBits(a, b)
	if err := w.WriteBits(int64(n), fieldWidth); err != nil {
		return err
	}
	if err := w.WriteBits(int64(a), n); err != nil {
		return err
	}
	return w.WriteBits(int64(b), n)
}

func readPair(r *coder.Reader) (int, int, error) {
	n, err := r.ReadBits(fieldWidth, false)
	if err != nil {
		return 0, 0, err
	}
	a, err := r.ReadBits(int(n), true)
	if err != nil {
		return 0, 0, err
	}
	b, err := r.ReadBits(int(n), true)
	if err != nil {
		return 0, 0, err
	}
	return int(a), int(b), nil
}

// Encode writes the transform and pads to a byte boundary.
func (t CoordTransform) Encode(w *coder.Writer, _ *coder.Context) error {
	if err := w.WriteFlag(t.hasScale()); err != nil {
		return err
	}
	if t.hasScale() {
		if err := writePair(w, t.scaleX, t.scaleY); err != nil {
			return err
		}
	}
	if err := w.WriteFlag(t.hasRotate()); err != nil {
		return err
	}
	if t.hasRotate() {
		if err := writePair(w, t.rotate0, t.rotate1); err != nil {
			return err
		}
	}
	if err := writePair(w, t.translateX, t.translateY); err != nil {
		return err
	}
	w.Align()
	return nil
}

// DecodeCoordTransform reads a transform written by Encode.
func DecodeCoordTransform(r *coder.Reader, _ *coder.Context) (CoordTransform, error) {
	t := Identity()
	has, err := r.ReadFlag()
	if err != nil {
		return t, err
	}
	if has {
		if t.scaleX, t.scaleY, err = readPair(r); err != nil {
			return t, err
		}
	}
	if has, err = r.ReadFlag(); err != nil {
		return t, err
	}
	if has {
		if t.rotate0, t.rotate1, err = readPair(r); err != nil {
			return t, err
		}
	}
	if t.translateX, t.translateY, err = readPair(r); err != nil {
		return t, err
	}
	r.Align()
	return t, nil
}
