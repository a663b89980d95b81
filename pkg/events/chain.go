package events

import (
	"fmt"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Entry is one handler in an event chain.
type Entry interface {
	Events() Kind
	Measure(ctx *coder.Context) (int, error)
	Encode(w *coder.Writer, ctx *coder.Context) error
}

// Mask returns the union of the events handled by entries.
func Mask[E Entry](entries []E) Kind {
	var k Kind
	for _, e := range entries {
		k |= e.Events()
	}
	return k
}

// MeasureChain returns the encoded size of a chain. An empty chain takes
// no bytes at all.
func MeasureChain[E Entry](entries []E, ctx *coder.Context) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	size := WordSize(ctx)
	if err := checkMask("event mask", Mask(entries), size); err != nil {
		return 0, err
	}
	n := 2 + size + size
	for i, e := range entries {
		m, err := e.Measure(ctx)
		if err != nil {
			return 0, fmt.Errorf("event %d: %w", i, err)
		}
		n += m
	}
	return n, nil
}

// EncodeChain writes the reserved word, the event mask, every entry and
// the terminator. Nothing is written for an empty chain.
func EncodeChain[E Entry](w *coder.Writer, ctx *coder.Context, entries []E) error {
	if len(entries) == 0 {
		return nil
	}
	size := WordSize(ctx)
	if err := w.WriteWord(0, 2); err != nil {
		return err
	}
	if err := w.WriteWord(int64(Mask(entries)), size); err != nil {
		return err
	}
	for i, e := range entries {
		if err := e.Encode(w, ctx); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return w.WriteWord(0, size)
}

// DecodeChain reads a chain written by EncodeChain. Entries are read with
// decode until a zero word of the mask width is found; that word is
// consumed as the terminator. The caller decides whether a chain is
// present at all.
func DecodeChain[E Entry](r *coder.Reader, ctx *coder.Context,
	decode func(r *coder.Reader, ctx *coder.Context) (E, error)) ([]E, error) {
	size := WordSize(ctx)
	if _, err := r.ReadWord(2, false); err != nil {
		return nil, err
	}
	if _, err := r.ReadWord(size, false); err != nil {
		return nil, err
	}
	var entries []E
	for {
		m := r.Mark()
		v, err := r.ReadWord(size, false)
		if err != nil {
			return nil, err
		}
		if v == 0 {
			return entries, nil
		}
		r.Reset(m)
		e, err := decode(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", len(entries), err)
		}
		entries = append(entries, e)
	}
}
