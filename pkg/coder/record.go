package coder

import (
	"fmt"
	"reflect"
)

// Record is implemented by every record type. MeasureBody returns the
// exact number of body bytes EncodeBody will write; EncodeBody writes the
// fields in the order DecodeBody reads them.
type Record interface {
	Type() uint16
	MeasureBody(ctx *Context) (int, error)
	EncodeBody(w *Writer, ctx *Context) error
}

// Decodable is a Record that can populate itself from a body.
// DecodeBody is called with the cursor just past the header.
type Decodable interface {
	Record
	DecodeBody(r *Reader, ctx *Context, h Header) error
}

// Plan is the result of measuring a record. It holds the body length the
// header will declare, so encoding cannot drift from what was measured.
// The record must not be modified between Measure and Plan.Encode.
type Plan struct {
	rec  Record
	body int
}

// Measure computes the encoded size of rec.
func Measure(rec Record, ctx *Context) (Plan, error) {
	if rec == nil {
		return Plan{}, &NullPayloadError{Field: "record"}
	}
	n, err := rec.MeasureBody(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: measure: %w", Name(rec), err)
	}
	return Plan{rec: rec, body: n}, nil
}

// Record returns the measured record.
func (p Plan) Record() Record { return p.rec }

// BodyLen returns the declared body length in bytes.
func (p Plan) BodyLen() int { return p.body }

// Len returns the total encoded length, header included.
func (p Plan) Len() int { return HeaderSize(p.body) + p.body }

// Encode writes the header and body and checks that exactly the measured
// number of bytes were written.
func (p Plan) Encode(w *Writer, ctx *Context) error {
	if p.rec == nil {
		return &NullPayloadError{Field: "plan"}
	}
	h, err := WriteHeader(w, p.rec.Type(), p.body)
	if err != nil {
		return fmt.Errorf("%s: %w", Name(p.rec), err)
	}
	if err := p.rec.EncodeBody(w, ctx); err != nil {
		return fmt.Errorf("%s: encode: %w", Name(p.rec), err)
	}
	return checkEnd(p.rec, w.Position(), h)
}

// Encode measures rec and encodes it into a buffer of exactly that size,
// using the text encoding held by ctx.
func Encode(rec Record, ctx *Context) ([]byte, error) {
	p, err := Measure(rec, ctx)
	if err != nil {
		return nil, err
	}
	w := NewWriter(p.Len())
	w.SetEncoding(ctx.Encoding())
	if err := p.Encode(w, ctx); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode reads a header and the body of rec. The header type must match
// rec.Type().
func Decode(r *Reader, ctx *Context, rec Decodable) error {
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}
	if h.Type != rec.Type() {
		return fmt.Errorf("%s: %w: header type %d, want %d", Name(rec), ErrTypeCode, h.Type, rec.Type())
	}
	return DecodeWith(r, ctx, h, rec)
}

// DecodeWith decodes the body of rec for a header already read, then
// checks the cursor landed exactly on h.End.
func DecodeWith(r *Reader, ctx *Context, h Header, rec Decodable) error {
	if err := rec.DecodeBody(r, ctx, h); err != nil {
		return fmt.Errorf("%s: decode at byte %d: %w", Name(rec), h.Offset(), err)
	}
	return checkEnd(rec, r.Position(), h)
}

func checkEnd(rec Record, pos int, h Header) error {
	if pos == h.End {
		return nil
	}
	bits := pos - h.End
	delta := bits / 8
	switch {
	case bits%8 > 0:
		delta++
	case bits%8 < 0:
		delta--
	}
	return &StructuralMismatchError{
		Record: Name(rec),
		Offset: h.Offset(),
		Length: h.Length,
		Delta:  delta,
		Bits:   bits,
	}
}

// Name returns the type name of rec for error messages.
func Name(rec Record) string {
	if rec == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(rec)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
