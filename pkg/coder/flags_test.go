package coder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opts carries three optional fields. The presence run is a, b, c while
// the stream order is c, a, b.
type opts struct {
	a *int
	b *int
	c *string
}

func (o *opts) presence() Presence {
	return Presence{
		{
			Name:    "c",
			Bit:     2,
			Present: func() bool { return o.c != nil },
			Size:    func(*Context) (int, error) { return len(*o.c) + 1, nil },
			Encode:  func(w *Writer, _ *Context) error { return w.WriteString(*o.c) },
			Decode: func(r *Reader, _ *Context) error {
				s, err := r.ReadString()
				o.c = &s
				return err
			},
		},
		{
			Name:    "a",
			Bit:     0,
			Present: func() bool { return o.a != nil },
			Size:    func(*Context) (int, error) { return 2, nil },
			Encode:  func(w *Writer, _ *Context) error { return w.WriteWord(int64(*o.a), 2) },
			Decode: func(r *Reader, _ *Context) error {
				v, err := r.ReadWord(2, false)
				n := int(v)
				o.a = &n
				return err
			},
		},
		{
			Name:    "b",
			Bit:     1,
			Present: func() bool { return o.b != nil },
			Size:    func(*Context) (int, error) { return 1, nil },
			Encode:  func(w *Writer, _ *Context) error { return w.WriteWord(int64(*o.b), 1) },
			Decode: func(r *Reader, _ *Context) error {
				v, err := r.ReadWord(1, false)
				n := int(v)
				o.b = &n
				return err
			},
		},
	}
}

func (o *opts) Type() uint16 { return 9 }

func (o *opts) MeasureBody(ctx *Context) (int, error) {
	n, err := o.presence().Size(ctx)
	return 1 + n, err
}

func (o *opts) EncodeBody(w *Writer, ctx *Context) error {
	p := o.presence()
	if err := p.Write(w); err != nil {
		return err
	}
	w.Align()
	return p.Encode(w, ctx)
}

func (o *opts) DecodeBody(r *Reader, ctx *Context, _ Header) error {
	p := o.presence()
	flags, err := p.Read(r)
	if err != nil {
		return err
	}
	r.Align()
	return p.Decode(r, ctx, flags)
}

func TestPresenceCombinations(t *testing.T) {
	a, b, c := 0x1234, 0x56, "hi"
	for mask := 0; mask < 8; mask++ {
		o := &opts{}
		flags := byte(0)
		var fields []byte
		if mask&4 != 0 {
			o.c = &c
			flags |= 1 << 5
			fields = append(fields, 'h', 'i', 0)
		}
		if mask&1 != 0 {
			o.a = &a
			flags |= 1 << 7
			fields = append(fields, 0x34, 0x12)
		}
		if mask&2 != 0 {
			o.b = &b
			flags |= 1 << 6
			fields = append(fields, 0x56)
		}
		body := append([]byte{flags}, fields...)
		word := uint16(9<<6 | len(body))
		want := append([]byte{byte(word), byte(word >> 8)}, body...)

		out, err := Encode(o, NewContext())
		require.NoError(t, err, "mask %03b", mask)
		require.Equal(t, want, out, "mask %03b", mask)

		got := &opts{}
		r := NewReader(out)
		require.NoError(t, Decode(r, NewContext(), got), "mask %03b", mask)
		assert.Equal(t, o, got, "mask %03b", mask)
		assert.True(t, r.EOF())
	}
}

func TestPresenceWidth(t *testing.T) {
	o := &opts{}
	assert.Equal(t, 3, o.presence().Width())
	assert.Zero(t, Presence{}.Width())

	flags := Flags{true, false}
	assert.True(t, flags.Has(0))
	assert.False(t, flags.Has(1))
	assert.False(t, flags.Has(5))
	assert.False(t, flags.Has(-1))
}

func TestPresenceReadUnderrun(t *testing.T) {
	_, err := (&opts{}).presence().Read(NewReader(nil))
	require.ErrorIs(t, err, ErrUnderrun)
}
