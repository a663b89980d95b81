package coder

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
)

// Mark is a saved cursor position returned by Reader.Mark.
type Mark int

// Reader decodes fields from a fixed byte buffer. The cursor is kept in
// bits; bit fields are read most significant bit first and byte-aligned
// words are little-endian.
type Reader struct {
	data []byte
	pos  int // cursor in bits
	enc  encoding.Encoding
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// SetEncoding sets the character encoding used by ReadString.
// A nil encoding reads text as UTF-8.
func (r *Reader) SetEncoding(enc encoding.Encoding) {
	r.enc = enc
}

// Position returns the cursor in bits.
func (r *Reader) Position() int { return r.pos }

// Len returns the size of the buffer in bits.
func (r *Reader) Len() int { return len(r.data) << 3 }

// EOF reports whether every bit of the buffer has been consumed.
func (r *Reader) EOF() bool { return r.pos >= len(r.data)<<3 }

// Aligned reports whether the cursor sits on a byte boundary.
func (r *Reader) Aligned() bool { return r.pos&7 == 0 }

// Align skips the unread bits of a partially consumed byte.
func (r *Reader) Align() {
	r.pos = (r.pos + 7) &^ 7
}

// Adjust moves the cursor by delta bits, forwards or backwards. Moving
// before the first bit fails with ErrSeek, past the last with an
// *UnderrunError.
func (r *Reader) Adjust(delta int) error {
	p := r.pos + delta
	if p < 0 {
		return fmt.Errorf("%w: %d bits back from bit %d", ErrSeek, -delta, r.pos)
	}
	if p > r.Len() {
		return &UnderrunError{Position: r.pos, Need: delta, Available: r.Len() - r.pos}
	}
	r.pos = p
	return nil
}

// Mark saves the cursor so a caller can peek ahead and roll back.
func (r *Reader) Mark() Mark { return Mark(r.pos) }

// Reset restores a cursor saved with Mark.
func (r *Reader) Reset(m Mark) { r.pos = int(m) }

func (r *Reader) need(nbits int) error {
	if avail := r.Len() - r.pos; nbits > avail {
		return &UnderrunError{Position: r.pos, Need: nbits, Available: avail}
	}
	return nil
}

// ReadBits reads an n-bit field, 0 <= n <= 32. When signed is set the value
// is sign-extended from bit n-1.
func (r *Reader) ReadBits(n int, signed bool) (int64, error) {
	if n < 0 || n > 32 {
		return 0, ErrBitCount
	}
	if n == 0 {
		return 0, nil
	}
	if err := r.need(n); err != nil {
		return 0, err
	}
	var v uint64
	for left := n; left > 0; {
		off := r.pos & 7
		avail := 8 - off
		take := min(avail, left)
		b := uint64(r.data[r.pos>>3])
		v = v<<take | (b>>(avail-take))&(1<<take-1)
		r.pos += take
		left -= take
	}
	if signed && v&(1<<(n-1)) != 0 {
		v |= ^uint64(0) << n
	}
	return int64(v), nil
}

// ReadFlag reads a single presence bit.
func (r *Reader) ReadFlag() (bool, error) {
	v, err := r.ReadBits(1, false)
	return v != 0, err
}

// ReadWord reads a byte-aligned little-endian word of size bytes (1..4).
func (r *Reader) ReadWord(size int, signed bool) (int64, error) {
	if size < 1 || size > 4 {
		return 0, ErrBitCount
	}
	if !r.Aligned() {
		return 0, ErrUnaligned
	}
	if err := r.need(size << 3); err != nil {
		return 0, err
	}
	i := r.pos >> 3
	var v uint64
	for k := size - 1; k >= 0; k-- {
		v = v<<8 | uint64(r.data[i+k])
	}
	r.pos += size << 3
	if signed && v&(1<<(size*8-1)) != 0 {
		v |= ^uint64(0) << (size * 8)
	}
	return int64(v), nil
}

// ReadBytes copies the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBitCount
	}
	if !r.Aligned() {
		return nil, ErrUnaligned
	}
	if err := r.need(n << 3); err != nil {
		return nil, err
	}
	i := r.pos >> 3
	out := make([]byte, n)
	copy(out, r.data[i:i+n])
	r.pos += n << 3
	return out, nil
}

// ReadString reads zero-terminated text. The terminator is consumed but
// not returned.
func (r *Reader) ReadString() (string, error) {
	if !r.Aligned() {
		return "", ErrUnaligned
	}
	i := r.pos >> 3
	end := bytes.IndexByte(r.data[i:], 0)
	if end < 0 {
		return "", &UnderrunError{Position: r.pos, Need: (len(r.data) - i + 1) << 3, Available: r.Len() - r.pos}
	}
	raw := r.data[i : i+end]
	r.pos += (end + 1) << 3
	if r.enc == nil {
		return string(raw), nil
	}
	text, err := r.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
