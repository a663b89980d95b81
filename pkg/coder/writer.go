package coder

import (
	"golang.org/x/text/encoding"
)

// Writer encodes fields into a buffer whose capacity is fixed when the
// writer is created, normally from the lengths returned by Measure.
// Writing past the capacity fails with an *OverflowError.
type Writer struct {
	buf []byte
	pos int // cursor in bits
	enc encoding.Encoding
}

// NewWriter returns a Writer able to hold exactly capacity bytes.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, capacity)}
}

// SetEncoding sets the character encoding used by WriteString and StrLen.
// A nil encoding writes text as UTF-8.
func (w *Writer) SetEncoding(enc encoding.Encoding) {
	w.enc = enc
}

// Position returns the cursor in bits.
func (w *Writer) Position() int { return w.pos }

// Cap returns the capacity in bytes.
func (w *Writer) Cap() int { return len(w.buf) }

// EOF reports whether the buffer has been filled.
func (w *Writer) EOF() bool { return w.pos >= len(w.buf)<<3 }

// Aligned reports whether the cursor sits on a byte boundary.
func (w *Writer) Aligned() bool { return w.pos&7 == 0 }

// Align pads the current byte with zero bits.
func (w *Writer) Align() {
	w.pos = (w.pos + 7) &^ 7
}

// Bytes returns the bytes written so far, including a partial last byte.
func (w *Writer) Bytes() []byte {
	return w.buf[:(w.pos+7)>>3]
}

func (w *Writer) room(nbits int) error {
	if capBits := len(w.buf) << 3; w.pos+nbits > capBits {
		return &OverflowError{Position: w.pos, Need: nbits, Capacity: capBits}
	}
	return nil
}

// WriteBits writes the low n bits of v, most significant first, 0 <= n <= 32.
func (w *Writer) WriteBits(v int64, n int) error {
	if n < 0 || n > 32 {
		return ErrBitCount
	}
	if err := w.room(n); err != nil {
		return err
	}
	u := uint64(v)
	for left := n; left > 0; {
		off := w.pos & 7
		avail := 8 - off
		take := min(avail, left)
		chunk := byte(u>>(left-take)) & byte(1<<take-1)
		shift := avail - take
		i := w.pos >> 3
		w.buf[i] = w.buf[i]&^(byte(1<<take-1)<<shift) | chunk<<shift
		w.pos += take
		left -= take
	}
	return nil
}

// WriteFlag writes a single presence bit.
func (w *Writer) WriteFlag(set bool) error {
	if set {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

// WriteWord writes v as a byte-aligned little-endian word of size bytes (1..4).
func (w *Writer) WriteWord(v int64, size int) error {
	if size < 1 || size > 4 {
		return ErrBitCount
	}
	if !w.Aligned() {
		return ErrUnaligned
	}
	if err := w.room(size << 3); err != nil {
		return err
	}
	i := w.pos >> 3
	for k := 0; k < size; k++ {
		w.buf[i+k] = byte(v >> (8 * k))
	}
	w.pos += size << 3
	return nil
}

// WriteBytes copies b into the buffer.
func (w *Writer) WriteBytes(b []byte) error {
	if !w.Aligned() {
		return ErrUnaligned
	}
	if err := w.room(len(b) << 3); err != nil {
		return err
	}
	copy(w.buf[w.pos>>3:], b)
	w.pos += len(b) << 3
	return nil
}

// WriteString writes s in the writer's encoding followed by a zero byte.
// Text holding a zero byte or a character the encoding lacks is rejected
// with ErrRange before anything is written.
func (w *Writer) WriteString(s string) error {
	raw, err := encodeText(w.enc, s)
	if err != nil {
		return err
	}
	if err := w.WriteBytes(raw); err != nil {
		return err
	}
	return w.WriteWord(0, 1)
}

// StrLen returns the number of bytes WriteString will use for s,
// terminator included.
func (w *Writer) StrLen(s string) (int, error) {
	raw, err := encodeText(w.enc, s)
	if err != nil {
		return 0, err
	}
	return len(raw) + 1, nil
}

func encodeText(enc encoding.Encoding, s string) ([]byte, error) {
	if err := CheckText("text", s); err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(s), nil
	}
	e := enc.NewEncoder()
	raw, err := e.Bytes([]byte(s))
	if err == nil {
		return raw, nil
	}
	for i, r := range s {
		if _, err := e.Bytes([]byte(string(r))); err != nil {
			return nil, &TextError{Rune: r, Offset: i}
		}
	}
	return nil, err
}
