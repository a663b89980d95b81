package coder

import "math"

// Record header layout:
//
//	word   uint16 little-endian: type<<6 | length6
//	length uint32 little-endian, present only when length6 == 0x3F
//
// length6 holds the body length when it is below 63; otherwise it holds
// the escape value and the real length follows.
const (
	LengthEscape   = 0x3F
	MaxShortLength = 62
	MaxType        = 0x3FF
	ShortHeader    = 2
	LongHeader     = 6
)

// Header is a decoded or written record header. Start and End are bit
// positions: Start is where the header begins and End is where the body
// must finish.
type Header struct {
	Type   uint16
	Length int
	Start  int
	End    int
}

// Offset returns the byte offset of the header.
func (h Header) Offset() int { return h.Start >> 3 }

// HeaderSize returns the number of bytes the header for a body of length
// bytes occupies. Measurers and WriteHeader share this rule.
func HeaderSize(length int) int {
	if length > MaxShortLength {
		return LongHeader
	}
	return ShortHeader
}

// WriteHeader writes the header of a record with the given body length.
func WriteHeader(w *Writer, typ uint16, length int) (Header, error) {
	if typ > MaxType {
		return Header{}, &RangeError{Field: "type", Value: int64(typ), Min: 0, Max: MaxType}
	}
	if length < 0 || length > math.MaxUint32 {
		return Header{}, &RangeError{Field: "length", Value: int64(length), Min: 0, Max: math.MaxUint32}
	}
	h := Header{Type: typ, Length: length, Start: w.Position()}
	if HeaderSize(length) == LongHeader {
		if err := w.WriteWord(int64(typ)<<6|LengthEscape, 2); err != nil {
			return Header{}, err
		}
		if err := w.WriteWord(int64(length), 4); err != nil {
			return Header{}, err
		}
	} else {
		if err := w.WriteWord(int64(typ)<<6|int64(length), 2); err != nil {
			return Header{}, err
		}
	}
	h.End = w.Position() + length<<3
	return h, nil
}

// ReadHeader reads a record header and computes where its body ends.
func ReadHeader(r *Reader) (Header, error) {
	h := Header{Start: r.Position()}
	word, err := r.ReadWord(2, false)
	if err != nil {
		return Header{}, err
	}
	h.Type = uint16(word >> 6)
	h.Length = int(word & LengthEscape)
	if h.Length == LengthEscape {
		n, err := r.ReadWord(4, false)
		if err != nil {
			return Header{}, err
		}
		h.Length = int(n)
	}
	h.End = r.Position() + h.Length<<3
	return h, nil
}

// Remaining returns the number of body bytes left before h.End, or zero
// when the cursor has already passed it.
func Remaining(r *Reader, h Header) int {
	if n := (h.End - r.Position()) >> 3; n > 0 {
		return n
	}
	return 0
}
