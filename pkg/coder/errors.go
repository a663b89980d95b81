package coder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrUnderrun    = errors.New("read past end of data")
	ErrSeek        = errors.New("seek before start of data")
	ErrOverflow    = errors.New("write past end of buffer")
	ErrMismatch    = errors.New("structural mismatch")
	ErrRange       = errors.New("value out of range")
	ErrNullPayload = errors.New("required value is nil")
	ErrUnaligned   = errors.New("cursor not byte aligned")
	ErrBitCount    = errors.New("invalid bit count")
	ErrUnknownType = errors.New("unknown record type")
	ErrTypeCode    = errors.New("record type does not match header")
)

// UnderrunError reports a read beyond the end of the buffer.
// Positions and sizes are in bits.
type UnderrunError struct {
	Position  int
	Need      int
	Available int
}

func (e *UnderrunError) Error() string {
	return fmt.Sprintf("read past end of data: need %d bits at bit %d, %d available",
		e.Need, e.Position, e.Available)
}

func (e *UnderrunError) Is(target error) bool { return target == ErrUnderrun }

// OverflowError reports a write beyond the capacity the writer was created
// with. It means a record measured fewer bytes than it wrote.
type OverflowError struct {
	Position int
	Need     int
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("write past end of buffer: need %d bits at bit %d, capacity %d bits",
		e.Need, e.Position, e.Capacity)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// StructuralMismatchError reports a record whose body did not end exactly
// where its header said it would. Offset is the byte offset of the record
// header, Length the declared body length and Delta the signed distance in
// bytes between the cursor and the declared end, rounded away from zero.
// Bits holds the exact distance.
type StructuralMismatchError struct {
	Record string
	Offset int
	Length int
	Delta  int
	Bits   int
}

func (e *StructuralMismatchError) Error() string {
	off := fmt.Sprintf("%+d bytes", e.Delta)
	if e.Bits%8 != 0 {
		off = fmt.Sprintf("%+d bits", e.Bits)
	}
	return fmt.Sprintf("%s: structural mismatch at byte %d: declared length %d, cursor off by %s",
		e.Record, e.Offset, e.Length, off)
}

func (e *StructuralMismatchError) Is(target error) bool { return target == ErrMismatch }

// RangeError reports a field value outside its domain.
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d not in range %d..%d", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// TextError reports a character the active text encoding cannot represent.
// Offset is the byte offset of the rune within the string.
type TextError struct {
	Rune   rune
	Offset int
}

func (e *TextError) Error() string {
	return fmt.Sprintf("text: %q at byte %d has no representation in the text encoding", e.Rune, e.Offset)
}

func (e *TextError) Is(target error) bool { return target == ErrRange }

// NullPayloadError reports a required reference that was not supplied.
type NullPayloadError struct {
	Field string
}

func (e *NullPayloadError) Error() string {
	return e.Field + ": required value is nil"
}

func (e *NullPayloadError) Is(target error) bool { return target == ErrNullPayload }

// CheckRange returns a *RangeError when v is outside min..max.
func CheckRange(field string, v, min, max int) error {
	if v < min || v > max {
		return &RangeError{Field: field, Value: int64(v), Min: int64(min), Max: int64(max)}
	}
	return nil
}

// CheckIdentifier validates an object identifier or layer number.
func CheckIdentifier(field string, v int) error {
	return CheckRange(field, v, 1, 65535)
}

// CheckText rejects text holding a zero byte, which would end the coded
// string early.
func CheckText(field, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return &RangeError{Field: field, Value: 0, Min: 1, Max: unicode.MaxRune}
	}
	return nil
}
