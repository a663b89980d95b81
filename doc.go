// Package swfcodec reads and writes sequences of SWF tagged records.
//
// Every record is a header carrying a 10-bit type code and a body length,
// followed by the body. Encoding is done in two passes: each record is
// measured first, then written into a buffer of exactly the measured size,
// and the writer must land on the end the header announced. Decoding uses
// the same check in the other direction.
//
// The record types themselves live in pkg/tag. The bit stream, headers,
// presence flags and the error types live in pkg/coder.
package swfcodec
