package coder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderEscapeThreshold(t *testing.T) {
	tests := []struct {
		length int
		want   []byte
	}{
		{61, []byte{0x7D, 0x01}},
		{62, []byte{0x7E, 0x01}},
		{63, []byte{0x7F, 0x01, 0x3F, 0x00, 0x00, 0x00}},
		{64, []byte{0x7F, 0x01, 0x40, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		require.Equal(t, len(tt.want), HeaderSize(tt.length), "length %d", tt.length)
		w := NewWriter(HeaderSize(tt.length))
		h, err := WriteHeader(w, 5, tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, w.Bytes(), "length %d", tt.length)
		assert.Equal(t, len(tt.want)*8+tt.length*8, h.End)

		r := NewReader(tt.want)
		got, err := ReadHeader(r)
		require.NoError(t, err)
		assert.EqualValues(t, 5, got.Type)
		assert.Equal(t, tt.length, got.Length)
		assert.Equal(t, h.End, got.End)
		assert.Zero(t, got.Start)
	}
}

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader(NewReader([]byte{0x44, 0x01, 0x01, 0x00, 0x02, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, Header{Type: 5, Length: 4, Start: 0, End: 48}, h)

	h, err = ReadHeader(NewReader([]byte{0x7F, 0x01, 0x04, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, Header{Type: 5, Length: 4, Start: 0, End: 80}, h)

	_, err = ReadHeader(NewReader([]byte{0x7F, 0x01, 0x04}))
	require.ErrorIs(t, err, ErrUnderrun)
}

func TestHeaderAtOffset(t *testing.T) {
	r := NewReader([]byte{0x40, 0x00, 0x44, 0x01, 0x01, 0x00, 0x02, 0x00})
	_, err := ReadHeader(r)
	require.NoError(t, err)
	h, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Offset())
	assert.Equal(t, 64, h.End)
	assert.Equal(t, 4, Remaining(r, h))
}

func TestWriteHeaderRejectsType(t *testing.T) {
	_, err := WriteHeader(NewWriter(2), MaxType+1, 0)
	require.ErrorIs(t, err, ErrRange)
	_, err = WriteHeader(NewWriter(2), 1, -1)
	require.ErrorIs(t, err, ErrRange)
	_, err = WriteHeader(NewWriter(1), 1, 0)
	require.ErrorIs(t, err, ErrOverflow)
}
