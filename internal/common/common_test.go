package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedBits(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, -1: 1, 2: 3, -2: 2, 16383: 15, -16384: 15, 1 << 30: 32, -(1 << 30): 31}
	for v, want := range cases {
		assert.Equal(t, want, SignedBits(v), "value %d", v)
	}
	assert.Equal(t, 15, MaxSignedBits(1, -16384, 0))
	assert.Zero(t, MaxSignedBits())
}

func TestBytesFor(t *testing.T) {
	assert.Equal(t, 0, BytesFor(0))
	assert.Equal(t, 1, BytesFor(1))
	assert.Equal(t, 1, BytesFor(8))
	assert.Equal(t, 2, BytesFor(9))
}
