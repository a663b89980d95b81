package common

import "math/bits"

// SignedBits returns the number of bits needed to hold v as a two's
// complement field, sign bit included. Zero needs no bits.
func SignedBits(v int) int {
	if v == 0 {
		return 0
	}
	if v < 0 {
		v = ^v
	}
	return bits.Len64(uint64(v)) + 1
}

// MaxSignedBits returns the widest SignedBits over values.
func MaxSignedBits(values ...int) int {
	n := 0
	for _, v := range values {
		if b := SignedBits(v); b > n {
			n = b
		}
	}
	return n
}

// BytesFor rounds a bit count up to whole bytes.
func BytesFor(nbits int) int {
	return (nbits + 7) >> 3
}
