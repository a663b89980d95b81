package tagfile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// streamKey separates stream digests from other uses of BLAKE3.
var streamKey = [32]byte{
	's', 'w', 'f', 'c', 'o', 'd', 'e', 'c', '.', 't', 'a', 'g', 'f', 'i', 'l', 'e',
	'.', 's', 't', 'r', 'e', 'a', 'm',
}

// Digest returns the keyed BLAKE3 hash of an uncompressed record stream
// as "blake3:" followed by 64 hex digits. Streams holding the same records
// have the same digest whatever file they were stored in.
func Digest(raw []byte) string {
	h, err := blake3.NewKeyed(streamKey[:])
	if err != nil {
		panic("tagfile: blake3 key: " + err.Error())
	}
	_, _ = h.Write(raw)
	return "blake3:" + hex.EncodeToString(h.Sum(nil))
}
