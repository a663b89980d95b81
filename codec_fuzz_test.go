package swfcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzDecode(f *testing.F) {
	c := NewCodec(Options{KeepUnknown: true})
	seed, err := c.Encode(sampleRecords(f)...)
	require.NoError(f, err)
	f.Add(seed)
	f.Add([]byte{0x7F, 0x01, 0x3F, 0x00, 0x00, 0x00})
	f.Add([]byte{0x96, 0x06, 0x81, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	f.Fuzz(func(t *testing.T, data []byte) {
		recs, err := c.Decode(data)
		if err != nil {
			return
		}
		out, err := c.Encode(Records(recs)...)
		require.NoError(t, err)
		again, err := c.Decode(out)
		require.NoError(t, err)
		require.Len(t, again, len(recs))
		out2, err := c.Encode(Records(again)...)
		require.NoError(t, err)
		require.Equal(t, out, out2)
	})
}
