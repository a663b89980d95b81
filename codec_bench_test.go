package swfcodec

import (
	"testing"
)

func BenchmarkCodecEncode(b *testing.B) {
	c := NewCodec(Options{})
	recs := sampleRecords(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(recs...)
	}
}

func BenchmarkCodecDecode(b *testing.B) {
	c := NewCodec(Options{})
	data, err := c.Encode(sampleRecords(b)...)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(data)
	}
}

func BenchmarkCodecLegacyDecode(b *testing.B) {
	c := NewCodec(Options{Version: 5})
	data, err := c.Encode(sampleRecords(b)...)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(data)
	}
}
