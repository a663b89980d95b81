// Package tagfile stores record streams on disk. Files named with a ".zst"
// or ".lz4" extension are compressed with zstd or lz4.
package tagfile

import (
	"fmt"
	"os"

	"github.com/rawbytedev/swfcodec"
	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Load reads the record stream stored at path.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := Decompress(data, ForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// Save writes the record stream raw to path.
func Save(path string, raw []byte) error {
	data, err := Compress(raw, ForPath(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadRecords reads and decodes the records stored at path.
func LoadRecords(path string, c *swfcodec.Codec) ([]coder.Decodable, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	recs, err := c.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// SaveRecords encodes recs and writes them to path.
func SaveRecords(path string, c *swfcodec.Codec, recs ...coder.Record) error {
	raw, err := c.Encode(recs...)
	if err != nil {
		return err
	}
	return Save(path, raw)
}
