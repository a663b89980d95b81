package swfcodec

import (
	"fmt"
	"log/slog"

	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/tag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// LegacyVersion is the last format version whose text is not UTF-8.
const LegacyVersion = 5

// Options configures a Codec. The zero value codes the latest version.
type Options struct {
	Version int // format version; zero means coder.DefaultVersion
	// Encoding is the text encoding for legacy movies; nil means
	// Windows-1252. Text holding a character the encoding lacks fails to
	// encode with coder.ErrRange.
	Encoding    encoding.Encoding
	Logger      *slog.Logger // nil discards
	KeepUnknown bool         // decode unregistered types as *tag.Unknown
}

// Codec decodes and encodes record sequences. A Codec holds no per-call
// state and may be used from several goroutines.
type Codec struct {
	opts Options
	reg  *coder.Registry
	log  *slog.Logger
}

// NewCodec returns a Codec for every record type in pkg/tag.
func NewCodec(opts Options) *Codec {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Codec{opts: opts, reg: tag.NewRegistry(opts.KeepUnknown), log: log}
}

// Registry exposes the type registry so callers can add their own record
// types before decoding.
func (c *Codec) Registry() *coder.Registry { return c.reg }

// Version returns the format version records are coded for.
func (c *Codec) Version() int {
	if c.opts.Version == 0 {
		return coder.DefaultVersion
	}
	return c.opts.Version
}

func (c *Codec) textEncoding() encoding.Encoding {
	if c.Version() > LegacyVersion {
		return nil
	}
	if c.opts.Encoding == nil {
		return charmap.Windows1252
	}
	return c.opts.Encoding
}

func (c *Codec) context() *coder.Context {
	ctx := coder.NewContext()
	if c.opts.Version != 0 {
		ctx.Set(coder.Version, c.opts.Version)
	}
	ctx.SetEncoding(c.textEncoding())
	return ctx
}

// Walk decodes the records in data one at a time and calls fn for each,
// stopping at the end of data, at the first decode error or at the first
// error fn returns.
func (c *Codec) Walk(data []byte, fn func(rec coder.Decodable, h coder.Header) error) error {
	r := coder.NewReader(data)
	r.SetEncoding(c.textEncoding())
	ctx := c.context()
	for n := 0; !r.EOF(); n++ {
		rec, h, err := c.reg.Decode(r, ctx)
		if err != nil {
			c.log.Debug("decode failed", "record", n, "offset", h.Offset(), "err", err)
			return fmt.Errorf("record %d: %w", n, err)
		}
		c.log.Debug("decoded", "record", n, "type", tag.TypeName(h.Type), "offset", h.Offset(), "length", h.Length)
		if err := fn(rec, h); err != nil {
			return err
		}
	}
	return nil
}

// Decode returns every record in data.
func (c *Codec) Decode(data []byte) ([]coder.Decodable, error) {
	var out []coder.Decodable
	err := c.Walk(data, func(rec coder.Decodable, _ coder.Header) error {
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Measure sizes every record and returns the plans with their total
// encoded length.
func (c *Codec) Measure(recs ...coder.Record) ([]coder.Plan, int, error) {
	ctx := c.context()
	plans := make([]coder.Plan, len(recs))
	total := 0
	for i, rec := range recs {
		p, err := coder.Measure(rec, ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
		plans[i] = p
		total += p.Len()
	}
	return plans, total, nil
}

// Encode writes recs in order into a single buffer sized from their
// measured lengths.
func (c *Codec) Encode(recs ...coder.Record) ([]byte, error) {
	plans, total, err := c.Measure(recs...)
	if err != nil {
		return nil, err
	}
	ctx := c.context()
	w := coder.NewWriter(total)
	w.SetEncoding(c.textEncoding())
	for i, p := range plans {
		start := w.Position() >> 3
		if err := p.Encode(w, ctx); err != nil {
			c.log.Debug("encode failed", "record", i, "offset", start, "err", err)
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		c.log.Debug("encoded", "record", i, "type", tag.TypeName(p.Record().Type()), "offset", start, "length", p.BodyLen())
	}
	return w.Bytes(), nil
}

// Records converts decoded records for passing back to Encode.
func Records(recs []coder.Decodable) []coder.Record {
	out := make([]coder.Record, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}
