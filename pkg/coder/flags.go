package coder

import "fmt"

// Optional describes one field gated by a presence bit. Bit is the index
// of the flag within the presence run, counted from the first bit written.
// Size, Encode and Decode are only called when the field is present;
// nil Size or Encode means the field has no body of its own.
type Optional struct {
	Name    string
	Bit     int
	Present func() bool
	Size    func(ctx *Context) (int, error)
	Encode  func(w *Writer, ctx *Context) error
	Decode  func(r *Reader, ctx *Context) error
}

// Presence is the declared list of optional fields of a structure. The
// list order is the order the fields follow each other in the stream; Bit
// places each flag within the presence run, which may differ.
type Presence []Optional

// Flags holds presence bits read from a stream, indexed by Optional.Bit.
type Flags []bool

// Has reports whether bit i was set.
func (f Flags) Has(i int) bool { return i >= 0 && i < len(f) && f[i] }

// Width returns the number of presence bits in the run.
func (p Presence) Width() int {
	n := 0
	for _, o := range p {
		if o.Bit+1 > n {
			n = o.Bit + 1
		}
	}
	return n
}

// Write writes the presence run, most significant (first) bit first.
func (p Presence) Write(w *Writer) error {
	bits := make(Flags, p.Width())
	for _, o := range p {
		bits[o.Bit] = o.Present()
	}
	for _, b := range bits {
		if err := w.WriteFlag(b); err != nil {
			return err
		}
	}
	return nil
}

// Read reads the presence run.
func (p Presence) Read(r *Reader) (Flags, error) {
	bits := make(Flags, p.Width())
	for i := range bits {
		b, err := r.ReadFlag()
		if err != nil {
			return nil, err
		}
		bits[i] = b
	}
	return bits, nil
}

// Size returns the bytes taken by the present fields, excluding the
// presence run itself.
func (p Presence) Size(ctx *Context) (int, error) {
	total := 0
	for _, o := range p {
		if !o.Present() || o.Size == nil {
			continue
		}
		n, err := o.Size(ctx)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", o.Name, err)
		}
		total += n
	}
	return total, nil
}

// Encode writes the present fields in stream order.
func (p Presence) Encode(w *Writer, ctx *Context) error {
	for _, o := range p {
		if !o.Present() || o.Encode == nil {
			continue
		}
		if err := o.Encode(w, ctx); err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
	}
	return nil
}

// Decode reads the fields whose bits are set in flags, in stream order.
func (p Presence) Decode(r *Reader, ctx *Context, flags Flags) error {
	for _, o := range p {
		if !flags.Has(o.Bit) || o.Decode == nil {
			continue
		}
		if err := o.Decode(r, ctx); err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
	}
	return nil
}
