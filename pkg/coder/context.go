package coder

import "golang.org/x/text/encoding"

// Key names a Context variable.
type Key int

const (
	// Version is the format version of the movie being coded.
	Version Key = iota + 1
	// Transparent is set while coding structures whose colours carry an
	// alpha channel.
	Transparent
)

// DefaultVersion is reported by Context.Version when no version was set.
const DefaultVersion = 10

// Context carries the state nested structures read while a record is
// decoded or encoded. It is owned by a single decode or encode call and
// must not be shared between goroutines.
type Context struct {
	vars map[Key]int
	enc  encoding.Encoding
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{vars: make(map[Key]int)}
}

// Get returns the value of k and whether it is set.
func (c *Context) Get(k Key) (int, bool) {
	v, ok := c.vars[k]
	return v, ok
}

// Has reports whether k is set.
func (c *Context) Has(k Key) bool {
	_, ok := c.vars[k]
	return ok
}

// Set assigns v to k.
func (c *Context) Set(k Key, v int) {
	if c.vars == nil {
		c.vars = make(map[Key]int)
	}
	c.vars[k] = v
}

// Remove clears k.
func (c *Context) Remove(k Key) {
	delete(c.vars, k)
}

// Push sets k to v and returns a function that restores the previous
// state of k. Callers defer the returned function so the value never
// outlives the scope that needed it, including on error returns:
//
//	defer ctx.Push(coder.Transparent, 1)()
func (c *Context) Push(k Key, v int) (restore func()) {
	prev, had := c.Get(k)
	c.Set(k, v)
	return func() {
		if had {
			c.vars[k] = prev
		} else {
			delete(c.vars, k)
		}
	}
}

// With runs fn with k set to v.
func (c *Context) With(k Key, v int, fn func() error) error {
	defer c.Push(k, v)()
	return fn()
}

// Version returns the format version, or DefaultVersion when unset.
func (c *Context) Version() int {
	if v, ok := c.Get(Version); ok {
		return v
	}
	return DefaultVersion
}

// Transparent reports whether colours are coded with an alpha channel.
func (c *Context) Transparent() bool {
	v, ok := c.Get(Transparent)
	return ok && v != 0
}

// SetEncoding sets the text encoding strings are measured with. It must
// match the encoding of the Writer the record is encoded into.
func (c *Context) SetEncoding(enc encoding.Encoding) { c.enc = enc }

// Encoding returns the text encoding, nil meaning UTF-8.
func (c *Context) Encoding() encoding.Encoding { return c.enc }

// StrLen returns the bytes a zero-terminated string takes in the
// context's encoding. It fails like Writer.WriteString on text that
// cannot be coded.
func (c *Context) StrLen(s string) (int, error) {
	raw, err := encodeText(c.enc, s)
	if err != nil {
		return 0, err
	}
	return len(raw) + 1, nil
}
