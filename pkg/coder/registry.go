package coder

import (
	"fmt"
	"sort"
)

// Factory returns an empty record ready to be decoded.
type Factory func() Decodable

// Fallback returns a record for a type code with no registered factory.
type Fallback func(typ uint16) Decodable

// Registry maps type codes to record factories.
type Registry struct {
	factories map[uint16]Factory
	fallback  Fallback
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[uint16]Factory)}
}

// Register binds typ to f, replacing any earlier binding.
func (g *Registry) Register(typ uint16, f Factory) error {
	if typ > MaxType {
		return &RangeError{Field: "type", Value: int64(typ), Min: 0, Max: MaxType}
	}
	if f == nil {
		return &NullPayloadError{Field: "factory"}
	}
	g.factories[typ] = f
	return nil
}

// SetFallback sets the factory used for unregistered type codes. Without a
// fallback such codes fail with ErrUnknownType.
func (g *Registry) SetFallback(f Fallback) {
	g.fallback = f
}

// Lookup returns a new record for typ.
func (g *Registry) Lookup(typ uint16) (Decodable, error) {
	if f, ok := g.factories[typ]; ok {
		return f(), nil
	}
	if g.fallback != nil {
		return g.fallback(typ), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
}

// Decode reads the next header and decodes the record it announces.
func (g *Registry) Decode(r *Reader, ctx *Context) (Decodable, Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}
	rec, err := g.Lookup(h.Type)
	if err != nil {
		return nil, h, fmt.Errorf("at byte %d: %w", h.Offset(), err)
	}
	if err := DecodeWith(r, ctx, h, rec); err != nil {
		return nil, h, err
	}
	return rec, h, nil
}

// Types returns the registered type codes in ascending order.
func (g *Registry) Types() []uint16 {
	out := make([]uint16, 0, len(g.factories))
	for t := range g.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
