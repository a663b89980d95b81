package tag

import (
	"fmt"
	"math"
	"slices"

	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/datatype"
	"github.com/rawbytedev/swfcodec/pkg/events"
)

// Mode says what a Place2 record does to its layer.
type Mode int

const (
	// Modify changes the object already on the layer.
	Modify Mode = 1
	// New places a new object on an empty layer.
	New Mode = 2
	// Replace swaps the object on the layer for another.
	Replace Mode = 3
)

func (m Mode) String() string {
	switch m {
	case Modify:
		return "modify"
	case New:
		return "new"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) hasIdentifier() bool { return m == New || m == Replace }

// Place2 places, moves or replaces an object on a layer. Everything except
// the mode and layer is optional. Colours in the body carry alpha.
type Place2 struct {
	mode      Mode
	layer     int
	id        int
	transform *datatype.CoordTransform
	color     *datatype.ColorTransform
	ratio     *int
	name      *string
	depth     *int
	events    []*events.ClipHandler
}

// NewPlace2 returns a Place2 record. id is ignored for Modify.
func NewPlace2(mode Mode, id, layer int) (*Place2, error) {
	p := &Place2{}
	if err := p.SetMode(mode); err != nil {
		return nil, err
	}
	if err := p.SetLayer(layer); err != nil {
		return nil, err
	}
	if mode.hasIdentifier() {
		if err := p.SetIdentifier(id); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ShowPlace2 places a new object at x, y.
func ShowPlace2(id, layer, x, y int) (*Place2, error) {
	return placeAt(New, id, layer, x, y)
}

// MovePlace2 moves the object on layer to x, y.
func MovePlace2(layer, x, y int) (*Place2, error) {
	return placeAt(Modify, 0, layer, x, y)
}

// ModifyPlace2 returns a record that changes nothing until fields are set.
func ModifyPlace2(layer int) (*Place2, error) {
	return NewPlace2(Modify, 0, layer)
}

// ReplacePlace2 replaces the object on layer with id at x, y.
func ReplacePlace2(id, layer, x, y int) (*Place2, error) {
	return placeAt(Replace, id, layer, x, y)
}

func placeAt(mode Mode, id, layer, x, y int) (*Place2, error) {
	p, err := NewPlace2(mode, id, layer)
	if err != nil {
		return nil, err
	}
	t, err := datatype.Translate(x, y)
	if err != nil {
		return nil, err
	}
	p.SetTransform(&t)
	return p, nil
}

func (p *Place2) Type() uint16 { return TypePlace2 }

func (p *Place2) Mode() Mode { return p.mode }

func (p *Place2) SetMode(m Mode) error {
	if err := coder.CheckRange("mode", int(m), int(Modify), int(Replace)); err != nil {
		return err
	}
	p.mode = m
	return nil
}

func (p *Place2) Layer() int { return p.layer }

func (p *Place2) SetLayer(layer int) error {
	if err := coder.CheckIdentifier("layer", layer); err != nil {
		return err
	}
	p.layer = layer
	return nil
}

// Identifier returns the object placed. It is only coded for New and
// Replace.
func (p *Place2) Identifier() int { return p.id }

func (p *Place2) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Place2) Transform() *datatype.CoordTransform { return p.transform }

func (p *Place2) SetTransform(t *datatype.CoordTransform) { p.transform = clonePtr(t) }

func (p *Place2) ColorTransform() *datatype.ColorTransform { return p.color }

func (p *Place2) SetColorTransform(c *datatype.ColorTransform) { p.color = clonePtr(c) }

// Ratio returns the morph ratio, if set.
func (p *Place2) Ratio() (int, bool) {
	if p.ratio == nil {
		return 0, false
	}
	return *p.ratio, true
}

func (p *Place2) SetRatio(v int) error {
	if err := coder.CheckRange("ratio", v, 0, math.MaxUint16); err != nil {
		return err
	}
	p.ratio = &v
	return nil
}

func (p *Place2) ClearRatio() { p.ratio = nil }

// Name returns the instance name, if set.
func (p *Place2) Name() (string, bool) {
	if p.name == nil {
		return "", false
	}
	return *p.name, true
}

// SetName sets the instance name. The name may not hold a zero byte.
func (p *Place2) SetName(name string) error {
	if err := coder.CheckText("name", name); err != nil {
		return err
	}
	p.name = &name
	return nil
}

func (p *Place2) ClearName() { p.name = nil }

// Depth returns the clipping depth, if set.
func (p *Place2) Depth() (int, bool) {
	if p.depth == nil {
		return 0, false
	}
	return *p.depth, true
}

func (p *Place2) SetDepth(v int) error {
	if err := coder.CheckIdentifier("depth", v); err != nil {
		return err
	}
	p.depth = &v
	return nil
}

func (p *Place2) ClearDepth() { p.depth = nil }

func (p *Place2) Events() []*events.ClipHandler { return p.events }

// AddEvent appends a clip event handler.
func (p *Place2) AddEvent(h *events.ClipHandler) error {
	if h == nil {
		return &coder.NullPayloadError{Field: "event"}
	}
	p.events = append(p.events, h)
	return nil
}

// SetEvents replaces the clip event handlers.
func (p *Place2) SetEvents(handlers []*events.ClipHandler) error {
	for _, h := range handlers {
		if h == nil {
			return &coder.NullPayloadError{Field: "event"}
		}
	}
	p.events = slices.Clone(handlers)
	return nil
}

// Copy returns a deep copy of p.
func (p *Place2) Copy() *Place2 {
	c := *p
	c.transform = clonePtr(p.transform)
	c.color = clonePtr(p.color)
	c.ratio = clonePtr(p.ratio)
	c.name = clonePtr(p.name)
	c.depth = clonePtr(p.depth)
	c.events = nil
	for _, h := range p.events {
		c.events = append(c.events, h.Copy())
	}
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// presence lists the optional fields in stream order. The flag run is
// events, depth, name, ratio, colour transform, transform.
func (p *Place2) presence() coder.Presence {
	return coder.Presence{
		{
			Name: "transform", Bit: 5,
			Present: func() bool { return p.transform != nil },
			Size:    func(ctx *coder.Context) (int, error) { return p.transform.Measure(ctx) },
			Encode:  func(w *coder.Writer, ctx *coder.Context) error { return p.transform.Encode(w, ctx) },
			Decode: func(r *coder.Reader, ctx *coder.Context) error {
				t, err := datatype.DecodeCoordTransform(r, ctx)
				p.transform = &t
				return err
			},
		},
		{
			Name: "color", Bit: 4,
			Present: func() bool { return p.color != nil },
			Size:    func(ctx *coder.Context) (int, error) { return p.color.Measure(ctx) },
			Encode:  func(w *coder.Writer, ctx *coder.Context) error { return p.color.Encode(w, ctx) },
			Decode: func(r *coder.Reader, ctx *coder.Context) error {
				c, err := datatype.DecodeColorTransform(r, ctx)
				p.color = &c
				return err
			},
		},
		{
			Name: "ratio", Bit: 3,
			Present: func() bool { return p.ratio != nil },
			Size:    func(*coder.Context) (int, error) { return 2, nil },
			Encode:  func(w *coder.Writer, _ *coder.Context) error { return w.WriteWord(int64(*p.ratio), 2) },
			Decode: func(r *coder.Reader, _ *coder.Context) error {
				v, err := readU16(r)
				p.ratio = &v
				return err
			},
		},
		{
			Name: "name", Bit: 2,
			Present: func() bool { return p.name != nil },
			Size:    func(ctx *coder.Context) (int, error) { return ctx.StrLen(*p.name) },
			Encode:  func(w *coder.Writer, _ *coder.Context) error { return w.WriteString(*p.name) },
			Decode: func(r *coder.Reader, _ *coder.Context) error {
				s, err := r.ReadString()
				p.name = &s
				return err
			},
		},
		{
			Name: "depth", Bit: 1,
			Present: func() bool { return p.depth != nil },
			Size:    func(*coder.Context) (int, error) { return 2, nil },
			Encode:  func(w *coder.Writer, _ *coder.Context) error { return w.WriteWord(int64(*p.depth), 2) },
			Decode: func(r *coder.Reader, _ *coder.Context) error {
				v, err := readU16(r)
				p.depth = &v
				return err
			},
		},
		{
			Name: "events", Bit: 0,
			Present: func() bool { return len(p.events) > 0 },
			Size:    func(ctx *coder.Context) (int, error) { return events.MeasureChain(p.events, ctx) },
			Encode:  func(w *coder.Writer, ctx *coder.Context) error { return events.EncodeChain(w, ctx, p.events) },
			Decode: func(r *coder.Reader, ctx *coder.Context) error {
				var err error
				p.events, err = events.DecodeChain(r, ctx, events.DecodeClipHandler)
				return err
			},
		},
	}
}

func (p *Place2) fixedLen() int {
	if p.mode.hasIdentifier() {
		return 5
	}
	return 3
}

func (p *Place2) MeasureBody(ctx *coder.Context) (int, error) {
	defer ctx.Push(coder.Transparent, 1)()
	n, err := p.presence().Size(ctx)
	if err != nil {
		return 0, err
	}
	return p.fixedLen() + n, nil
}

func (p *Place2) EncodeBody(w *coder.Writer, ctx *coder.Context) error {
	defer ctx.Push(coder.Transparent, 1)()
	fields := p.presence()
	if err := fields.Write(w); err != nil {
		return err
	}
	if err := w.WriteBits(int64(p.mode), 2); err != nil {
		return err
	}
	if err := writeU16s(w, p.layer); err != nil {
		return err
	}
	if p.mode.hasIdentifier() {
		if err := writeU16s(w, p.id); err != nil {
			return err
		}
	}
	return fields.Encode(w, ctx)
}

func (p *Place2) DecodeBody(r *coder.Reader, ctx *coder.Context, _ coder.Header) error {
	defer ctx.Push(coder.Transparent, 1)()
	fields := p.presence()
	flags, err := fields.Read(r)
	if err != nil {
		return err
	}
	mode, err := r.ReadBits(2, false)
	if err != nil {
		return err
	}
	if mode == 0 {
		return &coder.RangeError{Field: "mode", Value: 0, Min: int64(Modify), Max: int64(Replace)}
	}
	p.mode = Mode(mode)
	if p.layer, err = readU16(r); err != nil {
		return err
	}
	if p.mode.hasIdentifier() {
		if p.id, err = readU16(r); err != nil {
			return err
		}
	}
	return fields.Decode(r, ctx, flags)
}
