package tag

import (
	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/datatype"
)

// Place puts an object on the display list at a layer. The colour
// transform is optional and is present when bytes remain in the body after
// the coordinate transform.
type Place struct {
	id        int
	layer     int
	transform datatype.CoordTransform
	color     *datatype.ColorTransform
}

// NewPlace returns a Place record.
func NewPlace(id, layer int, transform datatype.CoordTransform) (*Place, error) {
	p := &Place{transform: transform}
	if err := p.SetIdentifier(id); err != nil {
		return nil, err
	}
	if err := p.SetLayer(layer); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Place) Type() uint16 { return TypePlace }

func (p *Place) Identifier() int { return p.id }

func (p *Place) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Place) Layer() int { return p.layer }

func (p *Place) SetLayer(layer int) error {
	if err := coder.CheckIdentifier("layer", layer); err != nil {
		return err
	}
	p.layer = layer
	return nil
}

func (p *Place) Transform() datatype.CoordTransform { return p.transform }

func (p *Place) SetTransform(t datatype.CoordTransform) { p.transform = t }

// ColorTransform returns the colour transform or nil.
func (p *Place) ColorTransform() *datatype.ColorTransform { return p.color }

// SetColorTransform sets or, with nil, removes the colour transform.
func (p *Place) SetColorTransform(c *datatype.ColorTransform) {
	if c == nil {
		p.color = nil
		return
	}
	v := *c
	p.color = &v
}

// Copy returns a deep copy of p.
func (p *Place) Copy() *Place {
	c := *p
	c.SetColorTransform(p.color)
	return &c
}

func (p *Place) MeasureBody(ctx *coder.Context) (int, error) {
	n, err := p.transform.Measure(ctx)
	if err != nil {
		return 0, err
	}
	n += 4
	if p.color != nil {
		m, err := p.color.Measure(ctx)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

func (p *Place) EncodeBody(w *coder.Writer, ctx *coder.Context) error {
	if err := writeU16s(w, p.id, p.layer); err != nil {
		return err
	}
	if err := p.transform.Encode(w, ctx); err != nil {
		return err
	}
	if p.color != nil {
		return p.color.Encode(w, ctx)
	}
	return nil
}

func (p *Place) DecodeBody(r *coder.Reader, ctx *coder.Context, h coder.Header) error {
	var err error
	if p.id, err = readU16(r); err != nil {
		return err
	}
	if p.layer, err = readU16(r); err != nil {
		return err
	}
	if p.transform, err = datatype.DecodeCoordTransform(r, ctx); err != nil {
		return err
	}
	p.color = nil
	if r.Position() < h.End {
		c, err := datatype.DecodeColorTransform(r, ctx)
		if err != nil {
			return err
		}
		p.color = &c
	}
	return nil
}

// Remove takes the object with the given identifier off a layer.
type Remove struct {
	id    int
	layer int
}

// NewRemove returns a Remove record.
func NewRemove(id, layer int) (*Remove, error) {
	m := &Remove{}
	if err := m.SetIdentifier(id); err != nil {
		return nil, err
	}
	if err := m.SetLayer(layer); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Remove) Type() uint16 { return TypeRemove }

func (m *Remove) Identifier() int { return m.id }

func (m *Remove) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Remove) Layer() int { return m.layer }

func (m *Remove) SetLayer(layer int) error {
	if err := coder.CheckIdentifier("layer", layer); err != nil {
		return err
	}
	m.layer = layer
	return nil
}

func (m *Remove) Copy() *Remove {
	c := *m
	return &c
}

func (m *Remove) MeasureBody(*coder.Context) (int, error) { return 4, nil }

func (m *Remove) EncodeBody(w *coder.Writer, _ *coder.Context) error {
	return writeU16s(w, m.id, m.layer)
}

func (m *Remove) DecodeBody(r *coder.Reader, _ *coder.Context, _ coder.Header) error {
	var err error
	if m.id, err = readU16(r); err != nil {
		return err
	}
	m.layer, err = readU16(r)
	return err
}
