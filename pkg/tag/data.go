package tag

import (
	"bytes"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// ShowFrame displays the current frame. It has no body.
type ShowFrame struct{}

func (*ShowFrame) Type() uint16 { return TypeShowFrame }

func (*ShowFrame) Copy() *ShowFrame { return &ShowFrame{} }

func (*ShowFrame) MeasureBody(*coder.Context) (int, error) { return 0, nil }

func (*ShowFrame) EncodeBody(*coder.Writer, *coder.Context) error { return nil }

func (*ShowFrame) DecodeBody(*coder.Reader, *coder.Context, coder.Header) error { return nil }

// SerialNumber records the serial number of the tool that wrote a movie.
type SerialNumber struct {
	number string
}

// NewSerialNumber returns a SerialNumber record. The number may not hold
// a zero byte.
func NewSerialNumber(number string) (*SerialNumber, error) {
	s := &SerialNumber{}
	if err := s.SetNumber(number); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SerialNumber) Type() uint16 { return TypeSerialNumber }

func (s *SerialNumber) Number() string { return s.number }

func (s *SerialNumber) SetNumber(number string) error {
	if err := coder.CheckText("number", number); err != nil {
		return err
	}
	s.number = number
	return nil
}

func (s *SerialNumber) Copy() *SerialNumber { return &SerialNumber{number: s.number} }

func (s *SerialNumber) MeasureBody(ctx *coder.Context) (int, error) {
	return ctx.StrLen(s.number)
}

func (s *SerialNumber) EncodeBody(w *coder.Writer, _ *coder.Context) error {
	return w.WriteString(s.number)
}

func (s *SerialNumber) DecodeBody(r *coder.Reader, _ *coder.Context, _ coder.Header) error {
	var err error
	s.number, err = r.ReadString()
	return err
}

// VideoFrame carries one frame of a video stream.
type VideoFrame struct {
	id    int
	frame int
	data  []byte
}

// NewVideoFrame returns a VideoFrame record for stream id.
func NewVideoFrame(id, frame int, data []byte) (*VideoFrame, error) {
	v := &VideoFrame{}
	if err := v.SetIdentifier(id); err != nil {
		return nil, err
	}
	if err := v.SetFrame(frame); err != nil {
		return nil, err
	}
	if err := v.SetData(data); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *VideoFrame) Type() uint16 { return TypeVideoFrame }

func (v *VideoFrame) Identifier() int { return v.id }

func (v *VideoFrame) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *VideoFrame) Frame() int { return v.frame }

func (v *VideoFrame) SetFrame(frame int) error {
	if err := coder.CheckIdentifier("frame", frame); err != nil {
		return err
	}
	v.frame = frame
	return nil
}

func (v *VideoFrame) Data() []byte { return v.data }

func (v *VideoFrame) SetData(data []byte) error {
	if data == nil {
		return &coder.NullPayloadError{Field: "data"}
	}
	v.data = data
	return nil
}

func (v *VideoFrame) Copy() *VideoFrame {
	return &VideoFrame{id: v.id, frame: v.frame, data: bytes.Clone(v.data)}
}

func (v *VideoFrame) MeasureBody(*coder.Context) (int, error) { return 4 + len(v.data), nil }

func (v *VideoFrame) EncodeBody(w *coder.Writer, _ *coder.Context) error {
	if err := writeU16s(w, v.id, v.frame); err != nil {
		return err
	}
	return w.WriteBytes(v.data)
}

func (v *VideoFrame) DecodeBody(r *coder.Reader, _ *coder.Context, h coder.Header) error {
	var err error
	if v.id, err = readU16(r); err != nil {
		return err
	}
	if v.frame, err = readU16(r); err != nil {
		return err
	}
	v.data, err = r.ReadBytes(coder.Remaining(r, h))
	return err
}

// DefineData embeds an arbitrary binary object in a movie.
type DefineData struct {
	id   int
	data []byte
}

// NewDefineData returns a DefineData record.
func NewDefineData(id int, data []byte) (*DefineData, error) {
	d := &DefineData{}
	if err := d.SetIdentifier(id); err != nil {
		return nil, err
	}
	if err := d.SetData(data); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DefineData) Type() uint16 { return TypeDefineData }

func (d *DefineData) Identifier() int { return d.id }

func (d *DefineData) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DefineData) Data() []byte { return d.data }

func (d *DefineData) SetData(data []byte) error {
	if data == nil {
		return &coder.NullPayloadError{Field: "data"}
	}
	d.data = data
	return nil
}

func (d *DefineData) Copy() *DefineData {
	return &DefineData{id: d.id, data: bytes.Clone(d.data)}
}

func (d *DefineData) MeasureBody(*coder.Context) (int, error) { return 6 + len(d.data), nil }

func (d *DefineData) EncodeBody(w *coder.Writer, _ *coder.Context) error {
	if err := writeU16s(w, d.id); err != nil {
		return err
	}
	if err := w.WriteWord(0, 4); err != nil {
		return err
	}
	return w.WriteBytes(d.data)
}

func (d *DefineData) DecodeBody(r *coder.Reader, _ *coder.Context, h coder.Header) error {
	var err error
	if d.id, err = readU16(r); err != nil {
		return err
	}
	if _, err = readU32(r); err != nil {
		return err
	}
	d.data, err = r.ReadBytes(coder.Remaining(r, h))
	return err
}

// Unknown keeps the body of a record type this package does not decode.
type Unknown struct {
	typ  uint16
	body []byte
}

// NewUnknown returns a record of type typ with a verbatim body.
func NewUnknown(typ uint16, body []byte) (*Unknown, error) {
	if typ > coder.MaxType {
		return nil, &coder.RangeError{Field: "type", Value: int64(typ), Min: 0, Max: coder.MaxType}
	}
	if body == nil {
		return nil, &coder.NullPayloadError{Field: "body"}
	}
	return &Unknown{typ: typ, body: body}, nil
}

func (u *Unknown) Type() uint16 { return u.typ }

func (u *Unknown) Body() []byte { return u.body }

func (u *Unknown) Copy() *Unknown {
	return &Unknown{typ: u.typ, body: bytes.Clone(u.body)}
}

func (u *Unknown) MeasureBody(*coder.Context) (int, error) { return len(u.body), nil }

func (u *Unknown) EncodeBody(w *coder.Writer, _ *coder.Context) error {
	return w.WriteBytes(u.body)
}

func (u *Unknown) DecodeBody(r *coder.Reader, _ *coder.Context, h coder.Header) error {
	u.typ = h.Type
	var err error
	u.body, err = r.ReadBytes(coder.Remaining(r, h))
	return err
}
