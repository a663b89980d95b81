package tag

import (
	"fmt"

	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/datatype"
)

// StartSound plays an event sound.
type StartSound struct {
	sound *datatype.SoundInfo
}

// NewStartSound returns a StartSound record playing info.
func NewStartSound(info *datatype.SoundInfo) (*StartSound, error) {
	s := &StartSound{}
	if err := s.SetSound(info); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StartSound) Type() uint16 { return TypeStartSound }

func (s *StartSound) Sound() *datatype.SoundInfo { return s.sound }

func (s *StartSound) SetSound(info *datatype.SoundInfo) error {
	if info == nil {
		return &coder.NullPayloadError{Field: "sound"}
	}
	s.sound = info
	return nil
}

func (s *StartSound) Copy() *StartSound {
	if s.sound == nil {
		return &StartSound{}
	}
	return &StartSound{sound: s.sound.Copy()}
}

func (s *StartSound) MeasureBody(ctx *coder.Context) (int, error) {
	if s.sound == nil {
		return 0, &coder.NullPayloadError{Field: "sound"}
	}
	return s.sound.Measure(ctx)
}

func (s *StartSound) EncodeBody(w *coder.Writer, ctx *coder.Context) error {
	return s.sound.Encode(w, ctx)
}

func (s *StartSound) DecodeBody(r *coder.Reader, ctx *coder.Context, _ coder.Header) error {
	var err error
	s.sound, err = datatype.DecodeSoundInfo(r, ctx)
	return err
}

// ButtonEvent is a button state change that can play a sound.
type ButtonEvent int

// Slots in the order they are coded.
const (
	RollOut ButtonEvent = iota
	RollOver
	Press
	Release
	buttonEvents
)

func (e ButtonEvent) String() string {
	switch e {
	case RollOut:
		return "rollOut"
	case RollOver:
		return "rollOver"
	case Press:
		return "press"
	case Release:
		return "release"
	}
	return fmt.Sprintf("ButtonEvent(%d)", int(e))
}

// ButtonSound sets the sounds a button plays. An event without a sound is
// coded as a zero word.
type ButtonSound struct {
	id    int
	slots [buttonEvents]*datatype.SoundInfo
}

// NewButtonSound returns a ButtonSound for the button id with no sounds.
func NewButtonSound(id int) (*ButtonSound, error) {
	b := &ButtonSound{}
	if err := b.SetIdentifier(id); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *ButtonSound) Type() uint16 { return TypeButtonSound }

func (b *ButtonSound) Identifier() int { return b.id }

func (b *ButtonSound) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	b.id = id
	return nil
}

func checkEvent(e ButtonEvent) error {
	return coder.CheckRange("event", int(e), int(RollOut), int(Release))
}

// Sound returns the sound played for e, or nil.
func (b *ButtonSound) Sound(e ButtonEvent) *datatype.SoundInfo {
	if checkEvent(e) != nil {
		return nil
	}
	return b.slots[e]
}

// SetSound sets the sound played for e. A nil info clears it.
func (b *ButtonSound) SetSound(e ButtonEvent, info *datatype.SoundInfo) error {
	if err := checkEvent(e); err != nil {
		return err
	}
	b.slots[e] = info
	return nil
}

func (b *ButtonSound) Copy() *ButtonSound {
	c := &ButtonSound{id: b.id}
	for i, s := range b.slots {
		if s != nil {
			c.slots[i] = s.Copy()
		}
	}
	return c
}

func (b *ButtonSound) MeasureBody(ctx *coder.Context) (int, error) {
	n := 2
	for _, s := range b.slots {
		if s == nil {
			n += 2
			continue
		}
		m, err := s.Measure(ctx)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

func (b *ButtonSound) EncodeBody(w *coder.Writer, ctx *coder.Context) error {
	if err := writeU16s(w, b.id); err != nil {
		return err
	}
	for _, s := range b.slots {
		if s == nil {
			if err := writeU16s(w, 0); err != nil {
				return err
			}
			continue
		}
		if err := s.Encode(w, ctx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBody reads the button identifier and the slots. Trailing slots
// may be left out of the body entirely.
func (b *ButtonSound) DecodeBody(r *coder.Reader, ctx *coder.Context, h coder.Header) error {
	var err error
	if b.id, err = readU16(r); err != nil {
		return err
	}
	for i := range b.slots {
		b.slots[i] = nil
		if i > 0 && r.Position() == h.End {
			continue
		}
		m := r.Mark()
		id, err := readU16(r)
		if err != nil {
			return err
		}
		if id == 0 {
			continue
		}
		r.Reset(m)
		if b.slots[i], err = datatype.DecodeSoundInfo(r, ctx); err != nil {
			return fmt.Errorf("%s: %w", ButtonEvent(i), err)
		}
	}
	return nil
}
