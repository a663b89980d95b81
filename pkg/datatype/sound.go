package datatype

import (
	"fmt"
	"math"
	"slices"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// SoundMode selects how a sound starts relative to copies already playing.
type SoundMode int

const (
	// Continue starts the sound even if it is already playing.
	Continue SoundMode = iota
	// Start does nothing if the sound is already playing.
	Start
	// Stop stops the sound.
	Stop
)

func (m SoundMode) String() string {
	switch m {
	case Continue:
		return "continue"
	case Start:
		return "start"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("SoundMode(%d)", int(m))
}

// Envelope sets the left and right channel levels from a sample onwards.
type Envelope struct {
	Mark  int
	Left  int
	Right int
}

// MaxLevel is the loudest channel level.
const MaxLevel = 32768

func (e Envelope) check() error {
	if err := coder.CheckRange("envelope mark", e.Mark, 0, math.MaxUint32); err != nil {
		return err
	}
	if err := coder.CheckRange("envelope left", e.Left, 0, MaxLevel); err != nil {
		return err
	}
	return coder.CheckRange("envelope right", e.Right, 0, MaxLevel)
}

// SoundInfo controls how an event sound is played.
type SoundInfo struct {
	id        int
	mode      SoundMode
	inPoint   *int
	outPoint  *int
	loops     *int
	envelopes []Envelope
}

// NewSoundInfo returns settings for playing the sound with identifier id.
func NewSoundInfo(id int, mode SoundMode) (*SoundInfo, error) {
	s := &SoundInfo{}
	if err := s.SetIdentifier(id); err != nil {
		return nil, err
	}
	if err := s.SetMode(mode); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SoundInfo) Identifier() int { return s.id }

func (s *SoundInfo) SetIdentifier(id int) error {
	if err := coder.CheckIdentifier("identifier", id); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SoundInfo) Mode() SoundMode { return s.mode }

func (s *SoundInfo) SetMode(m SoundMode) error {
	if err := coder.CheckRange("mode", int(m), int(Continue), int(Stop)); err != nil {
		return err
	}
	s.mode = m
	return nil
}

func optional(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// InPoint returns the first sample played, if set.
func (s *SoundInfo) InPoint() (int, bool) { return optional(s.inPoint) }

func (s *SoundInfo) SetInPoint(v int) error {
	if err := coder.CheckRange("inPoint", v, 0, math.MaxUint32); err != nil {
		return err
	}
	s.inPoint = &v
	return nil
}

func (s *SoundInfo) ClearInPoint() { s.inPoint = nil }

// OutPoint returns the last sample played, if set.
func (s *SoundInfo) OutPoint() (int, bool) { return optional(s.outPoint) }

func (s *SoundInfo) SetOutPoint(v int) error {
	if err := coder.CheckRange("outPoint", v, 0, math.MaxUint32); err != nil {
		return err
	}
	s.outPoint = &v
	return nil
}

func (s *SoundInfo) ClearOutPoint() { s.outPoint = nil }

// Loops returns how many times the sound repeats, if set.
func (s *SoundInfo) Loops() (int, bool) { return optional(s.loops) }

func (s *SoundInfo) SetLoops(v int) error {
	if err := coder.CheckRange("loops", v, 0, math.MaxUint16); err != nil {
		return err
	}
	s.loops = &v
	return nil
}

func (s *SoundInfo) ClearLoops() { s.loops = nil }

func (s *SoundInfo) Envelopes() []Envelope { return s.envelopes }

// SetEnvelopes replaces the level envelope. An empty list removes it.
func (s *SoundInfo) SetEnvelopes(envs []Envelope) error {
	if err := coder.CheckRange("envelope count", len(envs), 0, math.MaxUint8); err != nil {
		return err
	}
	for _, e := range envs {
		if err := e.check(); err != nil {
			return err
		}
	}
	if len(envs) == 0 {
		s.envelopes = nil
		return nil
	}
	s.envelopes = slices.Clone(envs)
	return nil
}

// Copy returns a deep copy of s.
func (s *SoundInfo) Copy() *SoundInfo {
	c := *s
	if s.inPoint != nil {
		v := *s.inPoint
		c.inPoint = &v
	}
	if s.outPoint != nil {
		v := *s.outPoint
		c.outPoint = &v
	}
	if s.loops != nil {
		v := *s.loops
		c.loops = &v
	}
	c.envelopes = slices.Clone(s.envelopes)
	return &c
}

// presence lists the optional fields in stream order. The flag run is
// envelope, loops, out point, in point.
func (s *SoundInfo) presence() coder.Presence {
	word := func(p **int, size int) (func(*coder.Writer, *coder.Context) error, func(*coder.Reader, *coder.Context) error) {
		enc := func(w *coder.Writer, _ *coder.Context) error { return w.WriteWord(int64(**p), size) }
		dec := func(r *coder.Reader, _ *coder.Context) error {
			v, err := r.ReadWord(size, false)
			if err != nil {
				return err
			}
			n := int(v)
			*p = &n
			return nil
		}
		return enc, dec
	}
	encIn, decIn := word(&s.inPoint, 4)
	encOut, decOut := word(&s.outPoint, 4)
	encLoops, decLoops := word(&s.loops, 2)
	return coder.Presence{
		{
			Name: "inPoint", Bit: 3,
			Present: func() bool { return s.inPoint != nil },
			Size:    func(*coder.Context) (int, error) { return 4, nil },
			Encode:  encIn, Decode: decIn,
		},
		{
			Name: "outPoint", Bit: 2,
			Present: func() bool { return s.outPoint != nil },
			Size:    func(*coder.Context) (int, error) { return 4, nil },
			Encode:  encOut, Decode: decOut,
		},
		{
			Name: "loops", Bit: 1,
			Present: func() bool { return s.loops != nil },
			Size:    func(*coder.Context) (int, error) { return 2, nil },
			Encode:  encLoops, Decode: decLoops,
		},
		{
			Name: "envelope", Bit: 0,
			Present: func() bool { return len(s.envelopes) > 0 },
			Size:    func(*coder.Context) (int, error) { return 1 + 8*len(s.envelopes), nil },
			Encode:  s.encodeEnvelopes,
			Decode:  s.decodeEnvelopes,
		},
	}
}

func (s *SoundInfo) encodeEnvelopes(w *coder.Writer, _ *coder.Context) error {
	if err := w.WriteWord(int64(len(s.envelopes)), 1); err != nil {
		return err
	}
	for _, e := range s.envelopes {
		if err := w.WriteWord(int64(e.Mark), 4); err != nil {
			return err
		}
		if err := w.WriteWord(int64(e.Left), 2); err != nil {
			return err
		}
		if err := w.WriteWord(int64(e.Right), 2); err != nil {
			return err
		}
	}
	return nil
}

func (s *SoundInfo) decodeEnvelopes(r *coder.Reader, _ *coder.Context) error {
	count, err := r.ReadWord(1, false)
	if err != nil {
		return err
	}
	s.envelopes = make([]Envelope, count)
	for i := range s.envelopes {
		mark, err := r.ReadWord(4, false)
		if err != nil {
			return err
		}
		left, err := r.ReadWord(2, false)
		if err != nil {
			return err
		}
		right, err := r.ReadWord(2, false)
		if err != nil {
			return err
		}
		s.envelopes[i] = Envelope{Mark: int(mark), Left: int(left), Right: int(right)}
	}
	return nil
}

// Measure returns the encoded size in bytes.
func (s *SoundInfo) Measure(ctx *coder.Context) (int, error) {
	n, err := s.presence().Size(ctx)
	return 3 + n, err
}

// Encode writes the identifier, the mode and presence byte and the
// optional fields.
func (s *SoundInfo) Encode(w *coder.Writer, ctx *coder.Context) error {
	if err := w.WriteWord(int64(s.id), 2); err != nil {
		return err
	}
	if err := w.WriteBits(0, 2); err != nil {
		return err
	}
	if err := w.WriteFlag(s.mode == Stop); err != nil {
		return err
	}
	if err := w.WriteFlag(s.mode == Start); err != nil {
		return err
	}
	p := s.presence()
	if err := p.Write(w); err != nil {
		return err
	}
	return p.Encode(w, ctx)
}

// DecodeSoundInfo reads settings written by Encode.
func DecodeSoundInfo(r *coder.Reader, ctx *coder.Context) (*SoundInfo, error) {
	s := &SoundInfo{}
	id, err := r.ReadWord(2, false)
	if err != nil {
		return nil, err
	}
	s.id = int(id)
	if _, err := r.ReadBits(2, false); err != nil {
		return nil, err
	}
	stop, err := r.ReadFlag()
	if err != nil {
		return nil, err
	}
	noMultiple, err := r.ReadFlag()
	if err != nil {
		return nil, err
	}
	switch {
	case stop:
		s.mode = Stop
	case noMultiple:
		s.mode = Start
	}
	p := s.presence()
	flags, err := p.Read(r)
	if err != nil {
		return nil, err
	}
	if err := p.Decode(r, ctx, flags); err != nil {
		return nil, err
	}
	return s, nil
}
