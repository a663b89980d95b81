package tag

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/datatype"
	"github.com/rawbytedev/swfcodec/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func roundTrip(t *testing.T, rec coder.Decodable, ctx *coder.Context) coder.Decodable {
	t.Helper()
	out, err := coder.Encode(rec, ctx)
	require.NoError(t, err)
	r := coder.NewReader(out)
	got, _, err := NewRegistry(true).Decode(r, ctx)
	require.NoError(t, err)
	require.True(t, r.EOF())
	return got
}

func TestIdentifierBounds(t *testing.T) {
	setters := map[string]func(int) error{
		"remove id":      (&Remove{}).SetIdentifier,
		"remove layer":   (&Remove{}).SetLayer,
		"place id":       (&Place{}).SetIdentifier,
		"place layer":    (&Place{}).SetLayer,
		"place2 id":      (&Place2{}).SetIdentifier,
		"place2 layer":   (&Place2{}).SetLayer,
		"place2 depth":   (&Place2{}).SetDepth,
		"button id":      (&ButtonSound{}).SetIdentifier,
		"video id":       (&VideoFrame{}).SetIdentifier,
		"video frame":    (&VideoFrame{}).SetFrame,
		"define data id": (&DefineData{}).SetIdentifier,
	}
	for name, set := range setters {
		require.ErrorIs(t, set(0), coder.ErrRange, name)
		require.ErrorIs(t, set(65536), coder.ErrRange, name)
		require.NoError(t, set(1), name)
		require.NoError(t, set(65535), name)
	}
}

func TestRangeErrorLeavesRecord(t *testing.T) {
	m, err := NewRemove(1, 2)
	require.NoError(t, err)
	err = m.SetLayer(0)
	var re *coder.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "layer", re.Field)
	assert.EqualValues(t, 0, re.Value)
	assert.Equal(t, 2, m.Layer())
}

func TestNullPayloads(t *testing.T) {
	_, err := NewDefineData(1, nil)
	require.ErrorIs(t, err, coder.ErrNullPayload)
	_, err = NewVideoFrame(1, 1, nil)
	require.ErrorIs(t, err, coder.ErrNullPayload)
	_, err = NewStartSound(nil)
	require.ErrorIs(t, err, coder.ErrNullPayload)
	_, err = NewUnknown(3, nil)
	require.ErrorIs(t, err, coder.ErrNullPayload)
	p, err := ModifyPlace2(1)
	require.NoError(t, err)
	require.ErrorIs(t, p.AddEvent(nil), coder.ErrNullPayload)
	require.ErrorIs(t, p.SetEvents([]*events.ClipHandler{nil}), coder.ErrNullPayload)

	_, err = coder.Encode(&StartSound{}, coder.NewContext())
	require.ErrorIs(t, err, coder.ErrNullPayload)
}

func TestDefineDataExtended(t *testing.T) {
	d, err := NewDefineData(1, make([]byte, 100))
	require.NoError(t, err)
	p, err := coder.Measure(d, coder.NewContext())
	require.NoError(t, err)
	require.Equal(t, 112, p.Len())
	assert.Equal(t, d, roundTrip(t, d, coder.NewContext()))
}

func TestEscapeThresholdOnRecords(t *testing.T) {
	// DefineData bodies are 6 bytes plus the data
	for _, n := range []int{55, 56, 57, 58} {
		d, err := NewDefineData(1, bytes.Repeat([]byte{7}, n))
		require.NoError(t, err)
		out, err := coder.Encode(d, coder.NewContext())
		require.NoError(t, err)
		body := n + 6
		if body <= coder.MaxShortLength {
			require.Len(t, out, 2+body)
			assert.EqualValues(t, body, out[0]&coder.LengthEscape)
		} else {
			require.Len(t, out, 6+body)
			assert.EqualValues(t, coder.LengthEscape, out[0]&coder.LengthEscape)
		}
		assert.Equal(t, d, roundTrip(t, d, coder.NewContext()))
	}
}

func TestPlace2InvalidMode(t *testing.T) {
	_, err := NewPlace2(Mode(0), 1, 1)
	require.ErrorIs(t, err, coder.ErrRange)
	_, err = NewPlace2(Mode(4), 1, 1)
	require.ErrorIs(t, err, coder.ErrRange)

	data := []byte{0x83, 0x06, 0x00, 0x01, 0x00}
	ctx := coder.NewContext()
	err = coder.Decode(coder.NewReader(data), ctx, &Place2{})
	require.ErrorIs(t, err, coder.ErrRange)
}

func TestPlace2PresenceToggling(t *testing.T) {
	base := func() *Place2 {
		p, err := NewPlace2(Replace, 9, 3)
		require.NoError(t, err)
		return p
	}
	ctx := coder.NewContext()
	bare, err := coder.Encode(base(), ctx)
	require.NoError(t, err)

	type option struct {
		bit   byte
		field []byte
		apply func(p *Place2)
	}
	// listed in stream order
	options := []option{
		{bit: 1 << 2, field: []byte{0x06, 0x50}, apply: func(p *Place2) {
			tr, err := datatype.Translate(1, 2)
			require.NoError(t, err)
			p.SetTransform(&tr)
		}},
		{bit: 1 << 3, field: []byte{0x90, 0x48, 0xD0}, apply: func(p *Place2) {
			ct, err := datatype.AddTransform(1, 2, 3, 4)
			require.NoError(t, err)
			p.SetColorTransform(&ct)
		}},
		{bit: 1 << 4, field: []byte{0x05, 0x00}, apply: func(p *Place2) { require.NoError(t, p.SetRatio(5)) }},
		{bit: 1 << 5, field: []byte{'n', 0}, apply: func(p *Place2) { require.NoError(t, p.SetName("n")) }},
		{bit: 1 << 6, field: []byte{0x07, 0x00}, apply: func(p *Place2) { require.NoError(t, p.SetDepth(7)) }},
		{bit: 1 << 7, field: []byte{
			0x00, 0x00, // reserved
			0x01, 0x00, 0x00, 0x00, // mask
			0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, // handler
			0x00, 0x00, 0x00, 0x00, // terminator
		}, apply: func(p *Place2) {
			h, err := events.NewClipHandler(events.Load, []byte{0x00})
			require.NoError(t, err)
			require.NoError(t, p.AddEvent(h))
		}},
	}
	// each subset of options: the flag byte gains only their bits and the
	// body gains only their bytes, in stream order
	for mask := 0; mask < 1<<len(options); mask++ {
		p := base()
		flags := bare[2]
		body := append([]byte{}, bare[3:]...)
		for i, o := range options {
			if mask&(1<<i) == 0 {
				continue
			}
			o.apply(p)
			flags |= o.bit
			body = append(body, o.field...)
		}
		out, err := coder.Encode(p, ctx)
		require.NoError(t, err)
		word := uint16(TypePlace2)<<6 | uint16(1+len(body))
		want := append([]byte{byte(word), byte(word >> 8), flags}, body...)
		require.Equal(t, want, out, "mask %06b", mask)
		assert.Equal(t, p, roundTrip(t, p, ctx), "mask %06b", mask)
	}
}

func TestTextRejectsZeroByte(t *testing.T) {
	_, err := NewSerialNumber("AB\x00CD")
	var re *coder.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "number", re.Field)

	s, err := NewSerialNumber("AB")
	require.NoError(t, err)
	require.ErrorIs(t, s.SetNumber("A\x00"), coder.ErrRange)
	assert.Equal(t, "AB", s.Number())

	p, err := ModifyPlace2(1)
	require.NoError(t, err)
	require.ErrorIs(t, p.SetName("a\x00b"), coder.ErrRange)
	_, ok := p.Name()
	assert.False(t, ok)

	// a value set without the setter still fails before any byte is written
	_, err = coder.Encode(&SerialNumber{number: "AB\x00CD"}, coder.NewContext())
	require.ErrorIs(t, err, coder.ErrRange)
	name := "a\x00b"
	p.name = &name
	_, err = coder.Measure(p, coder.NewContext())
	require.ErrorIs(t, err, coder.ErrRange)
}

func TestLegacyTextOutsideCodePage(t *testing.T) {
	ctx := coder.NewContext()
	ctx.Set(coder.Version, 5)
	ctx.SetEncoding(charmap.Windows1252)

	s, err := NewSerialNumber("€5")
	require.NoError(t, err)
	out, err := coder.Encode(s, ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x43, 0x0A, 0x80, '5', 0}, out)

	s, err = NewSerialNumber("日本")
	require.NoError(t, err)
	_, err = coder.Encode(s, ctx)
	var te *coder.TextError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, '日', te.Rune)
	require.ErrorIs(t, err, coder.ErrRange)

	p, err := ModifyPlace2(1)
	require.NoError(t, err)
	require.NoError(t, p.SetName("ok✓"))
	_, err = coder.Measure(p, ctx)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 2, te.Offset)
}

func TestPlace2ColorCarriesAlpha(t *testing.T) {
	p, err := ShowPlace2(1, 1, 10, 10)
	require.NoError(t, err)
	ct := datatype.NewColorTransform()
	require.NoError(t, ct.SetMultiply(256, 256, 256, 128))
	p.SetColorTransform(&ct)
	got := roundTrip(t, p, coder.NewContext()).(*Place2)
	_, _, _, a := got.ColorTransform().Multiply()
	assert.Equal(t, 128, a)
}

func TestPlaceDropsAlpha(t *testing.T) {
	tr, err := datatype.Translate(1, 2)
	require.NoError(t, err)
	p, err := NewPlace(1, 2, tr)
	require.NoError(t, err)
	ct, err := datatype.AddTransform(1, 2, 3, 4)
	require.NoError(t, err)
	p.SetColorTransform(&ct)
	got := roundTrip(t, p, coder.NewContext()).(*Place)
	r, g, b, a := got.ColorTransform().Add()
	assert.Equal(t, []int{1, 2, 3, 0}, []int{r, g, b, a})
}

func TestPlace2EventsFollowVersion(t *testing.T) {
	p, err := ModifyPlace2(1)
	require.NoError(t, err)
	h, err := events.NewClipHandler(events.Construct, []byte{0x00})
	require.NoError(t, err)
	require.NoError(t, p.AddEvent(h))

	ctx := coder.NewContext()
	ctx.Set(coder.Version, 5)
	_, err = coder.Encode(p, ctx)
	require.ErrorIs(t, err, coder.ErrRange)

	ctx.Set(coder.Version, 7)
	assert.Equal(t, p, roundTrip(t, p, ctx))
}

func TestButtonSoundShortBody(t *testing.T) {
	// only the roll out slot is present; the body ends after it
	data := []byte{0x45, 0x04, 0x01, 0x00, 0x02, 0x00, 0x10}
	b := &ButtonSound{}
	r := coder.NewReader(data)
	require.NoError(t, coder.Decode(r, coder.NewContext(), b))
	require.NotNil(t, b.Sound(RollOut))
	assert.Equal(t, 2, b.Sound(RollOut).Identifier())
	assert.Equal(t, datatype.Start, b.Sound(RollOut).Mode())
	assert.Nil(t, b.Sound(RollOver))
	assert.Nil(t, b.Sound(Release))
	assert.Nil(t, b.Sound(ButtonEvent(9)))
	assert.True(t, r.EOF())

	// re-encoding writes every slot
	out, err := coder.Encode(b, coder.NewContext())
	require.NoError(t, err)
	assert.Len(t, out, 2+2+3+2+2+2)
	require.ErrorIs(t, b.SetSound(ButtonEvent(4), nil), coder.ErrRange)
}

func TestDecodeTruncated(t *testing.T) {
	data := []byte{0xCA, 0x15, 0x01, 0x00, 0x00}
	_, _, err := NewRegistry(true).Decode(coder.NewReader(data), coder.NewContext())
	require.ErrorIs(t, err, coder.ErrUnderrun)
}

func TestDecodeMismatchedPlace(t *testing.T) {
	// a 9 byte body where the colour transform after the coord transform
	// takes one byte and leaves two
	data := []byte{0x09, 0x01, 0x01, 0x00, 0x02, 0x00, 0x06, 0x50, 0x00, 0xFF, 0xFF}
	err := coder.Decode(coder.NewReader(data), coder.NewContext(), &Place{})
	var mm *coder.StructuralMismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, "Place", mm.Record)
	assert.Equal(t, 9, mm.Length)
	assert.Equal(t, -2, mm.Delta)
}

func TestUnknownRejectedWithoutFallback(t *testing.T) {
	_, _, err := NewRegistry(false).Decode(coder.NewReader([]byte{0x82, 0x00, 0x01, 0x02}), coder.NewContext())
	require.ErrorIs(t, err, coder.ErrUnknownType)
}

func TestCopyIsDeep(t *testing.T) {
	for name, build := range builders {
		rec := build()
		c, err := Copy(rec)
		require.NoError(t, err, name)
		assert.Equal(t, rec, c, name)
		if _, empty := rec.(*ShowFrame); !empty {
			assert.NotSame(t, rec, c, name)
		}
	}

	d, err := NewDefineData(1, []byte{1})
	require.NoError(t, err)
	c, err := Copy(d)
	require.NoError(t, err)
	c.(*DefineData).Data()[0] = 9
	assert.Equal(t, byte(1), d.Data()[0])

	p, err := ShowPlace2(1, 1, 1, 1)
	require.NoError(t, err)
	h, err := events.NewClipHandler(events.Load, []byte{1})
	require.NoError(t, err)
	require.NoError(t, p.AddEvent(h))
	pc := p.Copy()
	require.NoError(t, pc.Events()[0].SetKey(3))
	require.NoError(t, pc.Transform().SetTranslate(5, 5))
	assert.Zero(t, p.Events()[0].Key())
	x, _ := p.Transform().Translation()
	assert.Equal(t, 1, x)

	_, err = Copy(nil)
	require.ErrorIs(t, err, coder.ErrUnknownType)
}

func TestRemoveRoundTrip(t *testing.T) {
	check := func(id, layer uint16) bool {
		m, err := NewRemove(int(id)|1, int(layer)|1)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(m, roundTrip(t, m, coder.NewContext()))
	}
	require.NoError(t, quick.Check(check, nil))
}

func TestVideoFrameRoundTrip(t *testing.T) {
	check := func(frame uint16, data []byte) bool {
		if data == nil {
			data = []byte{}
		}
		v, err := NewVideoFrame(1, int(frame)|1, data)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(v, roundTrip(t, v, coder.NewContext()))
	}
	require.NoError(t, quick.Check(check, nil))
}

func TestSerialNumberRoundTrip(t *testing.T) {
	for _, s := range []string{"", "ABC123", "über"} {
		n, err := NewSerialNumber(s)
		require.NoError(t, err)
		assert.Equal(t, n, roundTrip(t, n, coder.NewContext()))
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Place2", TypeName(TypePlace2))
	assert.Equal(t, "Type(300)", TypeName(300))
	assert.Equal(t, "modify", Modify.String())
	assert.Equal(t, "Mode(0)", Mode(0).String())
	assert.Equal(t, "press", Press.String())
}
