package events

import (
	"bytes"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// ClipHandler runs a block of compiled actions when any of its events
// occurs. The key code is only coded when KeyPress is among the events.
type ClipHandler struct {
	events  Kind
	key     int
	actions []byte
}

// NewClipHandler returns a handler for events running actions.
func NewClipHandler(events Kind, actions []byte) (*ClipHandler, error) {
	h := &ClipHandler{}
	if err := h.SetEvents(events); err != nil {
		return nil, err
	}
	if err := h.SetActions(actions); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *ClipHandler) Events() Kind { return h.events }

// SetEvents replaces the event set. A handler needs at least one event.
func (h *ClipHandler) SetEvents(k Kind) error {
	if k == 0 {
		return &coder.RangeError{Field: "events", Value: 0, Min: 1, Max: int64(Construct<<1 - 1)}
	}
	h.events = k
	return nil
}

func (h *ClipHandler) Key() int { return h.key }

// SetKey sets the key code matched by KeyPress.
func (h *ClipHandler) SetKey(key int) error {
	if err := coder.CheckRange("key", key, 0, 255); err != nil {
		return err
	}
	h.key = key
	return nil
}

func (h *ClipHandler) Actions() []byte { return h.actions }

func (h *ClipHandler) SetActions(actions []byte) error {
	if actions == nil {
		return &coder.NullPayloadError{Field: "actions"}
	}
	h.actions = actions
	return nil
}

// Copy returns a deep copy of h.
func (h *ClipHandler) Copy() *ClipHandler {
	return &ClipHandler{events: h.events, key: h.key, actions: bytes.Clone(h.actions)}
}

func (h *ClipHandler) keyLen() int {
	if h.events.Has(KeyPress) {
		return 1
	}
	return 0
}

func (h *ClipHandler) Measure(ctx *coder.Context) (int, error) {
	size := WordSize(ctx)
	if err := checkMask("events", h.events, size); err != nil {
		return 0, err
	}
	return size + 4 + h.keyLen() + len(h.actions), nil
}

func (h *ClipHandler) Encode(w *coder.Writer, ctx *coder.Context) error {
	if err := w.WriteWord(int64(h.events), WordSize(ctx)); err != nil {
		return err
	}
	if err := w.WriteWord(int64(h.keyLen()+len(h.actions)), 4); err != nil {
		return err
	}
	if h.keyLen() > 0 {
		if err := w.WriteWord(int64(h.key), 1); err != nil {
			return err
		}
	}
	return w.WriteBytes(h.actions)
}

// DecodeClipHandler reads one handler.
func DecodeClipHandler(r *coder.Reader, ctx *coder.Context) (*ClipHandler, error) {
	events, err := r.ReadWord(WordSize(ctx), false)
	if err != nil {
		return nil, err
	}
	length, err := r.ReadWord(4, false)
	if err != nil {
		return nil, err
	}
	h := &ClipHandler{events: Kind(events)}
	if h.keyLen() > 0 {
		if length < 1 {
			return nil, &coder.RangeError{Field: "action length", Value: length, Min: 1, Max: 1<<32 - 1}
		}
		key, err := r.ReadWord(1, false)
		if err != nil {
			return nil, err
		}
		h.key = int(key)
		length--
	}
	if h.actions, err = r.ReadBytes(int(length)); err != nil {
		return nil, err
	}
	return h, nil
}
