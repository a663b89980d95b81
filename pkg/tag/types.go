// Package tag implements the record types of a movie body on top of the
// coder package. Each type validates its fields when they are set, so a
// record that exists can always be encoded.
package tag

import (
	"fmt"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Record type codes.
const (
	TypeEnd          uint16 = 0
	TypeShowFrame    uint16 = 1
	TypePlace        uint16 = 4
	TypeRemove       uint16 = 5
	TypeStartSound   uint16 = 15
	TypeButtonSound  uint16 = 17
	TypePlace2       uint16 = 26
	TypeSerialNumber uint16 = 41
	TypeVideoFrame   uint16 = 61
	TypeDefineData   uint16 = 87
)

var typeNames = map[uint16]string{
	TypeEnd:          "End",
	TypeShowFrame:    "ShowFrame",
	TypePlace:        "Place",
	TypeRemove:       "Remove",
	TypeStartSound:   "StartSound",
	TypeButtonSound:  "ButtonSound",
	TypePlace2:       "Place2",
	TypeSerialNumber: "SerialNumber",
	TypeVideoFrame:   "VideoFrame",
	TypeDefineData:   "DefineData",
}

// TypeName returns the name of a type code, or "Type(n)" when it has no
// record type in this package.
func TypeName(typ uint16) string {
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", typ)
}

func readU16(r *coder.Reader) (int, error) {
	v, err := r.ReadWord(2, false)
	return int(v), err
}

func readU32(r *coder.Reader) (int, error) {
	v, err := r.ReadWord(4, false)
	return int(v), err
}

func writeU16s(w *coder.Writer, values ...int) error {
	for _, v := range values {
		if err := w.WriteWord(int64(v), 2); err != nil {
			return err
		}
	}
	return nil
}
