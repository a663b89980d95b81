// Package events codes the clip event chains attached to placed movie
// clips: a reserved word, a mask of every event kind in the chain, the
// handlers and a zero terminator as wide as the mask.
package events

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// Kind is a set of clip events. Each event is one bit.
type Kind uint32

const (
	Load Kind = 1 << iota
	EnterFrame
	Unload
	MouseMove
	MouseDown
	MouseUp
	KeyDown
	KeyUp
	Data
	Initialize
	Press
	Release
	ReleaseOutside
	RollOver
	RollOut
	DragOver
	DragOut
	KeyPress
	Construct
)

var kindNames = []string{
	"Load", "EnterFrame", "Unload", "MouseMove", "MouseDown", "MouseUp",
	"KeyDown", "KeyUp", "Data", "Initialize", "Press", "Release",
	"ReleaseOutside", "RollOver", "RollOut", "DragOver", "DragOut",
	"KeyPress", "Construct",
}

// Has reports whether every event in e is in k.
func (k Kind) Has(e Kind) bool { return k&e == e }

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	var names []string
	for i, name := range kindNames {
		if k&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if rest := k &^ (1<<len(kindNames) - 1); rest != 0 {
		names = append(names, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// WordSize returns the width in bytes of event masks and the chain
// terminator for the version held by ctx.
func WordSize(ctx *coder.Context) int {
	if ctx.Version() > 5 {
		return 4
	}
	return 2
}

func checkMask(field string, k Kind, size int) error {
	max := int64(1)<<(size*8) - 1
	if int64(k) > max {
		return &coder.RangeError{Field: field, Value: int64(k), Min: 0, Max: max}
	}
	return nil
}
