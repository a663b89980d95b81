package tag

import (
	"fmt"

	"github.com/rawbytedev/swfcodec/pkg/coder"
)

// NewRegistry returns a registry holding every record type of this
// package. Unregistered type codes decode as *Unknown when keepUnknown is
// set and fail with coder.ErrUnknownType otherwise.
func NewRegistry(keepUnknown bool) *coder.Registry {
	g := coder.NewRegistry()
	for typ, f := range map[uint16]coder.Factory{
		TypeShowFrame:    func() coder.Decodable { return &ShowFrame{} },
		TypePlace:        func() coder.Decodable { return &Place{} },
		TypeRemove:       func() coder.Decodable { return &Remove{} },
		TypeStartSound:   func() coder.Decodable { return &StartSound{} },
		TypeButtonSound:  func() coder.Decodable { return &ButtonSound{} },
		TypePlace2:       func() coder.Decodable { return &Place2{} },
		TypeSerialNumber: func() coder.Decodable { return &SerialNumber{} },
		TypeVideoFrame:   func() coder.Decodable { return &VideoFrame{} },
		TypeDefineData:   func() coder.Decodable { return &DefineData{} },
	} {
		// every code is below coder.MaxType and every factory is set
		_ = g.Register(typ, f)
	}
	if keepUnknown {
		g.SetFallback(func(typ uint16) coder.Decodable { return &Unknown{typ: typ} })
	}
	return g
}

// Copy returns a deep copy of any record type in this package.
func Copy(rec coder.Record) (coder.Decodable, error) {
	switch r := rec.(type) {
	case *ShowFrame:
		return r.Copy(), nil
	case *Place:
		return r.Copy(), nil
	case *Remove:
		return r.Copy(), nil
	case *StartSound:
		return r.Copy(), nil
	case *ButtonSound:
		return r.Copy(), nil
	case *Place2:
		return r.Copy(), nil
	case *SerialNumber:
		return r.Copy(), nil
	case *VideoFrame:
		return r.Copy(), nil
	case *DefineData:
		return r.Copy(), nil
	case *Unknown:
		return r.Copy(), nil
	}
	return nil, fmt.Errorf("%w: cannot copy %s", coder.ErrUnknownType, coder.Name(rec))
}
