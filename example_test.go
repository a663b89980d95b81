package swfcodec_test

import (
	"fmt"

	"github.com/rawbytedev/swfcodec"
	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/tag"
)

func ExampleCodec() {
	c := swfcodec.NewCodec(swfcodec.Options{})
	remove, err := tag.NewRemove(1, 2)
	if err != nil {
		panic(err)
	}
	out, err := c.Encode(remove, &tag.ShowFrame{})
	if err != nil {
		panic(err)
	}
	fmt.Printf("% x\n", out)

	err = c.Walk(out, func(rec coder.Decodable, h coder.Header) error {
		fmt.Println(tag.TypeName(h.Type), h.Offset(), h.Length)
		return nil
	})
	if err != nil {
		panic(err)
	}
	// Output:
	// 44 01 01 00 02 00 40 00
	// Remove 0 4
	// ShowFrame 6 0
}
