package main

import "github.com/rawbytedev/swfcodec/cmd/swftag/cmd"

func main() {
	cmd.Execute()
}
