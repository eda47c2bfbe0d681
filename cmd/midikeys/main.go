package main

import "github.com/leandrodaf/midikeys/internal/cli"

func main() {
	cli.Execute()
}
