//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// NewMIDIClient is unavailable outside macOS.
func NewMIDIClient(options *contracts.CaptureOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("CoreMIDI capture requested on a non-macOS system")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}
