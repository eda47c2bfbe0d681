//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// NewMIDIClient is unavailable outside Windows.
func NewMIDIClient(options *contracts.CaptureOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("winmm capture requested on a non-Windows system")
	return nil, fmt.Errorf("winmm is not available on this platform")
}
