package capture

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikeys/internal/midi/mididarwin"
	"github.com/leandrodaf/midikeys/internal/midi/midiwindows"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no capture backend.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.CaptureOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // macOS (Darwin) MIDI client initializer.
	"windows": midiwindows.NewMIDIClient, // Windows MIDI client initializer.
}

// NewClient creates a live MIDI capture client for the current operating system.
func NewClient(opts ...contracts.CaptureOption) (contracts.ClientMIDI, error) {
	options := applyDefaultOptions(opts...)
	return newClientFor(runtime.GOOS, &options)
}

func newClientFor(goos string, options *contracts.CaptureOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[goos]; exists {
		return initializer(options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
