package capture

import (
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// applyDefaultOptions fills what the caller left unset. Live mode only
// cares about note messages, so that is the default filter.
func applyDefaultOptions(opts ...contracts.CaptureOption) contracts.CaptureOptions {
	options := contracts.CaptureOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "midikeys"}
	}
	if options.MIDIEventFilter == nil {
		options.MIDIEventFilter = &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}
	}

	options.Logger.SetLevel(options.LogLevel)
	return options
}
