package capture

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsFilterNotes(t *testing.T) {
	opts := applyDefaultOptions(contracts.WithCaptureLogger(logger.NewNop()))

	assert := assert.New(t)
	assert.Equal(contracts.InfoLevel, opts.LogLevel)
	assert.Equal("midikeys", opts.CoreMIDIConfig.ClientName)
	assert.True(opts.MIDIEventFilter.Allows(0x90))
	assert.True(opts.MIDIEventFilter.Allows(0x80))
	assert.False(opts.MIDIEventFilter.Allows(0xB0))
}

func TestUnsupportedOS(t *testing.T) {
	opts := applyDefaultOptions(contracts.WithCaptureLogger(logger.NewNop()))
	_, err := newClientFor("plan9", &opts)
	assert.True(t, errors.Is(err, ErrUnsupportedOS))
}
