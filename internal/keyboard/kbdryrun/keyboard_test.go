package kbdryrun

import (
	"testing"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	kb := New(logger.NewNop())
	assert.NoError(t, kb.PressModifier())
	assert.NoError(t, kb.Press('Q'))
	assert.NoError(t, kb.Release('Q'))
	assert.NoError(t, kb.ReleaseModifier())

	assert.Equal(t, []string{"press shift", "press Q", "release Q", "release shift"}, kb.History())
	assert.Empty(t, kb.HeldPhysicalKeys())
}
