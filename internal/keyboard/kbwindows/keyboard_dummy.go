//go:build !windows
// +build !windows

package kbwindows

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// NewKeyboard reports that key injection is unavailable outside Windows.
func NewKeyboard(logger contracts.Logger) (contracts.Keyboard, error) {
	logger.Warn("Keyboard emulation requested on a non-Windows system")
	return nil, fmt.Errorf("keyboard emulation is not available on this platform")
}
