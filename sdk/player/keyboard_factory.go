package player

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midikeys/internal/keyboard/kbwindows"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// ErrUnsupportedOS is returned when no keyboard backend exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// ErrInvalidCancelKey is returned for a cancel key that playback itself presses.
var ErrInvalidCancelKey = errors.New("invalid cancel key")

// keyboardInitializers maps OS names to keyboard backends.
var keyboardInitializers = map[string]func(contracts.Logger) (contracts.Keyboard, error){
	"windows": kbwindows.NewKeyboard,
}

func newKeyboardFor(goos string, log contracts.Logger) (contracts.Keyboard, error) {
	if initializer, exists := keyboardInitializers[goos]; exists {
		return initializer(log)
	}
	return nil, fmt.Errorf("%w: %s (use a dry run)", ErrUnsupportedOS, goos)
}
