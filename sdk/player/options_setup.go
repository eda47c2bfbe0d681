package player

import (
	"fmt"
	"runtime"
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/playback"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Defaults used when an option is not given.
const (
	DefaultSettleMargin = 12 * time.Millisecond
	DefaultStartDelay   = 2 * time.Second
	DefaultCancelKey    = contracts.KeyEscape
)

// applyDefaultOptions starts from the defaults, applies opts, then creates
// whatever collaborator is still missing.
func applyDefaultOptions(goos string, opts ...contracts.PlayerOption) (contracts.PlayerOptions, error) {
	options := contracts.PlayerOptions{
		SettleMargin: DefaultSettleMargin,
		StartDelay:   DefaultStartDelay,
		CancelKey:    DefaultCancelKey,
		BasePitch:    keymap.DefaultBase,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if !options.CancelKey.Cancellable() {
		return options, fmt.Errorf("%w: %s", ErrInvalidCancelKey, options.CancelKey)
	}

	switch {
	case options.Logger == nil:
		if options.LogLevel == 0 {
			options.LogLevel = contracts.InfoLevel
		}
		options.Logger = logger.NewZapLogger()
		options.Logger.SetLevel(options.LogLevel)
	case options.LogLevel != 0:
		options.Logger.SetLevel(options.LogLevel)
	}

	if options.Clock == nil {
		options.Clock = playback.SystemClock{}
	}
	if options.SettleMargin < 0 {
		options.SettleMargin = 0
	}
	if options.Keyboard == nil {
		kb, err := newKeyboardFor(goos, options.Logger)
		if err != nil {
			return options, err
		}
		options.Keyboard = kb
	}
	return options, nil
}

func currentOS() string { return runtime.GOOS }
