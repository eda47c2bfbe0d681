// Package player is the entry point for playing MIDI files as key presses.
package player

import (
	"context"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/playback"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Player plays scores on an emulated keyboard. Sessions run one at a time
// on the caller's goroutine.
type Player struct {
	options   contracts.PlayerOptions
	layout    *keymap.Layout
	scheduler *playback.Scheduler
}

// NewPlayer creates a player. Without WithKeyboard, the OS keyboard backend
// is used, and creation fails on systems that have none.
func NewPlayer(opts ...contracts.PlayerOption) (*Player, error) {
	options, err := applyDefaultOptions(currentOS(), opts...)
	if err != nil {
		return nil, err
	}
	return newPlayer(options), nil
}

func newPlayer(options contracts.PlayerOptions) *Player {
	layout := keymap.Default.WithBase(options.BasePitch)
	return &Player{
		options: options,
		layout:  layout,
		scheduler: playback.NewScheduler(playback.Config{
			Keyboard:          options.Keyboard,
			Clock:             options.Clock,
			Logger:            options.Logger,
			Layout:            layout,
			SettleMargin:      options.SettleMargin,
			StartDelay:        options.StartDelay,
			CancelKey:         options.CancelKey,
			DriftCompensation: options.DriftCompensation,
		}),
	}
}

// Options returns the effective configuration.
func (p *Player) Options() contracts.PlayerOptions { return p.options }

// Layout returns the key layout in use.
func (p *Player) Layout() *keymap.Layout { return p.layout }

// PlayFile decodes and plays the file at path.
func (p *Player) PlayFile(ctx context.Context, path string) (contracts.PlaybackResult, error) {
	sc, err := score.ReadFile(path)
	if err != nil {
		return contracts.PlaybackResult{}, err
	}
	return p.PlayScore(ctx, sc)
}

// Play decodes and plays a Standard MIDI File held in memory.
func (p *Player) Play(ctx context.Context, data []byte) (contracts.PlaybackResult, error) {
	sc, err := score.Decode(data)
	if err != nil {
		return contracts.PlaybackResult{}, err
	}
	return p.PlayScore(ctx, sc)
}

// PlayScore plays an already decoded score.
func (p *Player) PlayScore(ctx context.Context, sc *score.Score) (contracts.PlaybackResult, error) {
	return p.scheduler.Play(ctx, sc)
}
