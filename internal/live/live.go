// Package live turns notes played on a MIDI input device into key presses
// as they arrive.
package live

import (
	"context"
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/playback"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// DefaultPollInterval is how often the cancel key is polled while idle.
const DefaultPollInterval = 20 * time.Millisecond

// Config configures a live session.
type Config struct {
	Keyboard     contracts.Keyboard
	Clock        contracts.Clock
	Logger       contracts.Logger
	Layout       *keymap.Layout
	SettleMargin time.Duration
	CancelKey    contracts.PhysicalKey
	PollInterval time.Duration
}

// Run dispatches captured events until ctx is done, events is closed or the
// cancel key is held, then releases everything. Live input always has
// explicit note-offs, so keys are paired.
func Run(ctx context.Context, events <-chan contracts.MIDI, cfg Config) (playback.Counters, error) {
	if cfg.Layout == nil {
		cfg.Layout = keymap.Default
	}
	if cfg.Clock == nil {
		cfg.Clock = playback.SystemClock{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	log := cfg.Logger
	d := playback.NewDispatcher(cfg.Keyboard, cfg.Layout, playback.Paired, cfg.SettleMargin, cfg.Clock, log)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	log.Info("Live mode started", log.Field().String("cancelKey", string(cfg.CancelKey)))
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if playback.CancelKeyHeld(cfg.Keyboard, cfg.CancelKey) {
				log.Info("Live mode cancelled", log.Field().Int("held", d.State().Len()))
				break loop
			}
		case ev, ok := <-events:
			if !ok {
				break loop
			}
			d.Dispatch(ctx, Decode(ev))
		}
	}

	err := d.Drain()
	if err != nil {
		log.Error("Failed to release keys", log.Field().Error("error", err))
	}
	log.Info("Live mode stopped",
		log.Field().Int("pressed", d.Counters.Pressed),
		log.Field().Int("dropped", d.Counters.Dropped))
	return d.Counters, err
}

// Decode converts a captured message. A note-on with zero velocity is a note-off here.
func Decode(ev contracts.MIDI) score.Event {
	msg := midi.Message(ev.Bytes())
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return score.Event{Kind: score.NoteOn, Channel: channel, Pitch: key, Velocity: velocity}
	case msg.GetNoteEnd(&channel, &key):
		return score.Event{Kind: score.NoteOff, Channel: channel, Pitch: key}
	}
	return score.Event{Kind: score.Other, Raw: msg.String()}
}
