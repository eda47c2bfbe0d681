package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/keystate"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"go.uber.org/multierr"
)

// Counters accumulate what a Dispatcher emitted.
type Counters struct {
	Pressed  int
	Released int
	Dropped  int
	Ignored  int
}

// Dispatcher applies note events to the keyboard, keeping the key-state
// table and the shift modifier consistent. It is not safe for concurrent use.
type Dispatcher struct {
	kb     contracts.Keyboard
	layout *keymap.Layout
	state  *keystate.Tracker
	mode   Mode
	settle time.Duration
	clock  contracts.Clock
	log    contracts.Logger

	Counters Counters
}

// NewDispatcher returns a dispatcher with an empty key-state table.
func NewDispatcher(kb contracts.Keyboard, layout *keymap.Layout, mode Mode, settle time.Duration, clock contracts.Clock, log contracts.Logger) *Dispatcher {
	return &Dispatcher{
		kb:     kb,
		layout: layout,
		state:  keystate.New(),
		mode:   mode,
		settle: settle,
		clock:  clock,
		log:    log,
	}
}

// State exposes the key-state table.
func (d *Dispatcher) State() *keystate.Tracker { return d.state }

// Dispatch handles a single event. Keyboard failures are logged, never returned:
// one lost key must not stop a performance.
func (d *Dispatcher) Dispatch(ctx context.Context, ev score.Event) {
	switch ev.Kind {
	case score.NoteOn:
		d.noteOn(ctx, ev)
	case score.NoteOff:
		d.noteOff(ev)
	case score.TempoChange:
	default:
		d.Counters.Ignored++
		d.log.Debug("Unknown event", d.log.Field().String("event", ev.String()))
	}
}

func (d *Dispatcher) lookup(ev score.Event) (keymap.Key, bool) {
	k, ok := d.layout.Lookup(ev.Pitch)
	if !ok {
		d.Counters.Dropped++
		d.log.Debug("Pitch outside layout; dropped", d.log.Field().Uint8("pitch", ev.Pitch))
	}
	return k, ok
}

func (d *Dispatcher) noteOn(ctx context.Context, ev score.Event) {
	k, ok := d.lookup(ev)
	if !ok {
		return
	}
	d.setModifier(ctx, k.Shift)

	if d.mode == Toggle {
		if d.state.Toggle(k) {
			d.press(k)
		} else {
			d.release(k)
			d.relaxModifier()
		}
		return
	}
	d.press(k)
	d.state.Hold(k)
}

func (d *Dispatcher) noteOff(ev score.Event) {
	k, ok := d.lookup(ev)
	if !ok {
		return
	}
	if !d.state.Release(k.Char) {
		d.log.Debug("Note-off for a key that is not held",
			d.log.Field().Uint8("pitch", ev.Pitch),
			d.log.Field().String("key", string(k.Char)))
	}
	d.release(k)
	d.relaxModifier()
}

func (d *Dispatcher) press(k keymap.Key) {
	d.Counters.Pressed++
	if err := d.kb.Press(k.Char); err != nil {
		d.log.Error("Failed to press key", d.log.Field().String("key", string(k.Char)), d.log.Field().Error("error", err))
	}
}

func (d *Dispatcher) release(k keymap.Key) {
	d.Counters.Released++
	if err := d.kb.Release(k.Char); err != nil {
		d.log.Error("Failed to release key", d.log.Field().String("key", string(k.Char)), d.log.Field().Error("error", err))
	}
}

// setModifier brings shift to the wanted state, sleeping the settle margin
// first. The change is applied before the key event it guards.
func (d *Dispatcher) setModifier(ctx context.Context, want bool) {
	if d.state.Modifier() == want {
		return
	}
	d.clock.Sleep(ctx, d.settle)
	var err error
	if want {
		err = d.kb.PressModifier()
	} else {
		err = d.kb.ReleaseModifier()
	}
	if err != nil {
		d.log.Error("Failed to change modifier", d.log.Field().Bool("down", want), d.log.Field().Error("error", err))
	}
	d.state.SetModifier(want)
}

// relaxModifier releases shift after a key release when no held key needs it.
func (d *Dispatcher) relaxModifier() {
	if !d.state.Modifier() || d.state.NeedsModifier() {
		return
	}
	if err := d.kb.ReleaseModifier(); err != nil {
		d.log.Error("Failed to release modifier", d.log.Field().Error("error", err))
	}
	d.state.SetModifier(false)
}

// Drain releases every held key, then the modifier. All releases are
// attempted; their failures are combined.
func (d *Dispatcher) Drain() error {
	keys, modifier := d.state.Drain()
	var err error
	for _, k := range keys {
		d.Counters.Released++
		if rerr := d.kb.Release(k.Char); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("release %q: %w", k.Char, rerr))
		}
	}
	if modifier {
		if rerr := d.kb.ReleaseModifier(); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("release modifier: %w", rerr))
		}
	}
	return err
}
