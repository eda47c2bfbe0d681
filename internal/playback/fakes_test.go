package playback

import (
	"context"
	"errors"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeClock advances only when slept on.
type fakeClock struct {
	now     time.Time
	onSleep func() // runs after every positive sleep
}

func newFakeClock() *fakeClock { return &fakeClock{now: epoch} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
		if c.onSleep != nil {
			c.onSleep()
		}
	}
}

func (c *fakeClock) elapsed() time.Duration { return c.now.Sub(epoch) }

type op struct {
	At   time.Duration
	What string // "press", "release", "shift-down", "shift-up"
	Key  rune
}

// recorder is a keyboard that logs every call against the fake clock and
// tracks what it believes is held.
type recorder struct {
	clock       *fakeClock
	ops         []op
	held        map[rune]bool
	shift       bool
	cost        time.Duration // clock advance per press
	cancelFrom  int           // report the cancel key once this many presses happened; 0 disables
	presses     int
	failRelease bool // Release records the call, then fails
}

func newRecorder(clock *fakeClock) *recorder {
	return &recorder{clock: clock, held: make(map[rune]bool)}
}

func (r *recorder) add(what string, key rune) {
	r.ops = append(r.ops, op{At: r.clock.elapsed(), What: what, Key: key})
}

func (r *recorder) Press(key rune) error {
	r.add("press", key)
	r.held[key] = true
	r.presses++
	r.clock.Sleep(context.Background(), r.cost)
	return nil
}

func (r *recorder) Release(key rune) error {
	r.add("release", key)
	delete(r.held, key)
	if r.failRelease {
		return errors.New("stuck " + string(key))
	}
	return nil
}

func (r *recorder) PressModifier() error {
	r.add("shift-down", 0)
	r.shift = true
	return nil
}

func (r *recorder) ReleaseModifier() error {
	r.add("shift-up", 0)
	r.shift = false
	return nil
}

func (r *recorder) HeldPhysicalKeys() []contracts.PhysicalKey {
	if r.cancelFrom > 0 && r.presses >= r.cancelFrom {
		return []contracts.PhysicalKey{contracts.KeyShift, contracts.KeyEscape}
	}
	return nil
}

func (r *recorder) whats() []string {
	out := make([]string, 0, len(r.ops))
	for _, o := range r.ops {
		if o.Key != 0 {
			out = append(out, o.What+" "+string(o.Key))
		} else {
			out = append(out, o.What)
		}
	}
	return out
}

const settle = 12 * time.Millisecond

func newTestScheduler(kb contracts.Keyboard, clock contracts.Clock) *Scheduler {
	return NewScheduler(Config{
		Keyboard:     kb,
		Clock:        clock,
		Logger:       logger.NewNop(),
		SettleMargin: settle,
		CancelKey:    contracts.KeyEscape,
	})
}

func noteOn(delta uint32, pitch uint8) score.TrackEvent {
	return score.TrackEvent{Delta: delta, Event: score.Event{Kind: score.NoteOn, Pitch: pitch, Velocity: 100}}
}

func noteOff(delta uint32, pitch uint8) score.TrackEvent {
	return score.TrackEvent{Delta: delta, Event: score.Event{Kind: score.NoteOff, Pitch: pitch}}
}

func tempo(delta uint32, uspb uint32) score.TrackEvent {
	return score.TrackEvent{Delta: delta, Event: score.Event{Kind: score.TempoChange, MicrosPerBeat: uspb}}
}

func newScore(tracks ...score.Track) *score.Score {
	return &score.Score{Division: score.Division{TicksPerBeat: 480}, Tracks: tracks}
}
