package contracts

import (
	"context"
	"time"
)

// PhysicalKey names a key on the real input device.
type PhysicalKey string

const (
	KeyEscape  PhysicalKey = "escape"
	KeyShift   PhysicalKey = "shift"
	KeyControl PhysicalKey = "control"
	KeyPause   PhysicalKey = "pause"
	KeyF12     PhysicalKey = "f12"
)

// KnownPhysicalKeys lists every key a backend is expected to report.
var KnownPhysicalKeys = []PhysicalKey{KeyEscape, KeyShift, KeyControl, KeyPause, KeyF12}

// Cancellable reports whether k can stop playback. Shift is excluded because
// playback presses it itself. The empty key disables cancellation.
func (k PhysicalKey) Cancellable() bool {
	return k != KeyShift
}

// Keyboard emulates key presses on the host and reports physical key state.
//
// Press and Release take the target character. The shift modifier is never
// implied by the character: callers hold it through PressModifier.
type Keyboard interface {
	Press(key rune) error
	Release(key rune) error
	PressModifier() error
	ReleaseModifier() error
	// HeldPhysicalKeys must not block. It is polled once per scheduled event.
	HeldPhysicalKeys() []PhysicalKey
}

// Clock is the time source of the scheduler.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done. Non-positive durations return immediately.
	Sleep(ctx context.Context, d time.Duration)
}

// PlaybackResult summarises one playback session.
type PlaybackResult struct {
	Session   string        // Session id, also attached to every log line of the session.
	Mode      string        // "paired" or "toggle".
	Events    int           // Merged events dispatched.
	Pressed   int           // Key presses emitted, modifier excluded.
	Released  int           // Key releases emitted, modifier and drain included.
	Dropped   int           // Note events whose pitch has no key.
	Ignored   int           // Events other than notes and tempo changes.
	Cancelled bool          // Playback stopped before the last event.
	Elapsed   time.Duration // Time from the first event to the end of the session.
}
