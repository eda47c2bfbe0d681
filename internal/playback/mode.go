// Package playback schedules score events in real time and turns them into
// emulated key presses.
package playback

import "github.com/leandrodaf/midikeys/internal/score"

// Mode decides how note events map to key transitions.
type Mode int

const (
	// Paired presses on note-on and releases on note-off.
	Paired Mode = iota
	// Toggle flips the key on every note-on. Used for scores recorded
	// without note-off events.
	Toggle
)

func (m Mode) String() string {
	if m == Toggle {
		return "toggle"
	}
	return "paired"
}

// DetectMode scans the whole score once: any note-off selects Paired.
func DetectMode(s *score.Score) Mode {
	if s.HasNoteOff() {
		return Paired
	}
	return Toggle
}
