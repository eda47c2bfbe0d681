// Package score holds the in-memory form of a Standard MIDI File and the
// two time primitives playback is built on: the tempo converter and the
// track merger.
package score

import (
	"fmt"
)

// Kind tags an Event.
type Kind uint8

const (
	Other Kind = iota
	NoteOn
	NoteOff
	TempoChange
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case TempoChange:
		return "tempo"
	default:
		return "other"
	}
}

// DefaultMicrosPerBeat is the tempo in effect before the first tempo change (120 bpm).
const DefaultMicrosPerBeat = 500000

// Event is a decoded track event. Only the fields relevant to Kind are set.
type Event struct {
	Kind          Kind
	Channel       uint8
	Pitch         uint8
	Velocity      uint8
	MicrosPerBeat uint32
	// Raw describes Other events for logging.
	Raw string
}

func (e Event) String() string {
	switch e.Kind {
	case NoteOn:
		return fmt.Sprintf("note-on ch=%d pitch=%d vel=%d", e.Channel, e.Pitch, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("note-off ch=%d pitch=%d", e.Channel, e.Pitch)
	case TempoChange:
		return fmt.Sprintf("tempo %dus/beat", e.MicrosPerBeat)
	default:
		return e.Raw
	}
}

// TrackEvent is an event with its delta time in ticks from the previous event of the same track.
type TrackEvent struct {
	Delta uint32
	Event
}

// Track is a sequence of events ordered by delta time.
type Track []TrackEvent

// Division is the header's time division. Exactly one of TicksPerBeat or
// the timecode pair is meaningful.
type Division struct {
	TicksPerBeat    uint16
	FramesPerSecond uint8
	SubFrames       uint8
}

// IsTimecode reports whether the division uses SMPTE frames instead of beats.
func (d Division) IsTimecode() bool {
	return d.FramesPerSecond != 0 || d.SubFrames != 0
}

func (d Division) String() string {
	if d.IsTimecode() {
		return fmt.Sprintf("%d fps x %d subframes", d.FramesPerSecond, d.SubFrames)
	}
	return fmt.Sprintf("%d ticks/beat", d.TicksPerBeat)
}

// Score is an immutable decoded file.
type Score struct {
	Division Division
	Tracks   []Track
}

// HasNoteOff reports whether any track carries an explicit note-off.
func (s *Score) HasNoteOff() bool {
	for _, track := range s.Tracks {
		for _, ev := range track {
			if ev.Kind == NoteOff {
				return true
			}
		}
	}
	return false
}

// Stats summarises a score.
type Stats struct {
	Tracks   int
	NoteOns  int
	NoteOffs int
	Tempos   int
	Others   int
	LastTick uint64
	Pitches  map[uint8]int
}

// Stats counts events per kind and note-ons per pitch.
func (s *Score) Stats() Stats {
	st := Stats{Tracks: len(s.Tracks), Pitches: make(map[uint8]int)}
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			switch ev.Kind {
			case NoteOn:
				st.NoteOns++
				st.Pitches[ev.Pitch]++
			case NoteOff:
				st.NoteOffs++
			case TempoChange:
				st.Tempos++
			default:
				st.Others++
			}
		}
		if abs > st.LastTick {
			st.LastTick = abs
		}
	}
	return st
}
