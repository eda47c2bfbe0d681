package score

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Errors returned while loading a score.
var (
	ErrDecode                = errors.New("cannot decode midi file")
	ErrUnsupportedTimeFormat = errors.New("unsupported time format")
)

const metaTempo = 0x51

// ReadFile loads and decodes the file at path.
func ReadFile(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a Standard MIDI File.
func Decode(data []byte) (s *Score, err error) {
	// the smf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	parsed, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	division, err := divisionOf(parsed.TimeFormat)
	if err != nil {
		return nil, err
	}

	s = &Score{Division: division, Tracks: make([]Track, 0, len(parsed.Tracks))}
	for _, tr := range parsed.Tracks {
		track := make(Track, 0, len(tr))
		for _, ev := range tr {
			track = append(track, TrackEvent{Delta: ev.Delta, Event: convertMessage(ev.Message)})
		}
		s.Tracks = append(s.Tracks, track)
	}
	return s, nil
}

func divisionOf(tf smf.TimeFormat) (Division, error) {
	switch v := tf.(type) {
	case smf.MetricTicks:
		return Division{TicksPerBeat: uint16(v)}, nil
	case smf.TimeCode:
		return Division{FramesPerSecond: v.FramesPerSecond, SubFrames: v.SubFrames}, nil
	default:
		return Division{}, fmt.Errorf("%w: %v", ErrUnsupportedTimeFormat, tf)
	}
}

func convertMessage(msg smf.Message) Event {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return Event{Kind: NoteOn, Channel: channel, Pitch: key, Velocity: velocity}
	case msg.GetNoteOff(&channel, &key, &velocity):
		return Event{Kind: NoteOff, Channel: channel, Pitch: key, Velocity: velocity}
	}
	if uspb, ok := tempoOf(msg); ok {
		return Event{Kind: TempoChange, MicrosPerBeat: uspb}
	}
	return Event{Kind: Other, Raw: msg.String()}
}

// tempoOf extracts FF 51 03 tt tt tt.
func tempoOf(msg []byte) (uint32, bool) {
	if len(msg) != 6 || msg[0] != 0xFF || msg[1] != metaTempo || msg[2] != 3 {
		return 0, false
	}
	return uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5]), true
}
