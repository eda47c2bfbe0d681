package score

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func encode(t *testing.T, tracks ...smf.Track) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	for _, tr := range tracks {
		require.NoError(t, s.Add(tr))
	}
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeNotesAndTempo(t *testing.T) {
	var conductor smf.Track
	conductor.Add(0, smf.MetaTempo(120))
	conductor.Close(0)

	var piano smf.Track
	piano.Add(0, midi.NoteOn(0, 60, 100))
	piano.Add(480, midi.NoteOn(0, 62, 90))
	piano.Add(480, midi.NoteOff(0, 60))
	piano.Close(0)

	s, err := Decode(encode(t, conductor, piano))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(Division{TicksPerBeat: 480}, s.Division)
	require.Len(t, s.Tracks, 2)
	assert.Equal(TempoChange, s.Tracks[0][0].Kind)
	assert.Equal(uint32(500000), s.Tracks[0][0].MicrosPerBeat)

	notes := s.Tracks[1]
	assert.Equal(Event{Kind: NoteOn, Pitch: 60, Velocity: 100}, notes[0].Event)
	assert.Equal(uint32(480), notes[1].Delta)
	assert.Equal(NoteOff, notes[2].Kind)
	assert.Equal(uint8(60), notes[2].Pitch)
	assert.True(s.HasNoteOff())

	st := s.Stats()
	assert.Equal(2, st.NoteOns)
	assert.Equal(1, st.NoteOffs)
	assert.Equal(1, st.Tempos)
	assert.Equal(uint64(960), st.LastTick)
}

func TestDecodeWithoutNoteOff(t *testing.T) {
	var piano smf.Track
	piano.Add(0, midi.NoteOn(0, 60, 100))
	piano.Add(480, midi.NoteOn(0, 60, 100))
	piano.Close(0)

	s, err := Decode(encode(t, piano))
	require.NoError(t, err)
	assert.False(t, s.HasNoteOff())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not a midi file"))
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestTempoOf(t *testing.T) {
	uspb, ok := tempoOf([]byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20})
	assert.True(t, ok)
	assert.Equal(t, uint32(500000), uspb)

	_, ok = tempoOf([]byte{0xFF, 0x58, 0x04, 4, 2, 24, 8})
	assert.False(t, ok)
}
