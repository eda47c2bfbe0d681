package live

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noSleep struct{}

func (noSleep) Now() time.Time                       { return time.Time{} }
func (noSleep) Sleep(context.Context, time.Duration) {}

type keyboard struct {
	mu     sync.Mutex
	ops    []string
	cancel bool
}

func (k *keyboard) add(s string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.ops = append(k.ops, s)
	return nil
}

func (k *keyboard) Press(r rune) error     { return k.add("press " + string(r)) }
func (k *keyboard) Release(r rune) error   { return k.add("release " + string(r)) }
func (k *keyboard) PressModifier() error   { return k.add("shift-down") }
func (k *keyboard) ReleaseModifier() error { return k.add("shift-up") }

func (k *keyboard) HeldPhysicalKeys() []contracts.PhysicalKey {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.cancel {
		return []contracts.PhysicalKey{contracts.KeyEscape}
	}
	return nil
}

func config(kb *keyboard) Config {
	return Config{
		Keyboard:     kb,
		Clock:        noSleep{},
		Logger:       logger.NewNop(),
		CancelKey:    contracts.KeyEscape,
		PollInterval: time.Millisecond,
	}
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(score.Event{Kind: score.NoteOn, Channel: 1, Pitch: 60, Velocity: 90},
		Decode(contracts.MIDI{Command: 0x90, Channel: 1, Note: 60, Velocity: 90}))
	assert.Equal(score.NoteOff, Decode(contracts.MIDI{Command: 0x90, Note: 60}).Kind)
	assert.Equal(score.NoteOff, Decode(contracts.MIDI{Command: 0x80, Note: 60, Velocity: 64}).Kind)
	assert.Equal(score.Other, Decode(contracts.MIDI{Command: 0xB0, Note: 64, Velocity: 127}).Kind)
}

func TestRunPairsKeysAndDrainsOnClose(t *testing.T) {
	kb := &keyboard{}
	events := make(chan contracts.MIDI, 8)
	events <- contracts.MIDI{Command: 0x90, Note: 61, Velocity: 100}
	events <- contracts.MIDI{Command: 0x90, Note: 60, Velocity: 100}
	events <- contracts.MIDI{Command: 0x80, Note: 60}
	events <- contracts.MIDI{Command: 0x90, Note: 62, Velocity: 100}
	close(events)

	counters, err := Run(context.Background(), events, config(kb))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"shift-down", "press T",
		"shift-up", "press t",
		"release t",
		"press y",
		"release T", "release y",
	}, kb.ops)
	assert.Equal(t, 3, counters.Pressed)
}

func TestRunStopsOnCancelKey(t *testing.T) {
	kb := &keyboard{}
	events := make(chan contracts.MIDI, 1)
	events <- contracts.MIDI{Command: 0x90, Note: 60, Velocity: 100}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Run(context.Background(), events, config(kb))
		assert.NoError(t, err)
	}()

	require.Eventually(t, func() bool {
		kb.mu.Lock()
		defer kb.mu.Unlock()
		return len(kb.ops) == 1
	}, time.Second, time.Millisecond)

	kb.mu.Lock()
	kb.cancel = true
	kb.mu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("live mode did not stop")
	}
	assert.Equal(t, []string{"press t", "release t"}, kb.ops)
}

func TestRunStopsOnContext(t *testing.T) {
	kb := &keyboard{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, make(chan contracts.MIDI), config(kb))
	assert.NoError(t, err)
	assert.Empty(t, kb.ops)
}
