package playback

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDetectMode(t *testing.T) {
	assert.Equal(t, Toggle, DetectMode(newScore(score.Track{noteOn(0, 60), noteOn(10, 60)})))
	assert.Equal(t, Paired, DetectMode(newScore(
		score.Track{noteOn(0, 60)},
		score.Track{noteOff(9000, 20)},
	)))
	assert.Equal(t, Toggle, DetectMode(newScore()))
}

func TestToggleModeTwoDifferentKeys(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{tempo(0, 500000)},
		score.Track{noteOn(0, 60), noteOn(480, 62)},
	))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("toggle", res.Mode)
	assert.Equal([]string{"press t", "press y", "release t", "release y"}, kb.whats())
	assert.Equal(time.Duration(0), kb.ops[0].At)
	assert.Equal(500*time.Millisecond-settle, kb.ops[1].At)
	assert.Empty(kb.held)
	assert.False(res.Cancelled)
	assert.Equal(3, res.Events)
	assert.Equal(2, res.Pressed)
	assert.Equal(2, res.Released)
	assert.NotEmpty(res.Session)
}

func TestPairedModeReleasesOnNoteOff(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{tempo(0, 500000)},
		score.Track{noteOn(0, 60), noteOn(480, 62), noteOff(480, 60)},
	))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("paired", res.Mode)
	assert.Equal([]string{"press t", "press y", "release t", "release y"}, kb.whats())
	assert.Equal(time.Duration(0), kb.ops[0].At)
	assert.Equal(488*time.Millisecond, kb.ops[1].At)
	assert.Equal(976*time.Millisecond, kb.ops[2].At)
	assert.Empty(kb.held)
}

func TestShiftPrecedesKeyAndFollowsRelease(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	_, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 61), noteOn(480, 61)},
	))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"shift-down", "press T", "release T", "shift-up"}, kb.whats())
	assert.Equal(settle, kb.ops[0].At)
	assert.Equal(settle, kb.ops[1].At)
	assert.False(kb.shift)
}

func TestUnshiftedNoteReleasesModifierFirst(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	_, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 61), noteOff(480, 61), noteOn(0, 60), noteOff(480, 60)},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"shift-down", "press T", "release T", "shift-up", "press t", "release t"}, kb.whats())
}

func TestToggleTwiceSameKeyIsOnePressOneRelease(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 60), noteOn(240, 60)},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"press t", "release t"}, kb.whats())
	assert.Equal(t, 1, res.Released)
}

func TestOutOfRangePitchesEmitNothing(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 97), noteOn(10, 20), noteOff(10, 127)},
	))
	require.NoError(t, err)
	assert.Empty(t, kb.ops)
	assert.Equal(t, 3, res.Dropped)
}

func TestCancelKeyReleasesEverything(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	kb.cancelFrom = 2

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 61), noteOn(10, 63), noteOn(480, 60), noteOff(480, 61)},
	))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(res.Cancelled)
	assert.Equal(2, res.Events)
	assert.Equal([]string{"shift-down", "press T", "press Y", "release T", "release Y", "shift-up"}, kb.whats())
	assert.Empty(kb.held)
	assert.False(kb.shift)
}

func TestCancelledContextStopsBeforeFirstEvent(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestScheduler(kb, clock).Play(ctx, newScore(score.Track{noteOn(0, 60)}))
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Empty(t, kb.ops)
}

func TestCancelDuringSleepSkipsPendingEvent(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	ctx, cancel := context.WithCancel(context.Background())
	clock.onSleep = cancel

	res, err := newTestScheduler(kb, clock).Play(ctx, newScore(
		score.Track{noteOn(0, 60), noteOn(480, 62)},
	))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.True(res.Cancelled)
	assert.Equal(1, res.Events)
	assert.Equal([]string{"press t", "release t"}, kb.whats())
}

func TestDrainAttemptsEveryReleaseAndCombinesFailures(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	kb.failRelease = true
	kb.cancelFrom = 2

	res, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 61), noteOn(10, 63), noteOn(480, 60)},
	))
	require.Error(t, err)

	assert := assert.New(t)
	assert.True(res.Cancelled)
	assert.Equal([]string{"shift-down", "press T", "press Y", "release T", "release Y", "shift-up"}, kb.whats())
	assert.Empty(kb.held)
	assert.False(kb.shift)
	assert.Equal(2, res.Released)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(errs[0].Error(), "stuck T")
	assert.Contains(errs[1].Error(), "stuck Y")
}

func TestUnsupportedDivisionNeverTouchesKeyboard(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	sc := newScore(score.Track{noteOn(0, 60)})
	sc.Division = score.Division{}

	_, err := newTestScheduler(kb, clock).Play(context.Background(), sc)
	assert.True(t, errors.Is(err, score.ErrUnsupportedTimeFormat))
	assert.Empty(t, kb.ops)
}

func TestLateEventsAreNotCompensated(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	kb.cost = 20 * time.Millisecond

	_, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(
		score.Track{noteOn(0, 60), noteOn(480, 62), noteOn(480, 64)},
	))
	require.NoError(t, err)
	assert.Equal(t, 508*time.Millisecond, kb.ops[1].At)
	assert.Equal(t, 1016*time.Millisecond, kb.ops[2].At)
}

func TestDriftCompensationSleepsToDeadline(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	kb.cost = 20 * time.Millisecond
	s := newTestScheduler(kb, clock)
	s.cfg.DriftCompensation = true

	_, err := s.Play(context.Background(), newScore(
		score.Track{noteOn(0, 60), noteOn(480, 62), noteOn(480, 64)},
	))
	require.NoError(t, err)
	assert.Equal(t, 488*time.Millisecond, kb.ops[1].At)
	assert.Equal(t, 988*time.Millisecond, kb.ops[2].At)
}

func TestStartDelay(t *testing.T) {
	clock := newFakeClock()
	kb := newRecorder(clock)
	s := newTestScheduler(kb, clock)
	s.cfg.StartDelay = 2 * time.Second

	_, err := s.Play(context.Background(), newScore(score.Track{noteOn(0, 60)}))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, kb.ops[0].At)
}

func TestSessionsAlwaysEndDrained(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		var tracks []score.Track
		for n := rng.Intn(3) + 1; n > 0; n-- {
			var tr score.Track
			for e := rng.Intn(30); e > 0; e-- {
				pitch := uint8(30 + rng.Intn(75))
				delta := uint32(rng.Intn(200))
				switch rng.Intn(5) {
				case 0:
					tr = append(tr, noteOff(delta, pitch))
				case 1:
					tr = append(tr, tempo(delta, uint32(100000+rng.Intn(900000))))
				default:
					tr = append(tr, noteOn(delta, pitch))
				}
			}
			tracks = append(tracks, tr)
		}

		clock := newFakeClock()
		kb := newRecorder(clock)
		if rng.Intn(3) == 0 {
			kb.cancelFrom = rng.Intn(10) + 1
		}

		_, err := newTestScheduler(kb, clock).Play(context.Background(), newScore(tracks...))
		require.NoError(t, err)
		if len(kb.held) != 0 || kb.shift {
			t.Fatalf("session %d left state behind: held=%v shift=%v ops=%v", i, kb.held, kb.shift, kb.whats())
		}
	}
}
