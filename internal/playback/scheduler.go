package playback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Config is everything a Scheduler needs besides the score.
type Config struct {
	Keyboard          contracts.Keyboard
	Clock             contracts.Clock
	Logger            contracts.Logger
	Layout            *keymap.Layout
	SettleMargin      time.Duration
	StartDelay        time.Duration
	CancelKey         contracts.PhysicalKey
	DriftCompensation bool
}

// Scheduler plays scores, one session at a time, on the calling goroutine.
type Scheduler struct {
	cfg Config
}

// NewScheduler returns a scheduler. A nil Layout means keymap.Default, a
// nil Clock means SystemClock.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Layout == nil {
		cfg.Layout = keymap.Default
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Scheduler{cfg: cfg}
}

// Play runs one session. It returns an error without touching the keyboard
// when the score's time division is unsupported. Otherwise it plays until the
// last event, ctx is done or the cancel key is held, and always leaves every
// key and the modifier released.
func (s *Scheduler) Play(ctx context.Context, sc *score.Score) (contracts.PlaybackResult, error) {
	conv, err := score.NewTempoConverter(sc.Division)
	if err != nil {
		return contracts.PlaybackResult{}, err
	}

	log := s.cfg.Logger
	mode := DetectMode(sc)
	res := contracts.PlaybackResult{Session: uuid.NewString(), Mode: mode.String()}
	session := log.Field().String("session", res.Session)

	if mode == Toggle {
		log.Info("Keyup not detected, playing with toggle", session)
	} else {
		log.Info("Keyup detected, playing with on/off", session)
	}

	d := NewDispatcher(s.cfg.Keyboard, s.cfg.Layout, mode, s.cfg.SettleMargin, s.cfg.Clock, log)
	clock := s.cfg.Clock
	clock.Sleep(ctx, s.cfg.StartDelay)

	start := clock.Now()
	merger := score.NewMerger(sc.Tracks)
	var previous time.Duration
	for {
		ev, ok := merger.Next()
		if !ok {
			break
		}
		if s.cancelled(ctx) {
			res.Cancelled = true
			break
		}

		target := conv.Convert(ev.Tick, ev.Event)
		var wait time.Duration
		if s.cfg.DriftCompensation {
			wait = start.Add(target).Sub(clock.Now()) - s.cfg.SettleMargin
		} else {
			wait = target - previous - s.cfg.SettleMargin
		}
		if wait > 0 {
			clock.Sleep(ctx, wait)
			// the sleep ends early on cancellation
			if s.cancelled(ctx) {
				res.Cancelled = true
				break
			}
		}
		previous = target

		d.Dispatch(ctx, ev.Event)
		res.Events++
	}

	if res.Cancelled {
		log.Info("Playback cancelled", session, log.Field().Int("held", d.State().Len()))
	}
	drainErr := d.Drain()
	if drainErr != nil {
		log.Error("Failed to release keys", session, log.Field().Error("error", drainErr))
	}

	res.Pressed = d.Counters.Pressed
	res.Released = d.Counters.Released
	res.Dropped = d.Counters.Dropped
	res.Ignored = d.Counters.Ignored
	res.Elapsed = clock.Now().Sub(start)
	log.Info("Playback finished", session,
		log.Field().Int("events", res.Events),
		log.Field().Int("dropped", res.Dropped),
		log.Field().Bool("cancelled", res.Cancelled),
		log.Field().Duration("elapsed", res.Elapsed))
	return res, drainErr
}

// cancelled polls ctx and the physical cancel key. The keyboard poll must not block.
func (s *Scheduler) cancelled(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return CancelKeyHeld(s.cfg.Keyboard, s.cfg.CancelKey)
}

// CancelKeyHeld reports whether key is among the keyboard's held physical keys.
func CancelKeyHeld(kb contracts.Keyboard, key contracts.PhysicalKey) bool {
	if key == "" {
		return false
	}
	for _, held := range kb.HeldPhysicalKeys() {
		if held == key {
			return true
		}
	}
	return false
}
