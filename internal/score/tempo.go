package score

import (
	"fmt"
	"time"
)

// TempoConverter turns absolute ticks into elapsed time since tick zero.
//
// Ticks passed to Convert must be non-decreasing. Elapsed time is exact
// within a tempo segment; truncation happens only at segment boundaries,
// so results are monotonic.
type TempoConverter struct {
	ticksPerBeat   uint64
	ticksPerSecond uint64 // timecode divisions only
	microsPerBeat  uint64

	segmentTick   uint64
	segmentMicros uint64
}

// NewTempoConverter validates the division and starts at DefaultMicrosPerBeat.
func NewTempoConverter(d Division) (*TempoConverter, error) {
	if d.IsTimecode() {
		if d.FramesPerSecond == 0 || d.SubFrames == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTimeFormat, d)
		}
		perSecond := uint64(d.FramesPerSecond) * uint64(d.SubFrames)
		return &TempoConverter{ticksPerSecond: perSecond, microsPerBeat: DefaultMicrosPerBeat}, nil
	}
	if d.TicksPerBeat == 0 {
		return nil, fmt.Errorf("%w: zero ticks per beat", ErrUnsupportedTimeFormat)
	}
	return &TempoConverter{ticksPerBeat: uint64(d.TicksPerBeat), microsPerBeat: DefaultMicrosPerBeat}, nil
}

// Convert returns the elapsed time at tick, then applies ev if it is a tempo change.
func (c *TempoConverter) Convert(tick uint64, ev Event) time.Duration {
	micros := c.micros(tick)
	if ev.Kind == TempoChange && c.ticksPerSecond == 0 {
		c.segmentTick = tick
		c.segmentMicros = micros
		c.microsPerBeat = uint64(ev.MicrosPerBeat)
	}
	return time.Duration(micros) * time.Microsecond
}

// MicrosPerBeat is the tempo currently in effect.
func (c *TempoConverter) MicrosPerBeat() uint32 {
	return uint32(c.microsPerBeat)
}

func (c *TempoConverter) micros(tick uint64) uint64 {
	if c.ticksPerSecond != 0 {
		return tick * 1000000 / c.ticksPerSecond
	}
	return c.segmentMicros + (tick-c.segmentTick)*c.microsPerBeat/c.ticksPerBeat
}
