package contracts

import "time"

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether command passes the filter. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command byte) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// CaptureOptions defines the configuration options for a live MIDI capture client.
type CaptureOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// CaptureOption is a function that modifies CaptureOptions.
type CaptureOption func(*CaptureOptions)

// WithCaptureLogger sets the logger for the capture client.
func WithCaptureLogger(l Logger) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.Logger = l
	}
}

// WithCaptureLogLevel sets the logging level for the capture client.
func WithCaptureLogLevel(level LogLevel) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.LogLevel = level
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the capture client.
func WithMIDIEventFilter(filter MIDIEventFilter) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the capture client.
func WithCoreMIDIConfig(config CoreMIDIConfig) CaptureOption {
	return func(opts *CaptureOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// PlayerOptions defines the configuration of a playback session.
type PlayerOptions struct {
	Logger            Logger        // Logger for logging events and errors.
	LogLevel          LogLevel      // Level of logging to use. Zero keeps a supplied logger at its own level.
	Keyboard          Keyboard      // Input-emulation backend; chosen per OS when nil.
	Clock             Clock         // Time source; wall clock when nil.
	SettleMargin      time.Duration // Delay inserted before a modifier change takes effect.
	StartDelay        time.Duration // Pause before the first event, to focus the target window.
	CancelKey         PhysicalKey   // Physical key that cancels playback.
	BasePitch         uint8         // Pitch mapped to the first key of the layout.
	DriftCompensation bool          // Sleep to absolute deadlines instead of per-event residuals.
}

// PlayerOption is a function that modifies PlayerOptions.
type PlayerOption func(*PlayerOptions)

// WithLogger sets the logger for the player.
func WithLogger(l Logger) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the player.
func WithLogLevel(level LogLevel) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.LogLevel = level
	}
}

// WithKeyboard overrides the OS keyboard backend.
func WithKeyboard(kb Keyboard) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.Keyboard = kb
	}
}

// WithClock overrides the wall clock.
func WithClock(c Clock) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.Clock = c
	}
}

// WithSettleMargin sets the modifier settle margin.
func WithSettleMargin(d time.Duration) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.SettleMargin = d
	}
}

// WithStartDelay sets the pause before playback starts.
func WithStartDelay(d time.Duration) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.StartDelay = d
	}
}

// WithCancelKey sets the physical key that cancels playback.
func WithCancelKey(key PhysicalKey) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.CancelKey = key
	}
}

// WithBasePitch sets the pitch of the lowest playable key.
func WithBasePitch(pitch uint8) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.BasePitch = pitch
	}
}

// WithDriftCompensation enables absolute-deadline sleeping.
func WithDriftCompensation(enabled bool) PlayerOption {
	return func(opts *PlayerOptions) {
		opts.DriftCompensation = enabled
	}
}
