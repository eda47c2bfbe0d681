package contracts

// MIDI represents a raw MIDI event captured from an input device.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred, in nanoseconds.
	Command   byte   // Command is the status byte with the channel nibble stripped (e.g. 0x90).
	Channel   byte   // Channel is the zero-based MIDI channel.
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// Bytes returns the event re-encoded as a three byte channel message.
func (m MIDI) Bytes() []byte {
	return []byte{m.Command | (m.Channel & 0x0F), m.Note, m.Velocity}
}

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}

// ClientMIDI captures events from a MIDI input device for live mode.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI input devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for capture.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}
