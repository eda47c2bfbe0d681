// Package kbdryrun is a keyboard backend that only logs what it would type.
package kbdryrun

import (
	"sync"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Keyboard logs key transitions and keeps a history of them.
type Keyboard struct {
	logger contracts.Logger

	mu      sync.Mutex
	history []string
}

// New returns a dry-run keyboard logging at Info level.
func New(logger contracts.Logger) *Keyboard {
	logger.Info("Using dry-run keyboard; no keys will be sent to the system")
	return &Keyboard{logger: logger}
}

func (k *Keyboard) record(entry string) {
	k.mu.Lock()
	k.history = append(k.history, entry)
	k.mu.Unlock()
	k.logger.Info("Key", k.logger.Field().String("action", entry))
}

// Press logs a key press.
func (k *Keyboard) Press(key rune) error {
	k.record("press " + string(key))
	return nil
}

// Release logs a key release.
func (k *Keyboard) Release(key rune) error {
	k.record("release " + string(key))
	return nil
}

// PressModifier logs a shift press.
func (k *Keyboard) PressModifier() error {
	k.record("press shift")
	return nil
}

// ReleaseModifier logs a shift release.
func (k *Keyboard) ReleaseModifier() error {
	k.record("release shift")
	return nil
}

// HeldPhysicalKeys reports nothing; a dry run is cancelled through its context.
func (k *Keyboard) HeldPhysicalKeys() []contracts.PhysicalKey {
	return nil
}

// History returns the recorded transitions in order.
func (k *Keyboard) History() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.history...)
}
