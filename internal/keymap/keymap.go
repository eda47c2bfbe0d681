// Package keymap maps MIDI pitches onto the characters of an on-screen
// piano layout.
package keymap

import (
	"strings"
	"unicode"
)

// Key is a target character and whether shift must be held to produce it.
type Key struct {
	Char  rune
	Shift bool
}

const (
	// VirtualPiano is the 61-key layout, lowest key first.
	VirtualPiano = "1!2@34$5%6^78*9(0qQwWeErtTyYuiIoOpPasSdDfgGhHjJklLzZxcCvVbBnm"
	// ShiftedSymbols are non-letter characters typed with shift.
	ShiftedSymbols = "!@#$%^&*()"
	// DefaultBase is the pitch of the first layout key (C2).
	DefaultBase uint8 = 36
)

// Layout is immutable after construction.
type Layout struct {
	keys []Key
	base uint8
}

// Default is the VirtualPiano layout based at DefaultBase.
var Default = NewLayout(VirtualPiano, ShiftedSymbols, DefaultBase)

// NewLayout builds a layout from the characters in notes. A character needs
// shift when it is upper case or appears in specials.
func NewLayout(notes, specials string, base uint8) *Layout {
	l := &Layout{base: base}
	for _, r := range notes {
		l.keys = append(l.keys, Key{
			Char:  r,
			Shift: unicode.IsUpper(r) || strings.ContainsRune(specials, r),
		})
	}
	return l
}

// WithBase returns a copy of the layout transposed so that base maps to the first key.
func (l *Layout) WithBase(base uint8) *Layout {
	return &Layout{keys: l.keys, base: base}
}

// Base is the pitch of the first key.
func (l *Layout) Base() uint8 { return l.base }

// Len is the number of playable keys.
func (l *Layout) Len() int { return len(l.keys) }

// Lookup maps a pitch to its key. Pitches outside the layout are unmapped.
func (l *Layout) Lookup(pitch uint8) (Key, bool) {
	if pitch < l.base {
		return Key{}, false
	}
	idx := int(pitch - l.base)
	if idx >= len(l.keys) {
		return Key{}, false
	}
	return l.keys[idx], true
}

// RequiresShift reports whether ch is a shifted key of this layout.
func (l *Layout) RequiresShift(ch rune) bool {
	for _, k := range l.keys {
		if k.Char == ch {
			return k.Shift
		}
	}
	return false
}
