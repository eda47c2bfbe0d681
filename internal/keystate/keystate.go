// Package keystate tracks which emulated keys are held and whether the
// shift modifier is down. A Tracker is owned by a single goroutine.
package keystate

import (
	"sort"

	"github.com/leandrodaf/midikeys/internal/keymap"
)

// Tracker holds per-key and modifier state for one session.
type Tracker struct {
	held     map[rune]keymap.Key
	modifier bool
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{held: make(map[rune]keymap.Key)}
}

// Toggle flips k and reports whether it is now held.
func (t *Tracker) Toggle(k keymap.Key) bool {
	if _, ok := t.held[k.Char]; ok {
		delete(t.held, k.Char)
		return false
	}
	t.held[k.Char] = k
	return true
}

// Hold marks k held regardless of its previous state.
func (t *Tracker) Hold(k keymap.Key) {
	t.held[k.Char] = k
}

// Release marks ch released and reports whether it was held.
func (t *Tracker) Release(ch rune) bool {
	if _, ok := t.held[ch]; !ok {
		return false
	}
	delete(t.held, ch)
	return true
}

// IsHeld reports whether ch is held.
func (t *Tracker) IsHeld(ch rune) bool {
	_, ok := t.held[ch]
	return ok
}

// Len is the number of held keys.
func (t *Tracker) Len() int { return len(t.held) }

// Held returns the held keys ordered by character.
func (t *Tracker) Held() []keymap.Key {
	keys := make([]keymap.Key, 0, len(t.held))
	for _, k := range t.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Char < keys[j].Char })
	return keys
}

// NeedsModifier reports whether any held key requires shift.
func (t *Tracker) NeedsModifier() bool {
	for _, k := range t.held {
		if k.Shift {
			return true
		}
	}
	return false
}

// Modifier reports whether shift is held.
func (t *Tracker) Modifier() bool { return t.modifier }

// SetModifier records the shift state.
func (t *Tracker) SetModifier(down bool) { t.modifier = down }

// Drain empties the tracker, returning what was held.
func (t *Tracker) Drain() (keys []keymap.Key, modifier bool) {
	keys = t.Held()
	modifier = t.modifier
	t.held = make(map[rune]keymap.Key)
	t.modifier = false
	return keys, modifier
}
