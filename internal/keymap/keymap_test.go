package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayoutHas61Keys(t *testing.T) {
	assert.Equal(t, 61, Default.Len())
}

func TestLookup(t *testing.T) {
	cases := []struct {
		pitch uint8
		want  Key
		ok    bool
	}{
		{36, Key{Char: '1'}, true},
		{37, Key{Char: '!', Shift: true}, true},
		{60, Key{Char: 't'}, true},
		{61, Key{Char: 'T', Shift: true}, true},
		{96, Key{Char: 'm'}, true},
		{97, Key{}, false},
		{35, Key{}, false},
		{0, Key{}, false},
		{127, Key{}, false},
	}
	for _, c := range cases {
		got, ok := Default.Lookup(c.pitch)
		assert.Equal(t, c.ok, ok, "pitch %d", c.pitch)
		assert.Equal(t, c.want, got, "pitch %d", c.pitch)
	}
}

func TestShiftFlags(t *testing.T) {
	for _, r := range "!@$%^*(" {
		assert.True(t, Default.RequiresShift(r), "%q", r)
	}
	assert.True(t, Default.RequiresShift('Q'))
	assert.False(t, Default.RequiresShift('q'))
	assert.False(t, Default.RequiresShift('1'))
	// '#' is a special symbol but not part of the layout
	assert.False(t, Default.RequiresShift('#'))
}

func TestWithBaseTransposes(t *testing.T) {
	l := Default.WithBase(48)
	k, ok := l.Lookup(48)
	assert.True(t, ok)
	assert.Equal(t, '1', k.Char)

	_, ok = l.Lookup(36)
	assert.False(t, ok)
	assert.Equal(t, DefaultBase, Default.Base())
}
