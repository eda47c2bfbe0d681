package score

import "container/heap"

// Timed is a merged event with its absolute tick and source track.
type Timed struct {
	Tick  uint64
	Track int
	Event
}

type cursor struct {
	track int
	pos   int
	tick  uint64 // absolute tick of events[pos]
}

type cursorHeap []*cursor

func (h cursorHeap) Len() int { return len(h) }
func (h cursorHeap) Less(i, j int) bool {
	if h[i].tick != h[j].tick {
		return h[i].tick < h[j].tick
	}
	return h[i].track < h[j].track
}
func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x any)   { *h = append(*h, x.(*cursor)) }
func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// Merger lazily interleaves tracks by absolute tick. Equal ticks come out
// in track index order, and within a track in file order. A Merger is
// single pass.
type Merger struct {
	tracks []Track
	h      cursorHeap
}

// NewMerger prepares a merge over tracks. The tracks are not copied.
func NewMerger(tracks []Track) *Merger {
	m := &Merger{tracks: tracks}
	for i, tr := range tracks {
		if len(tr) == 0 {
			continue
		}
		m.h = append(m.h, &cursor{track: i, tick: uint64(tr[0].Delta)})
	}
	heap.Init(&m.h)
	return m
}

// Next returns the next event in tick order, or false when all tracks are exhausted.
func (m *Merger) Next() (Timed, bool) {
	if len(m.h) == 0 {
		return Timed{}, false
	}
	c := m.h[0]
	tr := m.tracks[c.track]
	out := Timed{Tick: c.tick, Track: c.track, Event: tr[c.pos].Event}

	c.pos++
	if c.pos < len(tr) {
		c.tick += uint64(tr[c.pos].Delta)
		heap.Fix(&m.h, 0)
	} else {
		heap.Pop(&m.h)
	}
	return out, true
}
