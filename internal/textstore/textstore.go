package textstore

import (
	"errors"
	"strings"
)

// ErrIndexOutOfRange is returned when an offset falls outside the store.
var ErrIndexOutOfRange = errors.New("index out of range")

// Store is a character-addressable mutable sequence.
type Store interface {
	// Insert places r so that it becomes the character at offset.
	Insert(offset int, r rune) error
	// Remove deletes and returns the character at offset.
	// ok is false when offset >= Len().
	Remove(offset int) (r rune, ok bool)
	// At returns the character at offset.
	At(offset int) (rune, error)
	Len() int
}

const minCapacity = 64

// GapBuffer keeps an unused gap at the last edit site so that edits
// clustered around the cursor are cheap.
type GapBuffer struct {
	data     []rune
	gapStart int
	gapEnd   int
}

func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &GapBuffer{
		data:   make([]rune, capacity),
		gapEnd: capacity,
	}
}

// FromString returns a gap buffer holding s with the gap at the end.
func FromString(s string) *GapBuffer {
	runes := []rune(s)
	g := NewGapBuffer(len(runes) * 2)
	copy(g.data, runes)
	g.gapStart = len(runes)
	return g
}

func (g *GapBuffer) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) gapLen() int {
	return g.gapEnd - g.gapStart
}

// Grow makes room for at least n more characters without reallocating.
func (g *GapBuffer) Grow(n int) {
	if g.gapLen() >= n {
		return
	}
	size := len(g.data) * 2
	if size < minCapacity {
		size = minCapacity
	}
	for size-g.Len() < n {
		size *= 2
	}
	data := make([]rune, size)
	copy(data, g.data[:g.gapStart])
	tail := len(g.data) - g.gapEnd
	copy(data[size-tail:], g.data[g.gapEnd:])
	g.data = data
	g.gapEnd = size - tail
}

func (g *GapBuffer) moveGap(offset int) {
	switch {
	case offset < g.gapStart:
		n := g.gapStart - offset
		copy(g.data[g.gapEnd-n:g.gapEnd], g.data[offset:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
	case offset > g.gapStart:
		n := offset - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

func (g *GapBuffer) Insert(offset int, r rune) error {
	if offset < 0 || offset > g.Len() {
		return ErrIndexOutOfRange
	}
	g.Grow(1)
	g.moveGap(offset)
	g.data[g.gapStart] = r
	g.gapStart++
	return nil
}

func (g *GapBuffer) Remove(offset int) (rune, bool) {
	if offset < 0 || offset >= g.Len() {
		return 0, false
	}
	g.moveGap(offset)
	r := g.data[g.gapEnd]
	g.gapEnd++
	return r, true
}

func (g *GapBuffer) At(offset int) (rune, error) {
	if offset < 0 || offset >= g.Len() {
		return 0, ErrIndexOutOfRange
	}
	if offset < g.gapStart {
		return g.data[offset], nil
	}
	return g.data[offset+g.gapLen()], nil
}

// String returns the contents in document order.
func (g *GapBuffer) String() string {
	var sb strings.Builder
	sb.Grow(g.Len())
	for _, r := range g.data[:g.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range g.data[g.gapEnd:] {
		sb.WriteRune(r)
	}
	return sb.String()
}
