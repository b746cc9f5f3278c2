// Package cursor provides windowed read access to string content.
//
// A Cursor reads straight from the string's buffer when the string exposes
// one. Otherwise it caches a window of WindowSize units and refills it,
// starting a few units before the requested index, whenever an index falls
// outside the cached window. Sequential scans in either direction then
// cost one refill per window.
//
// A Cursor is transient: create it for one scan and drop it afterwards.
// It must not outlive mutations of the string it reads.
package cursor

import "github.com/arloliu/ustring/str"

const (
	// WindowSize is the number of units cached for strings without a
	// direct buffer.
	WindowSize = 64
	// lookBehind is how far before a missed index a refill starts, so a
	// backward step after a refill still hits the window.
	lookBehind = 4
)

// Cursor reads UTF-16 units of a sub-range of a string. Indexes are
// relative to the start of that range.
type Cursor struct {
	text  str.Text
	rng   str.Range
	units []uint16
	ascii []byte

	window   [WindowSize]uint16
	winStart int
	winEnd   int

	pos int
}

// New returns a cursor over r of t. It panics if r does not lie within t.
func New(t str.Text, r str.Range) *Cursor {
	c := &Cursor{}
	c.Init(t, r)

	return c
}

// Init points c at r of t, discarding any cached window.
func (c *Cursor) Init(t str.Text, r str.Range) {
	if !r.Valid(t.Len()) {
		panic("cursor: range out of bounds")
	}

	c.text, c.rng = t, r
	c.units, c.ascii = nil, nil
	c.winStart, c.winEnd, c.pos = 0, 0, 0

	if u := t.FastUnits(); u != nil {
		c.units = u[r.Location:r.End()]
	} else if a := t.FastASCII(); a != nil {
		c.ascii = a[r.Location:r.End()]
	}
}

// Len returns the length of the range the cursor reads.
func (c *Cursor) Len() int {
	return c.rng.Length
}

// Range returns the range of the underlying string the cursor reads.
func (c *Cursor) Range() str.Range {
	return c.rng
}

// Direct reports whether the cursor reads the string buffer without a
// window.
func (c *Cursor) Direct() bool {
	return c.units != nil || c.ascii != nil
}

// At returns the unit at index i, or 0 when i is outside [0, Len()).
func (c *Cursor) At(i int) uint16 {
	u, _ := c.Lookup(i)

	return u
}

// Lookup returns the unit at index i and whether i was inside [0, Len()).
func (c *Cursor) Lookup(i int) (uint16, bool) {
	if i < 0 || i >= c.rng.Length {
		return 0, false
	}

	switch {
	case c.units != nil:
		return c.units[i], true
	case c.ascii != nil:
		return uint16(c.ascii[i]), true
	}

	if i < c.winStart || i >= c.winEnd {
		c.fill(i)
	}

	return c.window[i-c.winStart], true
}

func (c *Cursor) fill(i int) {
	start := max(i-lookBehind, 0)
	end := min(start+WindowSize, c.rng.Length)
	c.text.Characters(str.Range{Location: c.rng.Location + start, Length: end - start}, c.window[:])
	c.winStart, c.winEnd = start, end
}

// Pos returns the index Next reads from.
func (c *Cursor) Pos() int {
	return c.pos
}

// Seek moves the scan position to i, clamped to [0, Len()].
func (c *Cursor) Seek(i int) {
	c.pos = min(max(i, 0), c.rng.Length)
}

// Next returns the unit at the scan position and advances past it. ok is
// false at the end of the range.
func (c *Cursor) Next() (uint16, bool) {
	u, ok := c.Lookup(c.pos)
	if ok {
		c.pos++
	}

	return u, ok
}

// Prev steps the scan position back and returns the unit there. ok is
// false at the start of the range.
func (c *Cursor) Prev() (uint16, bool) {
	u, ok := c.Lookup(c.pos - 1)
	if ok {
		c.pos--
	}

	return u, ok
}
