package str

// ForeignAdapter exposes a string owned by another runtime. A String built
// with NewForeign forwards every read to its adapter.
type ForeignAdapter interface {
	Len() int
	CharacterAt(i int) uint16
}

// ForeignRangeReader is an optional ForeignAdapter capability for copying a
// range in one call.
type ForeignRangeReader interface {
	Characters(r Range, dst []uint16) int
}

// NewForeign wraps a foreign string. The result is immutable from this
// package's side; its content is whatever the adapter reports.
func NewForeign(adapter ForeignAdapter) *String {
	s := newString(flagForeign)
	s.foreign = adapter

	return s
}

func foreignCharacters(a ForeignAdapter, r Range, dst []uint16) int {
	if rr, ok := a.(ForeignRangeReader); ok {
		return rr.Characters(r, dst)
	}
	for i := range r.Length {
		dst[i] = a.CharacterAt(r.Location + i)
	}

	return r.Length
}
