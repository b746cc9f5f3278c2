package str

import "fmt"

// Range is a span of UTF-16 code units.
type Range struct {
	Location int
	Length   int
}

// Whole returns the range covering the first n units.
func Whole(n int) Range {
	return Range{Location: 0, Length: n}
}

// End returns the index just past the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// Valid reports whether r lies within [0, n).
func (r Range) Valid(n int) bool {
	return r.Location >= 0 && r.Length >= 0 && r.Location <= n-r.Length
}

func checkRange(r Range, n int) {
	if !r.Valid(n) {
		panic(fmt.Sprintf("str: range {%d, %d} out of bounds for length %d", r.Location, r.Length, n))
	}
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("str: index %d out of range [0, %d)", i, n))
	}
}

// Text is read access to UTF-16 content. String and MutableString
// implement it; foreign strings implement it through their adapter.
type Text interface {
	// Len returns the length in UTF-16 code units.
	Len() int
	// CharacterAt returns the unit at index i. It panics when i is out of range.
	CharacterAt(i int) uint16
	// Characters copies the units in r into dst and returns the number
	// copied, which is min(r.Length, len(dst)).
	Characters(r Range, dst []uint16) int
	// FastUnits returns the backing UTF-16 buffer, or nil when the content
	// is not stored as UTF-16.
	FastUnits() []uint16
	// FastASCII returns the backing ASCII buffer, or nil when the content
	// is not stored as ASCII bytes.
	FastASCII() []byte
}

// Units returns the content of t in r as UTF-16 units. The backing buffer
// is returned without copying when t stores UTF-16; callers must not
// modify the result.
func Units(t Text, r Range) []uint16 {
	checkRange(r, t.Len())
	if u := t.FastUnits(); u != nil {
		return u[r.Location:r.End():r.End()]
	}
	out := make([]uint16, r.Length)
	t.Characters(r, out)

	return out
}
