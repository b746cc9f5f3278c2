package str

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/arloliu/ustring/internal/options"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/transcode"
)

// MinMutableCapacity is the smallest capacity a MutableString starts with.
const MinMutableCapacity = 16

// GrowthPolicy selects how a MutableString buffer grows on overflow.
type GrowthPolicy uint8

const (
	// GrowExact reallocates to exactly the required size.
	GrowExact GrowthPolicy = iota
	// GrowAmortized reallocates with headroom so repeated appends copy less.
	GrowAmortized
)

// stringBase lets MutableString embed String without the field name
// shadowing the String method.
type stringBase = String

// MutableString is a growable UTF-16 string with a single writer.
//
// It embeds String, so every read operation is available on it. Every
// mutation invalidates the cached hash.
type MutableString struct {
	stringBase

	alloc  Allocator
	free   func()
	policy GrowthPolicy
}

// MutableOption configures a MutableString.
type MutableOption = options.Option[*MutableString]

// WithAllocator sets the allocator used for the buffer. The default is
// HeapAllocator.
func WithAllocator(alloc Allocator) MutableOption {
	return options.NoError(func(m *MutableString) {
		m.alloc = alloc
	})
}

// WithGrowthPolicy sets the growth policy. The default is GrowExact.
func WithGrowthPolicy(policy GrowthPolicy) MutableOption {
	return options.NoError(func(m *MutableString) {
		m.policy = policy
	})
}

// CreateMutable returns an empty MutableString whose buffer holds at least
// max(capacity, MinMutableCapacity) units. It panics on a negative
// capacity.
func CreateMutable(capacity int, opts ...MutableOption) *MutableString {
	if capacity < 0 {
		panic(fmt.Sprintf("str: negative capacity %d", capacity))
	}

	m := &MutableString{alloc: HeapAllocator{}}
	m.flags = flagUnicode | flagMutable | flagInline
	m.refs.Store(1)
	options.MustApply(m, opts...)

	m.units, m.free = m.alloc.Allocate(max(capacity, MinMutableCapacity))
	m.release = func() {
		if m.free != nil {
			m.free()
			m.free = nil
		}
	}

	return m
}

// CreateMutableCopy returns a MutableString holding a copy of t.
func CreateMutableCopy(t Text, opts ...MutableOption) *MutableString {
	m := CreateMutable(t.Len(), opts...)
	m.Append(t)

	return m
}

// Capacity returns the number of units the buffer holds before it grows.
func (m *MutableString) Capacity() int {
	return cap(m.units)
}

// EnsureCapacity grows the buffer so it holds at least n units. Content is
// copied forward; the buffer never shrinks.
func (m *MutableString) EnsureCapacity(n int) {
	if n <= cap(m.units) {
		return
	}

	size := n
	if m.policy == GrowAmortized {
		size = len(m.units) + pool.AmortizedUnitGrowth(cap(m.units), n-len(m.units))
	}

	buf, free := m.alloc.Allocate(size)
	buf = append(buf, m.units...)
	if m.free != nil {
		m.free()
	}
	m.units, m.free = buf, free
}

func (m *MutableString) touch() {
	m.hash.Store(0)
}

// splice replaces r with n units supplied by fill, moving the tail when the
// lengths differ.
func (m *MutableString) splice(r Range, n int, fill func(dst []uint16)) {
	checkRange(r, len(m.units))
	oldLen := len(m.units)
	newLen := oldLen - r.Length + n
	m.EnsureCapacity(newLen)

	units := m.units[:newLen]
	if n != r.Length {
		copy(units[r.Location+n:], m.units[r.End():oldLen])
	}
	fill(units[r.Location : r.Location+n])
	m.units = units
	m.touch()
}

// Replace replaces the units in r with the content of t.
func (m *MutableString) Replace(r Range, t Text) {
	if t == Text(m) || t == Text(&m.stringBase) {
		// copy first, the splice below overwrites the source
		t = CreateWithCharacters(m.units)
	}
	m.splice(r, t.Len(), func(dst []uint16) {
		t.Characters(Whole(t.Len()), dst)
	})
}

// ReplaceCharacters replaces the units in r with units.
func (m *MutableString) ReplaceCharacters(r Range, units []uint16) {
	m.splice(r, len(units), func(dst []uint16) {
		copy(dst, units)
	})
}

// Append adds the content of t at the end.
func (m *MutableString) Append(t Text) {
	m.Replace(Range{Location: len(m.units)}, t)
}

// AppendCharacters adds units at the end.
func (m *MutableString) AppendCharacters(units ...uint16) {
	m.ReplaceCharacters(Range{Location: len(m.units)}, units)
}

// AppendASCII adds 7-bit ASCII bytes at the end. Bytes >= 0x80 are widened
// as ISO Latin-1.
func (m *MutableString) AppendASCII(data []byte) {
	m.splice(Range{Location: len(m.units)}, len(data), func(dst []uint16) {
		transcode.Latin1ToUTF16(data, dst)
	})
}

// AppendGoString adds a Go (UTF-8) string at the end. Invalid UTF-8 is
// replaced with U+FFFD.
func (m *MutableString) AppendGoString(s string) {
	m.AppendUTF8([]byte(s))
}

// AppendUTF8 adds UTF-8 bytes at the end. Invalid UTF-8, including a
// truncated trailing sequence, is replaced with U+FFFD.
func (m *MutableString) AppendUTF8(src []byte) {
	consumed, n := transcode.UTF8ToUTF16(src, 0xFFFD, nil)
	m.splice(Range{Location: len(m.units)}, n+len(src)-consumed, func(dst []uint16) {
		decodeUTF8Lossy(src, dst)
	})
}

// Insert inserts the content of t before index idx.
func (m *MutableString) Insert(idx int, t Text) {
	m.Replace(Range{Location: idx}, t)
}

// Delete removes the units in r.
func (m *MutableString) Delete(r Range) {
	m.ReplaceCharacters(r, nil)
}

// SetString replaces the whole content with t.
func (m *MutableString) SetString(t Text) {
	m.Replace(Whole(len(m.units)), t)
}

// SetGoString replaces the whole content with a Go string.
func (m *MutableString) SetGoString(s string) {
	m.ReplaceCharacters(Whole(len(m.units)), nil)
	m.AppendGoString(s)
}

// Truncate shortens the content to n units.
func (m *MutableString) Truncate(n int) {
	m.Delete(Range{Location: n, Length: len(m.units) - n})
}

// Pad adjusts the length to n. A longer string is truncated; a shorter one
// is extended with units of pad, starting at pad index padIndex and
// wrapping around. Nothing is added when pad is empty.
func (m *MutableString) Pad(pad Text, n, padIndex int) {
	cur := len(m.units)
	if n <= cur {
		m.Truncate(n)
		return
	}

	padLen := pad.Len()
	if padLen == 0 {
		return
	}
	checkIndex(padIndex, padLen)

	padUnits := Units(pad, Whole(padLen))
	m.splice(Range{Location: cur}, n-cur, func(dst []uint16) {
		j := padIndex
		for i := range dst {
			dst[i] = padUnits[j]
			if j++; j == padLen {
				j = 0
			}
		}
	})
}

// Trim removes every leading and trailing occurrence of trim.
func (m *MutableString) Trim(trim Text) {
	tn := trim.Len()
	if tn == 0 {
		return
	}
	tu := Units(trim, Whole(tn))

	start, end := 0, len(m.units)
	for end-start >= tn && slices.Equal(m.units[start:start+tn], tu) {
		start += tn
	}
	for end-start >= tn && slices.Equal(m.units[end-tn:end], tu) {
		end -= tn
	}
	m.keep(start, end)
}

// TrimWhitespace removes leading and trailing white space and line breaks.
func (m *MutableString) TrimWhitespace() {
	start, end := 0, len(m.units)
	for start < end && unicode.IsSpace(rune(m.units[start])) {
		start++
	}
	for end > start && unicode.IsSpace(rune(m.units[end-1])) {
		end--
	}
	m.keep(start, end)
}

func (m *MutableString) keep(start, end int) {
	if start == 0 && end == len(m.units) {
		return
	}
	n := copy(m.units, m.units[start:end])
	m.units = m.units[:n]
	m.touch()
}

// Copy returns an immutable snapshot of the current content.
func (m *MutableString) Copy() *String {
	return CreateWithCharacters(m.units)
}
