package str

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/transcode"
)

type flags uint8

const (
	flagUnicode  flags = 1 << iota // content is UTF-16 units, otherwise ASCII bytes
	flagMutable                    // owned by a MutableString
	flagInline                     // buffer allocated by this package
	flagConstant                   // interned, retain/release are no-ops
	flagForeign                    // reads forward to a ForeignAdapter
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// String is an immutable, reference-counted Unicode string.
//
// The zero value is not usable; construct Strings with Create and the
// other constructors in this package.
type String struct {
	ascii   []byte
	units   []uint16
	foreign ForeignAdapter
	flags   flags

	hash atomic.Uint32 // 0 until computed
	refs atomic.Int32

	release     func()
	releaseOnce sync.Once
}

func newString(f flags) *String {
	s := &String{flags: f}
	s.refs.Store(1)

	return s
}

// isASCII reports whether every byte is below 0x80.
func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}

	return true
}

func unitsAreASCII(units []uint16) bool {
	for _, u := range units {
		if u >= 0x80 {
			return false
		}
	}

	return true
}

// fromASCII adopts data as the 8-bit representation.
func fromASCII(data []byte) *String {
	s := newString(flagInline)
	s.ascii = data

	return s
}

// fromUnits picks the representation for decoded units. Units that are all
// ASCII are narrowed to bytes; otherwise a copy of units is kept when copy
// is true, or units itself is adopted.
func fromUnits(units []uint16, copyUnits bool) *String {
	if unitsAreASCII(units) {
		ascii := make([]byte, len(units))
		for i, u := range units {
			ascii[i] = byte(u)
		}

		return fromASCII(ascii)
	}

	s := newString(flagInline | flagUnicode)
	if copyUnits {
		s.units = slices.Clone(units)
	} else {
		s.units = units
	}

	return s
}

// Create builds a String from data encoded as enc.
//
// Content that is entirely ASCII is stored as bytes, regardless of enc,
// whenever enc maps bytes below 0x80 to ASCII. Any other content is
// transcoded to UTF-16; if it then turns out to be ASCII it is narrowed.
// With isExternalRepresentation a leading UTF-8 byte order mark is
// skipped. The BOM-aware UTF-16 and UTF-32 variants always honour a
// leading mark.
//
// Parameters:
//   - data: Encoded bytes
//   - enc: Encoding of data
//   - isExternalRepresentation: Whether data may carry a byte order mark
//
// Returns:
//   - *String: The new string, or nil on failure
//   - error: errs.ErrUnsupportedEncoding or errs.ErrInvalidSequence
func Create(data []byte, enc format.Encoding, isExternalRepresentation bool) (*String, error) {
	if isExternalRepresentation && enc == format.EncodingUTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
	}

	if enc.IsASCIICompatible() && isASCII(data) {
		return fromASCII(slices.Clone(data)), nil
	}

	_, n, err := transcode.Decode(enc, data, 0, nil)
	if err != nil {
		return nil, err
	}

	tmp, cleanup := pool.GetUnitSlice(n)
	defer cleanup()

	consumed, written, _ := transcode.Decode(enc, data, 0, tmp)
	if consumed != len(data) {
		return nil, fmt.Errorf("%w: %s input stops at byte %d of %d", errs.ErrInvalidSequence, enc, consumed, len(data))
	}

	return fromUnits(tmp[:written], true), nil
}

// CreateWithCString builds a String from a NUL-terminated byte string. Bytes
// after the first NUL are ignored.
func CreateWithCString(cstr []byte, enc format.Encoding) (*String, error) {
	if i := bytes.IndexByte(cstr, 0); i >= 0 {
		cstr = cstr[:i]
	}

	return Create(cstr, enc, false)
}

// CreateWithCharacters builds a String from a copy of UTF-16 units.
func CreateWithCharacters(units []uint16) *String {
	return fromUnits(units, true)
}

// FromGoString builds a String from a Go (UTF-8) string. Invalid UTF-8 is
// replaced with U+FFFD.
func FromGoString(s string) *String {
	if isASCII(unsafe.Slice(unsafe.StringData(s), len(s))) {
		return fromASCII([]byte(s))
	}

	return fromUnits(decodeUTF8Lossy([]byte(s), nil), false)
}

// decodeUTF8Lossy decodes UTF-8 into dst, which must be nil or large
// enough. Malformed input and a truncated trailing sequence become U+FFFD.
func decodeUTF8Lossy(src []byte, dst []uint16) []uint16 {
	consumed, n := transcode.UTF8ToUTF16(src, 0xFFFD, nil)
	total := n + len(src) - consumed
	if dst == nil {
		dst = make([]uint16, total)
	}
	transcode.UTF8ToUTF16(src, 0xFFFD, dst)
	for i := n; i < total; i++ {
		dst[i] = 0xFFFD
	}

	return dst[:total]
}

// CreateNoCopy builds a String that adopts data as its buffer.
//
// Adoption only happens when data is ASCII (enc is ASCII and every byte is
// below 0x80) or UTF-16 in host byte order with suitable alignment. Any
// other input is transcoded into a private copy and release, if non-nil,
// runs before CreateNoCopy returns. An adopted buffer is released exactly
// once, when the last reference is dropped.
//
// Parameters:
//   - data: Buffer to adopt
//   - enc: Encoding of data
//   - isExternalRepresentation: Whether data may carry a byte order mark
//   - release: Called once when data is no longer referenced; may be nil
func CreateNoCopy(data []byte, enc format.Encoding, isExternalRepresentation bool, release func()) (*String, error) {
	if s := adopt(data, enc); s != nil {
		s.release = release
		return s, nil
	}

	logging.L("str").Debug("no-copy buffer copied", "encoding", enc.String(), "bytes", len(data))
	s, err := Create(data, enc, isExternalRepresentation)
	if release != nil {
		release()
	}

	return s, err
}

func adopt(data []byte, enc format.Encoding) *String {
	if enc == format.EncodingASCII {
		if !isASCII(data) {
			return nil
		}
		s := newString(0)
		s.ascii = data

		return s
	}

	switch {
	case enc == format.EncodingUTF16:
		if order, n := endian.FromBOM16(data); order != nil {
			if !endian.CompareNativeEndian(order) {
				return nil
			}
			data = data[n:]
		}
	case enc == format.EncodingUTF16LE && endian.IsNativeLittleEndian():
	case enc == format.EncodingUTF16BE && endian.IsNativeBigEndian():
	default:
		return nil
	}

	if len(data)%2 != 0 {
		return nil
	}
	s := newString(flagUnicode)
	if len(data) == 0 {
		return s
	}
	if uintptr(unsafe.Pointer(&data[0]))%unsafe.Alignof(uint16(0)) != 0 {
		return nil
	}
	s.units = unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)/2)

	return s
}

// Len returns the length in UTF-16 code units.
func (s *String) Len() int {
	switch {
	case s.flags&flagForeign != 0:
		return s.foreign.Len()
	case s.flags&flagUnicode != 0:
		return len(s.units)
	default:
		return len(s.ascii)
	}
}

// IsASCII reports whether the content is stored as 8-bit ASCII.
func (s *String) IsASCII() bool {
	return s.flags&(flagUnicode|flagForeign) == 0
}

// IsMutable reports whether the string belongs to a MutableString.
func (s *String) IsMutable() bool {
	return s.flags&flagMutable != 0
}

// IsInline reports whether the buffer was allocated by this package rather
// than adopted from the caller.
func (s *String) IsInline() bool {
	return s.flags&flagInline != 0
}

// IsConstant reports whether the string is an interned constant.
func (s *String) IsConstant() bool {
	return s.flags&flagConstant != 0
}

// CharacterAt returns the UTF-16 unit at index i. It panics if i is outside
// [0, Len()).
func (s *String) CharacterAt(i int) uint16 {
	switch {
	case s.flags&flagForeign != 0:
		checkIndex(i, s.foreign.Len())
		return s.foreign.CharacterAt(i)
	case s.flags&flagUnicode != 0:
		checkIndex(i, len(s.units))
		return s.units[i]
	default:
		checkIndex(i, len(s.ascii))
		return uint16(s.ascii[i])
	}
}

// Characters copies the units in r into dst and returns the number copied.
// It panics if r does not lie within the string.
func (s *String) Characters(r Range, dst []uint16) int {
	checkRange(r, s.Len())
	n := min(r.Length, len(dst))

	switch {
	case s.flags&flagForeign != 0:
		return foreignCharacters(s.foreign, Range{Location: r.Location, Length: n}, dst)
	case s.flags&flagUnicode != 0:
		return copy(dst[:n], s.units[r.Location:])
	default:
		for i, b := range s.ascii[r.Location : r.Location+n] {
			dst[i] = uint16(b)
		}

		return n
	}
}

// FastUnits returns the UTF-16 buffer, or nil when the content is not
// stored as UTF-16. Callers must not modify the result.
func (s *String) FastUnits() []uint16 {
	if s.flags&(flagUnicode|flagForeign) != flagUnicode {
		return nil
	}

	return s.units
}

// FastASCII returns the ASCII buffer, or nil when the content is not stored
// as bytes. Callers must not modify the result.
func (s *String) FastASCII() []byte {
	if !s.IsASCII() {
		return nil
	}

	return s.ascii
}

// String returns the content as a Go string. Lone surrogates become U+FFFD.
func (s *String) String() string {
	if s.IsASCII() {
		return string(s.ascii)
	}

	units := Units(s, Whole(s.Len()))
	_, n := transcode.UTF16ToUTF8(units, 0xFFFD, nil)
	out := make([]byte, n)
	transcode.UTF16ToUTF8(units, 0xFFFD, out)

	return unsafe.String(unsafe.SliceData(out), len(out))
}

// Substring returns a new String holding a copy of the units in r.
func (s *String) Substring(r Range) *String {
	checkRange(r, s.Len())
	if s.IsASCII() {
		return fromASCII(slices.Clone(s.ascii[r.Location:r.End()]))
	}

	return fromUnits(Units(s, r), true)
}

// Hash returns the content hash, computing and caching it on first use.
func (s *String) Hash() uint32 {
	if h := s.hash.Load(); h != 0 {
		return h
	}
	h := hashText(s)
	s.hash.Store(h)

	return h
}

// Equal reports whether s and t hold the same UTF-16 units.
func (s *String) Equal(t Text) bool {
	return Equal(s, t)
}

// Compare orders s and t by UTF-16 code unit value.
func (s *String) Compare(t Text) int {
	return Compare(s, t)
}

// Retain adds a reference and returns s. It is a no-op on constants.
func (s *String) Retain() *String {
	if s.flags&flagConstant == 0 {
		s.refs.Add(1)
	}

	return s
}

// Release drops a reference. Dropping the last one runs the release
// function exactly once. It is a no-op on constants and panics when the
// string is released more often than retained.
func (s *String) Release() {
	if s.flags&flagConstant != 0 {
		return
	}

	n := s.refs.Add(-1)
	switch {
	case n == 0:
		s.releaseOnce.Do(func() {
			if s.release != nil {
				s.release()
			}
		})
	case n < 0:
		panic("str: release of a string with no references")
	}
}

// RetainCount returns the current number of references.
func (s *String) RetainCount() int {
	return int(s.refs.Load())
}
