package section

import (
	"fmt"

	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
)

// IndexEntry describes one string of the table. It is 16 bytes on the wire.
//
// Offsets are absolute within the uncompressed data section, so any entry
// can be read without walking the others. Entries of identical strings may
// point at the same block.
type IndexEntry struct {
	// Hash is the xxHash64 of the string's UTF-16 units in little-endian
	// byte order, independent of Representation.
	Hash uint64 // 8 bytes, offset 0-7
	// Offset is the byte offset of the string in the data section.
	Offset uint32 // 4 bytes, offset 8-11
	// Length is the string length in UTF-16 units.
	Length uint32 // 3 bytes, offset 12-14
	// Representation is ReprASCII or ReprUTF16.
	Representation uint8 // 1 byte, offset 15
}

// Size returns the number of data bytes the entry covers.
func (e IndexEntry) Size() int {
	if e.Representation == ReprASCII {
		return int(e.Length)
	}

	return int(e.Length) * 2
}

// WriteToSlice writes the entry into b, which must hold IndexEntrySize
// bytes.
func (e *IndexEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < IndexEntrySize {
		return errs.ErrInvalidIndexEntry
	}
	if e.Length > MaxStringLength {
		return fmt.Errorf("%w: length %d", errs.ErrStringTooLong, e.Length)
	}

	engine.PutUint64(b[0:8], e.Hash)
	engine.PutUint32(b[8:12], e.Offset)
	engine.PutUint32(b[12:16], e.Length|uint32(e.Representation)<<24)

	return nil
}

// ParseIndexEntry parses an entry from IndexEntrySize bytes.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntry
	}

	packed := engine.Uint32(data[12:16])
	e := IndexEntry{
		Hash:           engine.Uint64(data[0:8]),
		Offset:         engine.Uint32(data[8:12]),
		Length:         packed & MaxStringLength,
		Representation: uint8(packed >> 24),
	}
	if e.Representation != ReprASCII && e.Representation != ReprUTF16 {
		return IndexEntry{}, fmt.Errorf("%w: representation %d", errs.ErrInvalidIndexEntry, e.Representation)
	}

	return e, nil
}
