package strtable

import (
	"iter"

	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/collision"
	"github.com/arloliu/ustring/internal/hash"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/section"
	"github.com/arloliu/ustring/str"
)

// Table is a decoded string table. It is read-only and safe for
// concurrent use.
type Table struct {
	header  section.Header
	engine  endian.EndianEngine
	entries []section.IndexEntry
	data    []byte
	tracker *collision.Tracker
	utf16   format.Encoding
}

// Len returns the number of strings in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Unique returns the number of distinct strings in the table.
func (t *Table) Unique() int {
	return t.tracker.Count()
}

// Compression returns the compression the data section was stored with.
func (t *Table) Compression() format.CompressionType {
	return t.header.Flag.GetDataCompression()
}

// IsBigEndian reports whether the table was encoded big-endian.
func (t *Table) IsBigEndian() bool {
	return t.header.Flag.IsBigEndian()
}

// Hash returns the content hash of string i. It panics when i is out of
// range.
func (t *Table) Hash(i int) uint64 {
	return t.entries[i].Hash
}

func (t *Table) block(e section.IndexEntry) []byte {
	return t.data[e.Offset : int(e.Offset)+e.Size()]
}

// At returns string i. It panics when i is out of range.
//
// ASCII strings and UTF-16 strings in host byte order reference the table
// data without copying; other UTF-16 strings are converted.
func (t *Table) At(i int) *str.String {
	e := t.entries[i]
	block := t.block(e)

	enc := t.utf16
	if e.Representation == section.ReprASCII {
		enc = format.EncodingASCII
	}

	s, err := str.CreateNoCopy(block, enc, false, nil)
	if err != nil {
		// Blocks were verified by Decode.
		logging.L("strtable").Debug("verified block rejected", "index", i, "error", err)
		return str.FromGoString("")
	}

	return s
}

// Lookup returns the index of the first string equal to s.
func (t *Table) Lookup(s str.Text) (int, bool) {
	ascii, units := narrow(s)

	var h uint64
	repr := section.ReprASCII
	if ascii != nil || s.Len() == 0 {
		h = hash.ASCIIAsUnits(ascii)
	} else {
		repr = section.ReprUTF16
		h = hash.Units(units)
	}

	return t.tracker.Find(h, func(i int) bool {
		e := t.entries[i]
		if e.Representation != repr || int(e.Length) != s.Len() {
			return false
		}

		return blockEqual(t.block(e), repr, t.engine, ascii, units)
	})
}

// LookupGoString returns the index of the first string equal to s.
func (t *Table) LookupGoString(s string) (int, bool) {
	return t.Lookup(str.FromGoString(s))
}

// All iterates over the strings in index order.
func (t *Table) All() iter.Seq2[int, *str.String] {
	return func(yield func(int, *str.String) bool) {
		for i := range t.entries {
			if !yield(i, t.At(i)) {
				return
			}
		}
	}
}
