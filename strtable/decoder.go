package strtable

import (
	"fmt"

	"github.com/arloliu/ustring/compress"
	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/collision"
	"github.com/arloliu/ustring/internal/hash"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/section"
)

// Decoder reconstructs a Table from encoded bytes.
//
// Note: The Decoder is NOT reusable. After calling Decode, a new decoder
// must be created.
type Decoder struct {
	data   []byte
	engine endian.EndianEngine
	header *section.Header
}

// NewDecoder parses and validates the header of an encoded table. The data
// section is not touched until Decode.
//
// Returns:
//   - *Decoder: Decoder ready for Decode
//   - error: ErrInvalidHeaderSize, ErrInvalidHeaderFlags or
//     ErrInvalidStringCount
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < section.HeaderSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	var header section.Header
	if err := header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	return &Decoder{
		data:   data,
		engine: header.GetEndianEngine(),
		header: &header,
	}, nil
}

// Decode decodes an encoded table.
func Decode(data []byte) (*Table, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}

// Decode parses the index, restores the data section and verifies the
// hash of every string.
//
// An uncompressed table references data directly; callers must not modify
// data while the table or any string obtained from it is in use.
//
// Returns:
//   - *Table: Decoded table
//   - error: ErrInvalidIndexEntry, ErrInvalidDataSection, ErrHashMismatch
//     or a decompression failure
func (d *Decoder) Decode() (*Table, error) {
	dataOffset := int(d.header.DataOffset)
	if len(d.data) < dataOffset {
		return nil, fmt.Errorf("%w: data offset %d exceeds table length %d",
			errs.ErrInvalidDataSection, dataOffset, len(d.data))
	}

	entries, err := d.parseIndexEntries()
	if err != nil {
		return nil, err
	}

	payload, err := d.restoreData(d.data[dataOffset:])
	if err != nil {
		return nil, err
	}

	tbl := &Table{
		header:  *d.header,
		engine:  d.engine,
		entries: entries,
		data:    payload,
		tracker: collision.NewTracker(),
		utf16:   format.EncodingUTF16LE,
	}
	if d.header.Flag.IsBigEndian() {
		tbl.utf16 = format.EncodingUTF16BE
	}

	if err := tbl.verify(); err != nil {
		return nil, err
	}

	return tbl, nil
}

func (d *Decoder) parseIndexEntries() ([]section.IndexEntry, error) {
	count := int(d.header.StringCount)
	start := int(d.header.IndexOffset)
	entries := make([]section.IndexEntry, count)

	for i := range entries {
		pos := start + i*section.IndexEntrySize
		entry, err := section.ParseIndexEntry(d.data[pos:pos+section.IndexEntrySize], d.engine)
		if err != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
		entries[i] = entry
	}

	return entries, nil
}

func (d *Decoder) restoreData(payload []byte) ([]byte, error) {
	size := int(d.header.DataSize)
	compression := d.header.Flag.GetDataCompression()

	if compression == format.CompressionNone || size == 0 {
		if len(payload) != size {
			return nil, fmt.Errorf("%w: %d bytes, header says %d", errs.ErrInvalidDataSection, len(payload), size)
		}

		return payload, nil
	}

	return compress.Decompress(compression, payload, size)
}

// verify checks every entry against the data section and builds the hash
// index used by Lookup.
func (t *Table) verify() error {
	var scratch []uint16
	var release func()
	defer func() {
		if release != nil {
			release()
		}
	}()

	for i, entry := range t.entries {
		end := uint64(entry.Offset) + uint64(entry.Size())
		if end > uint64(len(t.data)) {
			return fmt.Errorf("%w: string %d spans %d-%d of %d bytes",
				errs.ErrInvalidDataSection, i, entry.Offset, end, len(t.data))
		}
		block := t.block(entry)

		var h uint64
		if entry.Representation == section.ReprASCII {
			for _, b := range block {
				if b >= 0x80 {
					return fmt.Errorf("%w: string %d has non-ASCII byte 0x%02x", errs.ErrInvalidDataSection, i, b)
				}
			}
			h = hash.ASCIIAsUnits(block)
		} else {
			if cap(scratch) < int(entry.Length) {
				if release != nil {
					release()
				}
				scratch, release = pool.GetUnitSlice(int(entry.Length))
			}
			units := scratch[:entry.Length]
			for j := range units {
				units[j] = t.engine.Uint16(block[j*2:])
			}
			h = hash.Units(units)
		}
		if h != entry.Hash {
			return fmt.Errorf("%w: string %d", errs.ErrHashMismatch, i)
		}

		t.tracker.Track(entry.Hash, i, func(j int) bool {
			prev := t.entries[j]

			return prev.Length == entry.Length &&
				prev.Representation == entry.Representation &&
				string(t.block(prev)) == string(block)
		})
	}

	return nil
}
