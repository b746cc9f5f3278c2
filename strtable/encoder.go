package strtable

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/ustring/compress"
	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/collision"
	"github.com/arloliu/ustring/internal/hash"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/internal/options"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/section"
	"github.com/arloliu/ustring/str"
)

const initialIndexCapacity = 16

// Stats summarizes a finished table.
type Stats struct {
	// Strings is the number of strings added.
	Strings int
	// Unique is the number of distinct data blocks.
	Unique int
	// ASCII is the number of blocks stored one byte per unit.
	ASCII int
	// Collisions reports whether distinct strings shared a hash.
	Collisions bool
	// Compression describes the data section compression.
	Compression compress.CompressionStats
	// TotalSize is the encoded table size in bytes.
	TotalSize int
}

// Encoder builds a string table.
//
// Note: The Encoder is NOT thread-safe and NOT reusable. After Finish, a
// new encoder must be created.
type Encoder struct {
	header  *section.Header
	engine  endian.EndianEngine
	entries []section.IndexEntry
	data    *pool.ByteBuffer
	tracker *collision.Tracker

	asciiBlocks int
	finished    bool
	stats       Stats
}

// NewEncoder creates an encoder. Deduplication is enabled, the table is
// little-endian and the data section is not compressed unless options say
// otherwise.
//
// Returns:
//   - *Encoder: Encoder ready for Add calls
//   - error: Invalid option values
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	header, _ := section.NewHeader(0)
	header.Flag.SetDeduplicated(true)

	e := &Encoder{
		header:  header,
		engine:  header.GetEndianEngine(),
		entries: make([]section.IndexEntry, 0, initialIndexCapacity),
		data:    pool.GetTableBuffer(),
		tracker: collision.NewTracker(),
	}

	if err := options.Apply(e, opts...); err != nil {
		pool.PutTableBuffer(e.data)
		return nil, err
	}

	return e, nil
}

// Len returns the number of strings added so far.
func (e *Encoder) Len() int {
	return len(e.entries)
}

// AddGoString adds a Go string, decoding it as UTF-8.
func (e *Encoder) AddGoString(s string) (int, error) {
	return e.Add(str.FromGoString(s))
}

// Add appends t to the table and returns its index.
//
// Returns:
//   - int: Index of the string in the table
//   - error: ErrEncoderFinished, ErrStringCountExceeded or ErrStringTooLong
func (e *Encoder) Add(t str.Text) (int, error) {
	if e.finished {
		return -1, errs.ErrEncoderFinished
	}
	if len(e.entries) >= section.MaxStringCount {
		return -1, fmt.Errorf("%w: max %d", errs.ErrStringCountExceeded, section.MaxStringCount)
	}

	n := t.Len()
	if n > section.MaxStringLength {
		return -1, fmt.Errorf("%w: %d units, max %d", errs.ErrStringTooLong, n, section.MaxStringLength)
	}

	ascii, units := narrow(t)
	entry := section.IndexEntry{Length: uint32(n)} //nolint:gosec
	if ascii != nil || n == 0 {
		entry.Representation = section.ReprASCII
		entry.Hash = hash.ASCIIAsUnits(ascii)
	} else {
		entry.Representation = section.ReprUTF16
		entry.Hash = hash.Units(units)
	}

	index := len(e.entries)
	if e.header.Flag.IsDeduplicated() {
		same := func(i int) bool {
			return e.sameContent(e.entries[i], entry, ascii, units)
		}
		if existing, dup := e.tracker.Track(entry.Hash, index, same); dup {
			entry.Offset = e.entries[existing].Offset
			e.entries = append(e.entries, entry)

			return index, nil
		}
	}

	if err := e.appendBlock(&entry, ascii, units); err != nil {
		return -1, err
	}
	e.entries = append(e.entries, entry)

	return index, nil
}

// narrow returns the content as ASCII bytes when every unit is ASCII,
// otherwise as UTF-16 units.
func narrow(t str.Text) ([]byte, []uint16) {
	if a := t.FastASCII(); a != nil {
		return a, nil
	}

	units := str.Units(t, str.Whole(t.Len()))
	for _, u := range units {
		if u >= 0x80 {
			return nil, units
		}
	}
	ascii := make([]byte, len(units))
	for i, u := range units {
		ascii[i] = byte(u)
	}

	return ascii, nil
}

func (e *Encoder) appendBlock(entry *section.IndexEntry, ascii []byte, units []uint16) error {
	if entry.Representation == section.ReprUTF16 && e.data.Len()%2 != 0 {
		_ = e.data.WriteByte(0)
	}

	offset := e.data.Len()
	if uint64(offset)+uint64(entry.Size()) > section.MaxDataSize {
		return fmt.Errorf("%w: data section exceeds %d bytes", errs.ErrInvalidDataSection, uint64(section.MaxDataSize))
	}
	entry.Offset = uint32(offset) //nolint:gosec

	if entry.Representation == section.ReprASCII {
		e.data.MustWrite(ascii)
		e.asciiBlocks++

		return nil
	}

	dst := e.data.ExtendOrGrow(len(units) * 2)
	for i, u := range units {
		e.engine.PutUint16(dst[i*2:], u)
	}

	return nil
}

func (e *Encoder) sameContent(prev, cur section.IndexEntry, ascii []byte, units []uint16) bool {
	if prev.Length != cur.Length || prev.Representation != cur.Representation {
		return false
	}

	return blockEqual(e.data.Bytes()[prev.Offset:int(prev.Offset)+prev.Size()], prev.Representation, e.engine, ascii, units)
}

// blockEqual reports whether a data block holds the given content. ascii
// is compared for ReprASCII blocks, units for ReprUTF16 blocks.
func blockEqual(block []byte, repr uint8, engine endian.EndianEngine, ascii []byte, units []uint16) bool {
	if repr == section.ReprASCII {
		return bytes.Equal(block, ascii)
	}
	if len(block) != len(units)*2 {
		return false
	}
	for i, u := range units {
		if engine.Uint16(block[i*2:]) != u {
			return false
		}
	}

	return true
}

// Finish serializes the table. The encoder cannot be used afterwards.
//
// When the selected compression does not shrink the data section, the
// section is stored uncompressed and the header records
// format.CompressionNone.
//
// Returns:
//   - []byte: Encoded table
//   - error: ErrEncoderFinished, or a compression failure
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer func() {
		pool.PutTableBuffer(e.data)
		e.data = nil
	}()

	header, err := section.NewHeader(len(e.entries))
	if err != nil {
		return nil, err
	}
	header.Flag = e.header.Flag
	header.UniqueCount = uint32(e.tracker.Count()) //nolint:gosec
	if !header.Flag.IsDeduplicated() {
		header.UniqueCount = uint32(len(e.entries)) //nolint:gosec
	}
	header.DataSize = uint32(e.data.Len()) //nolint:gosec

	payload, compression, err := e.compressData(header.Flag.GetDataCompression())
	if err != nil {
		return nil, err
	}
	header.Flag.SetDataCompression(compression)

	total := int(header.DataOffset) + len(payload)
	out := make([]byte, total)
	copy(out, header.Bytes())
	for i := range e.entries {
		pos := int(header.IndexOffset) + i*section.IndexEntrySize
		if err := e.entries[i].WriteToSlice(out[pos:pos+section.IndexEntrySize], e.engine); err != nil {
			return nil, err
		}
	}
	copy(out[header.DataOffset:], payload)

	e.stats = Stats{
		Strings:    len(e.entries),
		Unique:     int(header.UniqueCount),
		ASCII:      e.asciiBlocks,
		Collisions: e.tracker.HasCollision(),
		Compression: compress.CompressionStats{
			Algorithm:      compression,
			OriginalSize:   int64(header.DataSize),
			CompressedSize: int64(len(payload)),
		},
		TotalSize: total,
	}

	logging.L("strtable").Debug("table encoded",
		"strings", e.stats.Strings,
		"unique", e.stats.Unique,
		"compression", compression.String(),
		"bytes", total,
	)

	return out, nil
}

func (e *Encoder) compressData(compression format.CompressionType) ([]byte, format.CompressionType, error) {
	raw := e.data.Bytes()
	if compression == format.CompressionNone || len(raw) == 0 {
		return slices.Clone(raw), format.CompressionNone, nil
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, 0, err
	}

	packed, err := codec.Compress(raw)
	if errors.Is(err, errs.ErrIncompressible) || (err == nil && len(packed) >= len(raw)) {
		logging.L("strtable").Debug("data section stored uncompressed", "compression", compression.String(), "bytes", len(raw))
		return slices.Clone(raw), format.CompressionNone, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%s compression failed: %w", compression, err)
	}

	return packed, compression, nil
}

// Stats returns the statistics of the finished table. It is the zero
// value before Finish.
func (e *Encoder) Stats() Stats {
	return e.stats
}
