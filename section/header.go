package section

import (
	"fmt"

	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
)

// Header is the fixed 32-byte header of a string table.
type Header struct {
	// Flag holds the magic number, byte order and compression.
	Flag Flag // 4 bytes, offset 0-3
	// StringCount is the number of index entries.
	StringCount uint32 // 4 bytes, offset 4-7
	// UniqueCount is the number of distinct data blocks.
	UniqueCount uint32 // 4 bytes, offset 8-11
	// IndexOffset is the byte offset of the index section.
	IndexOffset uint32 // 4 bytes, offset 12-15
	// DataOffset is the byte offset of the data section.
	DataOffset uint32 // 4 bytes, offset 16-19
	// DataSize is the uncompressed size of the data section in bytes.
	DataSize uint32 // 4 bytes, offset 20-23
	// Reserved must be zero.
	Reserved [8]byte // 8 bytes, offset 24-31
}

// NewHeader creates a header for count strings with the index directly
// after the header.
func NewHeader(count int) (*Header, error) {
	if count < 0 || count > MaxStringCount {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidStringCount, count)
	}

	return &Header{
		Flag:        NewFlag(),
		StringCount: uint32(count),                                    //nolint:gosec
		IndexOffset: IndexOffsetOffset,                                //nolint:gosec
		DataOffset:  uint32(IndexOffsetOffset + count*IndexEntrySize), //nolint:gosec
	}, nil
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the byte order can be read first.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Reserved = data[2]
	h.Flag.DataCompression = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.StringCount = engine.Uint32(data[4:8])
	h.UniqueCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.DataOffset = engine.Uint32(data[16:20])
	h.DataSize = engine.Uint32(data[20:24])
	copy(h.Reserved[:], data[24:32])

	if h.StringCount > MaxStringCount || h.UniqueCount > h.StringCount {
		return fmt.Errorf("%w: %d strings, %d unique", errs.ErrInvalidStringCount, h.StringCount, h.UniqueCount)
	}
	if h.IndexOffset < HeaderSize ||
		uint64(h.DataOffset) != uint64(h.IndexOffset)+uint64(h.StringCount)*IndexEntrySize {
		return fmt.Errorf("%w: index at %d, data at %d", errs.ErrInvalidHeaderSize, h.IndexOffset, h.DataOffset)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Reserved
	b[3] = h.Flag.DataCompression
	engine.PutUint32(b[4:8], h.StringCount)
	engine.PutUint32(b[8:12], h.UniqueCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.DataOffset)
	engine.PutUint32(b[20:24], h.DataSize)
	copy(b[24:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the byte order the flag names.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	if h.Flag.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}
