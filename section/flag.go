package section

import (
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
)

// Flag is the packed flag field at the start of the header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is set when identical strings share a data block.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved and must be 0.
	// Bits 4-15 are the magic number, 0x5A10 for version 1.
	Options uint16

	// Reserved must be 0.
	Reserved uint8

	// DataCompression is the compression applied to the data section.
	DataCompression uint8
}

// NewFlag creates a little-endian, uncompressed flag.
func NewFlag() Flag {
	return Flag{
		Options:         MagicStringTableV1,
		DataCompression: uint8(format.CompressionNone),
	}
}

// IsDeduplicated returns whether identical strings share data blocks.
func (f Flag) IsDeduplicated() bool {
	return f.Options&DedupMask != 0
}

// SetDeduplicated sets the deduplicated bit.
func (f *Flag) SetDeduplicated(enabled bool) {
	if enabled {
		f.Options |= DedupMask
	} else {
		f.Options &^= DedupMask
	}
}

// IsBigEndian returns whether multi-byte fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number bits.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetDataCompression sets the data compression type.
func (f *Flag) SetDataCompression(compression format.CompressionType) {
	f.DataCompression = uint8(compression)
}

// GetDataCompression returns the data compression type.
func (f Flag) GetDataCompression() format.CompressionType {
	return format.CompressionType(f.DataCompression)
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// Validate checks the magic number, the reserved bits and the compression
// id.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicStringTableV1 {
		return errs.ErrInvalidHeaderFlags
	}
	if f.Options&ReservedBitsMask != 0 || f.Reserved != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validCompressions[f.DataCompression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
