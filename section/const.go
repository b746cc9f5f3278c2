package section

import "math"

const (
	// Bit masks of Flag.Options
	DedupMask        = 0x0001 // Mask for deduplicated data bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicStringTableV1 is the version 1 magic number (bits 4-15).
	MagicStringTableV1 = 0x5A10
)

// Representation of a string's units in the data section.
const (
	ReprASCII uint8 = 0x0 // one byte per unit
	ReprUTF16 uint8 = 0x1 // two bytes per unit, table byte order
)

// Offsets and section sizes.
const (
	HeaderSize        = 32             // fixed header size in bytes
	IndexEntrySize    = 16             // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize     // byte offset where the index starts
	MaxDataSize       = math.MaxUint32 // maximum uncompressed data section size
	MaxStringLength   = 1<<24 - 1      // maximum string length in units
	MaxStringCount    = 1 << 24        // maximum number of strings per table
)
