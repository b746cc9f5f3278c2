// Package section defines the binary layout of string table archives.
//
// A string table is a header, one fixed-size index entry per string and a
// data section holding the string contents, optionally compressed as a
// single unit:
//
//	┌──────────────────────────────────────────────────┐
//	│ Header (32 bytes)                                │
//	│  - Flag (4 bytes): magic, byte order, compression│
//	│  - StringCount, UniqueCount (8 bytes)            │
//	│  - IndexOffset, DataOffset (8 bytes)             │
//	│  - DataSize (4 bytes, uncompressed)              │
//	│  - Reserved (8 bytes)                            │
//	├──────────────────────────────────────────────────┤
//	│ Index (StringCount × 16 bytes)                   │
//	│  - Hash (8 bytes): xxHash64 of the UTF-16 units  │
//	│  - Offset (4 bytes): byte offset in data         │
//	│  - Length (3 bytes) + Representation (1 byte)    │
//	├──────────────────────────────────────────────────┤
//	│ Data (DataSize bytes before compression)         │
//	└──────────────────────────────────────────────────┘
//
// The Options field of the flag is always little-endian; every other
// multi-byte field uses the byte order the flag names. Strings stored as
// ASCII take one byte per unit, UTF-16 strings two bytes per unit in the
// table's byte order. Identical strings may share one data block.
package section
