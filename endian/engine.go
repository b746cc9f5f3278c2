// Package endian provides byte order utilities for the UTF-16 and UTF-32 codecs.
//
// This package combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary into a unified EndianEngine interface, detects the host
// byte order once, and sniffs byte order marks for the BOM-aware
// ("platform") UTF-16 and UTF-32 variants.
//
// # Basic Usage
//
//	engine := endian.GetNativeEngine()
//	engine.PutUint16(buf, unit)
//
// Resolving the order of an external UTF-16 representation:
//
//	engine, bomLen := endian.FromBOM16(data)
//	if bomLen == 0 {
//	    engine = endian.GetNativeEngine()
//	}
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Byte order marks, as code points and as their encoded forms.
const (
	BOM        = 0xFEFF // BOM is the byte order mark code point.
	SwappedBOM = 0xFFFE // SwappedBOM is a BOM read in the wrong byte order.
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

func detectNative() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	return nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromBOM16 inspects the first two bytes of data for a UTF-16 byte order mark.
//
// Returns:
//   - EndianEngine: The byte order announced by the mark (nil when absent)
//   - int: Number of bytes occupied by the mark (0 or 2)
func FromBOM16(data []byte) (EndianEngine, int) {
	if len(data) < 2 {
		return nil, 0
	}

	switch {
	case data[0] == 0xFE && data[1] == 0xFF:
		return binary.BigEndian, 2
	case data[0] == 0xFF && data[1] == 0xFE:
		return binary.LittleEndian, 2
	default:
		return nil, 0
	}
}

// FromBOM32 inspects the first four bytes of data for a UTF-32 byte order mark.
//
// Returns:
//   - EndianEngine: The byte order announced by the mark (nil when absent)
//   - int: Number of bytes occupied by the mark (0 or 4)
func FromBOM32(data []byte) (EndianEngine, int) {
	if len(data) < 4 {
		return nil, 0
	}

	switch {
	case data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF:
		return binary.BigEndian, 4
	case data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00:
		return binary.LittleEndian, 4
	default:
		return nil, 0
	}
}

// SwapUint16 reverses the byte order of each unit in place.
func SwapUint16(units []uint16) {
	for i, u := range units {
		units[i] = u<<8 | u>>8
	}
}
