// Package format defines the wire-level identifiers shared across ustring:
// text encoding ids and compression ids.
package format

import "strings"

type (
	// Encoding identifies a text encoding. The numeric values follow the
	// CoreFoundation string encoding space so identifiers can be exchanged with
	// code that persists them.
	Encoding uint32

	// CompressionType identifies the compression applied to a string table data section.
	CompressionType uint8
)

// Built-in encodings handled natively by the transcode package.
const (
	EncodingASCII         Encoding = 0x0600     // EncodingASCII is 7-bit ASCII.
	EncodingUTF8          Encoding = 0x08000100 // EncodingUTF8 is UTF-8.
	EncodingUTF16         Encoding = 0x0100     // EncodingUTF16 is UTF-16 in host order, BOM-aware.
	EncodingUTF16BE       Encoding = 0x10000100 // EncodingUTF16BE is big-endian UTF-16, never a BOM.
	EncodingUTF16LE       Encoding = 0x14000100 // EncodingUTF16LE is little-endian UTF-16, never a BOM.
	EncodingUTF32         Encoding = 0x0c000100 // EncodingUTF32 is UTF-32 in host order, BOM-aware.
	EncodingUTF32BE       Encoding = 0x18000100 // EncodingUTF32BE is big-endian UTF-32, never a BOM.
	EncodingUTF32LE       Encoding = 0x1c000100 // EncodingUTF32LE is little-endian UTF-32, never a BOM.
	EncodingLatin1        Encoding = 0x0201     // EncodingLatin1 is ISO-8859-1.
	EncodingNonLossyASCII Encoding = 0x0BFF     // EncodingNonLossyASCII is 7-bit ASCII with \uXXXX and \ooo escapes.
)

// Well-known extension encodings. These are routed to the external codec
// service; the transcode package registers default implementations for them.
const (
	EncodingMacRoman        Encoding = 0x0000
	EncodingWindowsLatin1   Encoding = 0x0500
	EncodingWindowsCyrillic Encoding = 0x0502
	EncodingISOLatin2       Encoding = 0x0202
	EncodingISOLatin5       Encoding = 0x0209
	EncodingKOI8R           Encoding = 0x0A02
	EncodingShiftJIS        Encoding = 0x0A01
	EncodingEUCJP           Encoding = 0x0920
	EncodingEUCKR           Encoding = 0x0940
	EncodingGBK             Encoding = 0x0631
	EncodingBig5            Encoding = 0x0A03
	EncodingEBCDICCP037     Encoding = 0x0C02

	// EncodingInvalid is never a valid encoding.
	EncodingInvalid Encoding = 0xffffffff
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Maximum number of units a single code point occupies in each form.
// Callers use these to size worst-case buffers.
const (
	MaxUTF8Length  = 4
	MaxUTF16Length = 2
)

var encodingNames = map[Encoding]string{
	EncodingASCII:           "US-ASCII",
	EncodingUTF8:            "UTF-8",
	EncodingUTF16:           "UTF-16",
	EncodingUTF16BE:         "UTF-16BE",
	EncodingUTF16LE:         "UTF-16LE",
	EncodingUTF32:           "UTF-32",
	EncodingUTF32BE:         "UTF-32BE",
	EncodingUTF32LE:         "UTF-32LE",
	EncodingLatin1:          "ISO-8859-1",
	EncodingNonLossyASCII:   "X-NON-LOSSY-ASCII",
	EncodingMacRoman:        "MACINTOSH",
	EncodingWindowsLatin1:   "WINDOWS-1252",
	EncodingWindowsCyrillic: "WINDOWS-1251",
	EncodingISOLatin2:       "ISO-8859-2",
	EncodingISOLatin5:       "ISO-8859-9",
	EncodingKOI8R:           "KOI8-R",
	EncodingShiftJIS:        "SHIFT_JIS",
	EncodingEUCJP:           "EUC-JP",
	EncodingEUCKR:           "EUC-KR",
	EncodingGBK:             "GBK",
	EncodingBig5:            "BIG5",
	EncodingEBCDICCP037:     "IBM037",
}

var encodingAliases = map[string]Encoding{
	"ASCII":      EncodingASCII,
	"UTF8":       EncodingUTF8,
	"UTF16":      EncodingUTF16,
	"UTF16BE":    EncodingUTF16BE,
	"UTF16LE":    EncodingUTF16LE,
	"UCS-2":      EncodingUTF16,
	"UTF32":      EncodingUTF32,
	"UTF32BE":    EncodingUTF32BE,
	"UTF32LE":    EncodingUTF32LE,
	"LATIN1":     EncodingLatin1,
	"LATIN-1":    EncodingLatin1,
	"ISO8859-1":  EncodingLatin1,
	"NONLOSSY":   EncodingNonLossyASCII,
	"MACROMAN":   EncodingMacRoman,
	"CP1252":     EncodingWindowsLatin1,
	"CP1251":     EncodingWindowsCyrillic,
	"LATIN2":     EncodingISOLatin2,
	"LATIN5":     EncodingISOLatin5,
	"SJIS":       EncodingShiftJIS,
	"SHIFT-JIS":  EncodingShiftJIS,
	"CP932":      EncodingShiftJIS,
	"EUC_JP":     EncodingEUCJP,
	"EUC_KR":     EncodingEUCKR,
	"CP936":      EncodingGBK,
	"BIG-5":      EncodingBig5,
	"CP037":      EncodingEBCDICCP037,
	"EBCDIC":     EncodingEBCDICCP037,
	"EBCDIC-037": EncodingEBCDICCP037,
}

// String returns the IANA-style name of the encoding, or "Unknown".
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}

	return "Unknown"
}

// IsBuiltin reports whether the encoding belongs to the closed set handled
// natively by the transcode package.
func (e Encoding) IsBuiltin() bool {
	switch e {
	case EncodingASCII, EncodingUTF8,
		EncodingUTF16, EncodingUTF16BE, EncodingUTF16LE,
		EncodingUTF32, EncodingUTF32BE, EncodingUTF32LE,
		EncodingLatin1, EncodingNonLossyASCII:
		return true
	default:
		return false
	}
}

// IsUTF16 reports whether e is one of the UTF-16 variants.
func (e Encoding) IsUTF16() bool {
	return e == EncodingUTF16 || e == EncodingUTF16BE || e == EncodingUTF16LE
}

// IsUTF32 reports whether e is one of the UTF-32 variants.
func (e Encoding) IsUTF32() bool {
	return e == EncodingUTF32 || e == EncodingUTF32BE || e == EncodingUTF32LE
}

// IsPlatformOrder reports whether e is a byte-order-neutral variant that
// consults and may emit a byte order mark.
func (e Encoding) IsPlatformOrder() bool {
	return e == EncodingUTF16 || e == EncodingUTF32
}

// IsASCIICompatible reports whether every byte below 0x80 in e denotes the
// ASCII character of the same value.
func (e Encoding) IsASCIICompatible() bool {
	switch e {
	case EncodingASCII, EncodingUTF8, EncodingLatin1, EncodingMacRoman,
		EncodingWindowsLatin1, EncodingWindowsCyrillic, EncodingISOLatin2,
		EncodingISOLatin5, EncodingKOI8R, EncodingEUCJP, EncodingEUCKR,
		EncodingGBK, EncodingBig5:
		return true
	default:
		return false
	}
}

// MaxBytesPerUnit returns the worst-case number of bytes a single UTF-16
// code unit occupies when encoded in e. Unknown encodings report 4.
func MaxBytesPerUnit(e Encoding) int {
	switch e {
	case EncodingASCII, EncodingLatin1, EncodingMacRoman, EncodingWindowsLatin1,
		EncodingWindowsCyrillic, EncodingISOLatin2, EncodingISOLatin5,
		EncodingKOI8R, EncodingEBCDICCP037:
		return 1
	case EncodingUTF16, EncodingUTF16BE, EncodingUTF16LE,
		EncodingShiftJIS, EncodingEUCKR, EncodingGBK, EncodingBig5:
		return 2
	case EncodingUTF8, EncodingEUCJP:
		return 3
	case EncodingUTF32, EncodingUTF32BE, EncodingUTF32LE:
		return 4
	case EncodingNonLossyASCII:
		return 6 // \uXXXX
	default:
		return 4
	}
}

// ParseEncoding resolves an encoding name (case-insensitive, IANA names and
// common aliases) to its identifier.
func ParseEncoding(name string) (Encoding, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for enc, encName := range encodingNames {
		if encName == key {
			return enc, true
		}
	}
	if enc, ok := encodingAliases[key]; ok {
		return enc, true
	}

	return EncodingInvalid, false
}

// KnownEncodings returns every encoding id with a registered name.
func KnownEncodings() []Encoding {
	out := make([]Encoding, 0, len(encodingNames))
	for enc := range encodingNames {
		out = append(out, enc)
	}

	return out
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression resolves a compression name ("none", "zstd", "s2",
// "lz4", case-insensitive) to its identifier.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
