// Package ustring is a Unicode string engine built around UTF-16 code
// units: encoding conversion, compact string storage, positional
// formatting, locale-aware search and a persisted string table format.
//
// # Core Features
//
//   - Conversion between UTF-8, UTF-16, UTF-32, ASCII, Latin-1, non-lossy
//     ASCII and registered legacy code pages
//   - Strings stored as ASCII bytes when possible, UTF-16 otherwise
//   - Intern table for constant strings
//   - Positional printf with %n$ arguments and locale-aware numbers
//   - Case, diacritic and width-insensitive search and comparison
//   - String tables with deduplication and optional compression (None,
//     Zstd, S2, LZ4)
//
// # Basic Usage
//
//	s := ustring.New("Grüße")
//	fmt.Println(s.Len()) // 5 UTF-16 units
//
//	out := ustring.Sprintf("%2$s, %1$s!", "world", "Hello")
//
//	r, ok := ustring.Find(s, ustring.New("GRÜSSE"), collate.CaseInsensitive)
//
// String tables:
//
//	enc, _ := ustring.NewTableEncoder(strtable.WithCompression(format.CompressionZstd))
//	enc.AddGoString("cpu.usage")
//	data, _ := enc.Finish()
//
//	tbl, _ := ustring.DecodeTable(data)
//	idx, ok := tbl.LookupGoString("cpu.usage")
//
// # Package Structure
//
// This package wraps the most common entry points. The str, transcode,
// printf, collate and strtable packages expose the full API.
package ustring

import (
	"log/slog"

	"github.com/arloliu/ustring/collate"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/hash"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/printf"
	"github.com/arloliu/ustring/str"
	"github.com/arloliu/ustring/strtable"
)

var defaultTableOptions = []strtable.EncoderOption{
	strtable.WithLittleEndian(),
	strtable.WithDeduplication(true),
	strtable.WithCompression(format.CompressionZstd),
}

// SetLogger installs the logger used by all ustring packages. Library code
// logs at Debug level only. A nil logger restores the discarding default.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// New creates an immutable string from Go (UTF-8) text. Invalid UTF-8
// becomes U+FFFD.
func New(s string) *str.String {
	return str.FromGoString(s)
}

// Create creates an immutable string from bytes in the given encoding.
//
// Returns:
//   - *str.String: The decoded string
//   - error: errs.ErrUnsupportedEncoding or errs.ErrInvalidSequence
func Create(data []byte, enc format.Encoding) (*str.String, error) {
	return str.Create(data, enc, false)
}

// Intern returns the shared constant string for s.
func Intern(s string) *str.String {
	return str.Intern(s)
}

// Sprintf formats with the default POSIX formatter and returns Go text.
func Sprintf(layout string, args ...any) string {
	return printf.Sprintf(layout, args...)
}

// Format formats with the default POSIX formatter.
func Format(layout string, args ...any) *str.String {
	return printf.Format(layout, args...)
}

// Find searches the whole of haystack for needle with the root-locale
// collator.
func Find(haystack, needle str.Text, opts collate.Options) (str.Range, bool) {
	return collate.Find(haystack, needle, str.Whole(haystack.Len()), opts)
}

// Compare compares a and b with the root-locale collator.
func Compare(a, b str.Text, opts collate.Options) int {
	return collate.Compare(a, b, opts)
}

// NewTableEncoder creates a string table encoder. Without options the
// table is little-endian, deduplicated and Zstd compressed; opts are
// applied on top of these defaults.
func NewTableEncoder(opts ...strtable.EncoderOption) (*strtable.Encoder, error) {
	all := make([]strtable.EncoderOption, 0, len(defaultTableOptions)+len(opts))
	all = append(all, defaultTableOptions...)
	all = append(all, opts...)

	return strtable.NewEncoder(all...)
}

// DecodeTable decodes and verifies an encoded string table.
func DecodeTable(data []byte) (*strtable.Table, error) {
	return strtable.Decode(data)
}

// ContentHash returns the 64-bit hash string tables index t under. It
// depends only on the UTF-16 content, not on how t is stored.
func ContentHash(t str.Text) uint64 {
	if a := t.FastASCII(); a != nil {
		return hash.ASCIIAsUnits(a)
	}

	return hash.Units(str.Units(t, str.Whole(t.Len())))
}
