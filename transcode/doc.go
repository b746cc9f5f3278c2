// Package transcode implements the fixed-form Unicode codecs the string
// engine builds on: UTF-8, UTF-16, UTF-32 (each in BOM-aware and explicit
// byte order flavours), ASCII, ISO Latin-1 and escaped non-lossy ASCII.
// Anything outside that set is routed to a registry of external codecs
// backed by golang.org/x/text and github.com/gdamore/encoding.
//
// # Conversion Contract
//
// Every primitive has the shape
//
//	func XToY(src []X, [loss uint16,] dst []Y) (consumed, written int)
//
// and never returns an error. consumed counts source units and written
// counts destination units. A conversion that stops early (malformed input,
// an incomplete trailing sequence, or a full dst) reports consumed <
// len(src); the caller compares counts to tell the cases apart and may
// resume with the unconsumed tail after supplying more input or room.
//
// Passing a nil dst performs a dry run that reports how many destination
// units a full conversion needs.
//
// A non-zero loss is a UTF-16 code unit substituted for input that cannot
// be converted. Zero means no substitution: the conversion stops at the
// first offending unit instead.
//
// # Streaming
//
// The dispatch functions Decode and Encode select a primitive by
// format.Encoding. Converter wraps them with the state a chunked
// conversion needs: the byte order read from a leading BOM, whether a BOM
// has been written, and how to treat an incomplete tail at end of input.
package transcode
