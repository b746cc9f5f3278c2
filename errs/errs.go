// Package errs defines the sentinel errors returned by ustring packages.
//
// Callers should test for these values with errors.Is, since most call sites
// wrap them with additional context:
//
//	s, err := str.Create(data, format.EncodingUTF8, false)
//	if errors.Is(err, errs.ErrInvalidSequence) {
//	    // input was not valid UTF-8
//	}
package errs

import "errors"

// Construction and conversion errors.
var (
	// ErrUnsupportedEncoding is returned when an encoding id is neither built in
	// nor registered with the external codec service.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrInvalidSequence is returned when the source bytes do not form a valid
	// sequence in the declared encoding and no loss unit was supplied.
	ErrInvalidSequence = errors.New("invalid sequence for encoding")

	// ErrUnrepresentable is returned when content cannot be represented in the
	// requested target encoding and no loss unit was supplied.
	ErrUnrepresentable = errors.New("content not representable in encoding")

	// ErrBufferTooSmall is returned when a destination buffer cannot hold a
	// single complete unit of output.
	ErrBufferTooSmall = errors.New("destination buffer too small")
)

// String storage errors.
var (
	// ErrInvalidRange is returned when a range does not fit within a string.
	ErrInvalidRange = errors.New("range out of bounds")

	// ErrInvalidCapacity is returned for negative capacities.
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// String table errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidHeaderFlags  = errors.New("invalid header flags")
	ErrInvalidStringCount  = errors.New("invalid string count")
	ErrInvalidIndexEntry   = errors.New("invalid index entry")
	ErrInvalidDataSection  = errors.New("invalid data section")
	ErrHashMismatch        = errors.New("string hash mismatch")
	ErrStringCountExceeded = errors.New("string count exceeded")
	ErrStringTooLong       = errors.New("string too long")
	ErrEncoderFinished     = errors.New("encoder already finished")
)

// Compression errors.
var (
	// ErrUnsupportedCompression is returned for unknown compression ids.
	ErrUnsupportedCompression = errors.New("unsupported compression type")

	// ErrIncompressible is returned by codecs that cannot shrink their input.
	ErrIncompressible = errors.New("data is incompressible")
)
