package transcode

import (
	"fmt"

	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/logging"
)

type (
	decodeFunc func(src []byte, loss uint16, dst []uint16) (int, int)
	encodeFunc func(src []uint16, loss uint16, dst []byte) (int, int)
)

// fixedOrder returns the byte order an explicit BE/LE encoding implies, or
// order for the BOM-aware variants.
func fixedOrder(enc format.Encoding, order endian.EndianEngine) endian.EndianEngine {
	switch enc {
	case format.EncodingUTF16BE, format.EncodingUTF32BE:
		return endian.GetBigEndianEngine()
	case format.EncodingUTF16LE, format.EncodingUTF32LE:
		return endian.GetLittleEndianEngine()
	}
	if order == nil {
		return endian.GetNativeEngine()
	}

	return order
}

func decoderFor(enc format.Encoding, order endian.EndianEngine) (decodeFunc, error) {
	switch {
	case enc == format.EncodingASCII:
		return ASCIIToUTF16, nil
	case enc == format.EncodingUTF8:
		return UTF8ToUTF16, nil
	case enc == format.EncodingLatin1:
		return func(src []byte, _ uint16, dst []uint16) (int, int) {
			return Latin1ToUTF16(src, dst)
		}, nil
	case enc == format.EncodingNonLossyASCII:
		return NonLossyToUTF16, nil
	case enc.IsUTF16():
		o := fixedOrder(enc, order)
		return func(src []byte, _ uint16, dst []uint16) (int, int) {
			return DecodeUTF16Bytes(src, o, dst)
		}, nil
	case enc.IsUTF32():
		o := fixedOrder(enc, order)
		return func(src []byte, _ uint16, dst []uint16) (int, int) {
			return DecodeUTF32Bytes(src, o, dst)
		}, nil
	}

	if codec, ok := LookupExternal(enc); ok {
		logging.L("transcode").Debug("routing decode to external codec", "encoding", enc.String())
		return codec.Decode, nil
	}

	return nil, fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedEncoding, uint32(enc))
}

func encoderFor(enc format.Encoding, order endian.EndianEngine) (encodeFunc, error) {
	switch {
	case enc == format.EncodingASCII:
		return UTF16ToASCII, nil
	case enc == format.EncodingUTF8:
		return UTF16ToUTF8, nil
	case enc == format.EncodingLatin1:
		return UTF16ToLatin1, nil
	case enc == format.EncodingNonLossyASCII:
		return func(src []uint16, _ uint16, dst []byte) (int, int) {
			return UTF16ToNonLossy(src, dst)
		}, nil
	case enc.IsUTF16():
		o := fixedOrder(enc, order)
		return func(src []uint16, _ uint16, dst []byte) (int, int) {
			return EncodeUTF16Bytes(src, o, dst)
		}, nil
	case enc.IsUTF32():
		o := fixedOrder(enc, order)
		return func(src []uint16, loss uint16, dst []byte) (int, int) {
			return EncodeUTF32Bytes(src, o, loss, dst)
		}, nil
	}

	if codec, ok := LookupExternal(enc); ok {
		logging.L("transcode").Debug("routing encode to external codec", "encoding", enc.String())
		return codec.Encode, nil
	}

	return nil, fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedEncoding, uint32(enc))
}

// Supported reports whether enc is built in or has a registered external
// codec.
func Supported(enc format.Encoding) bool {
	if enc.IsBuiltin() {
		return true
	}
	_, ok := LookupExternal(enc)

	return ok
}

// bomSize returns the size of a byte order mark in enc, or 0 when enc is
// not a BOM-aware variant.
func bomSize(enc format.Encoding) int {
	switch enc {
	case format.EncodingUTF16:
		return 2
	case format.EncodingUTF32:
		return 4
	default:
		return 0
	}
}

// sniffBOM reads a leading byte order mark for the BOM-aware UTF-16 and
// UTF-32 variants. Without a mark the host order is assumed.
func sniffBOM(enc format.Encoding, src []byte) (endian.EndianEngine, int) {
	var order endian.EndianEngine
	var n int
	switch enc {
	case format.EncodingUTF16:
		order, n = endian.FromBOM16(src)
	case format.EncodingUTF32:
		order, n = endian.FromBOM32(src)
	}
	if order == nil {
		order = endian.GetNativeEngine()
	}

	return order, n
}

// putBOM writes a byte order mark for enc in order.
func putBOM(enc format.Encoding, order endian.EndianEngine, dst []byte) {
	if enc == format.EncodingUTF32 {
		order.PutUint32(dst, endian.BOM)

		return
	}
	order.PutUint16(dst, endian.BOM)
}

// Decode converts src, encoded as enc, into UTF-16 units.
//
// The BOM-aware UTF-16 and UTF-32 variants consume a leading byte order
// mark and use the order it names; without one they assume host order.
// The BE and LE variants never look for a mark.
//
// Parameters:
//   - enc: Source encoding
//   - src: Encoded input
//   - loss: Substitution unit, or 0 to stop at unconvertible input
//   - dst: Destination units, or nil for a dry run
//
// Returns:
//   - consumed: Bytes of src converted, including any BOM
//   - written: Units written to (or required in) dst
//   - err: errs.ErrUnsupportedEncoding when enc has no codec
func Decode(enc format.Encoding, src []byte, loss uint16, dst []uint16) (consumed, written int, err error) {
	order, skip := sniffBOM(enc, src)
	fn, err := decoderFor(enc, order)
	if err != nil {
		return 0, 0, err
	}
	consumed, written = fn(src[skip:], loss, dst)

	return consumed + skip, written, nil
}

// Encode converts UTF-16 units into enc.
//
// When external is true the BOM-aware UTF-16 and UTF-32 variants emit a
// byte order mark in host order before the content; if dst cannot hold the
// mark nothing is converted.
//
// Returns:
//   - consumed: Units of src converted
//   - written: Bytes written to (or required in) dst, including any BOM
//   - err: errs.ErrUnsupportedEncoding when enc has no codec
func Encode(enc format.Encoding, src []uint16, loss uint16, external bool, dst []byte) (consumed, written int, err error) {
	order := endian.GetNativeEngine()
	fn, err := encoderFor(enc, order)
	if err != nil {
		return 0, 0, err
	}

	skip := 0
	if n := bomSize(enc); external && n > 0 {
		if dst != nil {
			if len(dst) < n {
				return 0, 0, nil
			}
			putBOM(enc, order, dst)
			dst = dst[n:]
		}
		skip = n
	}
	consumed, written = fn(src, loss, dst)

	return consumed, written + skip, nil
}
