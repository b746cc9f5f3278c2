package str

import (
	"fmt"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/transcode"
)

// GetBytes encodes the units in r as enc into dst.
//
// It follows the streaming contract of the transcode package: a nil dst
// measures, and usedUnits < r.Length means the conversion stopped early
// (unrepresentable content with loss 0, or a full dst). With
// isExternalRepresentation the BOM-aware UTF-16 and UTF-32 variants start
// with a byte order mark.
//
// Parameters:
//   - r: Units to export
//   - enc: Target encoding
//   - loss: Substitution unit, or 0 to stop at unrepresentable content
//   - isExternalRepresentation: Whether to emit a byte order mark
//   - dst: Destination, or nil for a dry run
//
// Returns:
//   - usedUnits: Units of r converted
//   - written: Bytes written to (or required in) dst
//   - err: errs.ErrUnsupportedEncoding when enc has no codec
func (s *String) GetBytes(r Range, enc format.Encoding, loss uint16, isExternalRepresentation bool, dst []byte) (usedUnits, written int, err error) {
	checkRange(r, s.Len())

	if ascii := s.FastASCII(); ascii != nil && enc.IsASCIICompatible() {
		src := ascii[r.Location:r.End()]
		if dst == nil {
			return len(src), len(src), nil
		}
		n := copy(dst, src)

		return n, n, nil
	}

	units := s.FastUnits()
	if units != nil {
		units = units[r.Location:r.End()]
	} else {
		tmp, cleanup := pool.GetUnitSlice(r.Length)
		defer cleanup()
		s.Characters(r, tmp)
		units = tmp
	}

	return transcode.Encode(enc, units, loss, isExternalRepresentation, dst)
}

// ExternalRepresentation encodes the whole string as enc, with a byte order
// mark for the BOM-aware UTF-16 and UTF-32 variants.
//
// Returns:
//   - []byte: The encoded content
//   - error: errs.ErrUnrepresentable when loss is 0 and some content has no
//     form in enc, or errs.ErrUnsupportedEncoding
func (s *String) ExternalRepresentation(enc format.Encoding, loss uint16) ([]byte, error) {
	r := Whole(s.Len())
	used, n, err := s.GetBytes(r, enc, loss, true, nil)
	if err != nil {
		return nil, err
	}
	if used < r.Length {
		return nil, fmt.Errorf("%w: unit %d has no %s form", errs.ErrUnrepresentable, used, enc)
	}

	out := make([]byte, n)
	_, n, err = s.GetBytes(r, enc, loss, true, out)
	if err != nil {
		return nil, err
	}

	return out[:n], nil
}

// Bytes encodes the whole string as enc without a byte order mark.
func (s *String) Bytes(enc format.Encoding, loss uint16) ([]byte, error) {
	r := Whole(s.Len())
	used, n, err := s.GetBytes(r, enc, loss, false, nil)
	if err != nil {
		return nil, err
	}
	if used < r.Length {
		return nil, fmt.Errorf("%w: unit %d has no %s form", errs.ErrUnrepresentable, used, enc)
	}

	out := make([]byte, n)
	_, n, _ = s.GetBytes(r, enc, loss, false, out)

	return out[:n], nil
}
