package transcode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
)

// feedDecode pushes src through c chunk bytes at a time, carrying the
// unconsumed tail forward the way a reader loop does.
func feedDecode(t *testing.T, c *Converter, src []byte, chunk int) []uint16 {
	t.Helper()
	var out []uint16
	var pending []byte
	dst := make([]uint16, 8)
	for off := 0; off < len(src) || len(pending) > 0; {
		end := min(off+chunk, len(src))
		pending = append(pending, src[off:end]...)
		off = end
		atEOF := off == len(src)

		consumed, written := c.Decode(pending, dst, atEOF)
		out = append(out, dst[:written]...)
		pending = pending[consumed:]
		if atEOF && consumed == 0 {
			break
		}
	}

	return out
}

func TestConverter_UTF8ByteAtATime(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF8)
	require.NoError(t, err)

	text := "a世😀é"
	require.Equal(t, utf16.Encode([]rune(text)), feedDecode(t, c, []byte(text), 1))
}

func TestConverter_BOMAcrossChunks(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF16)
	require.NoError(t, err)

	consumed, written := c.Decode([]byte{0xFE}, nil, false)
	require.Zero(t, consumed)
	require.Zero(t, written)

	got := feedDecode(t, c, []byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42}, 1)
	require.Equal(t, []uint16{'A', 'B'}, got)

	// The order read from the BOM sticks for later chunks.
	dst := make([]uint16, 1)
	consumed, written = c.Decode([]byte{0x00, 0x43}, dst, true)
	require.Equal(t, 2, consumed)
	require.Equal(t, []uint16{'C'}, dst[:written])

	c.Reset()
	consumed, _ = c.Decode([]byte{0xFF, 0xFE, 0x43, 0x00}, dst, true)
	require.Equal(t, 4, consumed)
	require.Equal(t, uint16('C'), dst[0])
}

func TestConverter_LossAtEOF(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF8, WithLossUnit(0xFFFD))
	require.NoError(t, err)

	dst := make([]uint16, 8)
	consumed, written := c.Decode([]byte{'a', 0xE4, 0xB8}, dst, false)
	require.Equal(t, 1, consumed)
	require.Equal(t, []uint16{'a'}, dst[:written])

	consumed, written = c.Decode([]byte{0xE4, 0xB8}, dst, true)
	require.Equal(t, 2, consumed)
	require.Equal(t, []uint16{0xFFFD, 0xFFFD}, dst[:written])
}

func TestConverter_NoLossAtEOF(t *testing.T) {
	c, err := NewConverter(format.EncodingShiftJIS)
	require.NoError(t, err)

	consumed, written := c.Decode([]byte{'A', 0x93}, make([]uint16, 4), true)
	require.Equal(t, 1, consumed)
	require.Equal(t, 1, written)
}

func TestConverter_FullDestinationAtEOF(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF8, WithLossUnit('?'))
	require.NoError(t, err)

	dst := make([]uint16, 1)
	consumed, written := c.Decode([]byte("😀"), dst, true)
	require.Zero(t, consumed, "a full destination is not an incomplete tail")
	require.Zero(t, written)
}

func TestConverter_EncodeBOMOnce(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF16, WithExternalRepresentation(true))
	require.NoError(t, err)

	dst := make([]byte, 16)
	_, first := c.Encode([]uint16{'A'}, dst, false)
	require.Equal(t, 4, first)
	_, second := c.Encode([]uint16{'B'}, dst, true)
	require.Equal(t, 2, second)
}

func TestConverter_EncodeDryRunKeepsBOM(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF16, WithExternalRepresentation(true))
	require.NoError(t, err)

	_, size := c.Encode([]uint16{'A'}, nil, true)
	require.Equal(t, 4, size)

	dst := make([]byte, size)
	_, written := c.Encode([]uint16{'A'}, dst, true)
	require.Equal(t, 4, written)
}

func TestConverter_EncodeHoldsLeadSurrogate(t *testing.T) {
	c, err := NewConverter(format.EncodingUTF8, WithLossUnit('?'))
	require.NoError(t, err)

	dst := make([]byte, 16)
	consumed, written := c.Encode([]uint16{'a', 0xD83D}, dst, false)
	require.Equal(t, 1, consumed)
	require.Equal(t, "a", string(dst[:written]))

	consumed, written = c.Encode([]uint16{0xD83D, 0xDE00}, dst, false)
	require.Equal(t, 2, consumed)
	require.Equal(t, "😀", string(dst[:written]))

	consumed, written = c.Encode([]uint16{0xD83D}, dst, true)
	require.Equal(t, 1, consumed)
	require.Equal(t, "?", string(dst[:written]))
}

func TestNewConverter_Unsupported(t *testing.T) {
	_, err := NewConverter(format.Encoding(0x7777))
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	c, err := NewConverter(format.EncodingLatin1)
	require.NoError(t, err)
	require.Equal(t, format.EncodingLatin1, c.Encoding())
}
