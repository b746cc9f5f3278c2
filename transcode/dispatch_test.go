package transcode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
)

func decodeAll(t *testing.T, enc format.Encoding, src []byte) []uint16 {
	t.Helper()
	_, n, err := Decode(enc, src, 0, nil)
	require.NoError(t, err)
	dst := make([]uint16, n)
	consumed, written, err := Decode(enc, src, 0, dst)
	require.NoError(t, err)
	require.Equal(t, len(src), consumed)

	return dst[:written]
}

func encodeAll(t *testing.T, enc format.Encoding, src []uint16, loss uint16, external bool) []byte {
	t.Helper()
	_, n, err := Encode(enc, src, loss, external, nil)
	require.NoError(t, err)
	dst := make([]byte, n)
	consumed, written, err := Encode(enc, src, loss, external, dst)
	require.NoError(t, err)
	require.Equal(t, len(src), consumed)

	return dst[:written]
}

func TestBOMRoundTrip(t *testing.T) {
	units := utf16.Encode([]rune("Grüße, 世界 😀"))

	for _, enc := range []format.Encoding{format.EncodingUTF16, format.EncodingUTF32} {
		t.Run(enc.String(), func(t *testing.T) {
			encoded := encodeAll(t, enc, units, 0, true)
			require.Equal(t, units, decodeAll(t, enc, encoded))
		})
	}
}

func TestDecodePlatformUTF16_BOM(t *testing.T) {
	require.Equal(t, []uint16{'A'}, decodeAll(t, format.EncodingUTF16, []byte{0xFE, 0xFF, 0x00, 0x41}))
	require.Equal(t, []uint16{'A'}, decodeAll(t, format.EncodingUTF16, []byte{0xFF, 0xFE, 0x41, 0x00}))
	require.Equal(t, []uint16{'A'}, decodeAll(t, format.EncodingUTF32, []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 0x41}))
	require.Equal(t, []uint16{'A'}, decodeAll(t, format.EncodingUTF32, []byte{0xFF, 0xFE, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00}))
}

func TestExplicitOrderIgnoresBOM(t *testing.T) {
	require.Equal(t, []uint16{0xFEFF, 'A'}, decodeAll(t, format.EncodingUTF16BE, []byte{0xFE, 0xFF, 0x00, 0x41}))
	require.Equal(t, []uint16{0xFEFF, 'A'}, decodeAll(t, format.EncodingUTF16LE, []byte{0xFF, 0xFE, 0x41, 0x00}))

	encoded := encodeAll(t, format.EncodingUTF16BE, []uint16{'A'}, 0, true)
	require.Equal(t, []byte{0x00, 0x41}, encoded)
	encoded = encodeAll(t, format.EncodingUTF32LE, []uint16{'A'}, 0, true)
	require.Equal(t, []byte{0x41, 0, 0, 0}, encoded)
}

func TestEncode_BOMNeedsRoom(t *testing.T) {
	consumed, written, err := Encode(format.EncodingUTF16, []uint16{'A'}, 0, true, make([]byte, 1))
	require.NoError(t, err)
	require.Zero(t, consumed)
	require.Zero(t, written)
}

func TestDecodeEncode_Builtins(t *testing.T) {
	units := utf16.Encode([]rune("naïve"))

	tests := []struct {
		enc     format.Encoding
		encoded []byte
	}{
		{format.EncodingUTF8, []byte("naïve")},
		{format.EncodingLatin1, []byte{'n', 'a', 0xEF, 'v', 'e'}},
		{format.EncodingNonLossyASCII, []byte(`na\357ve`)},
		{format.EncodingUTF16BE, []byte{0, 'n', 0, 'a', 0, 0xEF, 0, 'v', 0, 'e'}},
	}
	for _, tt := range tests {
		t.Run(tt.enc.String(), func(t *testing.T) {
			require.Equal(t, tt.encoded, encodeAll(t, tt.enc, units, 0, false))
			require.Equal(t, units, decodeAll(t, tt.enc, tt.encoded))
		})
	}
}

func TestEncode_ASCIILoss(t *testing.T) {
	units := utf16.Encode([]rune("naïve"))

	consumed, written, err := Encode(format.EncodingASCII, units, 0, false, make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 2, consumed)
	require.Equal(t, 2, written)

	require.Equal(t, []byte("na?ve"), encodeAll(t, format.EncodingASCII, units, '?', false))
}

func TestUnsupportedEncoding(t *testing.T) {
	_, _, err := Decode(format.Encoding(0x7777), []byte("x"), 0, nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	_, _, err = Encode(format.Encoding(0x7777), []uint16{'x'}, 0, false, nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	require.False(t, Supported(format.Encoding(0x7777)))
	require.True(t, Supported(format.EncodingUTF8))
	require.True(t, Supported(format.EncodingShiftJIS))
}
