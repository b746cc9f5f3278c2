package transcode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/endian"
)

func TestUTF16ToUTF32RoundTrip(t *testing.T) {
	src := utf16.Encode([]rune("ab世😀z"))

	runes := make([]rune, 8)
	consumed, written := UTF16ToUTF32(src, 0, runes)
	require.Equal(t, len(src), consumed)
	require.Equal(t, []rune("ab世😀z"), runes[:written])

	back := make([]uint16, 8)
	consumed, n := UTF32ToUTF16(runes[:written], back)
	require.Equal(t, written, consumed)
	require.Equal(t, src, back[:n])
}

func TestUTF16ToUTF32_LoneSurrogate(t *testing.T) {
	dst := make([]rune, 4)

	consumed, written := UTF16ToUTF32([]uint16{'a', 0xD800}, 0, dst)
	require.Equal(t, 1, consumed)
	require.Equal(t, 1, written)

	consumed, written = UTF16ToUTF32([]uint16{'a', 0xD800}, 0xFFFD, dst)
	require.Equal(t, 2, consumed)
	require.Equal(t, []rune{'a', 0xFFFD}, dst[:written])
}

func TestUTF32ToUTF16_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  []rune
		want int
	}{
		{"surrogate", []rune{'a', 0xD800}, 1},
		{"trail surrogate", []rune{0xDFFF}, 0},
		{"above max", []rune{'a', 'b', 0x110000}, 2},
		{"negative", []rune{-1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumed, _ := UTF32ToUTF16(tt.src, make([]uint16, 8))
			require.Equal(t, tt.want, consumed)
		})
	}
}

func TestUTF16Bytes(t *testing.T) {
	units := []uint16{0x0041, 0x4E16, 0xD83D}

	be := make([]byte, 6)
	consumed, written := EncodeUTF16Bytes(units, endian.GetBigEndianEngine(), be)
	require.Equal(t, 3, consumed)
	require.Equal(t, 6, written)
	require.Equal(t, []byte{0x00, 0x41, 0x4E, 0x16, 0xD8, 0x3D}, be)

	back := make([]uint16, 3)
	consumed, written = DecodeUTF16Bytes(append(be, 0x00), endian.GetBigEndianEngine(), back)
	require.Equal(t, 6, consumed, "odd trailing byte is left")
	require.Equal(t, 3, written)
	require.Equal(t, units, back)

	consumed, written = DecodeUTF16Bytes(be, endian.GetLittleEndianEngine(), nil)
	require.Equal(t, 6, consumed)
	require.Equal(t, 3, written)
}

func TestUTF16Bytes_ShortDestination(t *testing.T) {
	consumed, written := EncodeUTF16Bytes([]uint16{1, 2, 3}, endian.GetLittleEndianEngine(), make([]byte, 5))
	require.Equal(t, 2, consumed)
	require.Equal(t, 4, written)
}

func TestUTF32Bytes(t *testing.T) {
	units := utf16.Encode([]rune("a😀"))
	le := endian.GetLittleEndianEngine()

	encoded := make([]byte, 8)
	consumed, written := EncodeUTF32Bytes(units, le, 0, encoded)
	require.Equal(t, 3, consumed)
	require.Equal(t, 8, written)
	require.Equal(t, []byte{0x61, 0, 0, 0, 0x00, 0xF6, 0x01, 0x00}, encoded)

	back := make([]uint16, 4)
	consumed, written = DecodeUTF32Bytes(encoded, le, back)
	require.Equal(t, 8, consumed)
	require.Equal(t, units, back[:written])
}

func TestDecodeUTF32Bytes_RejectsSurrogate(t *testing.T) {
	src := []byte{0x00, 0x00, 0x00, 0x61, 0x00, 0x00, 0xD8, 0x00}
	consumed, written := DecodeUTF32Bytes(src, endian.GetBigEndianEngine(), make([]uint16, 4))
	require.Equal(t, 4, consumed)
	require.Equal(t, 1, written)
}
