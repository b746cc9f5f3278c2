package transcode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestUTF8ToUTF16(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		loss     uint16
		want     []uint16
		consumed int
	}{
		{"ascii", []byte("hello"), 0, []uint16{'h', 'e', 'l', 'l', 'o'}, 5},
		{"two byte", []byte("é"), 0, []uint16{0xE9}, 2},
		{"three byte", []byte("世"), 0, []uint16{0x4E16}, 3},
		{"four byte", []byte("😀"), 0, []uint16{0xD83D, 0xDE00}, 4},
		{"incomplete tail", []byte{'a', 0xE4, 0xB8}, 0, []uint16{'a'}, 1},
		{"incomplete tail with loss", []byte{'a', 0xE4, 0xB8}, '?', []uint16{'a'}, 1},
		{"bad trailing byte", []byte{'a', 0xC3, 'b'}, 0, []uint16{'a'}, 1},
		{"bad trailing byte with loss", []byte{'a', 0xC3, 'b'}, '?', []uint16{'a', '?', 'b'}, 3},
		{"encoded surrogate", []byte{'x', 0xED, 0xA0, 0x80}, 0, []uint16{'x'}, 1},
		{"overlong", []byte{0xC0, 0xAF}, 0, []uint16{}, 0},
		{"above max", []byte{0xF4, 0x90, 0x80, 0x80}, 0, []uint16{}, 0},
		{"stray continuation with loss", []byte{0x80, 'a'}, 0xFFFD, []uint16{0xFFFD, 'a'}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint16, 16)
			consumed, written := UTF8ToUTF16(tt.src, tt.loss, dst)
			require.Equal(t, tt.consumed, consumed)
			require.Equal(t, tt.want, dst[:written])
		})
	}
}

func TestUTF8ToUTF16_DryRun(t *testing.T) {
	src := []byte("a😀é")
	consumed, written := UTF8ToUTF16(src, 0, nil)
	require.Equal(t, len(src), consumed)
	require.Equal(t, 4, written)
}

func TestUTF8ToUTF16_FullDestination(t *testing.T) {
	src := []byte("ab😀")

	dst := make([]uint16, 3)
	consumed, written := UTF8ToUTF16(src, 0, dst)
	require.Equal(t, 2, consumed, "surrogate pair must not be split")
	require.Equal(t, 2, written)

	consumed2, written2 := UTF8ToUTF16(src[consumed:], 0, make([]uint16, 2))
	require.Equal(t, 4, consumed2)
	require.Equal(t, 2, written2)
}

func TestUTF16ToUTF8(t *testing.T) {
	tests := []struct {
		name     string
		src      []uint16
		loss     uint16
		want     string
		consumed int
	}{
		{"mixed", utf16.Encode([]rune("aé世😀")), 0, "aé世😀", 5},
		{"lone lead at end", []uint16{'a', 0xD83D}, 0, "a", 1},
		{"lone lead at end with loss", []uint16{'a', 0xD83D}, '?', "a?", 2},
		{"unpaired lead", []uint16{0xD83D, 'b'}, 0, "", 0},
		{"unpaired lead with loss", []uint16{0xD83D, 'b'}, 0xFFFD, "�b", 2},
		{"stray trail", []uint16{0xDE00}, 0, "", 0},
		{"surrogate loss degrades", []uint16{0xDE00}, 0xD800, "?", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 32)
			consumed, written := UTF16ToUTF8(tt.src, tt.loss, dst)
			require.Equal(t, tt.consumed, consumed)
			require.Equal(t, tt.want, string(dst[:written]))
		})
	}
}

func TestUTF16ToUTF8_FullDestination(t *testing.T) {
	src := utf16.Encode([]rune("a世"))
	dst := make([]byte, 3)

	consumed, written := UTF16ToUTF8(src, 0, dst)
	require.Equal(t, 1, consumed)
	require.Equal(t, 1, written)
}

func TestUTF8RoundTrip(t *testing.T) {
	// Every scalar value outside the surrogate range survives the trip.
	for r := rune(0); r <= 0x10FFFF; r += 37 {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		units := utf16.Encode([]rune{r})

		_, n := UTF16ToUTF8(units, 0, nil)
		encoded := make([]byte, n)
		consumed, written := UTF16ToUTF8(units, 0, encoded)
		require.Equal(t, len(units), consumed)
		require.Equal(t, n, written)
		require.Equal(t, string(r), string(encoded))

		back := make([]uint16, 2)
		consumed, written = UTF8ToUTF16(encoded, 0, back)
		require.Equal(t, len(encoded), consumed)
		require.Equal(t, units, back[:written], "code point %U", r)
	}
}

func TestMaxUTF8Bytes(t *testing.T) {
	src := utf16.Encode([]rune("世界😀"))
	_, n := UTF16ToUTF8(src, 0, nil)
	require.LessOrEqual(t, n, MaxUTF8Bytes(len(src)))
}
