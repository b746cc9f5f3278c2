package cursor

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/str"
)

// windowed hides the fast buffers of a string, forcing the window path.
type windowed struct {
	str.Text
	fills int
}

func (w *windowed) FastUnits() []uint16 { return nil }
func (w *windowed) FastASCII() []byte   { return nil }
func (w *windowed) Characters(r str.Range, dst []uint16) int {
	w.fills++
	return w.Text.Characters(r, dst)
}

func TestCursor_Direct(t *testing.T) {
	for _, s := range []*str.String{str.FromGoString("hello world"), str.FromGoString("héllo wörld")} {
		c := New(s, str.Range{Location: 6, Length: 5})
		require.True(t, c.Direct())
		require.Equal(t, 5, c.Len())
		require.Equal(t, uint16('w'), c.At(0))
		require.Equal(t, uint16('d'), c.At(4))
		require.Zero(t, c.At(5))
		require.Zero(t, c.At(-1))
	}
}

func TestCursor_Window(t *testing.T) {
	text := strings.Repeat("0123456789", 20)
	w := &windowed{Text: str.FromGoString(text)}
	c := New(w, str.Whole(len(text)))
	require.False(t, c.Direct())

	for i := range len(text) {
		require.Equal(t, uint16(text[i]), c.At(i))
	}
	// 200 units: windows start at 0, 60, 120 and 180.
	require.Equal(t, 4, w.fills)

	// Stepping back right after a refill stays inside the window.
	fills := w.fills
	c.At(100)
	c.At(99)
	c.At(96)
	require.Equal(t, fills+1, w.fills)
}

func TestCursor_WindowClampsAtStart(t *testing.T) {
	w := &windowed{Text: str.FromGoString("abcdef")}
	c := New(w, str.Range{Location: 1, Length: 4})

	require.Equal(t, uint16('c'), c.At(1))
	require.Equal(t, uint16('b'), c.At(0))
	require.Equal(t, uint16('e'), c.At(3))
	require.Equal(t, 1, w.fills)
}

func TestCursor_Lookup(t *testing.T) {
	c := New(str.FromGoString("ab"), str.Whole(2))

	u, ok := c.Lookup(1)
	require.True(t, ok)
	require.Equal(t, uint16('b'), u)

	_, ok = c.Lookup(2)
	require.False(t, ok)
}

func TestCursor_NextPrev(t *testing.T) {
	s := str.CreateWithCharacters(utf16.Encode([]rune("a😀b")))
	c := New(s, str.Whole(s.Len()))

	var got []uint16
	for u, ok := c.Next(); ok; u, ok = c.Next() {
		got = append(got, u)
	}
	require.Equal(t, []uint16{'a', 0xD83D, 0xDE00, 'b'}, got)
	require.Equal(t, 4, c.Pos())

	u, ok := c.Prev()
	require.True(t, ok)
	require.Equal(t, uint16('b'), u)

	c.Seek(-3)
	_, ok = c.Prev()
	require.False(t, ok)
	c.Seek(99)
	require.Equal(t, 4, c.Pos())
}

func TestCursor_InitPanicsOnBadRange(t *testing.T) {
	require.Panics(t, func() { New(str.FromGoString("ab"), str.Range{Location: 1, Length: 2}) })
}

func TestCursor_Mutable(t *testing.T) {
	m := str.CreateMutableCopy(str.FromGoString("mutable"))
	c := New(m, str.Whole(m.Len()))
	require.True(t, c.Direct())
	require.Equal(t, uint16('m'), c.At(0))
}

func BenchmarkCursorWindow(b *testing.B) {
	text := strings.Repeat("windowed cursor ", 64)
	w := &windowed{Text: str.FromGoString(text)}
	c := New(w, str.Whole(len(text)))
	b.ResetTimer()
	for b.Loop() {
		for i := range len(text) {
			c.At(i)
		}
	}
}
