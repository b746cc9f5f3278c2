package str

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCreateMutable_MinimumCapacity(t *testing.T) {
	m := CreateMutable(0)
	require.Equal(t, MinMutableCapacity, m.Capacity())
	require.Equal(t, 0, m.Len())
	require.True(t, m.IsMutable())
	require.False(t, m.IsASCII(), "mutable strings are always UTF-16")

	require.Equal(t, 100, CreateMutable(100).Capacity())
	require.Panics(t, func() { CreateMutable(-1) })
}

func TestEnsureCapacity_Exact(t *testing.T) {
	m := CreateMutable(16)
	m.AppendGoString("0123456789abcdef")
	require.Equal(t, 16, m.Capacity())

	m.AppendGoString("g")
	require.Equal(t, 17, m.Capacity(), "exact growth allocates only what is needed")

	m.EnsureCapacity(10)
	require.Equal(t, 17, m.Capacity(), "capacity never shrinks")
}

func TestEnsureCapacity_Amortized(t *testing.T) {
	m := CreateMutable(16, WithGrowthPolicy(GrowAmortized))
	m.AppendGoString("0123456789abcdef")
	m.AppendGoString("g")
	require.Greater(t, m.Capacity(), 17)
	require.Equal(t, "0123456789abcdefg", m.String())
}

func TestAppend_PreservesPrefix(t *testing.T) {
	m := CreateMutableCopy(FromGoString("héllo"))
	prefix := m.Copy()

	for range 100 {
		m.AppendGoString(", wörld 😀")
	}
	require.Equal(t, 5+100*10, m.Len())
	require.True(t, prefix.Equal(m.Copy().Substring(Range{Length: 5})))
}

func TestMutations(t *testing.T) {
	m := CreateMutable(0)
	m.AppendGoString("hello")
	m.AppendASCII([]byte(" world"))
	require.Equal(t, "hello world", m.String())

	m.Insert(5, FromGoString(","))
	require.Equal(t, "hello, world", m.String())

	m.Replace(Range{Location: 7, Length: 5}, FromGoString("Gophers everywhere"))
	require.Equal(t, "hello, Gophers everywhere", m.String())

	m.Replace(Range{Location: 0, Length: 5}, FromGoString("hi"))
	require.Equal(t, "hi, Gophers everywhere", m.String())

	m.Delete(Range{Location: 11, Length: 11})
	require.Equal(t, "hi, Gophers", m.String())

	m.AppendCharacters(0xD83D, 0xDE00)
	require.Equal(t, "hi, Gophers😀", m.String())

	m.SetString(FromGoString("reset"))
	require.Equal(t, "reset", m.String())

	m.Truncate(3)
	require.Equal(t, "res", m.String())

	require.Panics(t, func() { m.Delete(Range{Location: 2, Length: 5}) })
}

func TestReplace_SelfAppend(t *testing.T) {
	m := CreateMutableCopy(FromGoString("ab"))
	m.Append(m)
	require.Equal(t, "abab", m.String())
}

func TestPad(t *testing.T) {
	m := CreateMutableCopy(FromGoString("ab"))
	m.Pad(FromGoString("xyz"), 7, 1)
	require.Equal(t, "abyzxyz", m.String())

	m.Pad(FromGoString("xyz"), 3, 0)
	require.Equal(t, "aby", m.String())

	m.Pad(FromGoString(""), 10, 0)
	require.Equal(t, "aby", m.String())
}

func TestTrim(t *testing.T) {
	m := CreateMutableCopy(FromGoString("--a-b----"))
	m.Trim(FromGoString("--"))
	require.Equal(t, "a-b", m.String())

	w := CreateMutableCopy(FromGoString(" \t\n text \r\n"))
	w.TrimWhitespace()
	require.Equal(t, "text", w.String())

	all := CreateMutableCopy(FromGoString("   "))
	all.TrimWhitespace()
	require.Equal(t, 0, all.Len())
}

func TestCaseAndNormalize(t *testing.T) {
	m := CreateMutableCopy(FromGoString("hello WORLD"))
	m.Uppercase(language.Und)
	require.Equal(t, "HELLO WORLD", m.String())

	m.Lowercase(language.Und)
	require.Equal(t, "hello world", m.String())

	m.Capitalize(language.English)
	require.Equal(t, "Hello World", m.String())

	tr := CreateMutableCopy(FromGoString("istanbul"))
	tr.Uppercase(language.Turkish)
	require.Equal(t, "İSTANBUL", tr.String())

	f := CreateMutableCopy(FromGoString("Straße"))
	f.Fold()
	require.Equal(t, "strasse", f.String())

	n := CreateMutableCopy(FromGoString("é"))
	n.Normalize(NFC)
	require.Equal(t, 1, n.Len())
	n.Normalize(NFD)
	require.Equal(t, 2, n.Len())
}

func TestPooledAllocator(t *testing.T) {
	m := CreateMutable(8, WithAllocator(PooledAllocator{}), WithGrowthPolicy(GrowAmortized))
	m.AppendGoString("pooled buffers")
	require.Equal(t, "pooled buffers", m.String())
	require.GreaterOrEqual(t, m.Capacity(), MinMutableCapacity)
	m.Release()
}

type countingAllocator struct {
	allocs, frees int
}

func (c *countingAllocator) Allocate(n int) ([]uint16, func()) {
	c.allocs++

	return make([]uint16, 0, n), func() { c.frees++ }
}

func TestAllocator_FreesOnGrowthAndRelease(t *testing.T) {
	alloc := &countingAllocator{}
	m := CreateMutable(2, WithAllocator(alloc))
	m.AppendGoString("more than sixteen units")
	require.Equal(t, 2, alloc.allocs)
	require.Equal(t, 1, alloc.frees)

	m.Retain()
	m.Release()
	require.Equal(t, 1, alloc.frees)
	m.Release()
	require.Equal(t, 2, alloc.frees)
}

func TestAppendUTF8_TruncatedTail(t *testing.T) {
	m := CreateMutable(0)
	m.AppendUTF8([]byte{'a', 0xE4, 0xB8})
	require.Equal(t, []uint16{'a', 0xFFFD, 0xFFFD}, m.FastUnits())
	require.Equal(t, []uint16{'a', 0xFFFD}, FromGoString("a\xe4").FastUnits())
}
