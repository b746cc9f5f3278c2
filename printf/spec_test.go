package printf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/cursor"
	"github.com/arloliu/ustring/str"
)

func parse(t *testing.T, s string) (fmtSpec, bool) {
	t.Helper()
	text := str.FromGoString(s)

	return parseSpec(cursor.New(text, str.Whole(text.Len())), 0)
}

func TestParseSpec(t *testing.T) {
	sp, ok := parse(t, "%2$-*3$.*1$lld")
	require.True(t, ok)
	require.Equal(t, 1, sp.argPos)
	require.Equal(t, FlagMinus, sp.flags)
	require.True(t, sp.widthStar)
	require.Equal(t, 2, sp.widthPos)
	require.True(t, sp.precStar)
	require.Equal(t, 0, sp.precPos)
	require.Equal(t, lenLL, sp.length)
	require.Equal(t, uint16('d'), sp.conv)
	require.Equal(t, 14, sp.end)

	sp, ok = parse(t, "%'+ #012.5hhx")
	require.True(t, ok)
	require.Equal(t, FlagGrouping|FlagPlus|FlagSpace|FlagAlternate|FlagZero, sp.flags)
	require.Equal(t, 12, sp.width)
	require.Equal(t, 5, sp.prec)
	require.Equal(t, lenHH, sp.length)
	require.Equal(t, catHex, sp.category)

	sp, ok = parse(t, "%.f")
	require.True(t, ok)
	require.Equal(t, 0, sp.prec, "bare dot is precision zero")

	sp, ok = parse(t, "%5d")
	require.True(t, ok)
	require.Equal(t, -1, sp.argPos, "digits without $ are a width")
	require.Equal(t, 5, sp.width)

	sp, ok = parse(t, "%lf")
	require.True(t, ok)
	require.Equal(t, catFixed, sp.category)

	_, ok = parse(t, "%0$d")
	require.False(t, ok, "position zero is not a position")

	sp, ok = parse(t, "%-12")
	require.False(t, ok)
	require.Equal(t, 4, sp.end)
}

func TestAssignSlots(t *testing.T) {
	var counter slotCounter

	a, _ := parse(t, "%*.*d")
	assignSlots(&a, &counter)
	require.Equal(t, []int{0, 1, 2}, []int{a.widthSlot, a.precSlot, a.valueSlot})

	b, _ := parse(t, "%5$s")
	assignSlots(&b, &counter)
	require.Equal(t, 4, b.valueSlot)

	c, _ := parse(t, "%s")
	assignSlots(&c, &counter)
	require.Equal(t, 3, c.valueSlot, "explicit positions do not move the counter")

	d, _ := parse(t, "%%")
	assignSlots(&d, &counter)
	require.Equal(t, -1, d.valueSlot)
}

func TestSlotTable(t *testing.T) {
	var slots slotTable
	slots.declare(2, ArgFloat, lenNone)
	slots.declare(0, ArgInt, lenHH)
	slots.declare(0, ArgFloat, lenNone)

	require.Equal(t, []ArgKind{ArgInt, ArgNone, ArgFloat}, slots.kinds)

	values := slots.load([]any{300, "gap", 2.5})
	require.Equal(t, int64(44), values[0].i)
	require.Equal(t, ArgPointer, values[1].kind, "unreferenced slots read as pointers")
	require.Equal(t, "gap", values[1].p)
	require.InDelta(t, 2.5, values[2].f, 0)
}
