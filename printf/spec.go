package printf

import "github.com/arloliu/ustring/cursor"

// Flags is the set of flag characters of a specifier.
type Flags uint8

const (
	FlagMinus     Flags = 1 << iota // '-' left-align within the field
	FlagPlus                        // '+' always show a sign
	FlagSpace                       // ' ' space where a plus sign would go
	FlagAlternate                   // '#' alternate form
	FlagZero                        // '0' pad with zeros
	FlagGrouping                    // '\'' group digits
)

type lengthMod uint8

const (
	lenNone lengthMod = iota
	lenHH
	lenH
	lenL
	lenLL
	lenQ
	lenLongDouble
	lenJ
	lenZ
	lenT
)

type category uint8

const (
	catInvalid category = iota
	catSigned
	catUnsigned
	catHex
	catOctal
	catPointer
	catFixed
	catScientific
	catGeneral
	catHexFloat
	catCString
	catUnicodeString
	catChar
	catUnicodeChar
	catObject
	catCount
	catPercent
)

var categories = map[uint16]category{
	'd': catSigned, 'i': catSigned, 'D': catSigned,
	'u': catUnsigned, 'U': catUnsigned,
	'x': catHex, 'X': catHex,
	'o': catOctal, 'O': catOctal,
	'p': catPointer,
	'f': catFixed, 'F': catFixed,
	'e': catScientific, 'E': catScientific,
	'g': catGeneral, 'G': catGeneral,
	'a': catHexFloat, 'A': catHexFloat,
	's': catCString,
	'S': catUnicodeString,
	'c': catChar,
	'C': catUnicodeChar,
	'@': catObject,
	'n': catCount,
	'%': catPercent,
}

// argKind returns the type of argument a conversion consumes.
func (c category) argKind() ArgKind {
	switch c {
	case catSigned, catUnsigned, catHex, catOctal, catChar, catUnicodeChar:
		return ArgInt
	case catFixed, catScientific, catGeneral, catHexFloat:
		return ArgFloat
	case catPercent, catInvalid:
		return ArgNone
	default:
		return ArgPointer
	}
}

// fmtSpec is one parsed specifier. Indexes are UTF-16 unit offsets into
// the format.
type fmtSpec struct {
	start, end int

	argPos int // explicit 0-based value position, -1 for sequential
	flags  Flags

	width     int
	widthStar bool
	widthPos  int // explicit 0-based position of a '*' width, -1 for sequential

	prec     int // -1 when absent
	precStar bool
	precPos  int

	length   lengthMod
	conv     uint16
	category category

	// slots resolved by assignSlots
	widthSlot, precSlot, valueSlot int
}

const maxNumber = 1 << 20

// readNumber reads decimal digits starting at i.
func readNumber(c *cursor.Cursor, i int) (n, next int, ok bool) {
	for {
		u := c.At(i)
		if u < '0' || u > '9' {
			return n, i, ok
		}
		if n < maxNumber {
			n = n*10 + int(u-'0')
		}
		ok = true
		i++
	}
}

// readPosition reads "n$" starting at i and returns the 0-based position.
func readPosition(c *cursor.Cursor, i int) (pos, next int, ok bool) {
	n, k, ok := readNumber(c, i)
	if !ok || n == 0 || c.At(k) != '$' {
		return -1, i, false
	}

	return n - 1, k + 1, true
}

// parseSpec parses the specifier whose '%' is at index i. ok is false for
// an unknown conversion or a specifier cut off by the end of the format;
// sp.end is then where the verbatim copy stops.
func parseSpec(c *cursor.Cursor, i int) (sp fmtSpec, ok bool) {
	sp = fmtSpec{start: i, argPos: -1, widthPos: -1, prec: -1, precPos: -1}
	j := i + 1

	if pos, k, found := readPosition(c, j); found {
		sp.argPos, j = pos, k
	}

flags:
	for {
		switch c.At(j) {
		case '-':
			sp.flags |= FlagMinus
		case '+':
			sp.flags |= FlagPlus
		case ' ':
			sp.flags |= FlagSpace
		case '#':
			sp.flags |= FlagAlternate
		case '0':
			sp.flags |= FlagZero
		case '\'':
			sp.flags |= FlagGrouping
		default:
			break flags
		}
		j++
	}

	if c.At(j) == '*' {
		sp.widthStar = true
		j++
		if pos, k, found := readPosition(c, j); found {
			sp.widthPos, j = pos, k
		}
	} else if n, k, found := readNumber(c, j); found {
		sp.width, j = n, k
	}

	if c.At(j) == '.' {
		j++
		if c.At(j) == '*' {
			sp.precStar = true
			j++
			if pos, k, found := readPosition(c, j); found {
				sp.precPos, j = pos, k
			}
		} else {
			sp.prec, j, _ = readNumber(c, j)
		}
	}

	switch c.At(j) {
	case 'h':
		sp.length = lenH
		if c.At(j+1) == 'h' {
			sp.length = lenHH
			j++
		}
		j++
	case 'l':
		sp.length = lenL
		if c.At(j+1) == 'l' {
			sp.length = lenLL
			j++
		}
		j++
	case 'q':
		sp.length, j = lenQ, j+1
	case 'L':
		sp.length, j = lenLongDouble, j+1
	case 'j':
		sp.length, j = lenJ, j+1
	case 'z':
		sp.length, j = lenZ, j+1
	case 't':
		sp.length, j = lenT, j+1
	}

	if j >= c.Len() {
		sp.end = c.Len()
		return sp, false
	}

	sp.conv = c.At(j)
	sp.end = j + 1
	sp.category = categories[sp.conv]
	switch sp.conv {
	case 'D', 'U', 'O':
		sp.length = lenL
	}

	return sp, sp.category != catInvalid
}

// slotCounter hands out sequential argument slots.
type slotCounter struct {
	next int
}

func (s *slotCounter) slot(explicit int) int {
	if explicit >= 0 {
		return explicit
	}
	n := s.next
	s.next++

	return n
}

// assignSlots resolves the argument slots of sp in syntactic order: width,
// precision, then value. Both the discovery and render passes call it so
// they agree on every slot.
func assignSlots(sp *fmtSpec, counter *slotCounter) {
	sp.widthSlot, sp.precSlot, sp.valueSlot = -1, -1, -1
	if sp.widthStar {
		sp.widthSlot = counter.slot(sp.widthPos)
	}
	if sp.precStar {
		sp.precSlot = counter.slot(sp.precPos)
	}
	if sp.category.argKind() != ArgNone {
		sp.valueSlot = counter.slot(sp.argPos)
	}
}
