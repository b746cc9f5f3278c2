package printf

import "reflect"

// ArgKind is the type class an argument slot is read as.
type ArgKind uint8

const (
	ArgNone ArgKind = iota
	ArgInt
	ArgFloat
	ArgPointer
)

// argValue is one entry of the argument table.
type argValue struct {
	kind ArgKind
	i    int64
	u    uint64
	f    float64
	p    any
}

// slotTable records the kind and length modifier of each argument slot.
// The first declaration of a slot wins.
type slotTable struct {
	kinds   []ArgKind
	lengths []lengthMod
}

func (t *slotTable) declare(slot int, kind ArgKind, length lengthMod) {
	if slot < 0 {
		return
	}
	for len(t.kinds) <= slot {
		t.kinds = append(t.kinds, ArgNone)
		t.lengths = append(t.lengths, lenNone)
	}
	if t.kinds[slot] == ArgNone {
		t.kinds[slot] = kind
		t.lengths[slot] = length
	}
}

// load pulls args, in slot order, into a table of tagged values. Slots no
// specifier references are read as pointers. Missing arguments read as
// zero.
func (t *slotTable) load(args []any) []argValue {
	values := make([]argValue, len(t.kinds))
	for slot, kind := range t.kinds {
		var arg any
		if slot < len(args) {
			arg = args[slot]
		}
		values[slot] = readArg(arg, kind, t.lengths[slot])
	}

	return values
}

func readArg(arg any, kind ArgKind, length lengthMod) argValue {
	v := argValue{kind: kind}
	switch kind {
	case ArgInt:
		i, u := intOf(arg)
		v.i, v.u = truncate(i, u, length)
	case ArgFloat:
		v.f = floatOf(arg)
	default:
		v.kind = ArgPointer
		v.p = arg
	}

	return v
}

// intOf reads any integer-like value as both a signed and an unsigned
// 64-bit quantity.
func intOf(arg any) (int64, uint64) {
	switch x := arg.(type) {
	case nil:
		return 0, 0
	case int:
		return int64(x), uint64(x)
	case bool:
		if x {
			return 1, 1
		}

		return 0, 0
	case rune:
		return int64(x), uint64(x)
	case uint16:
		return int64(x), uint64(x)
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), uint64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return int64(f), uint64(int64(f))
	case reflect.Bool:
		if rv.Bool() {
			return 1, 1
		}
	}

	return 0, 0
}

func floatOf(arg any) float64 {
	switch x := arg.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	}

	return 0
}

// truncate narrows an integer to the width its length modifier names.
func truncate(i int64, u uint64, length lengthMod) (int64, uint64) {
	switch length {
	case lenHH:
		return int64(int8(i)), uint64(uint8(u))
	case lenH:
		return int64(int16(i)), uint64(uint16(u))
	default:
		return i, u
	}
}
