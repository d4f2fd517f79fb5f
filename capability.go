package rtfmt

import (
	"fmt"
	"reflect"

	"fortio.org/safecast"
)

// renderFunc renders a value with a kind already chosen by lookup.
type renderFunc func(f *Formatter, v reflect.Value) error

type method struct {
	iface reflect.Type
	call  func(f *Formatter, x any) error
}

// methods lists, per kind, the interfaces providing it, highest priority
// first.
var methods = map[Kind][]method{
	Display: {
		{reflect.TypeFor[Displayer](), func(f *Formatter, x any) error { return x.(Displayer).FmtDisplay(f) }},
		{reflect.TypeFor[fmt.Stringer](), func(f *Formatter, x any) error { return f.Pad(x.(fmt.Stringer).String()) }},
		{reflect.TypeFor[error](), func(f *Formatter, x any) error { return f.Pad(x.(error).Error()) }},
	},
	Debug: {
		{reflect.TypeFor[Debugger](), func(f *Formatter, x any) error { return x.(Debugger).FmtDebug(f) }},
		{reflect.TypeFor[fmt.GoStringer](), func(f *Formatter, x any) error { return f.Pad(x.(fmt.GoStringer).GoString()) }},
	},
	LowerExp: {{reflect.TypeFor[LowerExper](), func(f *Formatter, x any) error { return x.(LowerExper).FmtLowerExp(f) }}},
	UpperExp: {{reflect.TypeFor[UpperExper](), func(f *Formatter, x any) error { return x.(UpperExper).FmtUpperExp(f) }}},
	Octal:    {{reflect.TypeFor[Octaler](), func(f *Formatter, x any) error { return x.(Octaler).FmtOctal(f) }}},
	Pointer:  {{reflect.TypeFor[Pointerer](), func(f *Formatter, x any) error { return x.(Pointerer).FmtPointer(f) }}},
	Binary:   {{reflect.TypeFor[Binaryer](), func(f *Formatter, x any) error { return x.(Binaryer).FmtBinary(f) }}},
	LowerHex: {{reflect.TypeFor[LowerHexer](), func(f *Formatter, x any) error { return x.(LowerHexer).FmtLowerHex(f) }}},
	UpperHex: {{reflect.TypeFor[UpperHexer](), func(f *Formatter, x any) error { return x.(UpperHexer).FmtUpperHex(f) }}},
}

// lookup returns the renderer for values of type t shown as kind, or false
// when t does not have that capability. A nil t is the untyped nil.
// Interface types are resolved against the dynamic value when rendered.
func lookup(kind Kind, t reflect.Type) (renderFunc, bool) {
	return resolve(kind, t, nil)
}

// resolve is lookup with the set of composite types whose element lookup is
// under way. A type met again inside its own elements, as in
// type Tree []Tree, is looked up when a value of it is rendered.
func resolve(kind Kind, t reflect.Type, pending map[reflect.Type]bool) (renderFunc, bool) {
	if t == nil {
		if kind == Display || kind == Debug {
			return renderNil, true
		}
		return nil, false
	}
	for _, m := range methods[kind] {
		if t.Implements(m.iface) {
			return viaMethod(m.call), true
		}
	}
	switch t.Kind() {
	case reflect.Interface:
		return dynamic(kind), true
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		if pending[t] {
			return deferred(kind), true
		}
		if pending == nil {
			pending = map[reflect.Type]bool{}
		}
		pending[t] = true
		defer delete(pending, t)
	}
	return builtin(kind, t, pending)
}

func viaMethod(call func(f *Formatter, x any) error) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		if isNil(v) {
			return renderNil(f, v)
		}
		return call(f, v.Interface())
	}
}

func dynamic(kind Kind) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		var t reflect.Type
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if v.IsValid() {
			t = v.Type()
		}
		r, ok := lookup(kind, t)
		if !ok {
			return &unsupported{kind: kind}
		}
		return r(f, v)
	}
}

// deferred renders values of a type that recurs in its own element types.
// Each level is looked up as it is reached, so the depth is bounded by the
// value rather than the type.
func deferred(kind Kind) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		r, ok := lookup(kind, v.Type())
		if !ok {
			return &unsupported{kind: kind}
		}
		return r(f, v)
	}
}

func builtin(kind Kind, t reflect.Type, pending map[reflect.Type]bool) (renderFunc, bool) {
	if kind == Pointer {
		switch t.Kind() {
		case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
			return renderAddress, true
		}
		return nil, false
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch kind {
		case Display, Debug:
			return renderInt, true
		case LowerExp:
			return renderIntExp("e"), true
		case UpperExp:
			return renderIntExp("E"), true
		case Octal:
			return renderRadix(8, "0o", false), true
		case Binary:
			return renderRadix(2, "0b", false), true
		case LowerHex:
			return renderRadix(16, "0x", false), true
		case UpperHex:
			return renderRadix(16, "0x", true), true
		}
	case reflect.Float32, reflect.Float64:
		switch kind {
		case Display:
			return renderFloat(false), true
		case Debug:
			return renderFloat(true), true
		case LowerExp:
			return renderFloatExp("e"), true
		case UpperExp:
			return renderFloatExp("E"), true
		}
	case reflect.String:
		switch kind {
		case Display:
			return renderString, true
		case Debug:
			return renderQuoted, true
		}
	case reflect.Bool:
		if kind == Display || kind == Debug {
			return renderBool, true
		}
	case reflect.Pointer:
		elem, ok := resolve(kind, t.Elem(), pending)
		if !ok {
			return nil, false
		}
		return func(f *Formatter, v reflect.Value) error {
			if v.IsNil() {
				return renderNil(f, v)
			}
			return elem(f, v.Elem())
		}, true
	case reflect.Slice, reflect.Array:
		if kind != Debug {
			return nil, false
		}
		if elem, ok := resolve(Debug, t.Elem(), pending); ok {
			return renderList(elem), true
		}
	case reflect.Map:
		if kind != Debug {
			return nil, false
		}
		key, ok := resolve(Debug, t.Key(), pending)
		if !ok {
			return nil, false
		}
		if elem, ok := resolve(Debug, t.Elem(), pending); ok {
			return renderMap(key, elem), true
		}
	}
	return nil, false
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// countable reports whether values of type t may be usable as a width or
// precision.
func countable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Interface:
		return true
	default:
		return false
	}
}

// countOf converts v to a count. Counts are limited to 32 bits like the
// literal ones.
func countOf(v reflect.Value) (int, bool) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	var (
		n   uint32
		err error
	)
	switch {
	case v.CanInt():
		n, err = safecast.Conv[uint32](v.Int())
	case v.CanUint():
		n, err = safecast.Conv[uint32](v.Uint())
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return int(n), true
}
