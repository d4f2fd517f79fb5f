package rtfmt

import (
	"io"
	"reflect"
)

// Kind is the display kind requested by a specifier, written as its code:
// the empty string, "?", "e", "E", "o", "p", "b", "x" or "X".
type Kind string

const (
	Display  Kind = ""
	Debug    Kind = "?"
	LowerExp Kind = "e"
	UpperExp Kind = "E"
	Octal    Kind = "o"
	Pointer  Kind = "p"
	Binary   Kind = "b"
	LowerHex Kind = "x"
	UpperHex Kind = "X"
)

var kinds = []Kind{Display, Debug, LowerExp, UpperExp, Octal, Pointer, Binary, LowerHex, UpperHex}

var capabilityNames = map[Kind]string{
	Display:  "Display",
	Debug:    "Debug",
	LowerExp: "LowerExp",
	UpperExp: "UpperExp",
	Octal:    "Octal",
	Pointer:  "Pointer",
	Binary:   "Binary",
	LowerHex: "LowerHex",
	UpperHex: "UpperHex",
}

// String returns the kind code.
func (k Kind) String() string { return string(k) }

// Capability returns the name of the capability a value needs to be
// rendered with this kind, e.g. "Debug".
func (k Kind) Capability() string { return capabilityNames[k] }

// Kinds returns every recognized kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind converts a kind code into a [Kind]. Unknown codes return a
// [*NoSuchFormatError].
func ParseKind(code string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == code {
			return k, nil
		}
	}
	return "", &NoSuchFormatError{Code: code}
}

// Supports reports whether values of type T can be rendered with kind k.
// Interface types report true: their values are checked when rendered.
func Supports[T any](k Kind) bool {
	_, ok := lookup(k, reflect.TypeFor[T]())
	return ok
}

// --- Capability interfaces ---
//
// A type declares a capability by implementing the matching interface. The
// built-in Go kinds have their own capabilities (see the package docs);
// [fmt.Stringer] and error also provide Display and [fmt.GoStringer]
// provides Debug.

// Displayer renders a value for "{}".
type Displayer interface {
	FmtDisplay(f *Formatter) error
}

// Debugger renders a value for "{:?}".
type Debugger interface {
	FmtDebug(f *Formatter) error
}

// LowerExper renders a value for "{:e}".
type LowerExper interface {
	FmtLowerExp(f *Formatter) error
}

// UpperExper renders a value for "{:E}".
type UpperExper interface {
	FmtUpperExp(f *Formatter) error
}

// Octaler renders a value for "{:o}".
type Octaler interface {
	FmtOctal(f *Formatter) error
}

// Pointerer renders a value for "{:p}".
type Pointerer interface {
	FmtPointer(f *Formatter) error
}

// Binaryer renders a value for "{:b}".
type Binaryer interface {
	FmtBinary(f *Formatter) error
}

// LowerHexer renders a value for "{:x}".
type LowerHexer interface {
	FmtLowerHex(f *Formatter) error
}

// UpperHexer renders a value for "{:X}".
type UpperHexer interface {
	FmtUpperHex(f *Formatter) error
}

// NamedArg is an argument that can be referenced by name. Create one with
// [Named].
type NamedArg struct {
	Name  string
	Value any
}

// Named marks value as the argument called name. Named arguments also keep
// their position in the argument list.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Format renders format against args and returns the text.
func Format(format string, args ...any) (string, error) {
	b, err := New(format, args...)
	if err != nil {
		return "", err
	}
	return b.Text()
}

// Write renders format against args and writes the result to w.
func Write(w io.Writer, format string, args ...any) error {
	b, err := New(format, args...)
	if err != nil {
		return err
	}
	_, err = b.WriteTo(w)
	return err
}

// Writeln is [Write] followed by a newline.
func Writeln(w io.Writer, format string, args ...any) error {
	b, err := New(format, args...)
	if err != nil {
		return err
	}
	_, err = b.Newline().WriteTo(w)
	return err
}

// String returns the alignment character, or "" for AlignUnknown.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "<"
	case AlignCenter:
		return "^"
	case AlignRight:
		return ">"
	default:
		return ""
	}
}

// String returns the flag characters in specifier order.
func (fl Flags) String() string {
	var s string
	if fl&FlagPlus != 0 {
		s += "+"
	}
	if fl&FlagMinus != 0 {
		s += "-"
	}
	if fl&FlagAlternate != 0 {
		s += "#"
	}
	if fl&FlagZero != 0 {
		s += "0"
	}
	return s
}
