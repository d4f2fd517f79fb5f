package rtfmt

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Formatter is the destination handed to rendering functions. It carries the
// specifier of the argument being rendered and the padding helpers that
// apply it. Widths and precisions count Unicode scalar values.
type Formatter struct {
	buf          *bytes.Buffer
	fill         rune
	align        Alignment
	flags        Flags
	width        int
	hasWidth     bool
	precision    int
	hasPrecision bool
}

func newFormatter(buf *bytes.Buffer) *Formatter {
	return &Formatter{buf: buf, fill: ' '}
}

// reset restores the default specifier.
func (f *Formatter) reset() {
	*f = Formatter{buf: f.buf, fill: ' '}
}

// child returns a formatter with the same specifier writing to its own
// buffer.
func (f *Formatter) child() *Formatter {
	c := *f
	c.buf = new(bytes.Buffer)
	return &c
}

// Write appends p unpadded.
func (f *Formatter) Write(p []byte) (int, error) { return f.buf.Write(p) }

// WriteString appends s unpadded.
func (f *Formatter) WriteString(s string) (int, error) { return f.buf.WriteString(s) }

// Width returns the requested minimum width, if any.
func (f *Formatter) Width() (int, bool) { return f.width, f.hasWidth }

// Precision returns the requested precision, if any.
func (f *Formatter) Precision() (int, bool) { return f.precision, f.hasPrecision }

// Fill returns the padding character (space unless given).
func (f *Formatter) Fill() rune { return f.fill }

// Align returns the requested alignment.
func (f *Formatter) Align() Alignment { return f.align }

// Plus reports whether the + flag was given.
func (f *Formatter) Plus() bool { return f.flags&FlagPlus != 0 }

// Alternate reports whether the # flag was given.
func (f *Formatter) Alternate() bool { return f.flags&FlagAlternate != 0 }

// ZeroPad reports whether the 0 flag was given.
func (f *Formatter) ZeroPad() bool { return f.flags&FlagZero != 0 }

// Pad writes s as text: precision truncates it, width pads it, left aligned
// by default.
func (f *Formatter) Pad(s string) error {
	if f.hasPrecision {
		s = truncate(s, f.precision)
	}
	if !f.hasWidth {
		f.buf.WriteString(s)
		return nil
	}
	f.padded(s, f.width-utf8.RuneCountInString(s), AlignLeft)
	return nil
}

// PadNumber writes a number made of a sign, a radix prefix and digits. The
// prefix is only written with the # flag. Width pads the whole number, right
// aligned by default; with the 0 flag zeros go between prefix and digits and
// fill and alignment are ignored.
func (f *Formatter) PadNumber(nonNegative bool, prefix, digits string) error {
	f.padNumber(nonNegative, prefix, digits, f.Alternate())
	return nil
}

func (f *Formatter) padNumber(nonNegative bool, prefix, digits string, withPrefix bool) {
	sign := ""
	if !nonNegative {
		sign = "-"
	} else if f.Plus() {
		sign = "+"
	}
	if !withPrefix {
		prefix = ""
	}
	head := sign + prefix
	n := utf8.RuneCountInString(head) + utf8.RuneCountInString(digits)
	switch {
	case !f.hasWidth || n >= f.width:
		f.buf.WriteString(head)
		f.buf.WriteString(digits)
	case f.ZeroPad():
		f.buf.WriteString(head)
		f.buf.WriteString(strings.Repeat("0", f.width-n))
		f.buf.WriteString(digits)
	default:
		f.padded(head+digits, f.width-n, AlignRight)
	}
}

// padSpecial writes a number-like word such as NaN: right aligned, never
// signed or zero padded.
func (f *Formatter) padSpecial(s string) {
	if !f.hasWidth {
		f.buf.WriteString(s)
		return
	}
	f.padded(s, f.width-utf8.RuneCountInString(s), AlignRight)
}

func (f *Formatter) padded(s string, pad int, def Alignment) {
	if pad <= 0 {
		f.buf.WriteString(s)
		return
	}
	align := f.align
	if align == AlignUnknown {
		align = def
	}
	var left, right int
	switch align {
	case AlignRight:
		left = pad
	case AlignCenter:
		left = pad / 2
		right = pad - left
	default:
		right = pad
	}
	f.fillN(left)
	f.buf.WriteString(s)
	f.fillN(right)
}

func (f *Formatter) fillN(n int) {
	for range n {
		f.buf.WriteRune(f.fill)
	}
}

// truncate cuts s to at most n scalar values.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
