package rtfmt

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

func renderNil(f *Formatter, _ reflect.Value) error {
	return f.Pad("<nil>")
}

func renderString(f *Formatter, v reflect.Value) error {
	return f.Pad(v.String())
}

// renderQuoted honours width but not precision, which would cut the quotes.
func renderQuoted(f *Formatter, v reflect.Value) error {
	c := *f
	c.hasPrecision = false
	return c.Pad(quote(v.String()))
}

func renderBool(f *Formatter, v reflect.Value) error {
	return f.Pad(strconv.FormatBool(v.Bool()))
}

func renderAddress(f *Formatter, v reflect.Value) error {
	f.padNumber(true, "0x", strconv.FormatUint(uint64(v.Pointer()), 16), true)
	return nil
}

// intParts splits an integer of any kind into sign and magnitude.
func intParts(v reflect.Value) (nonNegative bool, mag uint64) {
	if v.CanInt() {
		n := v.Int()
		if n < 0 {
			return false, uint64(-(n + 1)) + 1
		}
		return true, uint64(n)
	}
	return true, v.Uint()
}

func renderInt(f *Formatter, v reflect.Value) error {
	nonNegative, mag := intParts(v)
	f.padNumber(nonNegative, "", strconv.FormatUint(mag, 10), false)
	return nil
}

// renderRadix prints the bits of the value: negative numbers show their
// two's complement at the type's size.
func renderRadix(base int, prefix string, upper bool) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		var u uint64
		if v.CanInt() {
			u = uint64(v.Int())
			if bits := v.Type().Bits(); bits < 64 {
				u &= 1<<bits - 1
			}
		} else {
			u = v.Uint()
		}
		digits := strconv.FormatUint(u, base)
		if upper {
			digits = strings.ToUpper(digits)
		}
		return f.PadNumber(true, prefix, digits)
	}
}

func renderIntExp(e string) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		nonNegative, mag := intParts(v)
		mant, exp := expDigits(strconv.FormatUint(mag, 10), f.precision, f.hasPrecision)
		f.padNumber(nonNegative, "", mant+e+strconv.Itoa(exp), false)
		return nil
	}
}

// expDigits turns a decimal digit string into a scientific mantissa and
// exponent. Without a precision trailing zeros are dropped.
func expDigits(digits string, prec int, hasPrec bool) (string, int) {
	exp := len(digits) - 1
	switch {
	case !hasPrec:
		digits = strings.TrimRight(digits, "0")
		if digits == "" {
			digits = "0"
		}
	case len(digits) > prec+1:
		digits, exp = roundDigits(digits, prec+1, exp)
	default:
		digits += strings.Repeat("0", prec+1-len(digits))
	}
	if len(digits) == 1 {
		return digits, exp
	}
	return digits[:1] + "." + digits[1:], exp
}

// roundDigits keeps the first n digits, rounding half to even.
func roundDigits(digits string, n, exp int) (string, int) {
	kept := []byte(digits[:n])
	rest := digits[n:]
	up := rest[0] > '5' ||
		(rest[0] == '5' && (strings.TrimLeft(rest[1:], "0") != "" || (kept[n-1]-'0')%2 == 1))
	if !up {
		return string(kept), exp
	}
	i := n - 1
	for ; i >= 0; i-- {
		if kept[i] != '9' {
			kept[i]++
			break
		}
		kept[i] = '0'
	}
	if i < 0 {
		kept = append([]byte{'1'}, kept[:n-1]...)
		exp++
	}
	return string(kept), exp
}

// renderFloat prints floats without an exponent. Debug marks integral
// values with ".0" and switches to scientific notation outside [1e-4, 1e16).
func renderFloat(debug bool) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		x, bits := v.Float(), v.Type().Bits()
		if math.IsNaN(x) {
			f.padSpecial("NaN")
			return nil
		}
		nonNegative := !math.Signbit(x)
		x = math.Abs(x)
		var body string
		switch {
		case math.IsInf(x, 0):
			body = "inf"
		case f.hasPrecision:
			body = strconv.FormatFloat(x, 'f', f.precision, bits)
		case debug && x != 0 && (x < 1e-4 || x >= 1e16):
			body = scientific(x, -1, bits, "e")
		default:
			body = strconv.FormatFloat(x, 'f', -1, bits)
			if debug && !strings.Contains(body, ".") {
				body += ".0"
			}
		}
		f.padNumber(nonNegative, "", body, false)
		return nil
	}
}

func renderFloatExp(e string) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		x, bits := v.Float(), v.Type().Bits()
		if math.IsNaN(x) {
			f.padSpecial("NaN")
			return nil
		}
		nonNegative := !math.Signbit(x)
		x = math.Abs(x)
		body := "inf"
		if !math.IsInf(x, 0) {
			prec := -1
			if f.hasPrecision {
				prec = f.precision
			}
			body = scientific(x, prec, bits, e)
		}
		f.padNumber(nonNegative, "", body, false)
		return nil
	}
}

// scientific formats x as "1.5e3": no plus sign and no leading zeros in the
// exponent.
func scientific(x float64, prec, bits int, e string) string {
	s := strconv.FormatFloat(x, 'e', prec, bits)
	mant, exp, _ := strings.Cut(s, "e")
	n, _ := strconv.Atoi(exp)
	return mant + e + strconv.Itoa(n)
}

// quote renders s between double quotes with escapes for quotes,
// backslashes, control characters and anything unprintable.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if strconv.IsPrint(r) {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, `\u{%x}`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// renderList prints slices and arrays as [a, b]. Each element is rendered
// with the same specifier.
func renderList(elem renderFunc) renderFunc {
	return func(f *Formatter, v reflect.Value) error {
		n := v.Len()
		item := func(c *Formatter, i int) error { return elem(c, v.Index(i)) }
		if f.Alternate() {
			return writePretty(f, "[", "]", n, item)
		}
		f.buf.WriteByte('[')
		for i := range n {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			if err := item(f, i); err != nil {
				return err
			}
		}
		f.buf.WriteByte(']')
		return nil
	}
}

// renderMap prints maps as {k: v}, ordered by the rendered keys.
func renderMap(key, elem renderFunc) renderFunc {
	type entry struct {
		key string
		val reflect.Value
	}
	return func(f *Formatter, v reflect.Value) error {
		entries := make([]entry, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c := f.child()
			if err := key(c, iter.Key()); err != nil {
				return err
			}
			entries = append(entries, entry{key: c.buf.String(), val: iter.Value()})
		}
		slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

		item := func(c *Formatter, i int) error {
			c.buf.WriteString(entries[i].key)
			c.buf.WriteString(": ")
			return elem(c, entries[i].val)
		}
		if f.Alternate() {
			return writePretty(f, "{", "}", len(entries), item)
		}
		f.buf.WriteByte('{')
		for i := range entries {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			if err := item(f, i); err != nil {
				return err
			}
		}
		f.buf.WriteByte('}')
		return nil
	}
}

// writePretty is the {:#?} layout: one item per line, indented four spaces,
// each followed by a comma.
func writePretty(f *Formatter, open, close string, n int, item func(c *Formatter, i int) error) error {
	f.buf.WriteString(open)
	if n == 0 {
		f.buf.WriteString(close)
		return nil
	}
	f.buf.WriteByte('\n')
	for i := range n {
		c := f.child()
		if err := item(c, i); err != nil {
			return err
		}
		f.buf.WriteString("    ")
		f.buf.WriteString(strings.ReplaceAll(c.buf.String(), "\n", "\n    "))
		f.buf.WriteString(",\n")
	}
	f.buf.WriteString(close)
	return nil
}
