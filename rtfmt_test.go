package rtfmt_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/bjaus/rtfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test types: capabilities ---

type point struct{ X, Y int }

func (p point) FmtDisplay(f *rtfmt.Formatter) error {
	return f.Pad(fmt.Sprintf("(%d, %d)", p.X, p.Y))
}

func (p point) FmtDebug(f *rtfmt.Formatter) error {
	_, err := fmt.Fprintf(f, "point{X: %d, Y: %d}", p.X, p.Y)
	return err
}

type label string

func (l label) String() string { return "<" + string(l) + ">" }

type celsius float64

type opaque struct{ secret string }

type failing struct{}

func (failing) FmtDisplay(*rtfmt.Formatter) error { return errRender }

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var (
	errWriteFailed = errors.New("write failed")
	errRender      = errors.New("render failed")
)

// ============================================================
// Tests
// ============================================================

func TestParseKind(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    rtfmt.Kind
		wantErr require.ErrorAssertionFunc
	}{
		"display":   {input: "", want: rtfmt.Display, wantErr: require.NoError},
		"debug":     {input: "?", want: rtfmt.Debug, wantErr: require.NoError},
		"lower exp": {input: "e", want: rtfmt.LowerExp, wantErr: require.NoError},
		"upper hex": {input: "X", want: rtfmt.UpperHex, wantErr: require.NoError},
		"pointer":   {input: "p", want: rtfmt.Pointer, wantErr: require.NoError},
		"unknown":   {input: "q", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := rtfmt.ParseKind(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()
	got := rtfmt.Kinds()
	assert.Equal(t, []rtfmt.Kind{
		rtfmt.Display, rtfmt.Debug, rtfmt.LowerExp, rtfmt.UpperExp, rtfmt.Octal,
		rtfmt.Pointer, rtfmt.Binary, rtfmt.LowerHex, rtfmt.UpperHex,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, rtfmt.Display, rtfmt.Kinds()[0])
}

func TestKindCapability(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Display", rtfmt.Display.Capability())
	assert.Equal(t, "Debug", rtfmt.Debug.Capability())
	assert.Equal(t, "UpperHex", rtfmt.UpperHex.Capability())
	assert.Equal(t, "?", rtfmt.Debug.String())
}

func TestSupports(t *testing.T) {
	t.Parallel()
	assert.True(t, rtfmt.Supports[int](rtfmt.LowerHex))
	assert.True(t, rtfmt.Supports[uint8](rtfmt.Binary))
	assert.True(t, rtfmt.Supports[float64](rtfmt.UpperExp))
	assert.False(t, rtfmt.Supports[float64](rtfmt.Octal))
	assert.False(t, rtfmt.Supports[string](rtfmt.LowerHex))
	assert.True(t, rtfmt.Supports[string](rtfmt.Debug))
	assert.False(t, rtfmt.Supports[opaque](rtfmt.Display))
	assert.True(t, rtfmt.Supports[point](rtfmt.Debug))
	assert.True(t, rtfmt.Supports[label](rtfmt.Display))
	assert.True(t, rtfmt.Supports[*int](rtfmt.Pointer))
	assert.True(t, rtfmt.Supports[*int](rtfmt.LowerHex))
	assert.True(t, rtfmt.Supports[[]int](rtfmt.Debug))
	assert.False(t, rtfmt.Supports[[]int](rtfmt.Display))
	assert.False(t, rtfmt.Supports[[]opaque](rtfmt.Debug))
	assert.True(t, rtfmt.Supports[any](rtfmt.UpperHex))
}

// --- Equivalence with compile-time formatting ---

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"literal":             {format: "Literal string!", want: "Literal string!"},
		"hello":               {format: "Hello, {}!", args: []any{"world"}, want: "Hello, world!"},
		"sum":                 {format: "2 + 2 = {}", args: []any{2 + 2}, want: "2 + 2 = 4"},
		"debug and display":   {format: "{0:?} {0}", args: []any{`A \ B`}, want: `"A \\ B" A \ B`},
		"named only":          {format: "{} {x}", args: []any{rtfmt.Named("x", "Foo")}, want: "Foo Foo"},
		"named first":         {format: "{x} {} {}", args: []any{"Foo", rtfmt.Named("x", "Bar")}, want: "Bar Foo Bar"},
		"named twice":         {format: "{x} {x} {}", args: []any{"Foo", rtfmt.Named("x", "Bar")}, want: "Bar Bar Foo"},
		"named around":        {format: "{x} {} {x}", args: []any{"Foo", rtfmt.Named("x", "Bar")}, want: "Bar Foo Bar"},
		"named middle":        {format: "{} {x} {}", args: []any{"Foo", rtfmt.Named("x", "Bar")}, want: "Foo Bar Bar"},
		"lower hex":           {format: "{:x}", args: []any{0x3feebb77}, want: "3feebb77"},
		"upper hex":           {format: "{:X}", args: []any{0x3feebb77}, want: "3FEEBB77"},
		"hex fill":            {format: "Hex: {:.>4x}", args: []any{17}, want: "Hex: ..11"},
		"adjacent":            {format: "{}{}{}", args: []any{"(A)", "_ _", "(B)"}, want: "(A)_ _(B)"},
		"escapes":             {format: "{{}} {{{}}}", args: []any{1}, want: "{} {1}"},
		"reorder":             {format: "{1} {0}", args: []any{"a", "b"}, want: "b a"},
		"text default left":   {format: "{:5}|", args: []any{"ab"}, want: "ab   |"},
		"text right":          {format: "{:>5}", args: []any{"ab"}, want: "   ab"},
		"text center even":    {format: "{:^6}", args: []any{"ab"}, want: "  ab  "},
		"text center odd":     {format: "{:^5}", args: []any{"ab"}, want: " ab  "},
		"text fill":           {format: "{:*^7}", args: []any{"mid"}, want: "**mid**"},
		"text wider":          {format: "{:2}", args: []any{"abcd"}, want: "abcd"},
		"text precision":      {format: "{:.3}", args: []any{"abcdef"}, want: "abc"},
		"text width prec":     {format: "{:5.2}|", args: []any{"abcdef"}, want: "ab   |"},
		"text scalar units":   {format: "{:>4}", args: []any{"né"}, want: "  né"},
		"int default right":   {format: "{:5}", args: []any{42}, want: "   42"},
		"int left":            {format: "{:<5}|", args: []any{42}, want: "42   |"},
		"int zero pad":        {format: "{:05}", args: []any{-42}, want: "-0042"},
		"int plus":            {format: "{:+}", args: []any{5}, want: "+5"},
		"int plus zero":       {format: "{:+05}", args: []any{5}, want: "+0005"},
		"int minus flag":      {format: "{:-}", args: []any{5}, want: "5"},
		"int min":             {format: "{}", args: []any{int64(math.MinInt64)}, want: "-9223372036854775808"},
		"int precision":       {format: "{:.2}", args: []any{7}, want: "7"},
		"binary alt":          {format: "{:#b}", args: []any{5}, want: "0b101"},
		"octal alt":           {format: "{:#o}", args: []any{8}, want: "0o10"},
		"hex alt zero":        {format: "{:#010x}", args: []any{255}, want: "0x000000ff"},
		"hex alt width":       {format: "{:#6x}", args: []any{255}, want: "  0xff"},
		"hex negative int8":   {format: "{:x}", args: []any{int8(-1)}, want: "ff"},
		"binary negative":     {format: "{:b}", args: []any{int16(-2)}, want: "1111111111111110"},
		"upper hex uint64":    {format: "{:X}", args: []any{uint64(math.MaxUint64)}, want: "FFFFFFFFFFFFFFFF"},
		"int exp":             {format: "{:e}", args: []any{1234}, want: "1.234e3"},
		"int exp trailing":    {format: "{:e}", args: []any{1200}, want: "1.2e3"},
		"int exp zero":        {format: "{:e}", args: []any{0}, want: "0e0"},
		"int upper exp":       {format: "{:E}", args: []any{-1200}, want: "-1.2E3"},
		"int exp precision":   {format: "{:.3e}", args: []any{1200}, want: "1.200e3"},
		"int exp half even":   {format: "{:.1e}", args: []any{1250}, want: "1.2e3"},
		"int exp half odd":    {format: "{:.1e}", args: []any{1350}, want: "1.4e3"},
		"int exp carry":       {format: "{:.0e}", args: []any{96}, want: "1e2"},
		"float":               {format: "{}", args: []any{1.5}, want: "1.5"},
		"float integral":      {format: "{}", args: []any{1.0}, want: "1"},
		"float big":           {format: "{}", args: []any{1e21}, want: "1000000000000000000000"},
		"float32":             {format: "{}", args: []any{float32(0.1)}, want: "0.1"},
		"float precision":     {format: "{:.2}", args: []any{3.14159}, want: "3.14"},
		"float width prec":    {format: "{:>8.3}", args: []any{3.14159}, want: "   3.142"},
		"float zero pad":      {format: "{:08.2}", args: []any{-3.14159}, want: "-0003.14"},
		"float plus":          {format: "{:+.1}", args: []any{2.5}, want: "+2.5"},
		"float negative zero": {format: "{}", args: []any{math.Copysign(0, -1)}, want: "-0"},
		"float debug":         {format: "{:?}", args: []any{1.0}, want: "1.0"},
		"float debug big":     {format: "{:?}", args: []any{1e20}, want: "1e20"},
		"float debug small":   {format: "{:?}", args: []any{1e-5}, want: "1e-5"},
		"float exp":           {format: "{:e}", args: []any{1234.5}, want: "1.2345e3"},
		"float upper exp":     {format: "{:E}", args: []any{1234.5}, want: "1.2345E3"},
		"float exp precision": {format: "{:.2e}", args: []any{1234.5}, want: "1.23e3"},
		"float exp small":     {format: "{:e}", args: []any{0.00125}, want: "1.25e-3"},
		"inf":                 {format: "{}", args: []any{math.Inf(-1)}, want: "-inf"},
		"nan":                 {format: "{:>5}", args: []any{math.NaN()}, want: "  NaN"},
		"named float type":    {format: "{:.1}", args: []any{celsius(21.5)}, want: "21.5"},
		"bool":                {format: "{} {:>6}", args: []any{true, false}, want: "true  false"},
		"nil":                 {format: "{} {:?}", args: []any{nil, nil}, want: "<nil> <nil>"},
		"quoted escapes":      {format: "{:?}", args: []any{"tab\there \"q\"\n"}, want: `"tab\there \"q\"\n"`},
		"quoted control":      {format: "{:?}", args: []any{"\x01"}, want: `"\u{1}"`},
		"quoted width":        {format: "{:7?}|", args: []any{"a"}, want: `"a"    |`},
		"debug slice":         {format: "{:?}", args: []any{[]int{1, 2, 3}}, want: "[1, 2, 3]"},
		"debug strings":       {format: "{:?}", args: []any{[]string{"a", "b"}}, want: `["a", "b"]`},
		"debug array":         {format: "{:?}", args: []any{[2]bool{true, false}}, want: "[true, false]"},
		"debug map":           {format: "{:?}", args: []any{map[string]int{"b": 2, "a": 1}}, want: `{"a": 1, "b": 2}`},
		"debug pretty":        {format: "{:#?}", args: []any{[]int{1, 2}}, want: "[\n    1,\n    2,\n]"},
		"debug pretty empty":  {format: "{:#?}", args: []any{[]int{}}, want: "[]"},
		"debug nested pretty": {format: "{:#?}", args: []any{[][]int{{1}}}, want: "[\n    [\n        1,\n    ],\n]"},
		"debug elem width":    {format: "{:3?}", args: []any{[]int{1, 2}}, want: "[  1,   2]"},
		"debug any slice":     {format: "{:?}", args: []any{[]any{1, "a"}}, want: `[1, "a"]`},
		"displayer":           {format: "{:>10}", args: []any{point{1, 2}}, want: "    (1, 2)"},
		"debugger":            {format: "{:?}", args: []any{point{1, 2}}, want: "point{X: 1, Y: 2}"},
		"stringer":            {format: "{}", args: []any{label("x")}, want: "<x>"},
		"stringer debug":      {format: "{:?}", args: []any{label("x")}, want: `"x"`},
		"error display":       {format: "{}", args: []any{errRender}, want: "render failed"},
		"star precision":      {format: "{:.*}", args: []any{4, "aaaaaaaa"}, want: "aaaa"},
		"star u8":             {format: "{:.*}", args: []any{uint8(4), "aaaaaaaa"}, want: "aaaa"},
		"star u64":            {format: "{:.*}", args: []any{uint64(4), "aaaaaaaa"}, want: "aaaa"},
		"star then implicit":  {format: "{:.*} {}", args: []any{2, "abc", "z"}, want: "ab z"},
		"positional width":    {format: "{:1$}|", args: []any{"ab", 5}, want: "ab   |"},
		"zero dollar width":   {format: "{:0$}", args: []any{5}, want: "    5"},
		"named width":         {format: "{:w$}|", args: []any{"ab", rtfmt.Named("w", 4)}, want: "ab  |"},
		"named width prec": {
			format: "{:>width$.prec$}",
			args:   []any{"abcdef", rtfmt.Named("width", 6), rtfmt.Named("prec", 2)},
			want:   "    ab",
		},
		"unicode name":      {format: "{größe}", args: []any{rtfmt.Named("größe", 3)}, want: "3"},
		"unicode fill":      {format: "{:é>4}", args: []any{1}, want: "ééé1"},
		"align char fill":   {format: "{:<<4}", args: []any{1}, want: "1<<<"},
		"repeated mixed":    {format: "{0:>3}{0}{}", args: []any{7}, want: "  777"},
		"default then spec": {format: "{} {:03}", args: []any{1, 2}, want: "1 002"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := rtfmt.Format(tt.format, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPointer(t *testing.T) {
	t.Parallel()
	x := 5
	p := &x
	got, err := rtfmt.Format("{:p}", p)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%p", p), got)

	got, err = rtfmt.Format("{} {:x}", p, p)
	require.NoError(t, err)
	assert.Equal(t, "5 5", got)

	var nilPtr *int
	got, err = rtfmt.Format("{} {:p}", nilPtr, nilPtr)
	require.NoError(t, err)
	assert.Equal(t, "<nil> 0x0", got)
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()
	for _, x := range []string{"", "x", "hello world", "a:b", "0$", "né"} {
		got, err := rtfmt.Format("{{" + x + "}}")
		require.NoError(t, err)
		assert.Equal(t, "{"+x+"}", got)
	}
}

// --- Errors ---

func TestFormatErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   error
	}{
		"no values":          {format: "{}", want: &rtfmt.IndexError{Index: 0}},
		"index too large":    {format: "{7}", args: []any{1, 2}, want: &rtfmt.IndexError{Index: 7}},
		"one too many":       {format: "{} {} {}", args: []any{"", ""}, want: &rtfmt.IndexError{Index: 2}},
		"count index":        {format: "{:5$}", args: []any{1}, want: &rtfmt.IndexError{Index: 5}},
		"unknown name":       {format: "{nope}", want: &rtfmt.NameError{Name: "nope"}},
		"unknown count name": {format: "{:w$}", args: []any{1}, want: &rtfmt.NameError{Name: "w"}},
		"count name first":   {format: "{5:w$}", want: &rtfmt.NameError{Name: "w"}},
		"precision first":    {format: "{:a$.b$}", args: []any{1}, want: &rtfmt.NameError{Name: "b"}},
		"count index first":  {format: "{3:.*}", want: &rtfmt.IndexError{Index: 0}},
		"name then count":    {format: "{x:w$}", want: &rtfmt.NameError{Name: "x"}},
		"no such format":     {format: "{:q}", args: []any{""}, want: &rtfmt.NoSuchFormatError{Code: "q"}},
		"no debug": {
			format: "{:?}", args: []any{opaque{}},
			want: &rtfmt.UnsatisfiedError{Index: 0, Capability: "Debug"},
		},
		"no hex on string": {
			format: "{} {:x}", args: []any{1, "s"},
			want: &rtfmt.UnsatisfiedError{Index: 1, Capability: "LowerHex"},
		},
		"no octal on float": {
			format: "{:o}", args: []any{1.5},
			want: &rtfmt.UnsatisfiedError{Index: 0, Capability: "Octal"},
		},
		"no display on slice": {
			format: "{}", args: []any{[]int{1}},
			want: &rtfmt.UnsatisfiedError{Index: 0, Capability: "Display"},
		},
		"count not integer": {format: "{:.*}", args: []any{"Not A Usize", "aaaa"}, want: &rtfmt.CountError{Index: 0}},
		"count negative":    {format: "{:.*}", args: []any{-1, "a"}, want: &rtfmt.CountError{Index: 0}},
		"count float":       {format: "{:1$}", args: []any{"a", 2.0}, want: &rtfmt.CountError{Index: 1}},
		"count too large":   {format: "{:1$}", args: []any{"a", int64(1) << 40}, want: &rtfmt.CountError{Index: 1}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := rtfmt.Format(tt.format, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   error
	}{
		"syntax":      {format: "{", want: rtfmt.ErrBadSyntax},
		"index":       {format: "{}", want: rtfmt.ErrBadIndex},
		"name":        {format: "{x}", want: rtfmt.ErrBadName},
		"format":      {format: "{:z}", args: []any{1}, want: rtfmt.ErrNoSuchFormat},
		"unsatisfied": {format: "{:b}", args: []any{"s"}, want: rtfmt.ErrUnsatisfiedFormat},
		"count":       {format: "{:.*}", args: []any{"s", "s"}, want: rtfmt.ErrBadCount},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := rtfmt.Format(tt.format, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format  string
		offsets []int
	}{
		"negative index":  {format: "{-1}", offsets: []int{1}},
		"unterminated":    {format: "abc {", offsets: []int{5}},
		"unmatched close": {format: "a } b", offsets: []int{2}},
		"two bad args":    {format: "{0 a} and {x!}", offsets: []int{2, 12}},
		"bad then close":  {format: "{:q x} }", offsets: []int{3, 7}},
		"huge index":      {format: "{99999999999}", offsets: []int{1}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := rtfmt.Format(tt.format, 1, 2, 3)
			var syntaxErr *rtfmt.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			offsets := make([]int, len(syntaxErr.Diagnostics))
			for i, d := range syntaxErr.Diagnostics {
				offsets[i] = d.Offset
				assert.NotEmpty(t, d.Message)
			}
			assert.Equal(t, tt.offsets, offsets)
		})
	}
}

func TestSyntaxErrorMessages(t *testing.T) {
	t.Parallel()
	err := rtfmt.Validate("{0 a} }")
	var syntaxErr *rtfmt.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Len(t, syntaxErr.Diagnostics, 2)
	assert.Equal(t, "expected `}`, found ' '", syntaxErr.Diagnostics[0].Message)
	assert.Contains(t, syntaxErr.Diagnostics[0].Note, "{{")
	assert.Equal(t, "unmatched `}` found", syntaxErr.Diagnostics[1].Message)
	assert.Contains(t, syntaxErr.Diagnostics[1].Note, "}}")
	assert.Contains(t, err.Error(), "unmatched `}` found")

	assert.NoError(t, rtfmt.Validate("{} {x:>5} {{}}"))
}

func TestSyntaxErrorTakesPriority(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"bad name first":  "{nope} {",
		"bad index first": "{9} }",
		"bad kind first":  "{:q} {0",
	}
	for name, format := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := rtfmt.Format(format, 1)
			require.ErrorIs(t, err, rtfmt.ErrBadSyntax)
		})
	}
}

func TestCapabilityErrorPropagates(t *testing.T) {
	t.Parallel()
	b, err := rtfmt.New("before {} after", failing{})
	require.NoError(t, err)

	_, err = b.Text()
	require.ErrorIs(t, err, errRender)

	var buf bytes.Buffer
	_, err = b.WriteTo(&buf)
	require.ErrorIs(t, err, errRender)
	assert.Empty(t, buf.String(), "a failed render must not write partial output")
}

// --- Sinks ---

func TestWrite(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, rtfmt.Write(&buf, "{} + {} = {}", 1, 2, 3))
	assert.Equal(t, "1 + 2 = 3", buf.String())
}

func TestWriteSinkError(t *testing.T) {
	t.Parallel()
	err := rtfmt.Write(&errWriter{}, "hello {}", "world")
	require.ErrorIs(t, err, rtfmt.ErrSink)
	require.ErrorIs(t, err, errWriteFailed)
	var sinkErr *rtfmt.SinkError
	require.ErrorAs(t, err, &sinkErr)
}

func TestWriteResolutionErrorWritesNothing(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := rtfmt.Write(&buf, "ok {missing}")
	require.ErrorIs(t, err, rtfmt.ErrBadName)
	assert.Empty(t, buf.String())
}

func TestBufferWriteTo(t *testing.T) {
	t.Parallel()
	b, err := rtfmt.New("{name:>6}", rtfmt.Named("name", "Bort"))
	require.NoError(t, err)
	var sb strings.Builder
	n, err := b.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, "  Bort", sb.String())

	// Rendering is repeatable.
	got, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("  Bort"), got)
}

// --- Newline ---

func TestWriteln(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"empty":           {format: "", want: "\n"},
		"literal":         {format: "abc", want: "abc\n"},
		"trailing arg":    {format: "{}", args: []any{1}, want: "1\n"},
		"trailing text":   {format: "a{}b", args: []any{1}, want: "a1b\n"},
		"explicit spec":   {format: "{:>3}", args: []any{1}, want: "  1\n"},
		"spec then text":  {format: "{:>3}!", args: []any{1}, want: "  1!\n"},
		"count arguments": {format: "{:.*}", args: []any{1, "ab"}, want: "a\n"},
		"escaped end":     {format: "{}}}", args: []any{1}, want: "1}\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, rtfmt.Writeln(&buf, tt.format, tt.args...))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewlineTwice(t *testing.T) {
	t.Parallel()
	b, err := rtfmt.New("{}", 1)
	require.NoError(t, err)
	got, err := b.Newline().Newline().Text()
	require.NoError(t, err)
	assert.Equal(t, "1\n\n", got)
}

// --- Parser ---

func TestParserPieces(t *testing.T) {
	t.Parallel()
	p := rtfmt.NewParser("a{{b{x:_^+#08.*?}c{2:w$.3e}")
	var pieces []rtfmt.Piece
	for piece := range p.Pieces() {
		pieces = append(pieces, piece)
	}
	require.Empty(t, p.Errors())
	assert.Equal(t, []rtfmt.Piece{
		{Literal: "a"},
		{Literal: "{"},
		{Literal: "b"},
		{Argument: &rtfmt.Argument{
			Position: rtfmt.Position{Kind: rtfmt.PositionName, Name: "x"},
			Spec: rtfmt.RawSpec{
				Fill:      '_',
				Align:     rtfmt.AlignCenter,
				Flags:     rtfmt.FlagPlus | rtfmt.FlagAlternate | rtfmt.FlagZero,
				Width:     rtfmt.Count{Kind: rtfmt.CountLiteral, Value: 8},
				Precision: rtfmt.Count{Kind: rtfmt.CountNext, Value: 0},
				Kind:      "?",
			},
		}},
		{Literal: "c"},
		{Argument: &rtfmt.Argument{
			Position: rtfmt.Position{Kind: rtfmt.PositionIndex, Index: 2},
			Spec: rtfmt.RawSpec{
				Width:     rtfmt.Count{Kind: rtfmt.CountName, Name: "w"},
				Precision: rtfmt.Count{Kind: rtfmt.CountLiteral, Value: 3},
				Kind:      "e",
			},
		}},
	}, pieces)
}

func TestParserImplicitCursor(t *testing.T) {
	t.Parallel()
	p := rtfmt.NewParser("{} {x} {:.*} {3} {}")
	var positions []rtfmt.Position
	for piece := range p.Pieces() {
		if piece.Argument != nil {
			positions = append(positions, piece.Argument.Position)
		}
	}
	assert.Equal(t, []rtfmt.Position{
		{Kind: rtfmt.PositionImplicit, Index: 0},
		{Kind: rtfmt.PositionName, Name: "x"},
		{Kind: rtfmt.PositionImplicit, Index: 2},
		{Kind: rtfmt.PositionIndex, Index: 3},
		{Kind: rtfmt.PositionImplicit, Index: 3},
	}, positions)
}

func TestParserWidthWordIsKind(t *testing.T) {
	t.Parallel()
	p := rtfmt.NewParser("{:x}")
	for piece := range p.Pieces() {
		require.NotNil(t, piece.Argument)
		assert.Equal(t, rtfmt.Count{}, piece.Argument.Spec.Width)
		assert.Equal(t, "x", piece.Argument.Spec.Kind)
	}
}

func TestParserRestartable(t *testing.T) {
	t.Parallel()
	p := rtfmt.NewParser("{} }")
	count := func() int {
		n := 0
		for range p.Pieces() {
			n++
		}
		return n
	}
	assert.Equal(t, count(), count())
	assert.Len(t, p.Errors(), 1)
}

func TestFlagsAndAlignmentString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "+#0", (rtfmt.FlagPlus | rtfmt.FlagAlternate | rtfmt.FlagZero).String())
	assert.Equal(t, "", rtfmt.Flags(0).String())
	assert.Equal(t, "^", rtfmt.AlignCenter.String())
	assert.Equal(t, "", rtfmt.AlignUnknown.String())
}
