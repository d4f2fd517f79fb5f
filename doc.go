// Package rtfmt renders format strings that are only known at run time.
//
// The format language is the brace mini-language of compile-time
// formatters: "{}" takes the next argument, "{2}" and "{name}" pick one,
// and a specifier after ":" controls fill, alignment, sign, width,
// precision and display kind:
//
//	rtfmt.Format("{:>8.3}|{name:*^9}|{:#x}", 3.14159, 255, rtfmt.Named("name", "mid"))
//	// "   3.142|***mid***|0xff"
//
// Literal braces are written "{{" and "}}". Width and precision can come
// from other arguments: "{:1$}" uses argument 1, "{:w$}" the argument named
// w, and "{:.*}" the next sequential argument.
//
// # Immediate and Prepared
//
// [New] (and the [Format], [Write], [Writeln] shortcuts) parses a format
// string and resolves it against concrete arguments in one step. Each call
// checks the string again.
//
// [Prepare] checks a format string once against a [Schema] describing a
// type T. The returned [Prepared] renders any number of T values, from any
// number of goroutines, without parsing or checking again:
//
//	type Row struct {
//		ID   int
//		Name string `rtfmt:"rename=name"`
//	}
//
//	p, err := rtfmt.Prepare("{ID:>4} {name}", rtfmt.MustSchemaFor[Row]())
//	text, err := p.Text(Row{ID: 7, Name: "Bort"})
//
// [SchemaFor] derives a schema from struct fields and tags; [FieldSchema]
// builds one from accessor functions.
//
// # Capabilities
//
// Each display kind needs a capability on the argument's type:
//
//   - "" → Display: integers, floats, strings, bools, [Displayer],
//     [fmt.Stringer], error
//   - "?" → Debug: the Display types (strings are quoted), slices, arrays
//     and maps of Debug values, [Debugger], [fmt.GoStringer]
//   - "e", "E" → LowerExp, UpperExp: integers, floats, [LowerExper], [UpperExper]
//   - "o", "b", "x", "X" → Octal, Binary, LowerHex, UpperHex: integers and
//     the matching interfaces
//   - "p" → Pointer: pointers, maps, slices, channels, funcs, [Pointerer]
//
// Pointers to a type share its capabilities. Use [Supports] to probe a type.
// Widths and precisions taken from arguments need an integer type.
//
// # Errors
//
// Every error matches one sentinel with [errors.Is]:
//
//   - [ErrBadSyntax] → [*SyntaxError] with every grammar violation found
//   - [ErrBadIndex] → [*IndexError]
//   - [ErrBadName] → [*NameError]
//   - [ErrNoSuchFormat] → [*NoSuchFormatError]
//   - [ErrUnsatisfiedFormat] → [*UnsatisfiedError]
//   - [ErrBadCount] → [*CountError]
//   - [ErrSink] → [*SinkError], a failing destination writer
//   - [ErrInvalidSchema] → [*SchemaError] from [SchemaFor]
//
// Syntax errors win over the others: a string with a bad name and a
// missing brace reports the brace.
package rtfmt
