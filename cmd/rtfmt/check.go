package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/rtfmt"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var errInvalidFormat = errors.New("invalid format string")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FORMAT",
		Short: "Report every syntax error in a format string",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	format := args[0]
	out := cmd.OutOrStdout()
	p := newPalette(colorEnabled(opts.Color, out))

	err = rtfmt.Validate(format)
	var syntaxErr *rtfmt.SyntaxError
	if !errors.As(err, &syntaxErr) {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, p.ok.Sprint("ok"))
		return err
	}
	for _, d := range syntaxErr.Diagnostics {
		if err := writeDiagnostic(out, p, format, d); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d syntax error(s)", errInvalidFormat, len(syntaxErr.Diagnostics))
}

type palette struct {
	ok, err, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:    color.New(color.FgGreen, color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		caret: color.New(color.FgRed),
		note:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.ok, p.err, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeDiagnostic prints the message, the format string and a caret under
// the offending column. The caret column counts display cells so that it
// lines up under wide characters.
func writeDiagnostic(w io.Writer, p palette, format string, d rtfmt.Diagnostic) error {
	col := runewidth.StringWidth(format[:min(d.Offset, len(format))])
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.err.Sprint("error:"), d.Message)
	fmt.Fprintf(&b, "  %s\n", format)
	fmt.Fprintf(&b, "  %s%s\n", strings.Repeat(" ", col), p.caret.Sprint("^"))
	if d.Note != "" {
		fmt.Fprintf(&b, "  %s %s\n", p.note.Sprint("note:"), d.Note)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
