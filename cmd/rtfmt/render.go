package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bjaus/rtfmt"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] FORMAT",
		Short: "Render data rows through a format string",
		Long: `Render reads rows from a data file and writes each one through FORMAT.
Columns are arguments: {0} is the first column and {name} the column called
name. Width and precision may come from columns too, as in {name:>width$}.`,
		Example: `  rtfmt render '{name:<10} {age:>3}' --data people.csv
  rtfmt render '{id:#06x} {msg:?}' --input jsonl < events.jsonl
  rtfmt render '{0}: {1}' --data rows.tsv.zst`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
	flags := cmd.Flags()
	flags.StringP("data", "d", "-", "row file to read, - for stdin")
	flags.StringP("input", "i", "", "row file format (csv|tsv|json|jsonl|yaml|toml|msgpack), guessed from the extension when empty")
	flags.StringP("compression", "z", "", "row file compression (none|gzip|zstd), guessed from the extension when empty")
	flags.Bool("header", false, "print the column names and a rule before the rows")
	flags.Bool("newline", true, "end every row with a newline")
	flags.Int("workers", 1, "render with this many goroutines")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	name, codec := compression(opts.Data)
	if opts.Compression != "" {
		if codec, err = ParseCodec(opts.Compression); err != nil {
			return err
		}
	}
	in, err := resolveInput(opts.Input, name)
	if err != nil {
		return err
	}
	raw, closeData, err := openData(cmd.InOrStdin(), opts.Data)
	if err != nil {
		return err
	}
	defer closeData()
	r, closeCodec, err := codec.reader(raw)
	if err != nil {
		return err
	}
	defer closeCodec()

	t, err := readTable(r, in)
	if err != nil {
		return fmt.Errorf("failed to read %s rows: %w", in, err)
	}
	logger.Debug("read rows", "input", in, "compression", codec, "rows", len(t.rows), "columns", strings.Join(t.columns, ","))

	p, err := rtfmt.Prepare(norm.NFC.String(args[0]), t.schema())
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if opts.Newline {
		p.Newline()
	}

	out := cmd.OutOrStdout()
	if opts.Header {
		if err := writeHeader(out, t.columns); err != nil {
			return err
		}
	}

	if opts.Workers > 1 {
		logger.Debug("rendering concurrently", "workers", opts.Workers)
		texts, err := rtfmt.FormatAll(cmd.Context(), p, t.rows, opts.Workers)
		if err != nil {
			return err
		}
		for _, text := range texts {
			if _, err := io.WriteString(out, text); err != nil {
				return err
			}
		}
		return nil
	}
	return rtfmt.WriteIter(out, p, slices.Values(t.rows))
}

// writeHeader writes the column names and a rule as wide as they are on
// screen.
func writeHeader(w io.Writer, columns []string) error {
	line := strings.Join(columns, "  ")
	return rtfmt.Writeln(w, "{0}\n{2:─<1$}", line, runewidth.StringWidth(line), "")
}

func openData(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
