package rtfmt

import (
	"bytes"
	"io"
)

// Buffer is a format string resolved against concrete arguments. Rendering
// it cannot fail on names, indexes or capabilities: those were checked by
// [New].
type Buffer struct {
	plan *plan[none]
}

// New parses format and resolves it against args. A [NamedArg] (see
// [Named]) can be referenced by name as well as by position; any other
// value is positional only.
func New(format string, args ...any) (*Buffer, error) {
	p, err := build[none](format, newImmediate(args))
	if err != nil {
		return nil, err
	}
	return &Buffer{plan: p}, nil
}

// Newline appends a newline to the output and returns b. It must not run
// concurrently with rendering.
func (b *Buffer) Newline() *Buffer {
	b.plan.newline()
	return b
}

// Bytes renders the buffer.
func (b *Buffer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.plan.render(&buf, none{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text renders the buffer as a string.
func (b *Buffer) Text() (string, error) {
	out, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WriteTo renders the buffer and writes it to w in a single write. Nothing
// is written if rendering fails; a failing w is reported as a [*SinkError].
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := b.plan.render(&buf, none{}); err != nil {
		return 0, err
	}
	return flush(w, &buf)
}

func flush(w io.Writer, buf *bytes.Buffer) (int64, error) {
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, &SinkError{Err: err}
	}
	return n, nil
}
