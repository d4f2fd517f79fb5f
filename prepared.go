package rtfmt

import (
	"bytes"
	"io"
)

// Prepared is a format string checked once against a [Schema] and rendered
// against any number of values of type T. Rendering only re-reads the
// values: names, indexes and capabilities are not checked again.
//
// A Prepared is safe for concurrent rendering. [Prepared.Newline] is not.
type Prepared[T any] struct {
	plan *plan[T]
}

// Prepare parses format and resolves it against schema.
func Prepare[T any](format string, schema Schema[T]) (*Prepared[T], error) {
	p, err := build[T](format, prepared[T]{schema: schema})
	if err != nil {
		return nil, err
	}
	return &Prepared[T]{plan: p}, nil
}

// MustPrepare is like [Prepare] but panics on error. It is meant for format
// strings known when the program is written.
func MustPrepare[T any](format string, schema Schema[T]) *Prepared[T] {
	p, err := Prepare(format, schema)
	if err != nil {
		panic(err)
	}
	return p
}

// Newline appends a newline to the output and returns p.
func (p *Prepared[T]) Newline() *Prepared[T] {
	p.plan.newline()
	return p
}

// Bytes renders v.
func (p *Prepared[T]) Bytes(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.plan.render(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text renders v as a string.
func (p *Prepared[T]) Text(v T) (string, error) {
	out, err := p.Bytes(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Write renders v and writes it to w in a single write. Nothing is written
// if rendering fails; a failing w is reported as a [*SinkError].
func (p *Prepared[T]) Write(w io.Writer, v T) error {
	var buf bytes.Buffer
	if err := p.plan.render(&buf, v); err != nil {
		return err
	}
	_, err := flush(w, &buf)
	return err
}
