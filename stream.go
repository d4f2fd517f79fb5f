package rtfmt

import (
	"bytes"
	"context"
	"io"
	"iter"

	"golang.org/x/sync/errgroup"
)

// WriteIter renders each value from seq through p and writes it to w as it
// arrives. It stops at the first rendering or write error.
func WriteIter[T any](w io.Writer, p *Prepared[T], seq iter.Seq[T]) error {
	var (
		buf       bytes.Buffer
		streamErr error
	)
	seq(func(v T) bool {
		buf.Reset()
		if err := p.plan.render(&buf, v); err != nil {
			streamErr = err
			return false
		}
		if _, err := flush(w, &buf); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}

// WriteChan renders values from a channel and writes them to w.
// It is a thin wrapper around [WriteIter].
func WriteChan[T any](w io.Writer, p *Prepared[T], ch <-chan T) error {
	return WriteIter(w, p, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range ch {
			if !yield(v) {
				return
			}
		}
	}
}

// FormatAll renders every value through p using up to workers goroutines
// and returns the texts in input order. A workers value below 1 means one
// goroutine per value. The first error cancels the values not yet started.
func FormatAll[T any](ctx context.Context, p *Prepared[T], values []T, workers int) ([]string, error) {
	out := make([]string, len(values))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := p.Text(v)
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
