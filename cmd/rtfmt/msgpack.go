package main

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// readMsgPack reads an array of maps with string keys. The maps are walked
// entry by entry to keep their encoded order.
func readMsgPack(r io.Reader) (*table, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadData, err)
	}

	t := newTable()
	for range n {
		size, err := dec.DecodeMapLen()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", errBadData, len(t.rows), err)
		}
		keys := make([]string, 0, max(size, 0))
		values := make([]any, 0, max(size, 0))
		for range size {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", errBadData, len(t.rows), err)
			}
			v, err := dec.DecodeInterface()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
			values = append(values, v)
		}
		t.add(keys, values)
	}
	return t, nil
}
