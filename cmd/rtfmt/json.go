package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// readJSON reads an array of objects, or a single object as one row. Keys
// keep their document order.
func readJSON(r io.Reader) (*table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	t := newTable()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		return t, t.addObject(dec)
	case json.Delim('['):
		for dec.More() {
			if err := t.addJSON(dec); err != nil {
				return nil, err
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: expected an array of objects", errBadData)
	}
}

// readJSONL reads a stream of objects, one row each.
func readJSONL(r io.Reader) (*table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	t := newTable()
	for {
		err := t.addJSON(dec)
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (t *table) addJSON(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("%w: row at offset %d is not an object", errBadData, dec.InputOffset())
	}
	return t.addObject(dec)
}

// addObject reads the members of an object whose opening brace has been
// consumed.
func (t *table) addObject(dec *json.Decoder) error {
	var (
		keys   []string
		values []any
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		keys = append(keys, key)
		values = append(values, jsonValue(v))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	t.add(keys, values)
	return nil
}

// jsonValue turns numbers into int64 when they are integral and float64
// otherwise.
func jsonValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = jsonValue(x[i])
		}
	case map[string]any:
		for k := range x {
			x[k] = jsonValue(x[k])
		}
	}
	return v
}
