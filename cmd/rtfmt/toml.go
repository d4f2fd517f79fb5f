package main

import (
	"io"

	"github.com/BurntSushi/toml"
)

// tomlRowTable is the array of tables holding the rows:
//
//	[[row]]
//	name = "Bort"
//	age = 7
const tomlRowTable = "row"

func readTOML(r io.Reader) (*table, error) {
	var doc struct {
		Rows []map[string]any `toml:"row"`
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, err
	}

	// Maps lose the key order; the metadata keeps it.
	var order []string
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == tomlRowTable && !seen[key[1]] {
			seen[key[1]] = true
			order = append(order, key[1])
		}
	}

	t := newTable()
	for _, m := range doc.Rows {
		keys := make([]string, 0, len(m))
		values := make([]any, 0, len(m))
		for _, k := range order {
			if v, ok := m[k]; ok {
				keys = append(keys, k)
				values = append(values, v)
			}
		}
		t.add(keys, values)
	}
	return t, nil
}
