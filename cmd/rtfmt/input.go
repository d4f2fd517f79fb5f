package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bjaus/rtfmt"
	"golang.org/x/text/unicode/norm"
)

var (
	errUnsupportedInput = errors.New("unsupported input format")
	errBadData          = errors.New("malformed row data")
)

// Input is a row file format.
type Input string

const (
	CSV     Input = "csv"
	TSV     Input = "tsv"
	JSON    Input = "json"
	JSONL   Input = "jsonl"
	YAML    Input = "yaml"
	TOML    Input = "toml"
	MsgPack Input = "msgpack"
)

var inputs = []Input{CSV, TSV, JSON, JSONL, YAML, TOML, MsgPack}

var extensions = map[string]Input{
	".csv":     CSV,
	".tsv":     TSV,
	".json":    JSON,
	".jsonl":   JSONL,
	".ndjson":  JSONL,
	".yaml":    YAML,
	".yml":     YAML,
	".toml":    TOML,
	".msgpack": MsgPack,
	".mp":      MsgPack,
}

func (in Input) String() string { return string(in) }

// ParseInput parses an input format name.
func ParseInput(s string) (Input, error) {
	for _, in := range inputs {
		if string(in) == s {
			return in, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errUnsupportedInput, s)
}

// resolveInput picks the input format: the explicit name when given,
// otherwise the one matching the data file's extension.
func resolveInput(name, path string) (Input, error) {
	if name != "" {
		return ParseInput(name)
	}
	if in, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return in, nil
	}
	return "", fmt.Errorf("%w: cannot tell the format of %q, use --input", errUnsupportedInput, path)
}

func readTable(r io.Reader, in Input) (*table, error) {
	switch in {
	case CSV:
		return readCSV(r, ',')
	case TSV:
		return readCSV(r, '\t')
	case JSON:
		return readJSON(r)
	case JSONL:
		return readJSONL(r)
	case YAML:
		return readYAML(r)
	case TOML:
		return readTOML(r)
	case MsgPack:
		return readMsgPack(r)
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedInput, in)
	}
}

// row holds one record's values in column order. Rows may be shorter than
// the table when trailing columns are missing.
type row []any

func (r row) at(i int) any {
	if i < len(r) {
		return r[i]
	}
	return nil
}

// table is a set of records with the union of their keys as columns, in
// order of first appearance.
type table struct {
	columns []string
	index   map[string]int
	rows    []row
}

func newTable() *table {
	return &table{index: map[string]int{}}
}

// add appends a record. Keys are compared in Unicode normal form C, so a
// decomposed "größe" names the same column as a composed one.
func (t *table) add(keys []string, values []any) {
	var r row
	for i, key := range keys {
		key = norm.NFC.String(key)
		col, ok := t.index[key]
		if !ok {
			col = len(t.columns)
			t.index[key] = col
			t.columns = append(t.columns, key)
		}
		for len(r) <= col {
			r = append(r, nil)
		}
		r[col] = values[i]
	}
	t.rows = append(t.rows, r)
}

// schema exposes every column by position, and by name when the column name
// is an identifier. Columns hold values of any type, so capabilities are
// checked per value when rows are rendered.
func (t *table) schema() *rtfmt.FieldSchema[row] {
	s := rtfmt.NewFieldSchema[row]()
	for i, name := range t.columns {
		var names []string
		if identifier(name) {
			names = append(names, name)
		}
		rtfmt.AddField(s, func(r row) any { return r.at(i) }, names...)
	}
	return s
}

// identifier reports whether name can be referenced as {name}.
func identifier(name string) bool {
	p := rtfmt.NewParser("{" + name + "}")
	for piece := range p.Pieces() {
		arg := piece.Argument
		return arg != nil && arg.Position.Kind == rtfmt.PositionName && arg.Position.Name == name
	}
	return false
}
