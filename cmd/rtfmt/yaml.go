package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// readYAML reads a sequence of mappings, or a single mapping as one row.
// Decoding goes through yaml.Node so that keys keep their document order.
func readYAML(r io.Reader) (*table, error) {
	t := newTable()
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return nil, err
	}

	n := &doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	switch n.Kind {
	case yaml.MappingNode:
		return t, t.addNode(n)
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err := t.addNode(item); err != nil {
				return nil, err
			}
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: line %d: expected a list of mappings", errBadData, n.Line)
	}
}

func (t *table) addNode(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: row is not a mapping", errBadData, n.Line)
	}
	keys := make([]string, 0, len(n.Content)/2)
	values := make([]any, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return err
		}
		keys = append(keys, n.Content[i].Value)
		values = append(values, v)
	}
	t.add(keys, values)
	return nil
}
