package rtfmt

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// RenderFunc renders one field of a T.
type RenderFunc[T any] func(f *Formatter, v T) error

// CountFunc reads one field of a T as a width or precision. It reports false
// when the field's value is not a non-negative integer.
type CountFunc[T any] func(v T) (int, bool)

// Schema describes the arguments a T provides to a prepared format string:
// which names and indexes exist, and how each field renders.
//
// Implementations are usually a [StructSchema] or a [FieldSchema], but any
// type can implement it by hand. Resolve and Count are only called with
// indexes accepted by ValidateIndex or returned by ValidateName.
type Schema[T any] interface {
	// ValidateName returns the index of the field called name.
	ValidateName(name string) (int, bool)
	// ValidateIndex reports whether index is a field.
	ValidateIndex(index int) bool
	// Resolve returns the renderer for the field at index shown as kind, or
	// false if the field's type lacks that capability.
	Resolve(kind Kind, index int) (RenderFunc[T], bool)
	// Count returns an accessor reading the field at index as a count, or
	// false if the field's type is not an integer.
	Count(index int) (CountFunc[T], bool)
}

// Combine composes a field accessor with the renderer for the field's type
// F shown as kind. It reports false when F lacks the capability.
func Combine[T, F any](kind Kind, get func(T) F) (RenderFunc[T], bool) {
	render, ok := lookup(kind, reflect.TypeFor[F]())
	if !ok {
		return nil, false
	}
	return func(f *Formatter, v T) error {
		x := get(v)
		return render(f, reflect.ValueOf(&x).Elem())
	}, true
}

// CountOf composes a field accessor with a count conversion. It reports
// false when F is not an integer type.
func CountOf[T, F any](get func(T) F) (CountFunc[T], bool) {
	if !countable(reflect.TypeFor[F]()) {
		return nil, false
	}
	return func(v T) (int, bool) {
		x := get(v)
		return countOf(reflect.ValueOf(&x).Elem())
	}, true
}

// --- FieldSchema ---

// FieldSchema is a [Schema] assembled from accessor functions with
// [AddField].
type FieldSchema[T any] struct {
	names  map[string]int
	fields []schemaField[T]
}

type schemaField[T any] struct {
	resolve func(kind Kind) (RenderFunc[T], bool)
	count   CountFunc[T]
}

// NewFieldSchema returns an empty schema.
func NewFieldSchema[T any]() *FieldSchema[T] {
	return &FieldSchema[T]{names: map[string]int{}}
}

// AddField appends a field read by get. The field is reachable by its index
// and by each of names. It panics if a name is already used or is not an
// identifier.
func AddField[T, F any](s *FieldSchema[T], get func(T) F, names ...string) *FieldSchema[T] {
	for _, name := range names {
		if !isIdentifier(name) {
			panic("rtfmt: field name " + strconv.Quote(name) + " is not an identifier")
		}
		if _, dup := s.names[name]; dup {
			panic("rtfmt: duplicate field name " + strconv.Quote(name))
		}
	}
	index := len(s.fields)
	for _, name := range names {
		s.names[name] = index
	}
	count, _ := CountOf(get)
	s.fields = append(s.fields, schemaField[T]{
		resolve: func(kind Kind) (RenderFunc[T], bool) { return Combine(kind, get) },
		count:   count,
	})
	return s
}

func (s *FieldSchema[T]) ValidateName(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

func (s *FieldSchema[T]) ValidateIndex(index int) bool {
	return index >= 0 && index < len(s.fields)
}

func (s *FieldSchema[T]) Resolve(kind Kind, index int) (RenderFunc[T], bool) {
	return s.fields[index].resolve(kind)
}

func (s *FieldSchema[T]) Count(index int) (CountFunc[T], bool) {
	count := s.fields[index].count
	return count, count != nil
}

// --- StructSchema ---

const tagName = "rtfmt"

// StructSchema is a [Schema] derived from the exported fields of a struct
// type. Fields are indexed in declaration order, skipping ignored ones, and
// named after the Go field. The rtfmt struct tag adjusts this:
//
//	Name  string `rtfmt:"rename=name"`            // called name instead of Name
//	City  string `rtfmt:"aliases=town|place"`     // also called town and place
//	Notes string `rtfmt:"ignore"`                 // not a field
type StructSchema[T any] struct {
	names  map[string]int
	fields []structField
}

type structField struct {
	name  string
	index []int
	typ   reflect.Type
}

type fieldAttrs struct {
	rename  string
	aliases []string
	ignore  bool
}

// SchemaFor builds the schema of struct type T. Every problem with the
// struct tags is reported together in a [*SchemaError].
func SchemaFor[T any]() (*StructSchema[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, t)
	}

	var diags Diagnostics
	s := &StructSchema[T]{names: map[string]int{}}
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		attrs := parseTag(&diags, sf)
		if attrs.ignore {
			continue
		}

		index := len(s.fields)
		s.fields = append(s.fields, structField{name: sf.Name, index: sf.Index, typ: sf.Type})

		name := sf.Name
		if attrs.rename != "" {
			name = attrs.rename
		}
		for _, n := range append(attrs.aliases, name) {
			if !isIdentifier(n) {
				diags.Add("%s: invalid field name %q", sf.Name, n)
				continue
			}
			if _, dup := s.names[n]; dup {
				diags.Add("duplicate field alias: %s", n)
				continue
			}
			s.names[n] = index
		}
	}
	if diags.HasErrors() {
		return nil, &SchemaError{Type: t.String(), Diagnostics: diags}
	}
	return s, nil
}

// MustSchemaFor is like [SchemaFor] but panics on error.
func MustSchemaFor[T any]() *StructSchema[T] {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}

func parseTag(diags *Diagnostics, sf reflect.StructField) fieldAttrs {
	var attrs fieldAttrs
	tag, ok := sf.Tag.Lookup(tagName)
	if !ok || tag == "" {
		return attrs
	}
	seen := map[string]bool{}
	first := func(key string) bool {
		if seen[key] {
			diags.Add("%s: duplicate attribute provided: %s", sf.Name, key)
			return false
		}
		seen[key] = true
		return true
	}
	for _, item := range strings.Split(tag, ",") {
		item = strings.TrimSpace(item)
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "ignore" && !hasValue:
			if first(key) {
				attrs.ignore = true
			}
		case key == "rename" && value != "":
			if first(key) {
				attrs.rename = value
			}
		case key == "aliases" && value != "":
			if first(key) {
				attrs.aliases = strings.Split(value, "|")
			}
		default:
			diags.Add("%s: unrecognized attribute: %q", sf.Name, item)
		}
	}
	return attrs
}

// Names returns the Go names of the schema's fields in index order.
func (s *StructSchema[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

func (s *StructSchema[T]) ValidateName(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

func (s *StructSchema[T]) ValidateIndex(index int) bool {
	return index >= 0 && index < len(s.fields)
}

func (s *StructSchema[T]) Resolve(kind Kind, index int) (RenderFunc[T], bool) {
	field := s.fields[index]
	render, ok := lookup(kind, field.typ)
	if !ok {
		return nil, false
	}
	return func(f *Formatter, v T) error {
		return render(f, reflect.ValueOf(v).FieldByIndex(field.index))
	}, true
}

func (s *StructSchema[T]) Count(index int) (CountFunc[T], bool) {
	field := s.fields[index]
	if !countable(field.typ) {
		return nil, false
	}
	return func(v T) (int, bool) {
		return countOf(reflect.ValueOf(v).FieldByIndex(field.index))
	}, true
}

func isIdentifier(s string) bool {
	sc := scanner{src: s}
	return s != "" && sc.word() == s
}
