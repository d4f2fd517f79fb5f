package rtfmt

import "reflect"

// target resolves argument references while a plan is built. V is the value
// a built plan is rendered against: nothing for immediate plans, whose
// values are bound at build time, and the schema's type for prepared ones.
type target[V any] interface {
	validateName(name string) (int, bool)
	validateIndex(index int) bool
	resolveDisplay(kind Kind, index int) (argument[V], error)
	resolveCount(index int) (argument[V], error)
}

// none is the render-time value of immediate plans.
type none struct{}

type param struct {
	name  string
	value reflect.Value
}

// immediate resolves against concrete values, eagerly.
type immediate []param

func newImmediate(args []any) immediate {
	params := make(immediate, len(args))
	for i, arg := range args {
		if named, ok := arg.(NamedArg); ok {
			params[i] = param{name: named.Name, value: reflect.ValueOf(named.Value)}
			continue
		}
		params[i] = param{value: reflect.ValueOf(arg)}
	}
	return params
}

func (t immediate) validateName(name string) (int, bool) {
	for i, p := range t {
		if p.name != "" && p.name == name {
			return i, true
		}
	}
	return 0, false
}

func (t immediate) validateIndex(index int) bool {
	return index >= 0 && index < len(t)
}

func (t immediate) resolveDisplay(kind Kind, index int) (argument[none], error) {
	v := t[index].value
	var typ reflect.Type
	if v.IsValid() {
		typ = v.Type()
	}
	render, ok := lookup(kind, typ)
	if !ok {
		return argument[none]{}, &UnsatisfiedError{Index: index, Capability: kind.Capability()}
	}
	return argument[none]{
		index:  index,
		render: func(f *Formatter, _ none) error { return render(f, v) },
	}, nil
}

func (t immediate) resolveCount(index int) (argument[none], error) {
	n, ok := countOf(t[index].value)
	if !ok {
		return argument[none]{}, &CountError{Index: index}
	}
	return argument[none]{
		index: index,
		count: func(none) (int, bool) { return n, true },
	}, nil
}

// prepared resolves against a schema; values arrive at render time.
type prepared[T any] struct {
	schema Schema[T]
}

func (t prepared[T]) validateName(name string) (int, bool) {
	return t.schema.ValidateName(name)
}

func (t prepared[T]) validateIndex(index int) bool {
	return index >= 0 && t.schema.ValidateIndex(index)
}

func (t prepared[T]) resolveDisplay(kind Kind, index int) (argument[T], error) {
	render, ok := t.schema.Resolve(kind, index)
	if !ok {
		return argument[T]{}, &UnsatisfiedError{Index: index, Capability: kind.Capability()}
	}
	return argument[T]{index: index, render: render}, nil
}

func (t prepared[T]) resolveCount(index int) (argument[T], error) {
	count, ok := t.schema.Count(index)
	if !ok {
		return argument[T]{}, &CountError{Index: index}
	}
	return argument[T]{index: index, count: count}, nil
}
