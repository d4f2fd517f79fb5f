package rtfmt

import (
	"bytes"
	"errors"
)

// argument is a resolved argument slot: either a renderer for a display
// kind, or a count accessor for a width or precision.
type argument[V any] struct {
	index  int // position in the argument list or schema, for errors
	render func(f *Formatter, v V) error
	count  func(v V) (int, bool)
}

func (a argument[V]) format(f *Formatter, v V) error {
	err := a.render(f, v)
	var u *unsupported
	if errors.As(err, &u) {
		return &UnsatisfiedError{Index: a.index, Capability: u.kind.Capability()}
	}
	return err
}

type countSource int

const (
	countImplied countSource = iota
	countLiteral
	countSlot
)

// planCount is a resolved width or precision: a literal, or the slot of a
// count argument.
type planCount struct {
	source countSource
	n      int
}

// placement is a normalized specifier bound to an argument slot.
type placement struct {
	arg       int
	fill      rune
	align     Alignment
	flags     Flags
	width     planCount
	precision planCount
}

func defaultPlacement(arg int) placement {
	return placement{arg: arg, fill: ' '}
}

func (p placement) isDefault() bool {
	return p == defaultPlacement(p.arg)
}

// plan is a parsed and resolved format string. pieces[i] precedes the i-th
// placement; a trailing piece follows the last one. specs is nil when every
// placement is default and slot i is the i-th placement, in which case the
// renderer skips specifier handling.
type plan[V any] struct {
	pieces []string
	args   []argument[V]
	specs  []placement
}

func build[V any](format string, t target[V]) (*plan[V], error) {
	b := builder[V]{target: t, implicit: true}
	p := NewParser(format)

	var (
		literal    string
		resolveErr error
	)
	for piece := range p.Pieces() {
		if piece.Argument == nil {
			literal += piece.Literal
			continue
		}
		// Keep scanning after a resolution error: syntax errors further on
		// take priority.
		if resolveErr != nil {
			continue
		}
		b.plan.pieces = append(b.plan.pieces, literal)
		literal = ""
		resolveErr = b.argument(*piece.Argument)
	}
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &SyntaxError{Diagnostics: errs}
	}
	if resolveErr != nil {
		return nil, resolveErr
	}
	if literal != "" {
		b.plan.pieces = append(b.plan.pieces, literal)
	}
	return &b.plan, nil
}

type builder[V any] struct {
	plan     plan[V]
	target   target[V]
	implicit bool
	placed   int
}

// argument resolves one reference. Errors are checked in a fixed order: the
// argument's name, the precision, the width, the argument's index, and last
// the kind. So "{5:w$}" with no arguments reports the name w.
func (b *builder[V]) argument(arg Argument) error {
	index, err := b.position(arg.Position)
	if err != nil {
		return err
	}
	precision, err := b.count(arg.Spec.Precision)
	if err != nil {
		return err
	}
	width, err := b.count(arg.Spec.Width)
	if err != nil {
		return err
	}
	if !b.target.validateIndex(index) {
		return &IndexError{Index: index}
	}
	kind, err := ParseKind(arg.Spec.Kind)
	if err != nil {
		return err
	}
	a, err := b.target.resolveDisplay(kind, index)
	if err != nil {
		return err
	}

	slot := len(b.plan.args)
	b.plan.args = append(b.plan.args, a)

	pl := placement{
		arg:       slot,
		fill:      arg.Spec.Fill,
		align:     arg.Spec.Align,
		flags:     arg.Spec.Flags,
		width:     width,
		precision: precision,
	}
	if pl.fill == 0 {
		pl.fill = ' '
	}
	if b.implicit && (!pl.isDefault() || slot != b.placed) {
		b.implicit = false
		b.plan.specs = make([]placement, b.placed, b.placed+1)
		for i := range b.placed {
			b.plan.specs[i] = defaultPlacement(i)
		}
	}
	if !b.implicit {
		b.plan.specs = append(b.plan.specs, pl)
	}
	b.placed++
	return nil
}

// position maps a named reference to its index. Indexes are bounds checked
// by the caller once the counts are resolved.
func (b *builder[V]) position(pos Position) (int, error) {
	if pos.Kind != PositionName {
		return pos.Index, nil
	}
	index, ok := b.target.validateName(pos.Name)
	if !ok {
		return 0, &NameError{Name: pos.Name}
	}
	return index, nil
}

// count resolves a width or precision. References to other arguments get
// their own count slot, appended before the slot that uses them.
func (b *builder[V]) count(c Count) (planCount, error) {
	var index int
	switch c.Kind {
	case CountImplied:
		return planCount{}, nil
	case CountLiteral:
		return planCount{source: countLiteral, n: c.Value}, nil
	case CountName:
		i, ok := b.target.validateName(c.Name)
		if !ok {
			return planCount{}, &NameError{Name: c.Name}
		}
		index = i
	default:
		if !b.target.validateIndex(c.Value) {
			return planCount{}, &IndexError{Index: c.Value}
		}
		index = c.Value
	}
	a, err := b.target.resolveCount(index)
	if err != nil {
		return planCount{}, err
	}
	b.plan.args = append(b.plan.args, a)
	return planCount{source: countSlot, n: len(b.plan.args) - 1}, nil
}

// newline appends "\n" to the output, extending the trailing piece when
// there is one.
func (p *plan[V]) newline() {
	n := len(p.args)
	if p.specs != nil {
		n = len(p.specs)
	}
	if len(p.pieces) > n {
		p.pieces[len(p.pieces)-1] += "\n"
	} else {
		p.pieces = append(p.pieces, "\n")
	}
}

func (p *plan[V]) render(buf *bytes.Buffer, v V) error {
	f := newFormatter(buf)
	n := len(p.args)
	if p.specs == nil {
		for i, a := range p.args {
			buf.WriteString(p.pieces[i])
			if err := a.format(f, v); err != nil {
				return err
			}
		}
	} else {
		n = len(p.specs)
		for i, s := range p.specs {
			buf.WriteString(p.pieces[i])
			if err := p.apply(f, s, v); err != nil {
				return err
			}
			if err := p.args[s.arg].format(f, v); err != nil {
				return err
			}
		}
	}
	if len(p.pieces) > n {
		buf.WriteString(p.pieces[n])
	}
	return nil
}

// apply loads a placement into the formatter, reading counts from their
// slots.
func (p *plan[V]) apply(f *Formatter, s placement, v V) error {
	f.reset()
	f.fill = s.fill
	f.align = s.align
	f.flags = s.flags
	var err error
	if f.width, f.hasWidth, err = p.countValue(s.width, v); err != nil {
		return err
	}
	f.precision, f.hasPrecision, err = p.countValue(s.precision, v)
	return err
}

func (p *plan[V]) countValue(c planCount, v V) (int, bool, error) {
	switch c.source {
	case countLiteral:
		return c.n, true, nil
	case countSlot:
		a := p.args[c.n]
		n, ok := a.count(v)
		if !ok {
			return 0, false, &CountError{Index: a.index}
		}
		return n, true, nil
	default:
		return 0, false, nil
	}
}
