package rtfmt

import (
	"fmt"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Alignment controls where padding goes when a value is narrower than the
// requested width.
type Alignment int

const (
	AlignUnknown Alignment = iota // kind default: left for text, right for numbers
	AlignLeft
	AlignCenter
	AlignRight
)

// Flags is the set of flag characters given in a specifier.
type Flags uint8

const (
	FlagPlus      Flags = 1 << iota // +
	FlagMinus                       // -
	FlagAlternate                   // #
	FlagZero                        // 0
)

// PositionKind says how an argument reference picks its value.
type PositionKind int

const (
	PositionImplicit PositionKind = iota // {} takes the next sequential index
	PositionIndex                        // {3}
	PositionName                         // {name}
)

// Position identifies the argument a reference renders. For implicit
// positions Index holds the sequential index the reference was assigned.
type Position struct {
	Kind  PositionKind
	Index int
	Name  string
}

// CountKind says where a width or precision comes from.
type CountKind int

const (
	CountImplied CountKind = iota // not given
	CountLiteral                  // 8
	CountIndex                    // 2$
	CountName                     // name$
	CountNext                     // .* (the next sequential index)
)

// Count is a width or precision as written in a specifier. Value is the
// literal for CountLiteral and the argument index for CountIndex and
// CountNext.
type Count struct {
	Kind  CountKind
	Value int
	Name  string
}

// RawSpec is the specifier of an argument reference as written. Fill is zero
// when no fill character was given.
type RawSpec struct {
	Fill      rune
	Align     Alignment
	Flags     Flags
	Width     Count
	Precision Count
	Kind      string
}

// Argument is a {...} reference found in a format string.
type Argument struct {
	Position Position
	Spec     RawSpec
}

// Piece is one token of a format string: literal text when Argument is nil,
// otherwise an argument reference.
type Piece struct {
	Literal  string
	Argument *Argument
}

const (
	noteOpen  = "if you intended to print `{`, you can escape it using `{{`"
	noteClose = "if you intended to print `}`, you can escape it using `}}`"
)

// Parser tokenizes a format string. Syntax errors do not stop the scan; they
// are collected and available from [Parser.Errors] once the sequence has
// been fully consumed.
type Parser struct {
	src    string
	errors []Diagnostic
}

// NewParser returns a parser for format.
func NewParser(format string) *Parser {
	return &Parser{src: format}
}

// Pieces returns the token sequence. Each call scans from the start and
// replaces the diagnostics of the previous scan.
func (p *Parser) Pieces() iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		s := scanner{src: p.src}
		defer func() { p.errors = s.errors }()
		for {
			piece, ok := s.next()
			if !ok || !yield(piece) {
				return
			}
		}
	}
}

// Errors returns the diagnostics collected by the last scan.
func (p *Parser) Errors() []Diagnostic {
	out := make([]Diagnostic, len(p.errors))
	copy(out, p.errors)
	return out
}

// Validate scans format and returns a [*SyntaxError] listing every grammar
// violation, or nil.
func Validate(format string) error {
	p := NewParser(format)
	for range p.Pieces() {
	}
	if len(p.errors) > 0 {
		return &SyntaxError{Diagnostics: p.Errors()}
	}
	return nil
}

type scanner struct {
	src    string
	pos    int
	cursor int
	errors []Diagnostic
}

func (s *scanner) next() (Piece, bool) {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			if s.at(s.pos+1) == '{' {
				s.pos += 2
				return Piece{Literal: "{"}, true
			}
			s.pos++
			arg := s.argument()
			return Piece{Argument: &arg}, true
		case '}':
			if s.at(s.pos+1) == '}' {
				s.pos += 2
				return Piece{Literal: "}"}, true
			}
			s.errorf(s.pos, noteClose, "unmatched `}` found")
			s.pos++
		default:
			start := s.pos
			for s.pos < len(s.src) && s.src[s.pos] != '{' && s.src[s.pos] != '}' {
				s.pos++
			}
			return Piece{Literal: s.src[start:s.pos]}, true
		}
	}
	return Piece{}, false
}

func (s *scanner) argument() Argument {
	pos, explicit := s.position()
	var spec RawSpec
	if s.consume(':') {
		spec = s.spec()
	}
	// The implicit index is taken after the specifier so that `.*` claims
	// the earlier one.
	if !explicit {
		pos = Position{Kind: PositionImplicit, Index: s.cursor}
		s.cursor++
	}
	s.close()
	return Argument{Position: pos, Spec: spec}
}

func (s *scanner) position() (Position, bool) {
	if isDigit(s.at(s.pos)) {
		return Position{Kind: PositionIndex, Index: s.integer()}, true
	}
	if name := s.word(); name != "" {
		return Position{Kind: PositionName, Name: name}, true
	}
	return Position{}, false
}

func (s *scanner) spec() RawSpec {
	var spec RawSpec

	if r, size := utf8.DecodeRuneInString(s.src[s.pos:]); size > 0 {
		if align, ok := alignOf(s.at(s.pos + size)); ok {
			spec.Fill = r
			spec.Align = align
			s.pos += size + 1
		} else if align, ok := alignOf(s.at(s.pos)); ok {
			spec.Align = align
			s.pos++
		}
	}

	if s.consume('+') {
		spec.Flags |= FlagPlus
	} else if s.consume('-') {
		spec.Flags |= FlagMinus
	}
	if s.consume('#') {
		spec.Flags |= FlagAlternate
	}

	haveWidth := false
	if s.consume('0') {
		// 0$ is a width taken from argument 0, not the zero flag.
		if s.consume('$') {
			spec.Width = Count{Kind: CountIndex, Value: 0}
			haveWidth = true
		} else {
			spec.Flags |= FlagZero
		}
	}
	if !haveWidth {
		spec.Width = s.count()
	}

	if s.consume('.') {
		if s.consume('*') {
			spec.Precision = Count{Kind: CountNext, Value: s.cursor}
			s.cursor++
		} else {
			spec.Precision = s.count()
		}
	}

	if s.consume('?') {
		spec.Kind = string(Debug)
	} else {
		spec.Kind = s.word()
	}
	return spec
}

func (s *scanner) count() Count {
	if isDigit(s.at(s.pos)) {
		n := s.integer()
		if s.consume('$') {
			return Count{Kind: CountIndex, Value: n}
		}
		return Count{Kind: CountLiteral, Value: n}
	}
	start := s.pos
	word := s.word()
	if word == "" {
		return Count{}
	}
	if s.consume('$') {
		return Count{Kind: CountName, Name: word}
	}
	// Not a count; the word is the kind.
	s.pos = start
	return Count{}
}

func (s *scanner) close() {
	if s.consume('}') {
		return
	}
	if s.pos >= len(s.src) {
		s.errorf(s.pos, noteOpen, "expected `}` but string was terminated")
		return
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	s.errorf(s.pos, noteOpen, "expected `}`, found %q", r)
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '}':
			s.pos++
			return
		case '{':
			return
		}
		s.pos++
	}
}

func (s *scanner) integer() int {
	start := s.pos
	for isDigit(s.at(s.pos)) {
		s.pos++
	}
	n, err := strconv.ParseUint(s.src[start:s.pos], 10, 32)
	if err != nil {
		s.errorf(start, "", "invalid integer `%s`: must fit in 32 bits", s.src[start:s.pos])
		return 0
	}
	return int(n)
}

func (s *scanner) word() string {
	start := s.pos
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	if size == 0 || (r != '_' && !unicode.IsLetter(r)) {
		return ""
	}
	s.pos += size
	for s.pos < len(s.src) {
		r, size = utf8.DecodeRuneInString(s.src[s.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.pos += size
	}
	return s.src[start:s.pos]
}

func (s *scanner) consume(c byte) bool {
	if s.at(s.pos) == c {
		s.pos++
		return true
	}
	return false
}

// at returns the byte at i, or 0 past the end.
func (s *scanner) at(i int) byte {
	if i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *scanner) errorf(offset int, note, format string, args ...any) {
	s.errors = append(s.errors, Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Note:    note,
		Offset:  offset,
	})
}

func alignOf(c byte) (Alignment, bool) {
	switch c {
	case '<':
		return AlignLeft, true
	case '^':
		return AlignCenter, true
	case '>':
		return AlignRight, true
	default:
		return AlignUnknown, false
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
