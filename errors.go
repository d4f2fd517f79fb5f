package rtfmt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling. Every error returned by
// the package matches exactly one of them with [errors.Is].
var (
	ErrBadSyntax         = errors.New("bad format syntax")
	ErrBadIndex          = errors.New("argument index out of range")
	ErrBadName           = errors.New("no argument with that name")
	ErrNoSuchFormat      = errors.New("no such format kind")
	ErrUnsatisfiedFormat = errors.New("unsatisfied format")
	ErrBadCount          = errors.New("argument cannot be used as a count")
	ErrSink              = errors.New("write to sink failed")
	ErrInvalidSchema     = errors.New("invalid schema")
)

// Diagnostic is a single grammar violation found by the tokenizer.
type Diagnostic struct {
	Message string `yaml:"message"`
	Note    string `yaml:"note,omitempty"`
	// Offset is the byte offset in the format string where the problem was
	// detected.
	Offset int `yaml:"offset"`
}

func (d Diagnostic) String() string {
	if d.Note == "" {
		return d.Message
	}
	return d.Message + " (" + d.Note + ")"
}

// SyntaxError reports every grammar violation found in a format string.
type SyntaxError struct {
	Diagnostics []Diagnostic
}

func (e *SyntaxError) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%s: %s", ErrBadSyntax, strings.Join(parts, "; "))
}

func (e *SyntaxError) Is(target error) bool { return target == ErrBadSyntax }

// IndexError reports a positional reference or count index that is out of
// range for the arguments or schema.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string { return fmt.Sprintf("%s: %d", ErrBadIndex, e.Index) }

func (e *IndexError) Is(target error) bool { return target == ErrBadIndex }

// NameError reports a named reference that does not exist.
type NameError struct {
	Name string
}

func (e *NameError) Error() string { return fmt.Sprintf("%s: %q", ErrBadName, e.Name) }

func (e *NameError) Is(target error) bool { return target == ErrBadName }

// NoSuchFormatError reports a kind code outside the recognized set.
type NoSuchFormatError struct {
	Code string
}

func (e *NoSuchFormatError) Error() string { return fmt.Sprintf("%s: %q", ErrNoSuchFormat, e.Code) }

func (e *NoSuchFormatError) Is(target error) bool { return target == ErrNoSuchFormat }

// UnsatisfiedError reports a recognized kind that the referenced argument's
// type does not support. Capability is the capability name, e.g. "Debug".
type UnsatisfiedError struct {
	Index      int
	Capability string
}

func (e *UnsatisfiedError) Error() string {
	return fmt.Sprintf("%s: argument %d must implement %s", ErrUnsatisfiedFormat, e.Index, e.Capability)
}

func (e *UnsatisfiedError) Is(target error) bool { return target == ErrUnsatisfiedFormat }

// CountError reports an argument used as a width or precision that is not a
// non-negative integer.
type CountError struct {
	Index int
}

func (e *CountError) Error() string { return fmt.Sprintf("%s: argument %d", ErrBadCount, e.Index) }

func (e *CountError) Is(target error) bool { return target == ErrBadCount }

// SinkError wraps a failure of the destination writer.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return fmt.Sprintf("%s: %v", ErrSink, e.Err) }

func (e *SinkError) Is(target error) bool { return target == ErrSink }

func (e *SinkError) Unwrap() error { return e.Err }

// SchemaError reports every problem found while building a [StructSchema].
type SchemaError struct {
	Type        string
	Diagnostics Diagnostics
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidSchema, e.Type, strings.Join(e.Diagnostics.Messages(), "; "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// Diagnostics collects schema-building problems so that all of them are
// reported at once instead of stopping at the first.
type Diagnostics struct {
	messages []string
}

// Add records a problem.
func (d *Diagnostics) Add(format string, args ...any) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any problem was recorded.
func (d *Diagnostics) HasErrors() bool { return len(d.messages) > 0 }

// Messages returns the recorded problems in order.
func (d *Diagnostics) Messages() []string {
	out := make([]string, len(d.messages))
	copy(out, d.messages)
	return out
}

// unsupported is returned by render functions resolved against an interface
// shape when the dynamic value lacks the capability. The slot holding the
// function turns it into an [UnsatisfiedError] carrying the argument index.
type unsupported struct {
	kind Kind
}

func (e *unsupported) Error() string {
	return fmt.Sprintf("%s: value must implement %s", ErrUnsatisfiedFormat, e.kind.Capability())
}

func (e *unsupported) Is(target error) bool { return target == ErrUnsatisfiedFormat }
