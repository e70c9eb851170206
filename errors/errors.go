package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead     Phase = "read"     // target memory access
	PhaseClassify Phase = "classify" // type classification
	PhaseDecode   Phase = "decode"   // memory to value
	PhaseRender   Phase = "render"   // value to text
	PhaseLoad     Phase = "load"     // snapshot and module loading
	PhaseParse    Phase = "parse"    // snapshot/type-name parsing
	PhaseCheck    Phase = "check"    // expectation checking
)

// Kind categorizes the error
type Kind string

const (
	KindReadFailed     Kind = "read_failed"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindLayoutMismatch Kind = "layout_mismatch"
	KindInvalidVariant Kind = "invalid_variant"
	KindFieldMissing   Kind = "field_missing"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindNotFound       Kind = "not_found"
	KindInvalidInput   Kind = "invalid_input"
	KindMismatch       Kind = "mismatch"
)

// Error is the structured error type used throughout odin-inspect
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the debug-info type name
func (b *Builder) Type(name string) *Builder {
	b.err.TypeName = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ReadFailed creates a memory read failure error
func ReadFailed(phase Phase, addr, length uint64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReadFailed,
		Detail: fmt.Sprintf("read %d bytes at 0x%x", length, addr),
		Value:  addr,
		Cause:  cause,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, typeName, fieldName string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindFieldMissing,
		Path:     path,
		TypeName: typeName,
		Detail:   fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidVariant creates an error for a union tag without a matching variant field
func InvalidVariant(path []string, typeName string, tag uint64) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidVariant,
		Path:     path,
		TypeName: typeName,
		Detail:   fmt.Sprintf("no variant v%d for tag %d", tag, tag),
		Value:    tag,
	}
}

// LayoutMismatch creates an error for metadata that does not match the expected layout
func LayoutMismatch(phase Phase, typeName, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindLayoutMismatch,
		TypeName: typeName,
		Detail:   detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a snapshot or module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Mismatch is one rendered value that differed from its expectation
type Mismatch struct {
	Variable string
	Expected string
	Actual   string
}

// MismatchError is returned when snapshot expectations fail
type MismatchError struct {
	Mismatches []Mismatch
	Total      int
}

func (e *MismatchError) Error() string {
	if len(e.Mismatches) == 0 {
		return "[check] mismatch: no mismatches recorded"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("failed %d/%d expectation(s):", len(e.Mismatches), e.Total))
	for _, m := range e.Mismatches {
		b.WriteString("\n  ")
		b.WriteString(m.Variable)
		b.WriteString(":\n    expected: ")
		b.WriteString(m.Expected)
		b.WriteString("\n    actual:   ")
		b.WriteString(m.Actual)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MismatchError) Is(target error) bool {
	_, ok := target.(*MismatchError)
	return ok
}
