package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which subsystem detected the condition
type Phase string

const (
	PhaseVersion  Phase = "version"  // capability gating
	PhaseResource Phase = "resource" // handle allocation and release
	PhaseBinding  Phase = "binding"  // bind-point updates
	PhaseBuffer   Phase = "buffer"   // data store and parameter rules
	PhaseContext  Phase = "context"  // lifecycle and thread affinity
	PhaseDispatch Phase = "dispatch" // entry-point argument marshaling
	PhaseHost     Phase = "host"     // wasm host module
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseScenario Phase = "scenario" // scenario parsing and execution
)

// Kind categorizes the condition
type Kind string

const (
	KindInvalidEnum      Kind = "invalid_enum"
	KindInvalidValue     Kind = "invalid_value"
	KindInvalidOperation Kind = "invalid_operation"
	KindOutOfMemory      Kind = "out_of_memory"
	KindCapability       Kind = "capability"
	KindDoubleFree       Kind = "double_free"
	KindDangling         Kind = "dangling_resource"
	KindCrossThread      Kind = "cross_thread"
	KindContextExists    Kind = "context_exists"
	KindNoContext        Kind = "no_context"
	KindTeardown         Kind = "teardown"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindInstantiation    Kind = "instantiation"
	KindGuestTrap        Kind = "guest_trap"
)

// Severity ranks a condition for the diagnostics policy.
type Severity uint8

const (
	SeverityWarning Severity = iota + 1
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// API error codes as defined by the public header.
const (
	CodeNoError          uint32 = 0
	CodeInvalidEnum      uint32 = 0x0500
	CodeInvalidValue     uint32 = 0x0501
	CodeInvalidOperation uint32 = 0x0502
	CodeOutOfMemory      uint32 = 0x0505
)

// Error is the structured condition type used throughout mockgl
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Op       string
	Detail   string
	Handles  []uint32
	Severity Severity
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Handles) == 1 {
		fmt.Fprintf(&b, " (handle %d)", e.Handles[0])
	} else if len(e.Handles) > 1 {
		fmt.Fprintf(&b, " (handles %v)", e.Handles)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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
		return e.Kind == t.Kind
	}
	return false
}

// Code returns the API error code carried by the condition, or CodeNoError
// when the kind has no counterpart in the error register.
func (e *Error) Code() uint32 {
	switch e.Kind {
	case KindInvalidEnum:
		return CodeInvalidEnum
	case KindInvalidValue:
		return CodeInvalidValue
	case KindInvalidOperation:
		return CodeInvalidOperation
	case KindOutOfMemory:
		return CodeOutOfMemory
	default:
		return CodeNoError
	}
}

// Fatal reports whether the condition must abort regardless of policy.
func (e *Error) Fatal() bool {
	return e.Severity == SeverityFatal
}

// Reporter receives conditions detected by a subsystem.
type Reporter interface {
	Report(*Error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(*Error)

func (f ReporterFunc) Report(e *Error) { f(e) }

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder with severity error.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Severity: SeverityError,
		},
	}
}

// Op sets the entry point that detected the condition
func (b *Builder) Op(name string) *Builder {
	b.err.Op = name
	return b
}

// Handle appends offending handles
func (b *Builder) Handle(h ...uint32) *Builder {
	b.err.Handles = append(b.err.Handles, h...)
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Severity overrides the default severity
func (b *Builder) Severity(s Severity) *Builder {
	b.err.Severity = s
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

// Convenience constructors for common condition patterns

// InvalidEnum creates an invalid enum condition for an unrecognized key
func InvalidEnum(phase Phase, op string, value uint32, what string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidEnum,
		Op:       op,
		Severity: SeverityError,
		Detail:   fmt.Sprintf("invalid %s 0x%04X", what, value),
		Value:    value,
	}
}

// NegativeCount creates an invalid value condition for a negative count or size
func NegativeCount(phase Phase, op string, what string, n int64) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidValue,
		Op:       op,
		Severity: SeverityError,
		Detail:   fmt.Sprintf("called with negative %s %d", what, n),
		Value:    n,
	}
}

// DoubleFree creates a warning for a handle released twice
func DoubleFree(phase Phase, op string, handle uint32) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindDoubleFree,
		Op:       op,
		Severity: SeverityWarning,
		Handles:  []uint32{handle},
		Detail:   fmt.Sprintf("double freed object %d", handle),
	}
}

// Capability creates a condition for an operation the active version does not provide
func Capability(op string, feature string, requirement string) *Error {
	return &Error{
		Phase:    PhaseVersion,
		Kind:     KindCapability,
		Op:       op,
		Severity: SeverityError,
		Detail:   fmt.Sprintf("%s requires %s", feature, requirement),
	}
}

// Fatal creates an unconditional condition
func Fatal(phase Phase, kind Kind, op string, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Op:       op,
		Severity: SeverityFatal,
		Detail:   detail,
	}
}

// InvalidInput creates an invalid input error for Go-level APIs
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidInput,
		Severity: SeverityError,
		Detail:   detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Severity: SeverityError,
		Detail:   detail,
		Cause:    cause,
	}
}
