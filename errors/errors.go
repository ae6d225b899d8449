package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the call pipeline the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // module/binding registration
	PhaseDecode   Phase = "decode"   // host value to native argument
	PhaseCall     Phase = "call"     // native function invocation
	PhaseEncode   Phase = "encode"   // native result to host value
	PhaseHost     Phase = "host"     // host adapter operations
)

// Kind categorizes the error
type Kind string

const (
	// KindBadSignature covers both arity mismatch and non-convertible
	// argument types. The two are a single user-facing category; the
	// Detail message distinguishes them.
	KindBadSignature Kind = "bad_signature"

	// KindResultEncoding is reported when a native return value cannot
	// be represented in the declared host type.
	KindResultEncoding Kind = "result_encoding"

	KindRegistration Kind = "registration"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
	KindCallFailed   Kind = "call_failed"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	HostType string
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

	if e.GoType != "" || e.HostType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.HostType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", host type ")
			b.WriteString(e.HostType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.HostType != "" {
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

// Path sets the function/parameter path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// HostType sets the declared host type name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
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

// BadArity creates a bad-signature error for a wrong argument count
func BadArity(function string, want, got int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBadSignature,
		Path:   []string{function},
		Detail: fmt.Sprintf("takes %d arguments (%d given)", want, got),
		Value:  got,
	}
}

// BadArgument creates a bad-signature error for a non-convertible argument
func BadArgument(function, param, goType, hostType string, value any) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindBadSignature,
		Path:     []string{function, param},
		GoType:   goType,
		HostType: hostType,
		Detail:   "argument is not convertible to the declared type",
		Value:    value,
	}
}

// ResultEncoding creates a result-encoding failure for a native return
// value outside the representable range of the declared host type
func ResultEncoding(function, hostType string, value any) *Error {
	return &Error{
		Phase:    PhaseEncode,
		Kind:     KindResultEncoding,
		Path:     []string{function},
		HostType: hostType,
		Detail:   fmt.Sprintf("result %v is not representable", value),
		Value:    value,
	}
}

// CallFailed wraps an error returned by the native handler itself
func CallFailed(function string, cause error) *Error {
	return &Error{
		Phase: PhaseCall,
		Kind:  KindCallFailed,
		Path:  []string{function},
		Cause: cause,
	}
}

// Registration creates a registration error
func Registration(module, function string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s.%s", module, function),
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

// Unsupported creates an unsupported type/operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}
