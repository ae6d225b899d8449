// Package errors provides structured error types for the hostbind bridge.
//
// Errors are categorized by Phase (where in the call pipeline the error
// occurred) and Kind (error category). The Error type includes context:
// function/parameter path, Go and declared host type names, the offending
// value, and a cause chain.
//
// Two kinds are user-facing at call time. KindBadSignature is reported for
// wrong arity and for arguments that cannot be converted to their declared
// native types; both are detected before the native function runs.
// KindResultEncoding is reported when a native return value is outside the
// representable range of the declared host type.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindBadSignature).
//		Path("add", "a").
//		GoType("string").
//		HostType("s32").
//		Detail("argument is not convertible").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadArity("add", 2, 1)
//	err := errors.ResultEncoding("add", "s32", int64(1)<<40)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
