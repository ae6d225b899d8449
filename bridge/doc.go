// Package bridge implements the native-function exposure bridge: it
// registers pure Go functions under host-visible names and mediates every
// call from a dynamically-typed host runtime into statically-typed native
// code.
//
// # Model
//
// A Module is the registered identity of an extension: name, documentation
// string, version string, and an ordered, immutable collection of function
// Bindings. It is built once and never mutated afterward, so it is safe to
// share between host runtimes and across goroutines.
//
// A Binding pairs a host-visible function name with a native Go function.
// Parameter and result types are declared in the WIT type vocabulary
// (go.bytecodealliance.org/wit) and inferred from the Go signature at
// registration time, so the declared arity and argument types always match
// what the decoding step expects.
//
// # Calling convention
//
// Invoke decodes each raw host value into its declared native type in
// left-to-right order, short-circuiting on the first failure, then calls
// the native function with exactly the decoded values and encodes the
// return value back into a host-representable value. Numeric conversions
// are range-checked: out-of-range values and non-integral floats are a
// bad-signature error, never silently wrapped or truncated. The native
// function never observes malformed input.
//
// Each invocation operates on its own ephemeral call frame; no references
// to it are retained after the call returns.
//
//	m, err := bridge.New("add_module").
//		Doc("Module for adding integers").
//		Version("0.4.4").
//		Func("add", add, bridge.WithParams("a", "b"), bridge.WithDoc("Adds two integers")).
//		Build()
//
//	result, err := m.Invoke(ctx, "add", 2, 3)
package bridge
