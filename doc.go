// Package hostbind exposes pure native Go functions to dynamically-typed
// embedded host runtimes.
//
// # Architecture Overview
//
// The library is organized into a binding-style-agnostic core and one
// adapter per host runtime:
//
//	hostbind/            Root package (documentation only)
//	├── bridge/          Module descriptors, function bindings, and the
//	│                    decode -> invoke -> encode call pipeline
//	├── addmod/          The integer-addition reference module
//	├── luahost/         Adapter publishing a module into a Lua state
//	├── wasmhost/        Adapter publishing a module as a wazero host module
//	├── errors/          Structured error types (phase + kind)
//	└── cmd/bridgecall/  CLI for listing, calling, and scripting modules
//
// # Quick Start
//
// Define a module once, install it into any supported host:
//
//	m, err := bridge.New("add_module").
//	    Doc("Module for adding integers").
//	    Version("0.4.4").
//	    Func("add", add, bridge.WithParams("a", "b")).
//	    Build()
//
//	luahost.Install(l, m)          // Lua scripts: require("add_module")
//	wasmhost.Publish(ctx, r, m)    // wasm guests: (import "add_module" "add" ...)
//
// # Calling Convention
//
// Every call from a host runtime is decoded argument by argument into the
// binding's declared native types before the native function runs; the
// result is range-checked on the way back. Wrong arity and non-convertible
// arguments are one error category (bad_signature), unrepresentable
// results another (result_encoding). Both surface through the host's own
// error mechanism: Lua errors on the Lua side, traps on the wasm side.
//
// # Thread Safety
//
// A built Module is immutable and safe for concurrent use. Each invocation
// operates on its own call frame; the bridge holds no mutable state
// between calls.
package hostbind
