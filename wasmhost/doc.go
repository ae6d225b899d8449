// Package wasmhost publishes a bridge module as a wazero host module.
//
// Guest binaries import the module's functions by the descriptor's name.
// Raw stack values are widened and handed to the bridge, which performs
// all validation and range checking before the native function runs.
// Bridge errors surface as traps, the host error idiom guests already
// handle.
package wasmhost
