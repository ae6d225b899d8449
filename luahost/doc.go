// Package luahost publishes a bridge module into an embedded Lua state.
//
// Lua is a dynamically-typed host: arguments arrive as untyped stack
// values and are validated by the bridge before any native code runs.
// Bridge errors are raised as ordinary Lua errors, so pcall and the rest
// of Lua's error-handling idioms apply unchanged; no parallel error
// channel is introduced.
package luahost
