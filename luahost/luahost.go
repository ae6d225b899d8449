package luahost

import (
	"context"
	"math"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"

	"github.com/hostbind/hostbind/bridge"
)

// Install registers the module with the Lua state's require mechanism and
// as a global table, so scripts can use either form:
//
//	local m = require("add_module")
//	m.add(2, 3)
//	add_module.add(2, 3)
//
// Installing the same module twice is harmless: require caches the loaded
// table in package.loaded.
func Install(l *lua.State, m *bridge.Module) {
	lua.Require(l, m.Name(), opener(m), true)
	l.Pop(1)

	Logger().Debug("installed module",
		zap.String("module", m.Name()),
		zap.String("version", m.Version()),
		zap.Int("functions", len(m.Bindings())),
	)
}

// opener builds the module table: one Lua function per binding plus the
// introspection fields _NAME, _DESCRIPTION, _VERSION and a doc subtable
// mapping function name to its documentation string.
func opener(m *bridge.Module) lua.Function {
	return func(l *lua.State) int {
		l.NewTable()

		for _, b := range m.Bindings() {
			l.PushGoFunction(invoker(b))
			l.SetField(-2, b.Name())
		}

		l.PushString(m.Name())
		l.SetField(-2, "_NAME")
		l.PushString(m.Doc())
		l.SetField(-2, "_DESCRIPTION")
		l.PushString(m.Version())
		l.SetField(-2, "_VERSION")

		l.NewTable()
		for _, b := range m.Bindings() {
			l.PushString(b.Doc())
			l.SetField(-2, b.Name())
		}
		l.SetField(-2, "doc")

		return 1
	}
}

// invoker adapts one binding to the Lua calling convention. The raw stack
// values are read untyped and handed to the bridge, which performs all
// validation; a bridge error is raised as an ordinary Lua error and is
// catchable with pcall.
func invoker(b *bridge.Binding) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		raw := make([]any, n)
		for i := 1; i <= n; i++ {
			raw[i-1] = l.ToValue(i)
		}

		result, err := b.Invoke(context.Background(), raw)
		if err != nil {
			lua.Errorf(l, "%s", err.Error())
		}
		return push(l, result)
	}
}

// push converts the encoded native result into a Lua value.
func push(l *lua.State, v any) int {
	switch r := v.(type) {
	case nil:
		return 0
	case int8:
		l.PushInteger(int(r))
	case int16:
		l.PushInteger(int(r))
	case int32:
		l.PushInteger(int(r))
	case int64:
		l.PushInteger(int(r))
	case uint8:
		l.PushInteger(int(r))
	case uint16:
		l.PushInteger(int(r))
	case uint32:
		l.PushInteger(int(r))
	case uint64:
		if r <= math.MaxInt64 {
			l.PushInteger(int(r))
		} else {
			l.PushNumber(float64(r))
		}
	case float32:
		l.PushNumber(float64(r))
	case float64:
		l.PushNumber(r)
	case bool:
		l.PushBoolean(r)
	case string:
		l.PushString(r)
	default:
		lua.Errorf(l, "unrepresentable result type %T", v)
	}
	return 1
}
