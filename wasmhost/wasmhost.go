package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/hostbind/hostbind/bridge"
	"github.com/hostbind/hostbind/errors"
)

// Publish registers the module as a wazero host module named after the
// descriptor, so guest binaries can import its functions:
//
//	(import "add_module" "add" (func (param i32 i32) (result i32)))
//
// Each exported function decodes the raw stack values, routes the call
// through the bridge, and encodes the result back onto the stack. Bridge
// errors surface as traps, wazero's normal error mechanism for host
// functions.
func Publish(ctx context.Context, r wazero.Runtime, m *bridge.Module) (api.Module, error) {
	builder := r.NewHostModuleBuilder(m.Name())

	for _, b := range m.Bindings() {
		params, err := valueTypes(b.Params())
		if err != nil {
			return nil, errors.Registration(m.Name(), b.Name(), err)
		}
		var results []api.ValueType
		if b.Result() != nil {
			results, err = valueTypes([]wit.Type{b.Result()})
			if err != nil {
				return nil, errors.Registration(m.Name(), b.Name(), err)
			}
		}

		builder.NewFunctionBuilder().
			WithGoModuleFunction(invoker(b), params, results).
			WithParameterNames(b.ParamNames()...).
			Export(b.Name())
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.New(errors.PhaseHost, errors.KindRegistration).
			Path(m.Name()).
			Detail("instantiate host module").
			Cause(err).
			Build()
	}

	Logger().Debug("published module",
		zap.String("module", m.Name()),
		zap.String("version", m.Version()),
		zap.Int("functions", len(m.Bindings())),
	)
	return mod, nil
}

// invoker adapts one binding to wazero's raw stack calling convention.
func invoker(b *bridge.Binding) api.GoModuleFunction {
	params := b.Params()
	result := b.Result()

	return api.GoModuleFunc(func(ctx context.Context, _ api.Module, stack []uint64) {
		raw := make([]any, len(params))
		for i, p := range params {
			raw[i] = decodeStack(p, stack[i])
		}

		out, err := b.Invoke(ctx, raw)
		if err != nil {
			// wazero recovers host panics and reports them as traps.
			panic(err)
		}
		if result != nil {
			stack[0] = encodeStack(out)
		}
	})
}

// valueTypes maps declared host types to core wasm value types. String
// parameters would need linear-memory marshaling and are not supported
// over this transport.
func valueTypes(types []wit.Type) ([]api.ValueType, error) {
	out := make([]api.ValueType, len(types))
	for i, t := range types {
		switch t.(type) {
		case wit.Bool, wit.S8, wit.S16, wit.S32, wit.U8, wit.U16, wit.U32:
			out[i] = api.ValueTypeI32
		case wit.S64, wit.U64:
			out[i] = api.ValueTypeI64
		case wit.F32:
			out[i] = api.ValueTypeF32
		case wit.F64:
			out[i] = api.ValueTypeF64
		default:
			return nil, errors.Unsupported(errors.PhaseHost,
				bridge.TypeName(t)+" has no core wasm representation")
		}
	}
	return out, nil
}

// decodeStack widens one raw stack value into the dynamic representation
// the bridge validates. Signed i32 values are sign-extended; the bridge's
// range checks then narrow them to the declared type.
func decodeStack(declared wit.Type, raw uint64) any {
	switch declared.(type) {
	case wit.S8, wit.S16, wit.S32:
		return api.DecodeI32(raw)
	case wit.U8, wit.U16, wit.U32:
		return api.DecodeU32(raw)
	case wit.S64:
		return int64(raw)
	case wit.U64:
		return raw
	case wit.F32:
		return api.DecodeF32(raw)
	case wit.F64:
		return api.DecodeF64(raw)
	case wit.Bool:
		return api.DecodeU32(raw) != 0
	default:
		return raw
	}
}

// encodeStack packs the encoded native result back into a stack value.
func encodeStack(v any) uint64 {
	switch r := v.(type) {
	case int8:
		return api.EncodeI32(int32(r))
	case int16:
		return api.EncodeI32(int32(r))
	case int32:
		return api.EncodeI32(r)
	case int64:
		return api.EncodeI64(r)
	case uint8:
		return uint64(r)
	case uint16:
		return uint64(r)
	case uint32:
		return uint64(r)
	case uint64:
		return r
	case float32:
		return api.EncodeF32(r)
	case float64:
		return api.EncodeF64(r)
	case bool:
		if r {
			return 1
		}
		return 0
	default:
		return 0
	}
}
