package bridge

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hostbind/hostbind/errors"
)

// callFrame holds the raw host arguments and the decoded native values for
// one invocation. A frame is created per call and discarded when the call
// returns; nothing in the bridge retains a reference to it.
type callFrame struct {
	raw  []any
	args []reflect.Value
}

// Invoke is the per-call entry point: it decodes the raw host arguments
// into the declared native types, invokes the native function, and encodes
// its return value. The operation is atomic from the caller's perspective:
// either one host value is returned, or a structured error and no partial
// result. Arity and type mismatches are rejected before the native
// function runs.
//
// Invoke is stateless and safe for concurrent use.
func (b *Binding) Invoke(ctx context.Context, raw []any) (any, error) {
	if len(raw) != len(b.params) {
		return nil, errors.BadArity(b.name, len(b.params), len(raw))
	}

	frame := callFrame{
		raw:  raw,
		args: make([]reflect.Value, 0, len(raw)+1),
	}
	if b.takesCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		frame.args = append(frame.args, reflect.ValueOf(ctx))
	}
	for i, rv := range frame.raw {
		decoded, ok := decodeValue(b.params[i], b.goParams[i], rv)
		if !ok {
			return nil, errors.BadArgument(
				b.name, b.paramNames[i],
				fmt.Sprintf("%T", rv), TypeName(b.params[i]), rv,
			)
		}
		frame.args = append(frame.args, decoded)
	}

	outs := b.fn.Call(frame.args)

	if b.returnsErr {
		last := outs[len(outs)-1]
		if !last.IsNil() {
			return nil, errors.CallFailed(b.name, last.Interface().(error))
		}
		outs = outs[:len(outs)-1]
	}
	if b.result == nil || len(outs) == 0 {
		return nil, nil
	}
	return encodeResult(b.name, b.result, outs[0])
}
