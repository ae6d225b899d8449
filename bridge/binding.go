package bridge

import (
	"context"
	"fmt"
	"reflect"

	"go.bytecodealliance.org/wit"

	"github.com/hostbind/hostbind/errors"
)

// Binding is a single exported function: host-visible name, documentation,
// declared calling convention, and the native implementation. Bindings are
// created at module-registration time and immutable afterward.
type Binding struct {
	name       string
	doc        string
	paramNames []string
	params     []wit.Type
	goParams   []reflect.Type
	result     wit.Type
	fn         reflect.Value
	takesCtx   bool
	returnsErr bool
}

// Name returns the host-visible function name.
func (b *Binding) Name() string { return b.name }

// Doc returns the function documentation string.
func (b *Binding) Doc() string { return b.doc }

// Arity returns the declared number of positional arguments.
func (b *Binding) Arity() int { return len(b.params) }

// Params returns the declared parameter types.
func (b *Binding) Params() []wit.Type {
	out := make([]wit.Type, len(b.params))
	copy(out, b.params)
	return out
}

// ParamNames returns the declared parameter names.
func (b *Binding) ParamNames() []string {
	out := make([]string, len(b.paramNames))
	copy(out, b.paramNames)
	return out
}

// Result returns the declared result type, or nil when the function
// returns nothing.
func (b *Binding) Result() wit.Type { return b.result }

// Signature renders the binding as "name(a: s32, b: s32) -> s32".
func (b *Binding) Signature() string {
	s := b.name + "("
	for i, p := range b.params {
		if i > 0 {
			s += ", "
		}
		s += b.paramNames[i] + ": " + TypeName(p)
	}
	s += ")"
	if b.result != nil {
		s += " -> " + TypeName(b.result)
	}
	return s
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

type bindingConfig struct {
	doc        string
	paramNames []string
	result     wit.Type
	resultSet  bool
}

// FuncOption customizes a binding at registration time.
type FuncOption func(*bindingConfig)

// WithDoc sets the function documentation string.
func WithDoc(doc string) FuncOption {
	return func(c *bindingConfig) { c.doc = doc }
}

// WithParams sets the host-visible parameter names, for hosts that support
// named arguments and for introspection. The count must match the native
// function's arity.
func WithParams(names ...string) FuncOption {
	return func(c *bindingConfig) { c.paramNames = names }
}

// WithResult narrows the declared result type below what the Go return
// type infers. A native result outside the representable range of the
// declared type is then a result-encoding failure at call time.
func WithResult(t wit.Type) FuncOption {
	return func(c *bindingConfig) {
		c.result = t
		c.resultSet = true
	}
}

// newBinding validates the native handler against the calling convention
// and derives the declared types from its Go signature. The handler may
// take a leading context.Context and may return (T), (error), or (T, error).
func newBinding(name string, fn any, opts ...FuncOption) (*Binding, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "function name cannot be empty")
	}

	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			GoType(fmt.Sprintf("%T", fn)).
			Detail("handler must be a function").
			Build()
	}
	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, errors.Unsupported(errors.PhaseRegister, "variadic handlers")
	}

	var cfg bindingConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Binding{
		name: name,
		doc:  cfg.doc,
		fn:   rv,
	}

	start := 0
	if rt.NumIn() > 0 && rt.In(0) == ctxType {
		b.takesCtx = true
		start = 1
	}
	for i := start; i < rt.NumIn(); i++ {
		in := rt.In(i)
		wt, ok := typeOf(in)
		if !ok {
			return nil, errors.New(errors.PhaseRegister, errors.KindUnsupported).
				Path(name).
				GoType(in.String()).
				Detail("parameter type has no host representation").
				Build()
		}
		b.params = append(b.params, wt)
		b.goParams = append(b.goParams, in)
	}

	switch {
	case len(cfg.paramNames) == 0:
		b.paramNames = make([]string, len(b.params))
		for i := range b.paramNames {
			b.paramNames[i] = fmt.Sprintf("arg%d", i)
		}
	case len(cfg.paramNames) == len(b.params):
		b.paramNames = cfg.paramNames
	default:
		return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Path(name).
			Detail("%d parameter names for %d parameters", len(cfg.paramNames), len(b.params)).
			Build()
	}

	outs := rt.NumOut()
	if outs > 0 && rt.Out(outs-1) == errType {
		b.returnsErr = true
		outs--
	}
	switch outs {
	case 0:
	case 1:
		out := rt.Out(0)
		inferred, ok := typeOf(out)
		if !ok {
			return nil, errors.New(errors.PhaseRegister, errors.KindUnsupported).
				Path(name).
				GoType(out.String()).
				Detail("result type has no host representation").
				Build()
		}
		b.result = inferred
		if cfg.resultSet {
			if typeClass(cfg.result) != typeClass(inferred) {
				return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
					Path(name).
					GoType(out.String()).
					HostType(TypeName(cfg.result)).
					Detail("declared result type is incompatible with the Go return type").
					Build()
			}
			b.result = cfg.result
		}
	default:
		return nil, errors.Unsupported(errors.PhaseRegister, "handlers with multiple value results")
	}
	if cfg.resultSet && outs == 0 {
		return nil, errors.InvalidInput(errors.PhaseRegister, "result type declared for a handler that returns nothing")
	}

	return b, nil
}

// typeOf maps a Go type to its declared host type.
func typeOf(t reflect.Type) (wit.Type, bool) {
	switch t.Kind() {
	case reflect.Int8:
		return wit.S8{}, true
	case reflect.Int16:
		return wit.S16{}, true
	case reflect.Int32:
		return wit.S32{}, true
	case reflect.Int64, reflect.Int:
		return wit.S64{}, true
	case reflect.Uint8:
		return wit.U8{}, true
	case reflect.Uint16:
		return wit.U16{}, true
	case reflect.Uint32:
		return wit.U32{}, true
	case reflect.Uint64, reflect.Uint:
		return wit.U64{}, true
	case reflect.Float32:
		return wit.F32{}, true
	case reflect.Float64:
		return wit.F64{}, true
	case reflect.Bool:
		return wit.Bool{}, true
	case reflect.String:
		return wit.String{}, true
	default:
		return nil, false
	}
}

type class int

const (
	classNone class = iota
	classInt
	classFloat
	classBool
	classString
)

func typeClass(t wit.Type) class {
	switch t.(type) {
	case wit.S8, wit.S16, wit.S32, wit.S64, wit.U8, wit.U16, wit.U32, wit.U64:
		return classInt
	case wit.F32, wit.F64:
		return classFloat
	case wit.Bool:
		return classBool
	case wit.String:
		return classString
	default:
		return classNone
	}
}

// TypeName returns the host-facing name of a declared type.
func TypeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	default:
		return fmt.Sprintf("%T", t)
	}
}
