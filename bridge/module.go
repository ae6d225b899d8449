package bridge

import (
	"context"
	"reflect"
	"strings"
	"unicode"

	"github.com/coreos/go-semver/semver"

	"github.com/hostbind/hostbind/errors"
)

// Module is the registered identity of an extension: name, documentation,
// version, and an ordered collection of function bindings. A Module is
// built once, is immutable afterward, and is safe for concurrent use.
type Module struct {
	name     string
	doc      string
	version  string
	bindings []*Binding
	byName   map[string]*Binding
}

// Name returns the module name used by the host's import mechanism.
func (m *Module) Name() string { return m.name }

// Doc returns the module documentation string.
func (m *Module) Doc() string { return m.doc }

// Version returns the module version string.
func (m *Module) Version() string { return m.version }

// Bindings returns the function bindings in registration order.
func (m *Module) Bindings() []*Binding {
	out := make([]*Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// Binding looks up a function binding by its host-visible name.
func (m *Module) Binding(name string) (*Binding, bool) {
	b, ok := m.byName[name]
	return b, ok
}

// Invoke calls a bound function by name with raw host arguments.
func (m *Module) Invoke(ctx context.Context, name string, raw ...any) (any, error) {
	b, ok := m.byName[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "function", name)
	}
	return b.Invoke(ctx, raw)
}

// Builder assembles a Module. Registration problems are collected and
// reported by Build, so calls can be chained.
type Builder struct {
	name     string
	doc      string
	version  string
	bindings []*Binding
	errs     []error
}

// New starts a module definition with the given host-visible name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Doc sets the module documentation string.
func (b *Builder) Doc(doc string) *Builder {
	b.doc = doc
	return b
}

// Version sets the module version string. The value comes from external
// configuration (build metadata, flags) and must parse as semver.
func (b *Builder) Version(version string) *Builder {
	b.version = version
	return b
}

// Func registers a native function under a host-visible name.
func (b *Builder) Func(name string, fn any, opts ...FuncOption) *Builder {
	binding, err := newBinding(name, fn, opts...)
	if err != nil {
		b.errs = append(b.errs, errors.Registration(b.name, name, err))
		return b
	}
	b.bindings = append(b.bindings, binding)
	return b
}

// Build validates the definition and returns the immutable Module.
func (b *Builder) Build() (*Module, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "module name cannot be empty")
	}
	if b.version != "" {
		if _, err := semver.NewVersion(b.version); err != nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Path(b.name).
				Value(b.version).
				Detail("module version is not valid semver").
				Cause(err).
				Build()
		}
	}

	m := &Module{
		name:     b.name,
		doc:      b.doc,
		version:  b.version,
		bindings: make([]*Binding, 0, len(b.bindings)),
		byName:   make(map[string]*Binding, len(b.bindings)),
	}
	for _, binding := range b.bindings {
		if _, dup := m.byName[binding.name]; dup {
			return nil, errors.Registration(b.name, binding.name,
				errors.InvalidInput(errors.PhaseRegister, "duplicate function name"))
		}
		m.bindings = append(m.bindings, binding)
		m.byName[binding.name] = binding
	}
	return m, nil
}

// Host is the interface for struct-based modules. All exported methods
// except ModuleName and ModuleDoc are registered as function bindings.
// Method names are converted from PascalCase to snake_case
// (GetValue -> get_value).
type Host interface {
	// ModuleName returns the host-visible module name.
	ModuleName() string
}

// DocumentedHost extends Host with a module documentation string.
type DocumentedHost interface {
	Host
	ModuleDoc() string
}

// FromHost builds a Module from a struct-based host, reflecting over its
// exported methods. The version comes from external configuration, same
// as Builder.Version.
func FromHost(h Host, version string) (*Module, error) {
	name := h.ModuleName()
	b := New(name).Version(version)
	if dh, ok := h.(DocumentedHost); ok {
		b.Doc(dh.ModuleDoc())
	}

	rv := reflect.ValueOf(h)
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || method.Name == "ModuleName" || method.Name == "ModuleDoc" {
			continue
		}
		b.Func(toSnakeCase(method.Name), rv.Method(i).Interface())
	}
	return b.Build()
}

// toSnakeCase converts PascalCase to snake_case.
// Handles acronyms followed by another word: GetHTTPCode -> get_http_code.
// A trailing acronym run has no boundary signal and stays together:
// GetHTTPURL -> get_httpurl.
func toSnakeCase(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsUpper(r) {
			acronymEnd := i + 1
			for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
				acronymEnd++
			}

			if acronymEnd > i+1 {
				// Last uppercase before lowercase starts next word, not part of acronym
				if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
					acronymEnd--
				}
			}

			if i > 0 {
				result.WriteByte('_')
			}

			for j := i; j < acronymEnd; j++ {
				result.WriteRune(unicode.ToLower(runes[j]))
			}
			i = acronymEnd - 1 // -1 because loop will increment
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
