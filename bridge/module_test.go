package bridge

import (
	"context"
	stderrors "errors"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/hostbind/hostbind/errors"
)

func addI32(a, b int32) int64 { return int64(a) + int64(b) }

func buildAddModule(t *testing.T) *Module {
	t.Helper()
	m, err := New("add_module").
		Doc("Module for adding integers").
		Version("0.4.4").
		Func("add", addI32,
			WithParams("a", "b"),
			WithDoc("Adds two integers"),
			WithResult(wit.S32{}),
		).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestModule_Metadata(t *testing.T) {
	m := buildAddModule(t)

	if m.Name() != "add_module" {
		t.Errorf("Name = %q", m.Name())
	}
	if m.Doc() != "Module for adding integers" {
		t.Errorf("Doc = %q", m.Doc())
	}
	if m.Version() != "0.4.4" {
		t.Errorf("Version = %q", m.Version())
	}

	bindings := m.Bindings()
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(bindings))
	}
	b := bindings[0]
	if b.Name() != "add" || b.Doc() != "Adds two integers" {
		t.Errorf("binding metadata: %q %q", b.Name(), b.Doc())
	}
	if b.Arity() != 2 {
		t.Errorf("Arity = %d", b.Arity())
	}
	if got := b.Signature(); got != "add(a: s32, b: s32) -> s32" {
		t.Errorf("Signature = %q", got)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Module, error)
		kind  errors.Kind
	}{
		{
			name: "empty module name",
			build: func() (*Module, error) {
				return New("").Func("add", addI32).Build()
			},
			kind: errors.KindInvalidInput,
		},
		{
			name: "invalid version",
			build: func() (*Module, error) {
				return New("m").Version("not-a-version").Func("add", addI32).Build()
			},
			kind: errors.KindInvalidInput,
		},
		{
			name: "duplicate function",
			build: func() (*Module, error) {
				return New("m").Func("add", addI32).Func("add", addI32).Build()
			},
			kind: errors.KindRegistration,
		},
		{
			name: "non-function handler",
			build: func() (*Module, error) {
				return New("m").Func("add", 42).Build()
			},
			kind: errors.KindRegistration,
		},
		{
			name: "unsupported parameter type",
			build: func() (*Module, error) {
				return New("m").Func("f", func(m map[string]int) int { return 0 }).Build()
			},
			kind: errors.KindRegistration,
		},
		{
			name: "wrong parameter name count",
			build: func() (*Module, error) {
				return New("m").Func("add", addI32, WithParams("a")).Build()
			},
			kind: errors.KindRegistration,
		},
		{
			name: "incompatible declared result",
			build: func() (*Module, error) {
				return New("m").Func("add", addI32, WithResult(wit.String{})).Build()
			},
			kind: errors.KindRegistration,
		},
		{
			name: "variadic handler",
			build: func() (*Module, error) {
				return New("m").Func("f", func(xs ...int) int { return 0 }).Build()
			},
			kind: errors.KindRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("not a structured error: %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

func TestModule_UnknownFunction(t *testing.T) {
	m := buildAddModule(t)
	_, err := m.Invoke(context.Background(), "sub", 1, 2)
	if !stderrors.Is(err, errors.NotFound(errors.PhaseCall, "", "")) {
		t.Errorf("expected not_found, got %v", err)
	}
}

type calcHost struct{}

func (calcHost) ModuleName() string { return "calc" }
func (calcHost) ModuleDoc() string  { return "Tiny calculator" }

func (calcHost) Add(a, b int64) int64     { return a + b }
func (calcHost) MulByTwo(a int64) int64   { return a * 2 }
func (calcHost) GetHTTPCode() int32       { return 200 }
func (calcHost) unexported(a int64) int64 { return a }

func TestFromHost(t *testing.T) {
	m, err := FromHost(calcHost{}, "1.2.3")
	if err != nil {
		t.Fatalf("FromHost: %v", err)
	}

	if m.Name() != "calc" || m.Doc() != "Tiny calculator" || m.Version() != "1.2.3" {
		t.Errorf("metadata: %q %q %q", m.Name(), m.Doc(), m.Version())
	}

	for _, name := range []string{"add", "mul_by_two", "get_http_code"} {
		if _, ok := m.Binding(name); !ok {
			t.Errorf("binding %q not registered", name)
		}
	}
	if _, ok := m.Binding("module_name"); ok {
		t.Error("ModuleName must not be registered as a binding")
	}

	got, err := m.Invoke(context.Background(), "add", 2, 3)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != int64(5) {
		t.Errorf("add = %v", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Add", "add"},
		{"MulByTwo", "mul_by_two"},
		{"GetHTTPCode", "get_http_code"},
		{"HTTPGet", "http_get"},
		// A trailing acronym run stays together.
		{"GetHTTPURL", "get_httpurl"},
		{"ParseURL", "parse_url"},
		{"A", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.out {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
