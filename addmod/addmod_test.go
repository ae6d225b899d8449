package addmod

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/hostbind/hostbind/errors"
)

func TestNew_Introspection(t *testing.T) {
	m, err := New("0.4.4")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if m.Name() != "add_module" {
		t.Errorf("Name = %q", m.Name())
	}
	if m.Doc() != "Module for adding integers" {
		t.Errorf("Doc = %q", m.Doc())
	}
	if m.Version() != "0.4.4" {
		t.Errorf("Version = %q", m.Version())
	}

	b, ok := m.Binding("add")
	if !ok {
		t.Fatal("add binding missing")
	}
	if b.Doc() != "Adds two integers" {
		t.Errorf("add doc = %q", b.Doc())
	}
	if got := b.ParamNames(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("param names = %v", got)
	}
}

func TestNew_InvalidVersion(t *testing.T) {
	if _, err := New("four.four"); err == nil {
		t.Fatal("expected semver validation failure")
	}
}

func TestAdd_Scenarios(t *testing.T) {
	m, err := New("1.0.0")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	t.Run("2+3", func(t *testing.T) {
		got, err := m.Invoke(ctx, "add", 2, 3)
		if err != nil || got != int32(5) {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("-10+10", func(t *testing.T) {
		got, err := m.Invoke(ctx, "add", -10, 10)
		if err != nil || got != int32(0) {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("single argument", func(t *testing.T) {
		_, err := m.Invoke(ctx, "add", 2)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindBadSignature {
			t.Errorf("want bad_signature, got %v", err)
		}
	})

	t.Run("string argument", func(t *testing.T) {
		_, err := m.Invoke(ctx, "add", "x", 3)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindBadSignature {
			t.Errorf("want bad_signature, got %v", err)
		}
	})

	t.Run("max int overflow", func(t *testing.T) {
		_, err := m.Invoke(ctx, "add", math.MaxInt32, 1)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindResultEncoding {
			t.Errorf("want result_encoding, got %v", err)
		}
	})
}

func TestAdd_Native(t *testing.T) {
	// The native function itself is total over its domain: it computes
	// wide and never wraps.
	if got := Add(math.MaxInt32, math.MaxInt32); got != 2*int64(math.MaxInt32) {
		t.Errorf("Add wide result = %d", got)
	}
	if got := Add(1, -2); got != -1 {
		t.Errorf("Add(1, -2) = %d", got)
	}
}
