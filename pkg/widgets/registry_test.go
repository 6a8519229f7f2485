package widgets

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubWidget struct {
	backend string
	pushed  []Inputs
}

func (w *stubWidget) SetInputs(in Inputs) {
	w.pushed = append(w.pushed, in)
}

func constructorFor(name string) Constructor {
	return func() Widget { return &stubWidget{backend: name} }
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("terminal", constructorFor("terminal"))
	reg.MustRegister(" Material ", constructorFor("material"))

	if diff := cmp.Diff([]string{"material", "terminal"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("MATERIAL") {
		t.Fatalf("lookups should be case-insensitive")
	}

	if err := reg.Register("terminal", constructorFor("again")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register("", constructorFor("x")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := reg.Register("nil", nil); err == nil {
		t.Fatalf("expected nil constructor error")
	}
}

func TestRegistry_ActiveBackendResolution(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("terminal", constructorFor("terminal"))
	reg.MustRegister("material", constructorFor("material"))

	if ctor := reg.ResolveActiveWidget(); ctor != nil {
		t.Fatalf("no backend active yet, got constructor")
	}
	if _, ok := reg.Active(); ok {
		t.Fatalf("expected no active backend")
	}

	if err := reg.Activate("material"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	widget := reg.ResolveActiveWidget()().(*stubWidget)
	if widget.backend != "material" {
		t.Fatalf("want material widget, got %q", widget.backend)
	}

	if err := reg.Activate("missing"); !errors.Is(err, ErrBackendNotFound) {
		t.Fatalf("expected ErrBackendNotFound, got %v", err)
	}
	if name, _ := reg.Active(); name != "material" {
		t.Fatalf("failed activation must keep the previous backend, got %q", name)
	}

	reg.Deactivate()
	if ctor := reg.ResolveActiveWidget(); ctor != nil {
		t.Fatalf("deactivated registry should not resolve")
	}

	var nilRegistry *Registry
	if nilRegistry.ResolveActiveWidget() != nil {
		t.Fatalf("nil registry should resolve nothing")
	}
}

func TestStaticResolver(t *testing.T) {
	resolver := StaticResolver(constructorFor("fixed"))
	if got := resolver.ResolveActiveWidget()().(*stubWidget).backend; got != "fixed" {
		t.Fatalf("static resolver returned %q", got)
	}
}
