package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

type recordingWidget struct {
	backend string
	pushed  []widgets.Inputs
}

func (w *recordingWidget) SetInputs(in widgets.Inputs) {
	w.pushed = append(w.pushed, in)
}

type countingBackend struct {
	name    string
	created int
}

func (b *countingBackend) constructor() widgets.Constructor {
	return func() widgets.Widget {
		b.created++
		return &recordingWidget{backend: b.name}
	}
}

func inputs(title string) widgets.Inputs {
	return widgets.Inputs{
		FormID:      7,
		LayoutNode:  &layout.Node{Type: "text", Options: layout.Options{Title: title}},
		LayoutIndex: []int{0, 2},
		DataIndex:   []int{2},
		Data:        "value",
	}
}

func TestSession_DefersUntilBackendActive(t *testing.T) {
	registry := widgets.NewRegistry()
	backend := &countingBackend{name: "terminal"}
	registry.MustRegister("terminal", backend.constructor())

	session := NewSession(registry)
	if session.Attach(inputs("first")) {
		t.Fatalf("attach without an active backend should be deferred")
	}
	if session.Attached() || backend.created != 0 {
		t.Fatalf("no widget should exist yet")
	}
	if _, ok := session.Inputs(); ok {
		t.Fatalf("deferred attach must not record inputs")
	}

	if err := registry.Activate("terminal"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !session.Attach(inputs("second")) {
		t.Fatalf("attach should succeed once a backend is active")
	}

	widget := session.Widget().(*recordingWidget)
	if len(widget.pushed) != 1 || widget.pushed[0].LayoutNode.Options.Title != "second" {
		t.Fatalf("unexpected pushes: %+v", widget.pushed)
	}
}

func TestSession_CreatesWidgetOnceAndPushesEveryTime(t *testing.T) {
	backend := &countingBackend{name: "terminal"}
	session := NewSession(widgets.StaticResolver(backend.constructor()), WithID("fixed"))

	for i := 0; i < 3; i++ {
		session.Attach(inputs("same"))
	}

	if backend.created != 1 {
		t.Fatalf("want exactly one widget, got %d", backend.created)
	}
	widget := session.Widget().(*recordingWidget)
	if len(widget.pushed) != 3 {
		t.Fatalf("every attach must push inputs, got %d pushes", len(widget.pushed))
	}
	if diff := cmp.Diff(widget.pushed[0], widget.pushed[2]); diff != "" {
		t.Fatalf("identical attaches should push identical inputs (-first +last):\n%s", diff)
	}
	if session.ID() != "fixed" {
		t.Fatalf("WithID not applied: %q", session.ID())
	}
}

func TestSession_KeepsWidgetAcrossBackendSwitch(t *testing.T) {
	registry := widgets.NewRegistry()
	first := &countingBackend{name: "first"}
	second := &countingBackend{name: "second"}
	registry.MustRegister("first", first.constructor())
	registry.MustRegister("second", second.constructor())

	if err := registry.Activate("first"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	session := NewSession(registry)
	session.Attach(inputs("a"))

	if err := registry.Activate("second"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	session.Attach(inputs("b"))

	if got := session.Widget().(*recordingWidget).backend; got != "first" {
		t.Fatalf("session widget replaced by %q", got)
	}
	if second.created != 0 {
		t.Fatalf("backend switch must not create widgets for existing sessions")
	}

	fresh := NewSession(registry)
	fresh.Attach(inputs("c"))
	if got := fresh.Widget().(*recordingWidget).backend; got != "second" {
		t.Fatalf("new session should use the new backend, got %q", got)
	}
	if fresh.ID() == session.ID() {
		t.Fatalf("sessions should have distinct ids")
	}
}

func TestSession_NilResolver(t *testing.T) {
	session := NewSession(nil)
	if session.Attach(inputs("x")) {
		t.Fatalf("nil resolver should defer")
	}
}
