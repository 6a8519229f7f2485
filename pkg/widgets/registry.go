package widgets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formlayout/pkg/layout"
)

// ErrBackendNotFound is returned when activating an unregistered backend.
var ErrBackendNotFound = errors.New("widgets: backend not found")

// Inputs is the fixed set of values pushed to a widget on every render.
type Inputs struct {
	FormID      int
	LayoutNode  *layout.Node
	LayoutIndex []int
	DataIndex   []int
	Data        any
}

// Widget is a concrete control implementation supplied by a rendering
// backend. SetInputs receives the full input set on every render; there is no
// diffing.
type Widget interface {
	SetInputs(Inputs)
}

// Constructor instantiates a widget for one render session.
type Constructor func() Widget

// Resolver yields the constructor of the currently active backend, or nil
// while none is selected.
type Resolver interface {
	ResolveActiveWidget() Constructor
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func() Constructor

// ResolveActiveWidget calls the underlying function.
func (fn ResolverFunc) ResolveActiveWidget() Constructor {
	return fn()
}

// StaticResolver always resolves ctor.
func StaticResolver(ctor Constructor) Resolver {
	return ResolverFunc(func() Constructor { return ctor })
}

// Registry stores backend constructors by name and tracks which backend is
// active. Callers inject the registry into dispatch sessions; the controller
// that owns it decides when the active backend changes.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Constructor
	active   string
}

// NewRegistry creates an empty registry with no active backend.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Constructor),
	}
}

// Register adds a backend constructor. Duplicate names return an error.
func (r *Registry) Register(name string, ctor Constructor) error {
	name = normalize(name)
	if name == "" {
		return fmt.Errorf("widgets: backend name is required")
	}
	if ctor == nil {
		return fmt.Errorf("widgets: constructor for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("widgets: backend %q already registered", name)
	}
	r.backends[name] = ctor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Activate selects the backend subsequent sessions resolve.
func (r *Registry) Activate(name string) error {
	name = normalize(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.backends[name]; !ok {
		return fmt.Errorf("%w: %q", ErrBackendNotFound, name)
	}
	r.active = name
	return nil
}

// Deactivate clears the active backend.
func (r *Registry) Deactivate() {
	r.mu.Lock()
	r.active = ""
	r.mu.Unlock()
}

// Active reports the active backend name.
func (r *Registry) Active() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active, r.active != ""
}

// ResolveActiveWidget implements Resolver.
func (r *Registry) ResolveActiveWidget() Constructor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == "" {
		return nil
	}
	return r.backends[r.active]
}

// List returns a sorted list of backend names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a backend is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.backends[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
