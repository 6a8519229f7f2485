package formlayout

import (
	"context"

	"github.com/goliatone/go-formlayout/pkg/form"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Node aliases layout.Node so callers can build trees from the top-level
// module.
type Node = layout.Node

// Options aliases layout.Options.
type Options = layout.Options

// Descriptor aliases render.Descriptor.
type Descriptor = render.Descriptor

// Rendered aliases render.Rendered.
type Rendered = render.Rendered

// NewRegistry returns an empty widget backend registry.
func NewRegistry() *widgets.Registry {
	return widgets.NewRegistry()
}

// NewForm exposes the in-memory form service constructor.
func NewForm(tree []*layout.Node, data any, options ...form.Option) *form.Form {
	return form.New(tree, data, options...)
}

// NewEngine exposes the render engine constructor.
func NewEngine(service render.FormService, resolver widgets.Resolver, options ...render.Option) *render.Engine {
	return render.New(service, resolver, options...)
}

// Load parses a JSON or YAML layout document.
func Load(data []byte, source string) ([]*layout.Node, error) {
	return layout.Parse(data, source)
}

// Render walks tree once against data, pushing every node to the active
// backend of resolver, and returns the descriptor tree. It is the simplest
// entry point; long-lived forms should keep an Engine and call Walk on change.
func Render(ctx context.Context, tree []*layout.Node, data any, resolver widgets.Resolver, options ...render.Option) ([]render.Rendered, error) {
	f := form.New(tree, data)
	return render.New(f, resolver, options...).Walk(ctx, f.Layout())
}
