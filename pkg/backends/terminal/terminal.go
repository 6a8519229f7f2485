// Package terminal is a widget backend that paints every pushed input set as
// one styled line on an io.Writer. It is the backend the CLI uses for text
// output and doubles as a reference for writing other backends.
package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Name is the registry name of the backend.
const Name = "terminal"

// Token names read from a theme manifest.
const (
	TokenBrand = "brand"
	TokenMuted = "muted"
)

const (
	defaultBrand = "86"
	defaultMuted = "241"
	indentUnit   = "  "
)

// Option customises a Backend.
type Option func(*Backend)

// WithTheme colours titles and type labels from the manifest's brand and
// muted tokens. Missing tokens keep the defaults.
func WithTheme(manifest *theme.Manifest) Option {
	return func(b *Backend) {
		if manifest == nil {
			return
		}
		if brand := strings.TrimSpace(manifest.Tokens[TokenBrand]); brand != "" {
			b.brand = brand
		}
		if muted := strings.TrimSpace(manifest.Tokens[TokenMuted]); muted != "" {
			b.muted = muted
		}
	}
}

// WithRenderer overrides the lipgloss renderer, mostly to force a colour
// profile.
func WithRenderer(renderer *lipgloss.Renderer) Option {
	return func(b *Backend) {
		if renderer != nil {
			b.renderer = renderer
		}
	}
}

// Backend paints widgets onto a writer.
type Backend struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	brand    string
	muted    string

	title   lipgloss.Style
	kind    lipgloss.Style
	value   lipgloss.Style
	created int
}

// New returns a backend writing to w.
func New(w io.Writer, options ...Option) *Backend {
	b := &Backend{
		out:   w,
		brand: defaultBrand,
		muted: defaultMuted,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = lipgloss.NewRenderer(w)
	}
	b.title = b.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(b.brand))
	b.kind = b.renderer.NewStyle().Foreground(lipgloss.Color(b.muted))
	b.value = b.renderer.NewStyle()
	return b
}

// Constructor returns the widget constructor to register with a
// widgets.Registry.
func (b *Backend) Constructor() widgets.Constructor {
	return func() widgets.Widget {
		b.mu.Lock()
		b.created++
		b.mu.Unlock()
		return &Widget{backend: b}
	}
}

// Register adds the backend to registry under Name.
func (b *Backend) Register(registry *widgets.Registry) error {
	return registry.Register(Name, b.Constructor())
}

// Created reports how many widgets the backend has constructed.
func (b *Backend) Created() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

// Widget is one painted control.
type Widget struct {
	backend *Backend
	last    string
}

// SetInputs paints the input set.
func (w *Widget) SetInputs(in widgets.Inputs) {
	w.last = w.backend.paint(in)
	w.backend.write(w.last)
}

// Line returns the most recently painted line without its newline.
func (w *Widget) Line() string {
	return w.last
}

func (b *Backend) paint(in widgets.Inputs) string {
	node := in.LayoutNode
	if node == nil {
		return ""
	}

	depth := len(in.LayoutIndex) - 1
	if depth < 0 {
		depth = 0
	}
	parts := make([]string, 0, 3)
	if label := node.Label(); label != "" {
		parts = append(parts, b.title.Render(label))
	}
	parts = append(parts, b.kind.Render("["+node.Type+"]"))
	if value, ok := formatValue(in.Data); ok {
		parts = append(parts, b.value.Render(value))
	}
	return strings.Repeat(indentUnit, depth) + strings.Join(parts, " ")
}

func (b *Backend) write(line string) {
	if b.out == nil || line == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out, line)
}

func formatValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case map[string]any, []any:
		// Containers are painted by their children.
		return "", false
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), true
		}
		return string(raw), true
	}
}
