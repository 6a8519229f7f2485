package title

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy replaces the sanitising policy applied to expanded titles. Pass
// nil to disable sanitising.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithGlobals seeds values every template can read.
func WithGlobals(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			e.globals[key] = value
		}
	}
}

// Engine is a pongo2-backed Expander. Parsed templates are cached by source.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	globals   pongo2.Context
	policy    *bluemonday.Policy
}

// Ensure Engine implements Expander.
var _ Expander = (*Engine)(nil)

// NewEngine constructs an Engine with the inline formatting policy.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		set:       pongo2.NewSet("formlayout-title", pongo2.DefaultLoader),
		templates: make(map[string]*pongo2.Template),
		globals:   make(pongo2.Context),
		policy:    InlinePolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Expand renders template with the node value, its group value and position.
func (e *Engine) Expand(template string, value, group any, index int) (string, error) {
	if e == nil || e.set == nil {
		return "", fmt.Errorf("title: engine is nil")
	}
	if !strings.Contains(template, Marker) && !strings.Contains(template, "{%") {
		return e.sanitize(template), nil
	}

	tmpl, err := e.template(template)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(e.globals)+4)
	ctx.Update(e.globals)
	if ctx["value"], err = convertValue(value); err != nil {
		return "", fmt.Errorf("title: convert value: %w", err)
	}
	if ctx["values"], err = convertValue(group); err != nil {
		return "", fmt.Errorf("title: convert group value: %w", err)
	}
	ctx["index"] = index
	ctx["idx"] = index + 1

	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("title: execute %q: %w", template, err)
	}
	return e.sanitize(out), nil
}

func (e *Engine) template(source string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[source]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[source]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("title: parse %q: %w", source, err)
	}
	e.templates[source] = tmpl
	return tmpl, nil
}

func (e *Engine) sanitize(out string) string {
	if e.policy == nil {
		return out
	}
	return strings.TrimSpace(e.policy.Sanitize(out))
}

func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	}
}
