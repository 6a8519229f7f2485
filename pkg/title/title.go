// Package title expands dynamically templated node titles such as
// "Phone {{ idx }}". Templates use pongo2 syntax and see four values:
// `value` (the node's own value), `values` (its sibling group), `index` (the
// zero-based position within the closest indexed ancestor) and `idx` (the
// same position, one-based).
package title

import (
	"strings"

	"github.com/goliatone/go-formlayout/pkg/classify"
)

// Marker identifies a title that must be expanded at render time.
const Marker = "{{"

// Expander expands a title template against the node's current data.
type Expander interface {
	Expand(template string, value, group any, index int) (string, error)
}

// ExpanderFunc adapts a function into an Expander.
type ExpanderFunc func(template string, value, group any, index int) (string, error)

// Expand calls the underlying function.
func (fn ExpanderFunc) Expand(template string, value, group any, index int) (string, error) {
	return fn(template, value, group, index)
}

// IsDynamic reports whether a node title needs expansion. Tab containers
// expand their own per-tab titles and are excluded.
func IsDynamic(raw string, category classify.Category) bool {
	return category != classify.CategoryTabs && strings.Contains(raw, Marker)
}
