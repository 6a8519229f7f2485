package render

import (
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/membership"
)

// Ref locates a displayed node: the node itself plus its position in the
// layout tree and in the data value.
type Ref struct {
	Node        *layout.Node
	LayoutIndex []int
	DataIndex   []int
}

// Position returns the node's index among its layout siblings.
func (r Ref) Position() int {
	return last(r.LayoutIndex, -1)
}

// DataPosition returns the node's index within its closest indexed data
// ancestor, or 0 when the node is not inside an array.
func (r Ref) DataPosition() int {
	return last(r.DataIndex, 0)
}

func last(index []int, fallback int) int {
	if len(index) == 0 {
		return fallback
	}
	return index[len(index)-1]
}

// Control is the live value holder bound to a node.
type Control struct {
	Pointer string
	Value   any
}

// FormService is the host form state the engine reads from. It owns the
// layout tree and the data value; the engine only requests structural changes
// through RemoveItem.
type FormService interface {
	// Layout returns the current root of the layout tree.
	Layout() []*layout.Node
	// Control resolves the value holder for a node.
	Control(ref Ref) (Control, bool)
	// ParentArray describes the array enclosing ref, if any.
	ParentArray(ref Ref) (*membership.ParentDescriptor, bool)
	// ControlValue returns the node's current value.
	ControlValue(ref Ref) any
	// ControlGroupValue returns the value of the node's sibling group.
	ControlGroupValue(ref Ref) any
	// RemoveItem removes an array item from the layout and data.
	RemoveItem(ref Ref) error
	// ExpandTemplate interpolates a title template.
	ExpandTemplate(template string, value, group any, index int) (string, error)
}
