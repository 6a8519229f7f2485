package layout

import "strings"

// TypeRef marks the placeholder node arrays use for their "add item" control.
const TypeRef = "$ref"

// ArrayItemType distinguishes homogeneous list items from fixed tuple slots.
type ArrayItemType string

const (
	ArrayItemList  ArrayItemType = "list"
	ArrayItemTuple ArrayItemType = "tuple"
)

// Node is one entry in the rendered form tree.
type Node struct {
	ID                 string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name               string        `json:"name,omitempty" yaml:"name,omitempty"`
	Type               string        `json:"type" yaml:"type"`
	DataPointer        string        `json:"dataPointer,omitempty" yaml:"dataPointer,omitempty"`
	Options            Options       `json:"options" yaml:"options,omitempty"`
	ArrayItem          bool          `json:"arrayItem,omitempty" yaml:"arrayItem,omitempty"`
	ArrayItemType      ArrayItemType `json:"arrayItemType,omitempty" yaml:"arrayItemType,omitempty"`
	RecursiveReference bool          `json:"recursiveReference,omitempty" yaml:"recursiveReference,omitempty"`
	Items              []*Node       `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsRef reports whether the node is an array "add item" placeholder.
func (n *Node) IsRef() bool {
	return n != nil && n.Type == TypeRef
}

// Label returns the best human readable caption for the node.
func (n *Node) Label() string {
	if n == nil {
		return ""
	}
	if title := strings.TrimSpace(n.Options.Title); title != "" {
		return title
	}
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// WidgetCopy returns a shallow copy of the node whose options are deep-cloned.
// Renderers edit the copy so nothing leaks back into the shared tree unless it
// is written through explicitly. Children are shared with n.
func (n *Node) WidgetCopy() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Options = n.Options.Clone()
	return &out
}

// Clone returns a deep copy of the node and all of its descendants.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Options = n.Options.Clone()
	out.Items = CloneTree(n.Items)
	return &out
}

// CloneTree deep-copies a list of nodes.
func CloneTree(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for idx, node := range nodes {
		out[idx] = node.Clone()
	}
	return out
}

// Find walks the tree following layoutIndex and returns the addressed node.
func Find(tree []*Node, layoutIndex []int) *Node {
	if len(layoutIndex) == 0 {
		return nil
	}
	nodes := tree
	var current *Node
	for _, idx := range layoutIndex {
		if idx < 0 || idx >= len(nodes) {
			return nil
		}
		current = nodes[idx]
		if current == nil {
			return nil
		}
		nodes = current.Items
	}
	return current
}
