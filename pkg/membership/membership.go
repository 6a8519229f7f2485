// Package membership decides which affordances an array item exposes: whether
// it can be removed and whether it can be dragged to a new position. The
// decisions depend on the item's own flags, its options, and a read-only view
// of the enclosing array.
package membership

import (
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
)

// ParentDescriptor is the view of an array node as seen by one of its items.
type ParentDescriptor struct {
	// Type is the parent's node type.
	Type string
	// ItemCount is the current number of layout items, including the
	// trailing "add item" placeholder when the array has one.
	ItemCount int
	// MinItems is the configured lower bound.
	MinItems int
	// Orderable reports whether the parent allows reordering.
	Orderable bool
}

// Describe builds the descriptor for an array layout node.
func Describe(parent *layout.Node) *ParentDescriptor {
	if parent == nil {
		return nil
	}
	return &ParentDescriptor{
		Type:      parent.Type,
		ItemCount: len(parent.Items),
		MinItems:  parent.Options.MinItems,
		Orderable: parent.Options.Orderable,
	}
}

// TabFamily reports whether the parent renders its items as tabs.
func (p *ParentDescriptor) TabFamily() bool {
	return p != nil && strings.HasPrefix(p.Type, "tab")
}

// Affordances bundles the array controls shown for one item.
type Affordances struct {
	Removable bool `json:"removable"`
	Orderable bool `json:"orderable"`
}

// Evaluate computes both affordances for an item at position.
func Evaluate(node *layout.Node, opts layout.Options, parent *ParentDescriptor, position int) Affordances {
	return Affordances{
		Removable: CanRemove(node, opts, parent, position),
		Orderable: IsOrderable(node, opts, parent),
	}
}

// CanRemove reports whether the item at position may be removed. opts are the
// options the item is rendered with.
//
// Recursive references are always removable. Otherwise the item must belong
// to an array that stays above its MinItems floor after removal. List items
// can then always be removed; tuple items only when they are the last real
// slot, i.e. position == ItemCount-2.
func CanRemove(node *layout.Node, opts layout.Options, parent *ParentDescriptor, position int) bool {
	if node == nil || !opts.Removable || opts.ReadOnly || node.IsRef() {
		return false
	}
	if node.RecursiveReference {
		return true
	}
	if !node.ArrayItem || parent == nil {
		return false
	}
	if parent.ItemCount-1 <= parent.MinItems {
		return false
	}
	if node.ArrayItemType == layout.ArrayItemList {
		return true
	}
	return position == parent.ItemCount-2
}

// IsOrderable reports whether the item may be reordered. Only list items in a
// non-tab, orderable parent qualify; tuple items never do.
func IsOrderable(node *layout.Node, opts layout.Options, parent *ParentDescriptor) bool {
	if node == nil || !node.ArrayItem || node.IsRef() || parent == nil {
		return false
	}
	return !parent.TabFamily() &&
		node.ArrayItemType == layout.ArrayItemList &&
		!opts.ReadOnly &&
		parent.Orderable
}
