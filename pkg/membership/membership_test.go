package membership_test

import (
	"testing"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/membership"
)

func item(kind layout.ArrayItemType) *layout.Node {
	return &layout.Node{Type: "text", ArrayItem: true, ArrayItemType: kind}
}

func removable() layout.Options {
	return layout.Options{Removable: true}
}

func TestCanRemove_TupleOnlyLastRealSlot(t *testing.T) {
	parent := &membership.ParentDescriptor{Type: "array", ItemCount: 5, MinItems: 2}
	node := item(layout.ArrayItemTuple)

	if !membership.CanRemove(node, removable(), parent, 3) {
		t.Fatalf("tuple position 3 of 5 should be removable")
	}
	for _, position := range []int{0, 1, 2, 4} {
		if membership.CanRemove(node, removable(), parent, position) {
			t.Fatalf("tuple position %d of 5 should not be removable", position)
		}
	}
}

func TestCanRemove_ListFloor(t *testing.T) {
	parent := &membership.ParentDescriptor{Type: "array", ItemCount: 3, MinItems: 3}
	node := item(layout.ArrayItemList)
	for position := 0; position < 3; position++ {
		if membership.CanRemove(node, removable(), parent, position) {
			t.Fatalf("list at floor: position %d should not be removable", position)
		}
	}

	parent.ItemCount = 5
	for position := 0; position < 5; position++ {
		if !membership.CanRemove(node, removable(), parent, position) {
			t.Fatalf("list above floor: position %d should be removable", position)
		}
	}
}

func TestCanRemove_ShortCircuits(t *testing.T) {
	parent := &membership.ParentDescriptor{Type: "array", ItemCount: 10}

	cases := []struct {
		name   string
		node   *layout.Node
		opts   layout.Options
		parent *membership.ParentDescriptor
		want   bool
	}{
		{name: "nil node", node: nil, opts: removable(), parent: parent},
		{name: "not removable option", node: item(layout.ArrayItemList), opts: layout.Options{}, parent: parent},
		{name: "readonly", node: item(layout.ArrayItemList), opts: layout.Options{Removable: true, ReadOnly: true}, parent: parent},
		{name: "ref placeholder", node: &layout.Node{Type: layout.TypeRef, ArrayItem: true, ArrayItemType: layout.ArrayItemList}, opts: removable(), parent: parent},
		{name: "not an array item", node: &layout.Node{Type: "array"}, opts: removable(), parent: parent},
		{name: "missing parent", node: item(layout.ArrayItemList), opts: removable(), parent: nil},
		{name: "recursive reference without parent", node: &layout.Node{Type: "section", RecursiveReference: true}, opts: removable(), parent: nil, want: true},
		{name: "readonly recursive reference", node: &layout.Node{Type: "section", RecursiveReference: true}, opts: layout.Options{Removable: true, ReadOnly: true}, parent: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := membership.CanRemove(tc.node, tc.opts, tc.parent, 0); got != tc.want {
				t.Fatalf("CanRemove: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsOrderable(t *testing.T) {
	orderable := &membership.ParentDescriptor{Type: "array", ItemCount: 3, Orderable: true}

	if !membership.IsOrderable(item(layout.ArrayItemList), layout.Options{}, orderable) {
		t.Fatalf("list item in orderable array should be orderable")
	}

	cases := []struct {
		name   string
		node   *layout.Node
		opts   layout.Options
		parent *membership.ParentDescriptor
	}{
		{name: "tuple item", node: item(layout.ArrayItemTuple), parent: orderable},
		{name: "untyped item", node: item(""), parent: orderable},
		{name: "readonly", node: item(layout.ArrayItemList), opts: layout.Options{ReadOnly: true}, parent: orderable},
		{name: "parent not orderable", node: item(layout.ArrayItemList), parent: &membership.ParentDescriptor{Type: "array"}},
		{name: "tab parent", node: item(layout.ArrayItemList), parent: &membership.ParentDescriptor{Type: "tabarray", Orderable: true}},
		{name: "ref", node: &layout.Node{Type: layout.TypeRef, ArrayItem: true, ArrayItemType: layout.ArrayItemList}, parent: orderable},
		{name: "no parent", node: item(layout.ArrayItemList), parent: nil},
		{name: "not array item", node: &layout.Node{Type: "text", ArrayItemType: layout.ArrayItemList}, parent: orderable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if membership.IsOrderable(tc.node, tc.opts, tc.parent) {
				t.Fatalf("%s should not be orderable", tc.name)
			}
		})
	}
}

func TestIsOrderable_NeverForNonListItems(t *testing.T) {
	parents := []*membership.ParentDescriptor{
		nil,
		{Type: "array", Orderable: true},
		{Type: "array"},
		{Type: "tabarray", Orderable: true},
	}
	for _, kind := range []layout.ArrayItemType{"", layout.ArrayItemTuple} {
		for _, readOnly := range []bool{false, true} {
			for _, parent := range parents {
				node := item(kind)
				if membership.IsOrderable(node, layout.Options{ReadOnly: readOnly}, parent) {
					t.Fatalf("kind %q readonly=%v parent=%+v should not be orderable", kind, readOnly, parent)
				}
			}
		}
	}
}

func TestDescribeAndEvaluate(t *testing.T) {
	parent := &layout.Node{
		Type:    "array",
		Options: layout.Options{MinItems: 1, Orderable: true},
		Items: []*layout.Node{
			item(layout.ArrayItemList),
			item(layout.ArrayItemList),
			{Type: layout.TypeRef, ArrayItem: true, ArrayItemType: layout.ArrayItemList},
		},
	}
	desc := membership.Describe(parent)
	if desc.ItemCount != 3 || desc.MinItems != 1 || !desc.Orderable || desc.TabFamily() {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	if membership.Describe(nil) != nil {
		t.Fatalf("describe(nil) should be nil")
	}

	got := membership.Evaluate(parent.Items[0], removable(), desc, 0)
	if !got.Removable || !got.Orderable {
		t.Fatalf("unexpected affordances: %+v", got)
	}
}
