// Package formlayout renders data-entry forms from declarative layout trees.
//
// Each layout node is classified into a control category, array items get
// their remove and reorder affordances from the sibling count and the array
// kind, dynamic titles are re-expanded as data changes, and every displayed
// node drives exactly one widget from the backend active in a
// widgets.Registry. The packages under pkg/ hold the pieces; this package
// re-exports the common constructors.
package formlayout
