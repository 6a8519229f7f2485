// Package render turns layout nodes into presentation-neutral descriptors and
// keeps one widget session per displayed node.
//
// An Engine owns a Frame for every rendered node. The first render of a node
// classifies it, prepares a private copy of the node for its widget and
// expands a templated title; later renders re-expand the title, recompute the
// array affordances and push the current inputs to the widget again. Form
// state is read through the FormService interface, which pkg/form implements
// in memory.
package render
