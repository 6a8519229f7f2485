package render

import (
	"slices"

	"github.com/goliatone/go-formlayout/pkg/classify"
)

// Descriptor is the presentation-neutral description of one displayed node.
type Descriptor struct {
	Category     classify.Category `json:"category"`
	Type         string            `json:"type"`
	InputType    string            `json:"inputType,omitempty"`
	Removable    bool              `json:"removable"`
	Orderable    bool              `json:"orderable"`
	ArrayItem    bool              `json:"arrayItem,omitempty"`
	Title        string            `json:"title,omitempty"`
	DynamicTitle string            `json:"dynamicTitle,omitempty"`
	LayoutIndex  []int             `json:"layoutIndex"`
	DataIndex    []int             `json:"dataIndex,omitempty"`
	Session      string            `json:"session"`
	Attached     bool              `json:"attached"`
}

// Rendered pairs a descriptor with the descriptors of the node's children.
type Rendered struct {
	Descriptor Descriptor `json:"descriptor"`
	Children   []Rendered `json:"children,omitempty"`
}

func cloneIndex(index []int) []int {
	if index == nil {
		return nil
	}
	return slices.Clone(index)
}
