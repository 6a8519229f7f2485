package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formlayout/pkg/classify"
	"github.com/goliatone/go-formlayout/pkg/dispatch"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/membership"
	"github.com/goliatone/go-formlayout/pkg/title"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// ErrNoNode is returned when a frame is asked to render without a node.
var ErrNoNode = errors.New("render: layout node is required")

// Frame holds the render state of one displayed node: the widget copy of the
// node, its classification, its dynamic title template and the dispatch
// session driving its widget.
//
// Init runs once; Changed runs on every later change notification. The
// canonical node is never written to.
type Frame struct {
	engine *Engine
	ref    Ref

	widgetNode   *layout.Node
	result       classify.Result
	dynamicTitle string
	initialized  bool

	parent      *membership.ParentDescriptor
	affordances membership.Affordances
	session     *dispatch.Session
}

func newFrame(e *Engine, ref Ref) *Frame {
	return &Frame{
		engine:  e,
		ref:     ref,
		session: dispatch.NewSession(e.resolver, dispatch.WithLogger(e.logger)),
	}
}

// Init classifies the node, prepares its widget copy and expands a dynamic
// title. It is a no-op once it has succeeded; a failed title expansion leaves
// the frame uninitialised so the next call retries.
func (f *Frame) Init() error {
	if f.initialized {
		return nil
	}
	node := f.ref.Node
	if node == nil {
		return ErrNoNode
	}

	widgetNode := node.WidgetCopy()
	result := classify.Classify(node.Type, &widgetNode.Options)
	widgetNode.Type = result.Type
	if !classify.Recognized(result.Type) && !widgetNode.IsRef() {
		f.engine.warnUnrecognized(result.Type)
	}

	f.widgetNode = widgetNode
	f.result = result
	f.dynamicTitle = ""
	if title.IsDynamic(widgetNode.Options.Title, result.Category) {
		f.dynamicTitle = widgetNode.Options.Title
		if err := f.updateTitle(); err != nil {
			return err
		}
	}

	f.initialized = true
	return nil
}

// Changed handles a change notification affecting the node's value or
// position. The frame is initialised first when needed.
func (f *Frame) Changed() error {
	if !f.initialized {
		return f.Init()
	}
	if f.dynamicTitle != "" {
		return f.updateTitle()
	}
	return nil
}

func (f *Frame) updateTitle() error {
	service := f.engine.service
	if service == nil {
		return fmt.Errorf("render: expand title %q: form service is nil", f.dynamicTitle)
	}
	expanded, err := service.ExpandTemplate(
		f.dynamicTitle,
		service.ControlValue(f.ref),
		service.ControlGroupValue(f.ref),
		f.ref.DataPosition(),
	)
	if err != nil {
		return fmt.Errorf("render: expand title %q: %w", f.dynamicTitle, err)
	}
	f.widgetNode.Options.Title = expanded
	return nil
}

func (f *Frame) refreshAffordances() {
	node := f.widgetNode
	f.parent = nil
	if node.ArrayItem && !node.IsRef() && f.engine.service != nil {
		if parent, ok := f.engine.service.ParentArray(f.ref); ok {
			f.parent = parent
		}
	}
	f.affordances = membership.Evaluate(node, node.Options, f.parent, f.ref.Position())
}

func (f *Frame) attach() bool {
	var data any
	if f.engine.service != nil {
		data = f.engine.service.ControlValue(f.ref)
	}
	return f.session.Attach(widgets.Inputs{
		FormID:      f.engine.formID,
		LayoutNode:  f.widgetNode,
		LayoutIndex: cloneIndex(f.ref.LayoutIndex),
		DataIndex:   cloneIndex(f.ref.DataIndex),
		Data:        data,
	})
}

// update runs one render pass for the frame at its current position.
func (f *Frame) update(layoutIndex, dataIndex []int) (Descriptor, error) {
	f.ref.LayoutIndex = cloneIndex(layoutIndex)
	f.ref.DataIndex = cloneIndex(dataIndex)

	if err := f.Changed(); err != nil {
		return Descriptor{}, err
	}
	f.refreshAffordances()
	f.attach()
	return f.Descriptor(), nil
}

// Descriptor reports the frame's current render description.
func (f *Frame) Descriptor() Descriptor {
	desc := Descriptor{
		Category:     f.result.Category,
		Type:         f.result.Type,
		InputType:    f.result.InputType,
		Removable:    f.affordances.Removable,
		Orderable:    f.affordances.Orderable,
		DynamicTitle: f.dynamicTitle,
		LayoutIndex:  cloneIndex(f.ref.LayoutIndex),
		DataIndex:    cloneIndex(f.ref.DataIndex),
		Session:      f.session.ID(),
		Attached:     f.session.Attached(),
	}
	if f.widgetNode != nil {
		desc.ArrayItem = f.widgetNode.ArrayItem
		desc.Title = f.widgetNode.Options.Title
	}
	return desc
}

// Ref returns the frame's node locator.
func (f *Frame) Ref() Ref {
	return f.ref
}

// WidgetNode returns the per-frame copy of the node handed to the widget.
func (f *Frame) WidgetNode() *layout.Node {
	return f.widgetNode
}

// Parent returns the enclosing array descriptor resolved on the last pass.
func (f *Frame) Parent() *membership.ParentDescriptor {
	return f.parent
}

// Session returns the frame's dispatch session.
func (f *Frame) Session() *dispatch.Session {
	return f.session
}
