package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/classify"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

const tracerName = "github.com/goliatone/go-formlayout/pkg/render"

// ErrNotRemovable is returned when removal is requested for an item whose
// current affordances do not allow it.
var ErrNotRemovable = errors.New("render: item is not removable")

// Engine renders layout nodes into descriptors and drives one widget session
// per displayed node. Frames are keyed by node identity, so a node keeps its
// session while it moves between positions.
type Engine struct {
	mu       sync.Mutex
	service  FormService
	resolver widgets.Resolver
	formID   int
	logger   *zap.Logger
	tracer   trace.Tracer

	frames map[*layout.Node]*Frame
	warned map[string]struct{}
}

// New constructs an Engine reading form state from service and resolving
// widgets through resolver.
func New(service FormService, resolver widgets.Resolver, options ...Option) *Engine {
	e := &Engine{
		service:  service,
		resolver: resolver,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
		frames:   make(map[*layout.Node]*Frame),
		warned:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Render produces the descriptor for node at the given position. The first
// call for a node creates its frame and session; later calls are change
// notifications that re-expand dynamic titles, refresh affordances and push
// the inputs to the node's widget again.
func (e *Engine) Render(node *layout.Node, layoutIndex, dataIndex []int) (Descriptor, error) {
	if node == nil {
		return Descriptor{}, ErrNoNode
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.render(node, layoutIndex, dataIndex)
}

func (e *Engine) render(node *layout.Node, layoutIndex, dataIndex []int) (Descriptor, error) {
	frame, ok := e.frames[node]
	if !ok {
		frame = newFrame(e, Ref{Node: node})
		e.frames[node] = frame
	}
	return frame.update(layoutIndex, dataIndex)
}

// Frame returns the frame of a displayed node.
func (e *Engine) Frame(node *layout.Node) (*Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	frame, ok := e.frames[node]
	return frame, ok
}

// Sessions reports how many nodes currently hold a render session.
func (e *Engine) Sessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.frames)
}

// Release ends the sessions of node and its descendants, as when a section
// collapses or an item leaves the tree.
func (e *Engine) Release(node *layout.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(node)
}

func (e *Engine) release(node *layout.Node) {
	if node == nil {
		return
	}
	delete(e.frames, node)
	for _, child := range node.Items {
		e.release(child)
	}
}

// Remove asks the form service to remove a rendered array item and releases
// its sessions. The node must have been rendered and be removable at its
// current position in the tree, which may differ from the last render pass
// when siblings were removed since.
func (e *Engine) Remove(node *layout.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	frame, ok := e.frames[node]
	if !ok || frame.widgetNode == nil {
		return fmt.Errorf("render: remove: node has not been rendered")
	}
	if e.service == nil {
		return fmt.Errorf("render: remove: form service is nil")
	}
	layoutIndex, dataIndex, ok := locate(e.service.Layout(), node, nil, nil)
	if !ok {
		return fmt.Errorf("render: remove: node is no longer in the layout")
	}
	frame.ref.LayoutIndex = layoutIndex
	frame.ref.DataIndex = dataIndex
	frame.refreshAffordances()
	if !frame.affordances.Removable {
		return ErrNotRemovable
	}
	if err := e.service.RemoveItem(frame.ref); err != nil {
		return fmt.Errorf("render: remove: %w", err)
	}
	e.release(node)
	return nil
}

// locate finds target in nodes and returns its layout and data index, built
// the same way Walk builds them.
func locate(nodes []*layout.Node, target *layout.Node, layoutIndex, dataIndex []int) ([]int, []int, bool) {
	for idx, node := range nodes {
		if node == nil {
			continue
		}
		nodeLayoutIndex := append(cloneIndex(layoutIndex), idx)
		nodeDataIndex := dataIndex
		if node.ArrayItem {
			nodeDataIndex = append(cloneIndex(dataIndex), idx)
		}
		if node == target {
			return nodeLayoutIndex, cloneIndex(nodeDataIndex), true
		}
		if li, di, ok := locate(node.Items, target, nodeLayoutIndex, nodeDataIndex); ok {
			return li, di, true
		}
	}
	return nil, nil, false
}

// Walk renders every node of tree depth first and returns the descriptor
// tree. Sessions of nodes no longer present in tree are released.
func (e *Engine) Walk(ctx context.Context, tree []*layout.Node) ([]Rendered, error) {
	ctx, span := e.tracer.Start(ctx, "formlayout.walk",
		trace.WithAttributes(attribute.Int("formlayout.root_nodes", len(tree))))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[*layout.Node]struct{}, len(e.frames))
	out, err := e.walk(ctx, tree, nil, nil, seen)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for node := range e.frames {
		if _, ok := seen[node]; !ok {
			delete(e.frames, node)
		}
	}
	span.SetAttributes(attribute.Int("formlayout.sessions", len(e.frames)))
	return out, nil
}

func (e *Engine) walk(ctx context.Context, nodes []*layout.Node, layoutIndex, dataIndex []int, seen map[*layout.Node]struct{}) ([]Rendered, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]Rendered, 0, len(nodes))
	for idx, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		nodeLayoutIndex := append(cloneIndex(layoutIndex), idx)
		nodeDataIndex := dataIndex
		if node.ArrayItem {
			nodeDataIndex = append(cloneIndex(dataIndex), idx)
		}

		desc, err := e.render(node, nodeLayoutIndex, nodeDataIndex)
		if err != nil {
			return nil, err
		}
		seen[node] = struct{}{}

		children, err := e.walk(ctx, node.Items, nodeLayoutIndex, nodeDataIndex, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, Rendered{Descriptor: desc, Children: children})
	}
	return out, nil
}

func (e *Engine) warnUnrecognized(nodeType string) {
	if _, done := e.warned[nodeType]; done {
		return
	}
	e.warned[nodeType] = struct{}{}

	fields := []zap.Field{zap.String("type", nodeType)}
	if suggestion, ok := classify.Suggest(nodeType); ok {
		fields = append(fields, zap.String("suggestion", suggestion))
	}
	e.logger.Warn("unrecognized layout node type, rendering as passthrough", fields...)
}
