// Package form provides an in-memory form service: a layout tree paired with
// a decoded data value. It implements render.FormService and is what the CLI
// and the tests drive the render engine with.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-openapi/jsonpointer"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/membership"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/title"
)

// indexPlaceholder stands for an array position inside a data pointer.
const indexPlaceholder = "-"

var (
	// ErrNoParent is returned when a structural change targets a node that has
	// no enclosing container in the layout tree.
	ErrNoParent = errors.New("form: node has no parent container")
	// ErrInvalidPointer is returned when a data pointer cannot be resolved
	// against the data value.
	ErrInvalidPointer = errors.New("form: invalid data pointer")
)

// Option customises a Form.
type Option func(*Form)

// WithExpander overrides the title expander. Passing nil keeps the default.
func WithExpander(expander title.Expander) Option {
	return func(f *Form) {
		if expander != nil {
			f.expander = expander
		}
	}
}

// Form owns a layout tree and its data value.
type Form struct {
	mu       sync.RWMutex
	tree     []*layout.Node
	data     any
	expander title.Expander
}

var _ render.FormService = (*Form)(nil)

// New returns a form over tree and data. The tree is used as given; callers
// that need to keep their copy untouched should pass layout.CloneTree(tree).
func New(tree []*layout.Node, data any, options ...Option) *Form {
	f := &Form{
		tree: tree,
		data: data,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.expander == nil {
		f.expander = title.NewEngine()
	}
	return f
}

// Layout returns the root nodes of the layout tree.
func (f *Form) Layout() []*layout.Node {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tree
}

// Data returns the current data value.
func (f *Form) Data() any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data
}

// Control resolves the node's data pointer against the data value.
func (f *Form) Control(ref render.Ref) (render.Control, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	pointer, ok := f.pointer(ref)
	if !ok {
		return render.Control{}, false
	}
	value, err := f.get(pointer)
	if err != nil {
		return render.Control{}, false
	}
	return render.Control{Pointer: pointer, Value: value}, true
}

// ControlValue returns the node's current value, or nil when it has none.
func (f *Form) ControlValue(ref render.Ref) any {
	control, _ := f.Control(ref)
	return control.Value
}

// ControlGroupValue returns the value holding the node's value: the object or
// array one pointer segment up.
func (f *Form) ControlGroupValue(ref render.Ref) any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	pointer, ok := f.pointer(ref)
	if !ok {
		return nil
	}
	value, err := f.get(parentPointer(pointer))
	if err != nil {
		return nil
	}
	return value
}

// ParentArray describes the layout node enclosing ref when it holds items.
func (f *Form) ParentArray(ref render.Ref) (*membership.ParentDescriptor, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	parent := f.parentNode(ref.LayoutIndex)
	if parent == nil || len(parent.Items) == 0 {
		return nil, false
	}
	return membership.Describe(parent), true
}

// Set writes value at the node's data pointer.
func (f *Form) Set(ref render.Ref, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pointer, ok := f.pointer(ref)
	if !ok {
		return fmt.Errorf("form: set: %w: node has no data pointer", ErrInvalidPointer)
	}
	return f.set(pointer, value)
}

// RemoveItem removes an array item from its parent layout node and, when the
// item is bound to an array element, the element from the data value.
func (f *Form) RemoveItem(ref render.Ref) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	parent := f.parentNode(ref.LayoutIndex)
	if parent == nil {
		return fmt.Errorf("form: remove item: %w", ErrNoParent)
	}
	position := ref.Position()
	if position < 0 || position >= len(parent.Items) {
		return fmt.Errorf("form: remove item: position %d out of range", position)
	}
	if ref.Node != nil && parent.Items[position] != ref.Node {
		return fmt.Errorf("form: remove item: node at %v moved", ref.LayoutIndex)
	}

	if arrayPointer, index, ok := f.elementOf(ref); ok {
		if err := f.removeElement(arrayPointer, index); err != nil {
			return fmt.Errorf("form: remove item: %w", err)
		}
	}
	parent.Items = slices.Delete(slices.Clone(parent.Items), position, position+1)
	return nil
}

// ExpandTemplate interpolates a title template with the configured expander.
func (f *Form) ExpandTemplate(template string, value, group any, index int) (string, error) {
	return f.expander.Expand(template, value, group, index)
}

func (f *Form) parentNode(layoutIndex []int) *layout.Node {
	if len(layoutIndex) < 2 {
		return nil
	}
	return layout.Find(f.tree, layoutIndex[:len(layoutIndex)-1])
}

// pointer resolves the node's data pointer, substituting each index
// placeholder with the matching entry of the data index.
func (f *Form) pointer(ref render.Ref) (string, bool) {
	if ref.Node == nil || ref.Node.DataPointer == "" {
		return "", false
	}
	tokens, err := tokensOf(ref.Node.DataPointer)
	if err != nil {
		return "", false
	}
	next := 0
	for i, token := range tokens {
		if token != indexPlaceholder {
			continue
		}
		if next >= len(ref.DataIndex) {
			return "", false
		}
		tokens[i] = fmt.Sprint(ref.DataIndex[next])
		next++
	}
	return joinPointer(tokens), true
}

// elementOf locates the array element an item is bound to: the array holding
// the last placeholder of the node's pointer and the index substituted there.
func (f *Form) elementOf(ref render.Ref) (string, int, bool) {
	if ref.Node == nil || !ref.Node.ArrayItem || ref.Node.DataPointer == "" {
		return "", 0, false
	}
	tokens, err := tokensOf(ref.Node.DataPointer)
	if err != nil {
		return "", 0, false
	}
	placeholders := 0
	last := -1
	for i, token := range tokens {
		if token == indexPlaceholder {
			placeholders++
			last = i
		}
	}
	if last < 0 || placeholders > len(ref.DataIndex) {
		return "", 0, false
	}
	resolved, ok := f.pointer(ref)
	if !ok {
		return "", 0, false
	}
	resolvedTokens, _ := tokensOf(resolved)
	return joinPointer(resolvedTokens[:last]), ref.DataIndex[placeholders-1], true
}

func (f *Form) removeElement(arrayPointer string, index int) error {
	current, err := f.get(arrayPointer)
	if err != nil {
		return err
	}
	items, ok := current.([]any)
	if !ok {
		return fmt.Errorf("%w: %q is not an array", ErrInvalidPointer, arrayPointer)
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: index %d out of range for %q", ErrInvalidPointer, index, arrayPointer)
	}
	return f.set(arrayPointer, slices.Delete(slices.Clone(items), index, index+1))
}

func (f *Form) get(pointer string) (any, error) {
	if pointer == "" {
		return f.data, nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPointer, pointer, err)
	}
	value, _, err := ptr.Get(f.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPointer, pointer, err)
	}
	return value, nil
}

func (f *Form) set(pointer string, value any) error {
	if pointer == "" {
		f.data = value
		return nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPointer, pointer, err)
	}
	updated, err := ptr.Set(f.data, value)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPointer, pointer, err)
	}
	f.data = updated
	return nil
}

func tokensOf(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, err
	}
	return ptr.DecodedTokens(), nil
}

func joinPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range tokens {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(token))
	}
	return b.String()
}

func parentPointer(pointer string) string {
	idx := strings.LastIndex(pointer, "/")
	if idx <= 0 {
		return ""
	}
	return pointer[:idx]
}
