package testsupport

import (
	"sync"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Recorder is a widget backend for tests. It counts constructed widgets and
// keeps every input set pushed to them.
type Recorder struct {
	mu      sync.Mutex
	widgets []*RecordedWidget
}

// RecordedWidget is a widget created by a Recorder.
type RecordedWidget struct {
	mu     sync.Mutex
	Pushes []widgets.Inputs
}

// SetInputs records the pushed inputs.
func (w *RecordedWidget) SetInputs(in widgets.Inputs) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Pushes = append(w.Pushes, in)
}

// Last returns the most recent input set.
func (w *RecordedWidget) Last() (widgets.Inputs, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.Pushes) == 0 {
		return widgets.Inputs{}, false
	}
	return w.Pushes[len(w.Pushes)-1], true
}

// Constructor returns a widget constructor bound to the recorder.
func (r *Recorder) Constructor() widgets.Constructor {
	return func() widgets.Widget {
		r.mu.Lock()
		defer r.mu.Unlock()
		widget := &RecordedWidget{}
		r.widgets = append(r.widgets, widget)
		return widget
	}
}

// Created reports how many widgets the recorder has constructed.
func (r *Recorder) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}

// Widgets returns the widgets constructed so far, in creation order.
func (r *Recorder) Widgets() []*RecordedWidget {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*RecordedWidget, len(r.widgets))
	copy(out, r.widgets)
	return out
}
