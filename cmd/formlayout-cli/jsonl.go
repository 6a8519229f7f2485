package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

const jsonlName = "jsonl"

// jsonlBackend writes one JSON object per pushed input set. Widgets have no
// error return, so the first write failure is kept for Err.
type jsonlBackend struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

type jsonlLine struct {
	Form        int    `json:"form"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	LayoutIndex []int  `json:"layoutIndex"`
	DataIndex   []int  `json:"dataIndex,omitempty"`
	Data        any    `json:"data,omitempty"`
}

func newJSONLBackend(w io.Writer) *jsonlBackend {
	return &jsonlBackend{enc: json.NewEncoder(w)}
}

func (b *jsonlBackend) constructor() widgets.Constructor {
	return func() widgets.Widget {
		return jsonlWidget{backend: b}
	}
}

type jsonlWidget struct {
	backend *jsonlBackend
}

func (w jsonlWidget) SetInputs(in widgets.Inputs) {
	line := jsonlLine{
		Form:        in.FormID,
		LayoutIndex: in.LayoutIndex,
		DataIndex:   in.DataIndex,
		Data:        in.Data,
	}
	if in.LayoutNode != nil {
		line.Type = in.LayoutNode.Type
		line.Title = in.LayoutNode.Options.Title
	}
	w.backend.write(line)
}

func (b *jsonlBackend) write(line jsonlLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return
	}
	if err := b.enc.Encode(line); err != nil {
		b.err = fmt.Errorf("jsonl: write %v: %w", line.LayoutIndex, err)
	}
}

// Err returns the first write error, if any.
func (b *jsonlBackend) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
