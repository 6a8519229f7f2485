package title_test

import (
	"testing"

	"github.com/goliatone/go-formlayout/pkg/classify"
	"github.com/goliatone/go-formlayout/pkg/title"
)

func TestIsDynamic(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		category classify.Category
		want     bool
	}{
		{name: "template", raw: "Phone {{ idx }}", category: classify.CategoryInput, want: true},
		{name: "plain", raw: "Phone", category: classify.CategoryInput},
		{name: "tabs excluded", raw: "Tab {{ idx }}", category: classify.CategoryTabs},
		{name: "section", raw: "{{ value.name }}", category: classify.CategorySection, want: true},
		{name: "empty", raw: "", category: classify.CategoryInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := title.IsDynamic(tc.raw, tc.category); got != tc.want {
				t.Fatalf("IsDynamic(%q, %q): want %v, got %v", tc.raw, tc.category, tc.want, got)
			}
		})
	}
}

func TestEngine_Expand(t *testing.T) {
	engine := title.NewEngine(title.WithGlobals(map[string]any{"brand": "Acme"}))

	cases := []struct {
		name     string
		template string
		value    any
		group    any
		index    int
		want     string
	}{
		{name: "one based position", template: "Phone {{ idx }}", index: 2, want: "Phone 3"},
		{name: "zero based position", template: "Slot {{ index }}", index: 0, want: "Slot 0"},
		{name: "own value", template: "Hello {{ value }}", value: "Ada", want: "Hello Ada"},
		{name: "group value", template: "{{ values.first }} {{ values.last }}", group: map[string]any{"first": "Ada", "last": "Lovelace"}, want: "Ada Lovelace"},
		{name: "default filter", template: "{{ value|default:\"Untitled\" }}", want: "Untitled"},
		{name: "globals", template: "{{ brand }} #{{ idx }}", index: 0, want: "Acme #1"},
		{name: "plain text passthrough", template: "No markers", want: "No markers"},
		{name: "inline markup kept", template: "<b>{{ value }}</b>", value: "Bold", want: "<b>Bold</b>"},
		{name: "scripts stripped", template: "<script>alert(1)</script>Item {{ idx }}", index: 0, want: "Item 1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Expand(tc.template, tc.value, tc.group, tc.index)
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expand %q: want %q, got %q", tc.template, tc.want, got)
			}
		})
	}
}

func TestEngine_StructValues(t *testing.T) {
	type contact struct {
		Name string `json:"name"`
	}
	engine := title.NewEngine(title.WithPolicy(nil))

	got, err := engine.Expand("{{ value.name }}", contact{Name: "Grace"}, nil, 0)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != "Grace" {
		t.Fatalf("want Grace, got %q", got)
	}
}

func TestEngine_ParseErrorPropagates(t *testing.T) {
	engine := title.NewEngine()
	if _, err := engine.Expand("{{ value", nil, nil, 0); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := engine.Expand("{% if %}", nil, nil, 0); err == nil {
		t.Fatalf("expected tag error")
	}
}

func TestExpanderFunc(t *testing.T) {
	var expander title.Expander = title.ExpanderFunc(func(template string, value, group any, index int) (string, error) {
		return template + "!", nil
	})
	got, err := expander.Expand("x", nil, nil, 0)
	if err != nil || got != "x!" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}
