package classify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/classify"
	"github.com/goliatone/go-formlayout/pkg/layout"
)

func bounds(minimum, maximum float64) *layout.Options {
	return &layout.Options{Minimum: &minimum, Maximum: &maximum}
}

func TestClassify_Table(t *testing.T) {
	cases := []struct {
		rawType string
		opts    *layout.Options
		want    classify.Result
	}{
		{"integer", &layout.Options{}, classify.Result{Type: "integer", Category: classify.CategoryInput, InputType: "number"}},
		{"date-time", &layout.Options{}, classify.Result{Type: "datetime-local", Category: classify.CategoryInput, InputType: "datetime-local"}},
		{"datetime", nil, classify.Result{Type: "datetime-local", Category: classify.CategoryInput, InputType: "datetime-local"}},
		{"alt-datetime", nil, classify.Result{Type: "datetime-local", Category: classify.CategoryInput, InputType: "datetime-local"}},
		{"updown", nil, classify.Result{Type: "number", Category: classify.CategoryInput, InputType: "number"}},
		{"email", nil, classify.Result{Type: "email", Category: classify.CategoryInput, InputType: "email"}},
		{"password", nil, classify.Result{Type: "password", Category: classify.CategoryInput, InputType: "password"}},
		{"alt-date", &layout.Options{}, classify.Result{Type: "date", Category: classify.CategoryDate}},
		{"date", nil, classify.Result{Type: "date", Category: classify.CategoryDate}},
		{"hidden", nil, classify.Result{Type: "hidden", Category: classify.CategoryNone}},
		{"color", nil, classify.Result{Type: "color", Category: classify.CategoryNone}},
		{"range", nil, classify.Result{Type: "range", Category: classify.CategorySlider}},
		{"textarea", nil, classify.Result{Type: "textarea", Category: classify.CategoryTextarea}},
		{"file", nil, classify.Result{Type: "file", Category: classify.CategoryFile}},
		{"select", nil, classify.Result{Type: "select", Category: classify.CategorySelect}},
		{"checkbox", nil, classify.Result{Type: "checkbox", Category: classify.CategoryCheckbox}},
		{"checkboxes-inline", &layout.Options{}, classify.Result{Type: "checkboxes-inline", Category: classify.CategoryCheckboxes}},
		{"checkboxbuttons", nil, classify.Result{Type: "checkboxbuttons", Category: classify.CategoryCheckboxes}},
		{"radio", nil, classify.Result{Type: "radio", Category: classify.CategoryRadios}},
		{"radios-inline", nil, classify.Result{Type: "radios-inline", Category: classify.CategoryRadios}},
		{"radiobuttons", nil, classify.Result{Type: "radiobuttons", Category: classify.CategoryButtonGroup}},
		{"submit", nil, classify.Result{Type: "submit", Category: classify.CategoryButton}},
		{"array", nil, classify.Result{Type: "array", Category: classify.CategorySection}},
		{"wizard", nil, classify.Result{Type: "wizard", Category: classify.CategorySection}},
		{"tabarray", nil, classify.Result{Type: "tabarray", Category: classify.CategoryTabs}},
		{"html", nil, classify.Result{Type: "html", Category: classify.CategoryMessage}},
		{"template", nil, classify.Result{Type: "template", Category: classify.CategoryTemplate}},
	}

	for _, tc := range cases {
		t.Run(tc.rawType, func(t *testing.T) {
			got := classify.Classify(tc.rawType, tc.opts)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("classify %q mismatch (-want +got):\n%s", tc.rawType, diff)
			}
		})
	}
}

func TestClassify_PassthroughIdentity(t *testing.T) {
	for _, rawType := range []string{"$ref", "custom-widget", "", "TEXT", "Select", "tabs-extra"} {
		got := classify.Classify(rawType, &layout.Options{})
		want := classify.Result{Type: rawType, Category: classify.Category(rawType)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("passthrough %q mismatch (-want +got):\n%s", rawType, diff)
		}
		if classify.Recognized(rawType) {
			t.Fatalf("%q should not be recognised", rawType)
		}
	}
}

func TestClassify_BoundsForceSlider(t *testing.T) {
	types := append(classify.KnownTypes(), "$ref", "custom-widget", "")
	for _, rawType := range types {
		got := classify.Classify(rawType, bounds(1, 10))
		if got.Category != classify.CategorySlider || got.Type != classify.TypeRange {
			t.Fatalf("%q with bounds: want range/slider, got %+v", rawType, got)
		}
	}

	// A bounded select is still forced to a slider.
	if got := classify.Classify("select", bounds(2, 5)); got.Category != classify.CategorySlider {
		t.Fatalf("bounded select should become slider, got %+v", got)
	}
	// Zero bounds are falsy and leave the declared type alone.
	if got := classify.Classify("number", bounds(0, 5)); got.Category != classify.CategoryInput {
		t.Fatalf("zero minimum should not force range, got %+v", got)
	}
}

func TestClassify_NormalizedTypeIsStable(t *testing.T) {
	for _, rawType := range classify.KnownTypes() {
		first := classify.Classify(rawType, nil)
		second := classify.Classify(first.Type, nil)
		if first.Category != second.Category {
			t.Fatalf("%q: reclassifying %q changed category %q -> %q", rawType, first.Type, first.Category, second.Category)
		}
		if !first.Category.Known() {
			t.Fatalf("%q: category %q not in vocabulary", rawType, first.Category)
		}
	}
}

func TestClassifyNode(t *testing.T) {
	node := &layout.Node{Type: "checkboxes-inline"}
	if got := classify.ClassifyNode(node); got.Category != classify.CategoryCheckboxes {
		t.Fatalf("checkboxes-inline: got %+v", got)
	}
	if node.Type != "checkboxes-inline" {
		t.Fatalf("classification must not mutate the node, got type %q", node.Type)
	}
	if got := classify.ClassifyNode(nil); got.Category != "" {
		t.Fatalf("nil node: got %+v", got)
	}
}

func TestSuggest(t *testing.T) {
	cases := []struct {
		rawType string
		want    string
		ok      bool
	}{
		{rawType: "chekbox", want: "checkbox", ok: true},
		{rawType: "Select", want: "select", ok: true},
		{rawType: "textaera", want: "textarea", ok: true},
		{rawType: "zzzzzzzzzz", ok: false},
		{rawType: "select", ok: false},
		{rawType: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.rawType, func(t *testing.T) {
			got, ok := classify.Suggest(tc.rawType)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Suggest(%q): want (%q, %v), got (%q, %v)", tc.rawType, tc.want, tc.ok, got, ok)
			}
		})
	}
}
