package classify

import "github.com/goliatone/go-formlayout/pkg/layout"

// TypeRange is the synthesized type for nodes carrying both numeric bounds.
const TypeRange = "range"

// Result is the outcome of classifying a node type.
type Result struct {
	// Type is the normalized node type.
	Type string
	// Category is the control family rendering the node.
	Category Category
	// InputType is the HTML-style input subtype for CategoryInput nodes.
	InputType string
}

// categoryByType maps every recognised node type to its control category.
var categoryByType = map[string]Category{
	"text":           CategoryInput,
	"email":          CategoryInput,
	"integer":        CategoryInput,
	"url":            CategoryInput,
	"datetime":       CategoryInput,
	"time":           CategoryInput,
	"number":         CategoryInput,
	"search":         CategoryInput,
	"date-time":      CategoryInput,
	"week":           CategoryInput,
	"updown":         CategoryInput,
	"tel":            CategoryInput,
	"alt-datetime":   CategoryInput,
	"month":          CategoryInput,
	"password":       CategoryInput,
	"datetime-local": CategoryInput,

	"date":     CategoryDate,
	"alt-date": CategoryDate,

	// TODO: dedicated widgets for hidden, color and image controls.
	"hidden": CategoryNone,
	"color":  CategoryNone,
	"image":  CategoryNone,

	TypeRange:  CategorySlider,
	"textarea": CategoryTextarea,
	"file":     CategoryFile,
	"select":   CategorySelect,
	"checkbox": CategoryCheckbox,

	"checkboxes":        CategoryCheckboxes,
	"checkboxes-inline": CategoryCheckboxes,
	"checkboxbuttons":   CategoryCheckboxes,

	"radio":         CategoryRadios,
	"radios":        CategoryRadios,
	"radios-inline": CategoryRadios,

	"radiobuttons": CategoryButtonGroup,

	"reset":  CategoryButton,
	"submit": CategoryButton,
	"button": CategoryButton,

	"fieldset":         CategorySection,
	"conditional":      CategorySection,
	"actions":          CategorySection,
	"array":            CategorySection,
	"authfieldset":     CategorySection,
	"optionfieldset":   CategorySection,
	"tab":              CategorySection,
	"selectfieldset":   CategorySection,
	"advancedfieldset": CategorySection,
	"section":          CategorySection,
	"wizard":           CategorySection,

	"tabs":     CategoryTabs,
	"tabarray": CategoryTabs,

	"help":    CategoryMessage,
	"message": CategoryMessage,
	"msg":     CategoryMessage,
	"html":    CategoryMessage,

	"template": CategoryTemplate,
}

// typeAliases rewrites schema-flavoured type names into their canonical form.
var typeAliases = map[string]string{
	"updown":       "number",
	"alt-date":     "date",
	"datetime":     "datetime-local",
	"date-time":    "datetime-local",
	"alt-datetime": "datetime-local",
}

// Classify resolves a raw node type and its options into a normalized type,
// control category and input subtype. It never fails: unknown types pass
// through unchanged as their own category.
//
// When opts carries both a minimum and a maximum the node is forced to
// TypeRange whatever its declared type, so a bounded select also becomes a
// slider.
func Classify(rawType string, opts *layout.Options) Result {
	nodeType := rawType
	if opts != nil && opts.HasRange() {
		nodeType = TypeRange
	}

	category, ok := categoryByType[nodeType]
	if !ok {
		return Result{Type: nodeType, Category: Category(nodeType)}
	}

	switch category {
	case CategoryInput:
		if nodeType == "integer" {
			return Result{Type: nodeType, Category: category, InputType: "number"}
		}
		normalized := alias(nodeType)
		return Result{Type: normalized, Category: category, InputType: normalized}
	case CategoryDate:
		return Result{Type: alias(nodeType), Category: category}
	default:
		return Result{Type: nodeType, Category: category}
	}
}

// ClassifyNode classifies n using its own options.
func ClassifyNode(n *layout.Node) Result {
	if n == nil {
		return Classify("", nil)
	}
	return Classify(n.Type, &n.Options)
}

// Recognized reports whether rawType has an explicit category mapping.
func Recognized(rawType string) bool {
	_, ok := categoryByType[rawType]
	return ok
}

func alias(nodeType string) string {
	if canonical, ok := typeAliases[nodeType]; ok {
		return canonical
	}
	return nodeType
}
