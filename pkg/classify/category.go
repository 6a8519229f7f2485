// Package classify maps layout node types onto the fixed set of control
// categories renderers implement.
package classify

// Category is the abstract control family a layout node resolves to.
// Unrecognised node types pass through as a Category equal to the type.
type Category string

const (
	CategoryInput       Category = "input"
	CategoryDate        Category = "date"
	CategorySlider      Category = "slider"
	CategoryTextarea    Category = "textarea"
	CategoryFile        Category = "file"
	CategorySelect      Category = "select"
	CategoryCheckbox    Category = "checkbox"
	CategoryCheckboxes  Category = "checkboxes"
	CategoryRadios      Category = "radios"
	CategoryButtonGroup Category = "buttonGroup"
	CategoryButton      Category = "button"
	CategorySection     Category = "section"
	CategoryTabs        Category = "tabs"
	CategoryMessage     Category = "message"
	CategoryTemplate    Category = "template"
	CategoryNone        Category = "none"
)

var knownCategories = map[Category]struct{}{
	CategoryInput:       {},
	CategoryDate:        {},
	CategorySlider:      {},
	CategoryTextarea:    {},
	CategoryFile:        {},
	CategorySelect:      {},
	CategoryCheckbox:    {},
	CategoryCheckboxes:  {},
	CategoryRadios:      {},
	CategoryButtonGroup: {},
	CategoryButton:      {},
	CategorySection:     {},
	CategoryTabs:        {},
	CategoryMessage:     {},
	CategoryTemplate:    {},
	CategoryNone:        {},
}

// Known reports whether c belongs to the fixed category vocabulary.
func (c Category) Known() bool {
	_, ok := knownCategories[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
