package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"
)

// Option keys recognised by the Options record.
const (
	KeyMinimum   = "minimum"
	KeyMaximum   = "maximum"
	KeyReadOnly  = "readonly"
	KeyRemovable = "removable"
	KeyMinItems  = "minItems"
	KeyMaxItems  = "maxItems"
	KeyOrderable = "orderable"
	KeyTitle     = "title"
	KeyHelpValue = "helpvalue"
)

// Options is the per-node option record. Missing keys decode to their zero
// values; unknown keys are kept in Extra.
type Options struct {
	Minimum   *float64
	Maximum   *float64
	ReadOnly  bool
	Removable bool
	MinItems  int
	MaxItems  int
	Orderable bool
	Title     string
	HelpValue string
	Extra     map[string]any
}

// HasRange reports whether both numeric bounds are set to a truthy (non-zero)
// value. Nodes satisfying this are rendered as range sliders.
func (o Options) HasRange() bool {
	return truthy(o.Minimum) && truthy(o.Maximum)
}

func truthy(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}

// Clone returns a deep copy of the options.
func (o Options) Clone() Options {
	out := o
	if o.Minimum != nil {
		minimum := *o.Minimum
		out.Minimum = &minimum
	}
	if o.Maximum != nil {
		maximum := *o.Maximum
		out.Maximum = &maximum
	}
	if o.Extra != nil {
		out.Extra = deepcopy.Copy(o.Extra).(map[string]any)
	}
	return out
}

// Get returns the raw value stored under key, covering both typed fields and
// extras.
func (o Options) Get(key string) (any, bool) {
	value, ok := o.Map()[key]
	return value, ok
}

// Map flattens the record back into its document form.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.Extra)+9)
	for key, value := range o.Extra {
		out[key] = value
	}
	if o.Minimum != nil {
		out[KeyMinimum] = *o.Minimum
	}
	if o.Maximum != nil {
		out[KeyMaximum] = *o.Maximum
	}
	if o.ReadOnly {
		out[KeyReadOnly] = true
	}
	if o.Removable {
		out[KeyRemovable] = true
	}
	if o.MinItems != 0 {
		out[KeyMinItems] = o.MinItems
	}
	if o.MaxItems != 0 {
		out[KeyMaxItems] = o.MaxItems
	}
	if o.Orderable {
		out[KeyOrderable] = true
	}
	if o.Title != "" {
		out[KeyTitle] = o.Title
	}
	if o.HelpValue != "" {
		out[KeyHelpValue] = o.HelpValue
	}
	return out
}

// OptionsFromMap builds an Options record from a decoded document map.
func OptionsFromMap(raw map[string]any) (Options, error) {
	var opts Options
	for key, value := range raw {
		var err error
		switch key {
		case KeyMinimum:
			opts.Minimum, err = floatPtr(value)
		case KeyMaximum:
			opts.Maximum, err = floatPtr(value)
		case KeyReadOnly, "readOnly":
			opts.ReadOnly = opts.ReadOnly || isTruthy(value)
		case KeyRemovable:
			opts.Removable = isTruthy(value)
		case KeyMinItems:
			opts.MinItems, err = toInt(value)
		case KeyMaxItems:
			opts.MaxItems, err = toInt(value)
		case KeyOrderable:
			opts.Orderable = isTruthy(value)
		case KeyTitle:
			opts.Title = toString(value)
		case KeyHelpValue:
			opts.HelpValue = toString(value)
		default:
			if opts.Extra == nil {
				opts.Extra = make(map[string]any)
			}
			opts.Extra[key] = value
		}
		if err != nil {
			return Options{}, fmt.Errorf("layout: option %q: %w", key, err)
		}
	}
	return opts, nil
}

// MarshalJSON emits the flattened document form.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

// UnmarshalJSON decodes a JSON object into the record.
func (o *Options) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*o = Options{}
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	opts, err := OptionsFromMap(raw)
	if err != nil {
		return err
	}
	*o = opts
	return nil
}

// MarshalYAML emits the flattened document form.
func (o Options) MarshalYAML() (any, error) {
	return o.Map(), nil
}

// UnmarshalYAML decodes a YAML mapping into the record.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	opts, err := OptionsFromMap(raw)
	if err != nil {
		return err
	}
	*o = opts
	return nil
}

func floatPtr(value any) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	f, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toInt(value any) (int, error) {
	if value == nil {
		return 0, nil
	}
	f, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}
