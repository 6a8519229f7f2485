// Package layout defines the layout tree a form is rendered from. Each Node
// describes one field or grouping (text input, select, array of repeatable
// items, nested section) together with a typed Options record. Well-known
// option keys (`minimum`, `maximum`, `readonly`, `removable`, `minItems`,
// `maxItems`, `orderable`, `title`, `helpvalue`) are decoded into explicit
// fields so defaults are enforced in one place; any other key survives in
// Options.Extra. Documents are loaded from JSON or YAML, or read from the
// `x-formlayout` extension of an OpenAPI operation.
package layout
