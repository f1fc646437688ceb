// Package contentmanager is the schema-driven CRUD surface behind the admin
// panel: a typed field schema, form rendering and validation, and a table
// Manager that talks to the record endpoints over HTTP.
package contentmanager

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects how a field is rendered and validated.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindSelect   Kind = "select"
	KindNumber   Kind = "number"
	KindEmail    Kind = "email"
	KindURL      Kind = "url"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one editable attribute. Options are only set for
// KindSelect; use the constructors below rather than building Fields by hand.
type Field struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"type"`
	Required bool     `json:"required,omitempty"`
	Options  []Option `json:"options,omitempty"`
}

func Text(key, label string) Field     { return Field{Key: key, Label: label, Kind: KindText} }
func TextArea(key, label string) Field { return Field{Key: key, Label: label, Kind: KindTextArea} }
func Number(key, label string) Field   { return Field{Key: key, Label: label, Kind: KindNumber} }
func Email(key, label string) Field    { return Field{Key: key, Label: label, Kind: KindEmail} }
func URL(key, label string) Field      { return Field{Key: key, Label: label, Kind: KindURL} }

func Select(key, label string, options ...Option) Field {
	return Field{Key: key, Label: label, Kind: KindSelect, Options: options}
}

// Boolean is a yes/no select whose value is sent as a JSON bool.
func Boolean(key, label string) Field {
	return Select(key, label, Option{Value: "true", Label: "Yes"}, Option{Value: "false", Label: "No"})
}

func (f Field) boolean() bool {
	return f.Kind == KindSelect && len(f.Options) == 2 &&
		f.Options[0].Value == "true" && f.Options[1].Value == "false"
}

// Choices builds options whose label equals the value.
func Choices(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// Require marks the field as mandatory.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// Schema is the ordered list of fields of one resource.
type Schema []Field

func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the field label for key, or key itself when undeclared.
func (s Schema) Label(key string) string {
	if f, ok := s.Field(key); ok && f.Label != "" {
		return f.Label
	}
	return key
}

// Record is one row as decoded from the JSON API.
type Record map[string]any

func (r Record) ID() string {
	return r.Text("id")
}

// Text renders a value the way it is shown in a table cell.
func (r Record) Text(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Clone copies the top-level values.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
