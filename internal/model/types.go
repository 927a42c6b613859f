package model

import "strings"

// FieldType is the closed enumeration of controls a generated page can render.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeHidden   FieldType = "hidden"
)

// DefaultTextareaRows is used when a textarea field carries no explicit rows.
const DefaultTextareaRows = 4

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeSelect,
	FieldTypeCheckbox,
	FieldTypeTextarea,
	FieldTypeHidden,
}

// FieldTypes returns the supported field types in canonical order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// Valid reports whether t is part of the enumeration.
func (t FieldType) Valid() bool {
	for _, candidate := range fieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseFieldType normalises raw input and reports whether it names a
// supported type.
func ParseFieldType(raw string) (FieldType, bool) {
	t := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Valid()
}

// Field describes one form control of the generated page. Struct tags match
// the JSON payload embedded in the page script, so the same value feeds the
// builder API, the field files, and the renderer.
type Field struct {
	ID             string    `json:"id" yaml:"id,omitempty"`
	Type           FieldType `json:"type" yaml:"type"`
	Label          string    `json:"label" yaml:"label"`
	Name           string    `json:"name" yaml:"name"`
	Required       bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder    string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Hidden         bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	DefaultValue   *string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	DefaultChecked bool      `json:"defaultChecked,omitempty" yaml:"defaultChecked,omitempty"`
	Rows           int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Options        []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a deep copy so callers can mutate the result without touching
// the receiver's slices or pointers.
func (f Field) Clone() Field {
	out := f
	if f.DefaultValue != nil {
		value := *f.DefaultValue
		out.DefaultValue = &value
	}
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// EffectiveRows returns the row count a textarea renders with.
func (f Field) EffectiveRows() int {
	if f.Rows > 0 {
		return f.Rows
	}
	return DefaultTextareaRows
}

// StringPtr is a small helper for optional string attributes.
func StringPtr(value string) *string {
	return &value
}

// CloneFields deep copies a field slice. A nil input yields nil.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
