package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeHidden   = internalmodel.FieldTypeHidden
)

// DefaultTextareaRows is the row count used when a textarea has none set.
const DefaultTextareaRows = internalmodel.DefaultTextareaRows

// Field re-exports the internal Field type.
type Field = internalmodel.Field

// Translator resolves localized default labels and placeholders.
type Translator = internalmodel.Translator

// FieldTypes returns the supported field types in canonical order.
func FieldTypes() []FieldType {
	return internalmodel.FieldTypes()
}

// ParseFieldType normalises raw input and reports whether it is supported.
func ParseFieldType(raw string) (FieldType, bool) {
	return internalmodel.ParseFieldType(raw)
}

// StringPtr returns a pointer to value, handy for Field.DefaultValue.
func StringPtr(value string) *string {
	return internalmodel.StringPtr(value)
}

// CloneFields deep copies a field slice.
func CloneFields(fields []Field) []Field {
	return internalmodel.CloneFields(fields)
}

// DecodeFields parses a YAML or JSON field file.
func DecodeFields(data []byte) ([]Field, error) {
	return internalmodel.DecodeFields(data)
}

// EncodeFields writes fields as a YAML field document.
func EncodeFields(fields []Field) ([]byte, error) {
	return internalmodel.EncodeFields(fields)
}

// LabelFromName derives a display label from a field name.
func LabelFromName(name string) string {
	return internalmodel.LabelFromName(name)
}
