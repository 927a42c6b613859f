package model

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

type fieldDocument struct {
	Fields []Field `yaml:"fields"`
}

// DecodeFields parses a YAML (or JSON) field file. Both a document with a
// top-level `fields` key and a bare list are accepted. A missing or
// unsupported type means text, the same fallback the factory applies, and a
// missing label is derived from the name. Ids are left empty when absent, see
// Factory.EnsureIDs.
func DecodeFields(data []byte) ([]Field, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var fields []Field
	if trimmed[0] == '[' || trimmed[0] == '-' {
		if err := yaml.Unmarshal(trimmed, &fields); err != nil {
			return nil, fmt.Errorf("model: decode field list: %w", err)
		}
	} else {
		var doc fieldDocument
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("model: decode field document: %w", err)
		}
		fields = doc.Fields
	}

	seen := make(map[string]struct{}, len(fields))
	for i, field := range fields {
		if !field.Type.Valid() {
			fields[i].Type = FieldTypeText
		}
		if field.Label == "" {
			fields[i].Label = LabelFromName(field.Name)
		}
		if field.ID == "" {
			continue
		}
		if _, dup := seen[field.ID]; dup {
			return nil, fmt.Errorf("model: duplicate field id %q", field.ID)
		}
		seen[field.ID] = struct{}{}
	}
	return fields, nil
}

// EncodeFields renders fields as a YAML field document.
func EncodeFields(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fieldDocument{Fields: fields}); err != nil {
		return nil, fmt.Errorf("model: encode fields: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("model: encode fields: %w", err)
	}
	return buf.Bytes(), nil
}
