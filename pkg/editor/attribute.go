package editor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Attribute names a mutable Field attribute. Values match the JSON keys.
type Attribute string

const (
	AttrLabel          Attribute = "label"
	AttrName           Attribute = "name"
	AttrType           Attribute = "type"
	AttrRequired       Attribute = "required"
	AttrPlaceholder    Attribute = "placeholder"
	AttrHidden         Attribute = "hidden"
	AttrDefaultValue   Attribute = "defaultValue"
	AttrDefaultChecked Attribute = "defaultChecked"
	AttrRows           Attribute = "rows"
	AttrOptions        Attribute = "options"
)

var attributes = []Attribute{
	AttrLabel,
	AttrName,
	AttrType,
	AttrRequired,
	AttrPlaceholder,
	AttrHidden,
	AttrDefaultValue,
	AttrDefaultChecked,
	AttrRows,
	AttrOptions,
}

// Attributes returns the mutable attributes in Field order.
func Attributes() []Attribute {
	return append([]Attribute(nil), attributes...)
}

// Valid reports whether a names a mutable attribute.
func (a Attribute) Valid() bool {
	for _, candidate := range attributes {
		if candidate == a {
			return true
		}
	}
	return false
}

func apply(field model.Field, attr Attribute, value any) (model.Field, error) {
	switch attr {
	case AttrLabel:
		s, err := toString(attr, value)
		if err != nil {
			return field, err
		}
		field.Label = s
	case AttrName:
		s, err := toString(attr, value)
		if err != nil {
			return field, err
		}
		field.Name = s
	case AttrPlaceholder:
		s, err := toString(attr, value)
		if err != nil {
			return field, err
		}
		field.Placeholder = s
	case AttrType:
		s, err := toString(attr, value)
		if err != nil {
			return field, err
		}
		t, ok := model.ParseFieldType(s)
		if !ok {
			// Unsupported types render as text, same as the factory.
			t = model.FieldTypeText
		}
		field.Type = t
	case AttrRequired:
		b, err := toBool(attr, value)
		if err != nil {
			return field, err
		}
		field.Required = b
	case AttrHidden:
		b, err := toBool(attr, value)
		if err != nil {
			return field, err
		}
		field.Hidden = b
	case AttrDefaultChecked:
		b, err := toBool(attr, value)
		if err != nil {
			return field, err
		}
		field.DefaultChecked = b
	case AttrDefaultValue:
		if value == nil {
			field.DefaultValue = nil
			return field, nil
		}
		s, err := toString(attr, value)
		if err != nil {
			return field, err
		}
		field.DefaultValue = model.StringPtr(s)
	case AttrRows:
		n, err := toInt(attr, value)
		if err != nil {
			return field, err
		}
		field.Rows = n
	case AttrOptions:
		opts, err := toStrings(attr, value)
		if err != nil {
			return field, err
		}
		field.Options = opts
	default:
		return field, fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	return field, nil
}

func invalid(attr Attribute, value any) error {
	return fmt.Errorf("%w: %s does not accept %T", ErrInvalidValue, attr, value)
}

func toString(attr Attribute, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case json.Number:
		return v.String(), nil
	case bool, int, int64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", invalid(attr, value)
	}
}

func toBool(attr Attribute, value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no", "":
			return false, nil
		}
	case int:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}
	return false, invalid(attr, value)
}

func toInt(attr Attribute, value any) (int, error) {
	var n int
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, invalid(attr, value)
		}
		n = int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, invalid(attr, value)
		}
		n = int(i)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		i, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, invalid(attr, value)
		}
		n = i
	default:
		return 0, invalid(attr, value)
	}
	if n < 0 {
		return 0, invalid(attr, value)
	}
	return n, nil
}

func toStrings(attr Attribute, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(attr, value)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		var out []string
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out, nil
	default:
		return nil, invalid(attr, value)
	}
}
