package formbuilder

import (
	"fmt"
	"os"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// LoadFields reads a YAML or JSON field file: either a bare list or a
// document with a "fields" key.
func LoadFields(path string) ([]Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: read fields: %w", err)
	}
	return ParseFields(data)
}

// ParseFields decodes field data in any format LoadFields accepts.
func ParseFields(data []byte) ([]Field, error) {
	return model.DecodeFields(data)
}
