package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

// SequentialIDs returns an id generator producing prefix-0001, prefix-0002...
// Names derived from these ids are stable across runs.
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%04d", prefix, n)
	}
}

// NewFactory returns a field factory with sequential ids.
func NewFactory(prefix string) *pkgmodel.Factory {
	return pkgmodel.NewFactory(pkgmodel.WithIDGenerator(SequentialIDs(prefix)))
}

// SampleFields returns one field per supported type, in canonical order, with
// deterministic ids and a few non-default attributes set.
func SampleFields() []pkgmodel.Field {
	return []pkgmodel.Field{
		{ID: "f-text", Type: pkgmodel.FieldTypeText, Label: "Naam", Name: "name", Required: true, Placeholder: "Jouw naam"},
		{ID: "f-email", Type: pkgmodel.FieldTypeEmail, Label: "E-mail", Name: "email", Placeholder: "jij@voorbeeld.nl"},
		{ID: "f-number", Type: pkgmodel.FieldTypeNumber, Label: "Leeftijd", Name: "age", Placeholder: "0"},
		{ID: "f-select", Type: pkgmodel.FieldTypeSelect, Label: "Kleur", Name: "color", Options: []string{"Rood", "Blauw"}, DefaultValue: pkgmodel.StringPtr("Blauw")},
		{ID: "f-checkbox", Type: pkgmodel.FieldTypeCheckbox, Label: "Akkoord", Name: "agree", DefaultChecked: true},
		{ID: "f-textarea", Type: pkgmodel.FieldTypeTextarea, Label: "Omschrijving", Name: "description"},
		{ID: "f-hidden", Type: pkgmodel.FieldTypeHidden, Label: "Bron", Name: "source", Hidden: true, DefaultValue: pkgmodel.StringPtr("")},
	}
}

// MustLoadFields reads a YAML or JSON field file.
func MustLoadFields(t *testing.T, path string) []pkgmodel.Field {
	t.Helper()

	fields, err := LoadFields(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// LoadFields reads a field file without requiring testing.T.
func LoadFields(path string) ([]pkgmodel.Field, error) {
	if path == "" {
		return nil, errors.New("testsupport: fields path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fields: %w", err)
	}
	fields, err := pkgmodel.DecodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode fields: %w", err)
	}
	return fields, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
