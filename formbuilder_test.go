package formbuilder_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestGenerateHTML(t *testing.T) {
	out, err := formbuilder.GenerateHTML(testsupport.Context(), testsupport.SampleFields(), "https://example.com/hook", formbuilder.RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `const submitUrl = "https://example.com/hook";`) {
		t.Fatalf("expected submit url slot in output")
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	out, err := formbuilder.ExportJSON(testsupport.Context(), testsupport.SampleFields(), "https://example.com/hook")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	fields, err := formbuilder.ParseFields(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(testsupport.SampleFields(), fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, []byte("fields:\n  - id: x\n    type: checkbox\n    label: Ok\n    name: ok\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fields, err := formbuilder.LoadFields(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fields) != 1 || fields[0].Type != model.FieldTypeCheckbox {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if _, err := formbuilder.LoadFields(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewSessionSeeds(t *testing.T) {
	s, err := formbuilder.NewSession(formbuilder.SessionOptions{})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if got := len(s.Fields()); got != 3 {
		t.Fatalf("expected 3 starter fields, got %d", got)
	}
	if got := len(formbuilder.DefaultFields()); got != 3 {
		t.Fatalf("expected 3 default fields, got %d", got)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.ReadFile(formbuilder.EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	data, err := fs.ReadFile(formbuilder.AssetsFS(), "builder.js")
	if err != nil {
		t.Fatalf("expected builder script: %v", err)
	}
	if !strings.Contains(string(data), "FORMBUILDER") {
		t.Fatalf("unexpected builder script")
	}
}
