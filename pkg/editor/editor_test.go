package editor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func ids(list editor.List) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}

func sample() editor.List {
	return editor.List{
		{ID: "a", Type: model.FieldTypeText, Label: "A", Name: "a"},
		{ID: "b", Type: model.FieldTypeSelect, Label: "B", Name: "b", Options: []string{"x", "y"}},
		{ID: "c", Type: model.FieldTypeHidden, Label: "C", Name: "c", DefaultValue: model.StringPtr("")},
	}
}

func TestAppend(t *testing.T) {
	factory := testsupport.NewFactory("new")
	in := sample()

	out := editor.Append(in, factory, model.FieldTypeCheckbox)
	if diff := cmp.Diff([]string{"a", "b", "c", "new0001"}, ids(out)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if out[3].Name != "checkbox_new000" || out[3].Type != model.FieldTypeCheckbox {
		t.Fatalf("unexpected appended field %+v", out[3])
	}
	if len(in) != 3 {
		t.Fatalf("input mutated")
	}

	empty := editor.Append(nil, factory, model.FieldType("bogus"))
	if len(empty) != 1 || empty[0].Type != model.FieldTypeText || empty[0].Name != "f_new000" {
		t.Fatalf("unexpected fallback field %+v", empty)
	}
}

func TestRemove(t *testing.T) {
	in := sample()

	if diff := cmp.Diff([]string{"a", "c"}, ids(editor.Remove(in, "b"))); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(in, editor.Remove(in, "zzz")); diff != "" {
		t.Fatalf("remove of unknown id changed list (-want +got):\n%s", diff)
	}
	if len(in) != 3 {
		t.Fatalf("input mutated")
	}
}

func TestMove(t *testing.T) {
	cases := []struct {
		name string
		id   string
		dir  editor.Direction
		want []string
	}{
		{"up from middle", "b", editor.Up, []string{"b", "a", "c"}},
		{"down from middle", "b", editor.Down, []string{"a", "c", "b"}},
		{"up from first is no-op", "a", editor.Up, []string{"a", "b", "c"}},
		{"down from last is no-op", "c", editor.Down, []string{"a", "b", "c"}},
		{"unknown id", "x", editor.Down, []string{"a", "b", "c"}},
		{"larger step", "a", editor.Direction(2), []string{"b", "c", "a"}},
		{"step out of bounds", "a", editor.Direction(3), []string{"a", "b", "c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := sample()
			got := editor.Move(in, tc.id, tc.dir)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"a", "b", "c"}, ids(in)); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMove_UpThenDownRestores(t *testing.T) {
	in := sample()
	got := editor.Move(editor.Move(in, "b", editor.Up), "b", editor.Down)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	cases := []struct {
		name  string
		id    string
		attr  editor.Attribute
		value any
		check func(t *testing.T, f model.Field)
	}{
		{"label", "a", editor.AttrLabel, "Voornaam", func(t *testing.T, f model.Field) {
			if f.Label != "Voornaam" {
				t.Fatalf("label %q", f.Label)
			}
		}},
		{"required from form value", "a", editor.AttrRequired, "on", func(t *testing.T, f model.Field) {
			if !f.Required {
				t.Fatalf("expected required")
			}
		}},
		{"rows from json number", "a", editor.AttrRows, json.Number("7"), func(t *testing.T, f model.Field) {
			if f.Rows != 7 {
				t.Fatalf("rows %d", f.Rows)
			}
		}},
		{"rows from float", "a", editor.AttrRows, float64(3), func(t *testing.T, f model.Field) {
			if f.Rows != 3 {
				t.Fatalf("rows %d", f.Rows)
			}
		}},
		{"options from lines", "b", editor.AttrOptions, "Rood\n\n Blauw \n", func(t *testing.T, f model.Field) {
			if diff := cmp.Diff([]string{"Rood", "Blauw"}, f.Options); diff != "" {
				t.Fatalf("options (-want +got):\n%s", diff)
			}
		}},
		{"options from any slice", "b", editor.AttrOptions, []any{"p", "q"}, func(t *testing.T, f model.Field) {
			if diff := cmp.Diff([]string{"p", "q"}, f.Options); diff != "" {
				t.Fatalf("options (-want +got):\n%s", diff)
			}
		}},
		{"defaultValue cleared by nil", "c", editor.AttrDefaultValue, nil, func(t *testing.T, f model.Field) {
			if f.DefaultValue != nil {
				t.Fatalf("expected nil default value")
			}
		}},
		{"type change keeps other attributes", "b", editor.AttrType, "TEXTAREA", func(t *testing.T, f model.Field) {
			if f.Type != model.FieldTypeTextarea || f.Label != "B" || len(f.Options) != 2 {
				t.Fatalf("unexpected field %+v", f)
			}
		}},
		{"unsupported type degrades to text", "a", editor.AttrType, "date", func(t *testing.T, f model.Field) {
			if f.Type != model.FieldTypeText {
				t.Fatalf("type %q", f.Type)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := sample()
			out, err := editor.Update(in, tc.id, tc.attr, tc.value)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			field, idx, ok := editor.Find(out, tc.id)
			if !ok {
				t.Fatalf("field %q missing after update", tc.id)
			}
			_, origIdx, _ := editor.Find(in, tc.id)
			if idx != origIdx {
				t.Fatalf("position changed from %d to %d", origIdx, idx)
			}
			tc.check(t, field)
			if diff := cmp.Diff(sample(), in); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate_Errors(t *testing.T) {
	in := sample()

	out, err := editor.Update(in, "a", editor.Attribute("colour"), "red")
	if !errors.Is(err, editor.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("list changed on error (-want +got):\n%s", diff)
	}

	if _, err := editor.Update(in, "a", editor.Attribute("id"), "other"); !errors.Is(err, editor.ErrUnknownAttribute) {
		t.Fatalf("expected id to be immutable, got %v", err)
	}
	if _, err := editor.Update(in, "a", editor.AttrRows, "many"); !errors.Is(err, editor.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := editor.Update(in, "a", editor.AttrRequired, []int{1}); !errors.Is(err, editor.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := editor.Update(in, "a", editor.AttrOptions, []any{1}); !errors.Is(err, editor.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}

	unchanged, err := editor.Update(in, "missing", editor.AttrLabel, "x")
	if err != nil {
		t.Fatalf("expected no error for unknown id, got %v", err)
	}
	if diff := cmp.Diff(in, unchanged); diff != "" {
		t.Fatalf("unknown id changed list (-want +got):\n%s", diff)
	}
}

func TestUpdate_ReturnsDeepCopy(t *testing.T) {
	in := sample()
	out, err := editor.Update(in, "a", editor.AttrLabel, "Z")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	out[1].Options[0] = "mutated"
	if in[1].Options[0] != "x" {
		t.Fatalf("output shares option slice with input")
	}
}

func TestDuplicateNames(t *testing.T) {
	list := editor.List{
		{ID: "1", Name: "email"},
		{ID: "2", Name: "name"},
		{ID: "3", Name: "email"},
		{ID: "4", Name: "age"},
		{ID: "5", Name: "age"},
	}
	if diff := cmp.Diff([]string{"age", "email"}, editor.DuplicateNames(list)); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
	if got := editor.DuplicateNames(sample()); got != nil {
		t.Fatalf("expected no duplicates, got %v", got)
	}
}
