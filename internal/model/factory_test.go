package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%04d-0000", prefix, n)
	}
}

func TestFactoryNew_Defaults(t *testing.T) {
	factory := NewFactory(Options{IDGenerator: func() string { return "abcdef123456" }})

	cases := []struct {
		typ  FieldType
		want Field
	}{
		{FieldTypeText, Field{ID: "abcdef123456", Type: FieldTypeText, Label: "Tekst", Name: "field_abcdef", Placeholder: "Tekst"}},
		{FieldTypeEmail, Field{ID: "abcdef123456", Type: FieldTypeEmail, Label: "E-mail", Name: "email_abcdef", Placeholder: "jij@voorbeeld.nl"}},
		{FieldTypeNumber, Field{ID: "abcdef123456", Type: FieldTypeNumber, Label: "Nummer", Name: "number_abcdef", Placeholder: "0"}},
		{FieldTypeTextarea, Field{ID: "abcdef123456", Type: FieldTypeTextarea, Label: "Tekstvlak", Name: "textarea_abcdef", Rows: 4}},
		{FieldTypeCheckbox, Field{ID: "abcdef123456", Type: FieldTypeCheckbox, Label: "Akkoord", Name: "checkbox_abcdef"}},
		{FieldTypeSelect, Field{ID: "abcdef123456", Type: FieldTypeSelect, Label: "Selectie", Name: "select_abcdef", Options: []string{"Optie A", "Optie B"}}},
		{FieldTypeHidden, Field{ID: "abcdef123456", Type: FieldTypeHidden, Label: "Verborgen veld", Name: "hidden_abcdef", Hidden: true, DefaultValue: StringPtr("")}},
		{FieldType("color"), Field{ID: "abcdef123456", Type: FieldTypeText, Label: "Tekst", Name: "f_abcdef"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			got := factory.New(tc.typ)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("field mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFactoryNew_FreshIDs(t *testing.T) {
	factory := NewFactory(Options{})

	a := factory.New(FieldTypeText)
	b := factory.New(FieldTypeText)
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q twice", a.ID)
	}
	if !strings.HasPrefix(a.Name, "field_"+a.ID[:6]) {
		t.Fatalf("name %q does not carry id prefix of %q", a.Name, a.ID)
	}
}

func TestFactorySeed(t *testing.T) {
	factory := NewFactory(Options{IDGenerator: sequentialIDs("seed")})

	got := factory.Seed()
	want := []Field{
		{ID: "seed0001-0000", Type: FieldTypeText, Label: "Naam", Name: "name", Required: true, Placeholder: "Jouw naam"},
		{ID: "seed0002-0000", Type: FieldTypeEmail, Label: "E-mail", Name: "email", Required: true, Placeholder: "jij@voorbeeld.nl"},
		{ID: "seed0003-0000", Type: FieldTypeTextarea, Label: "Omschrijving", Name: "description", Rows: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if locale != "en" {
		return "", errors.New("unsupported locale")
	}
	if msg, ok := m[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing")
}

func TestFactory_TranslatedDefaults(t *testing.T) {
	translator := mapTranslator{
		"field_select_label":    "Choice",
		"field_select_option_a": "Option A",
		"field_select_option_b": "Option B",
	}
	factory := NewFactory(Options{IDGenerator: func() string { return "123456789" }, Translator: translator, Locale: "en"})

	field := factory.New(FieldTypeSelect)
	if field.Label != "Choice" {
		t.Fatalf("expected translated label, got %q", field.Label)
	}
	if diff := cmp.Diff([]string{"Option A", "Option B"}, field.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	// Keys without a translation fall back to the Dutch literal.
	if got := factory.New(FieldTypeNumber).Label; got != "Nummer" {
		t.Fatalf("expected fallback label, got %q", got)
	}
}

func TestFieldClone_Deep(t *testing.T) {
	original := Field{ID: "x", Options: []string{"a"}, DefaultValue: StringPtr("v")}
	clone := original.Clone()
	clone.Options[0] = "b"
	*clone.DefaultValue = "w"

	if original.Options[0] != "a" || *original.DefaultValue != "v" {
		t.Fatalf("clone shares state with original: %+v", original)
	}
}

func TestFieldEffectiveRows(t *testing.T) {
	if got := (Field{}).EffectiveRows(); got != 4 {
		t.Fatalf("expected default rows 4, got %d", got)
	}
	if got := (Field{Rows: 9}).EffectiveRows(); got != 9 {
		t.Fatalf("expected explicit rows, got %d", got)
	}
}

func TestParseFieldType(t *testing.T) {
	if got, ok := ParseFieldType("  Email "); !ok || got != FieldTypeEmail {
		t.Fatalf("expected email, got %q (%v)", got, ok)
	}
	if _, ok := ParseFieldType("date"); ok {
		t.Fatalf("expected date to be rejected")
	}
}
