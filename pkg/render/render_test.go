package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(_ context.Context, page render.Page, _ render.RenderOptions) ([]byte, error) {
	return []byte(s.name + ":" + page.SubmitURL), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "b"})
	registry.MustRegister(stubRenderer{name: "a"})

	if err := registry.Register(stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("b") || registry.Has("c") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("c"); err == nil {
		t.Fatalf("expected missing renderer error")
	}

	out, contentType, err := registry.Render(context.Background(), "a", render.Page{SubmitURL: "https://x"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "a:https://x" || contentType != "text/plain" {
		t.Fatalf("unexpected render result %q %q", out, contentType)
	}
}

func TestLocalizePage_Defaults(t *testing.T) {
	got := render.LocalizePage(render.RenderOptions{})
	if diff := cmp.Diff(render.DefaultPageMessages(), got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizePage_TranslatorAndTitle(t *testing.T) {
	translator := stubTranslator{
		render.KeyPageSubmit:  "Send",
		render.KeyPageSuccess: "Sent!",
		render.KeyPageTitle:   "Form",
	}

	got := render.LocalizePage(render.RenderOptions{Locale: "en", Translator: translator, Title: "Contact"})
	want := render.PageMessages{
		Title:       "Contact",
		Submit:      "Send",
		Success:     "Sent!",
		ErrorPrefix: "Fout bij verzenden: ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizePage_OnMissing(t *testing.T) {
	var missing []string
	opts := render.RenderOptions{
		OnMissing: func(locale, key string, _ []any, err error) string {
			if !errors.Is(err, render.ErrMissingTranslator) {
				t.Fatalf("expected ErrMissingTranslator, got %v", err)
			}
			missing = append(missing, locale+":"+key)
			return "?" + key
		},
	}

	got := render.LocalizePage(opts)
	if got.Submit != "?page_submit" {
		t.Fatalf("expected handler output, got %q", got.Submit)
	}
	if len(missing) != 4 || missing[0] != "nl:page_title" {
		t.Fatalf("unexpected missing calls %v", missing)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(stubTranslator{"ui_title": "Builder"}, render.TemplateI18nConfig{
		Locale:    "en",
		Fallbacks: map[string]string{"ui_add": "Toevoegen"},
	})

	translate := funcs["translate"].(func(string) string)
	if got := translate("ui_title"); got != "Builder" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := translate("ui_add"); got != "Toevoegen" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := translate("ui_unknown"); got != "ui_unknown" {
		t.Fatalf("expected key, got %q", got)
	}
	if got := funcs["current_locale"].(func() string)(); got != "en" {
		t.Fatalf("expected locale en, got %q", got)
	}
}

func TestScriptJSON_EscapesScriptBreakers(t *testing.T) {
	value := map[string]any{
		"label": "</script><!-- & \u2028 \u2029",
		"list":  []string{"a", "b"},
	}

	out, err := render.ScriptJSON(value)
	if err != nil {
		t.Fatalf("script json: %v", err)
	}
	for _, forbidden := range []string{"</script", "<!--", "<", ">", "&", "\u2028", "\u2029", "\n"} {
		if strings.Contains(out, forbidden) {
			t.Fatalf("output %q contains %q", out, forbidden)
		}
	}
	want := `{"label":"\u003c/script\u003e\u003c!-- \u0026 \u2028 \u2029","list":["a","b"]}`
	if out != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s", want, out)
	}
}

func TestScriptJSON_Deterministic(t *testing.T) {
	value := map[string]any{"z": 1, "a": 2, "m": []any{"x", nil}}
	first := render.MustScriptJSON(value)
	for i := 0; i < 10; i++ {
		if got := render.MustScriptJSON(value); got != first {
			t.Fatalf("non deterministic output: %s vs %s", first, got)
		}
	}
}
