package ui

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

// ClientMessageKeys are translated once per request and handed to the
// browser script.
var ClientMessageKeys = []string{
	"ui_move_up",
	"ui_move_down",
	"ui_remove",
	"ui_type",
	"ui_label",
	"ui_name",
	"ui_placeholder",
	"ui_options",
	"ui_rows",
	"ui_required",
	"ui_hidden",
	"ui_default_value",
	"ui_default_checked",
	"ui_testing",
	"ui_uploading",
	"ui_webhook_ok",
	"ui_failed",
	"ui_uploaded",
	"ui_upload_failed",
	"ui_duplicate_names",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	translator       render.Translator
}

// WithTemplatesFS replaces the embedded templates. The bundle must contain
// BuilderTemplate and ThanksTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the templates from disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTranslator resolves the screen labels. Without one every label falls
// back to its message key.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// BuilderData is the per-request input of the builder screen.
type BuilderData struct {
	Locale      string
	State       builder.State
	APIBase     string
	AssetsBase  string
	PurchaseURL string
}

// ThanksData is the per-request input of the thanks page.
type ThanksData struct {
	Locale     string
	HomeURL    string
	AssetsBase string
}

// Screen renders the builder pages.
type Screen struct {
	templates  rendertemplate.TemplateRenderer
	translator render.Translator
}

func New(options ...Option) (*Screen, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithName("ui"),
		)
		if err != nil {
			return nil, fmt.Errorf("ui: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Screen{templates: renderer, translator: cfg.translator}, nil
}

func MustNew(options ...Option) *Screen {
	s, err := New(options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Builder renders the editing screen with the session state embedded for
// the browser script.
func (s *Screen) Builder(ctx context.Context, data BuilderData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := data.State
	view := s.base(data.Locale, data.AssetsBase)
	view["api"] = strings.TrimSuffix(data.APIBase, "/")
	view["state"] = state
	view["field_types"] = state.FieldTypes
	view["scopes"] = publish.Scopes()
	view["purchase"] = data.PurchaseURL != ""
	view["purchase_url"] = data.PurchaseURL
	view["messages"] = s.clientMessages(data.Locale)
	return s.render(BuilderTemplate, view)
}

// Thanks renders the page shown after a completed checkout.
func (s *Screen) Thanks(ctx context.Context, data ThanksData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	home := data.HomeURL
	if home == "" {
		home = "/"
	}
	view := s.base(data.Locale, data.AssetsBase)
	view["home"] = home
	return s.render(ThanksTemplate, view)
}

func (s *Screen) base(locale, assets string) map[string]any {
	view := render.TemplateI18nFuncs(s.translator, render.TemplateI18nConfig{Locale: locale})
	assets = strings.TrimSuffix(assets, "/")
	if assets == "" {
		assets = "/assets"
	}
	view["assets"] = assets
	return view
}

func (s *Screen) clientMessages(locale string) map[string]string {
	opts := render.RenderOptions{Locale: locale}
	out := make(map[string]string, len(ClientMessageKeys))
	for _, key := range ClientMessageKeys {
		out[key] = render.Translate(s.translator, opts.ResolvedLocale(), key, "", nil)
	}
	return out
}

func (s *Screen) render(name string, view map[string]any) ([]byte, error) {
	out, err := s.templates.RenderTemplate(name, view)
	if err != nil {
		return nil, fmt.Errorf("ui: render %s: %w", name, err)
	}
	return []byte(out), nil
}
