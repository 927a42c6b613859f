package page

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

// Name is the registry name of the page renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces the standalone HTML page: inline styles, an inline
// script that builds the controls from the embedded field list, prefill
// from the query string, and a JSON POST to the submit URL.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithName("page"),
		)
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

// MustNew panics when the renderer cannot be built.
func MustNew(options ...Option) *Renderer {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render fills the page template. Identical inputs produce byte-identical
// output.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := templateData(page, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(TemplateName, data)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func templateData(page render.Page, opts render.RenderOptions) (map[string]any, error) {
	fields := page.Fields
	if fields == nil {
		fields = []model.Field{}
	}
	messages := render.LocalizePage(opts)

	fieldsJSON, err := render.ScriptJSON(fields)
	if err != nil {
		return nil, fmt.Errorf("page renderer: fields: %w", err)
	}
	submitURLJSON, err := render.ScriptJSON(page.SubmitURL)
	if err != nil {
		return nil, fmt.Errorf("page renderer: submit url: %w", err)
	}
	messagesJSON, err := render.ScriptJSON(messages)
	if err != nil {
		return nil, fmt.Errorf("page renderer: messages: %w", err)
	}

	return map[string]any{
		"lang":            opts.ResolvedLocale(),
		"title":           messages.Title,
		"fields_json":     fieldsJSON,
		"submit_url_json": submitURLJSON,
		"messages_json":   messagesJSON,
	}, nil
}
