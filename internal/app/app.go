// Package app assembles the runtime pieces shared by every command: the
// message catalogue, outbound HTTP client, builder session and license
// service, all derived from one config.Config.
package app

import (
	"fmt"
	"net/http"
	"os"

	zl "github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/license"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/page"
	"github.com/goliatone/go-formbuilder/pkg/sanitize"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

type App struct {
	Config   config.Config
	Logger   zl.Logger
	Catalog  *i18n.Catalog
	Client   *http.Client
	Prober   *webhook.Prober
	Gateway  *publish.Gateway
	Session  *builder.Session
	License  *license.Service
	Renderer *page.Renderer
}

type Option func(*options)

type options struct {
	logger    *zl.Logger
	client    *http.Client
	transport http.RoundTripper
	provider  license.Provider
	activator license.Activator
	idGen     func() string
}

func WithLogger(l zl.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// WithHTTPClient replaces the client used for webhook probes.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithTransport replaces the round tripper used for WebDAV uploads.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func WithPaymentProvider(p license.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

func WithActivator(a license.Activator) Option {
	return func(o *options) {
		o.activator = a
	}
}

// WithIDGenerator makes field ids deterministic.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.idGen = gen
	}
}

// New validates cfg and wires every component from it.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	logger := logging.Default()
	if o.logger != nil {
		logger = *o.logger
	}

	var catalogOpts []i18n.Option
	if cfg.LocalesDir != "" {
		catalogOpts = append(catalogOpts, i18n.WithDir(cfg.LocalesDir))
	}
	catalog, err := i18n.New(catalogOpts...)
	if err != nil {
		return nil, fmt.Errorf("app: messages: %w", err)
	}

	client := o.client
	if client == nil {
		client = logging.Client(cfg.HTTPTimeout, logger)
	}
	prober := webhook.NewProber(webhook.WithHTTPClient(client), webhook.WithLogger(logger))

	gatewayOpts := []publish.Option{publish.WithLogger(logger)}
	if o.transport != nil {
		gatewayOpts = append(gatewayOpts, publish.WithTransport(o.transport))
	}
	gateway := publish.NewGateway(gatewayOpts...)

	renderer, err := page.New()
	if err != nil {
		return nil, err
	}

	factoryOpts := []model.FactoryOption{
		model.WithTranslator(catalog),
		model.WithLocale(cfg.Locale),
	}
	if o.idGen != nil {
		factoryOpts = append(factoryOpts, model.WithIDGenerator(o.idGen))
	}

	fields, err := loadFields(cfg.FieldsFile)
	if err != nil {
		return nil, err
	}

	sessionOpts := builder.Options{
		Fields:    fields,
		Webhook:   cfg.Webhook,
		Target:    cfg.Publish,
		Factory:   model.NewFactory(factoryOpts...),
		Renderer:  renderer,
		Prober:    prober,
		Publisher: gateway,
		RenderOptions: render.RenderOptions{
			Locale:     cfg.Locale,
			Translator: catalog,
		},
		Logger: &logger,
	}
	if cfg.SanitizeText {
		sessionOpts.Sanitize = sanitize.Text
	}
	session, err := builder.New(sessionOpts)
	if err != nil {
		return nil, err
	}

	licenseOpts := []license.Option{license.WithLogger(logger)}
	if o.provider != nil {
		licenseOpts = append(licenseOpts, license.WithProvider(o.provider))
	}
	if o.activator != nil {
		licenseOpts = append(licenseOpts, license.WithActivator(o.activator))
	}
	svc, err := license.NewService(cfg.Purchase, licenseOpts...)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Catalog:  catalog,
		Client:   client,
		Prober:   prober,
		Gateway:  gateway,
		Session:  session,
		License:  svc,
		Renderer: renderer,
	}, nil
}

// RenderOptions returns the page options for the configured locale.
func (a *App) RenderOptions() render.RenderOptions {
	return render.RenderOptions{Locale: a.Config.Locale, Translator: a.Catalog}
}

// Message translates key for the configured locale, falling back to the key.
func (a *App) Message(key string, data ...map[string]any) string {
	var args []any
	for _, d := range data {
		args = append(args, d)
	}
	msg, err := a.Catalog.Translate(a.Config.Locale, key, args...)
	if err != nil || msg == "" {
		return key
	}
	return msg
}

func loadFields(path string) ([]model.Field, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read fields: %w", err)
	}
	fields, err := model.DecodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("app: decode fields %s: %w", path, err)
	}
	if fields == nil {
		fields = []model.Field{}
	}
	return fields, nil
}
