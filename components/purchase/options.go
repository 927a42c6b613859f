package purchase

import (
	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/license"
)

const (
	DefaultCreatePath  = "/api/purchase/create"
	DefaultWebhookPath = "/api/purchase/webhook"
)

type Options struct {
	CreatePath  string
	WebhookPath string
	// Guard protects the create route only; the provider callback can not
	// authenticate.
	Guard   httpapi.GuardFunc
	Service *license.Service
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{CreatePath: DefaultCreatePath, WebhookPath: DefaultWebhookPath}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.CreatePath == "" {
		opts.CreatePath = DefaultCreatePath
	}
	if opts.WebhookPath == "" {
		opts.WebhookPath = DefaultWebhookPath
	}
	if opts.Service == nil {
		// No API key: both routes report the missing configuration.
		opts.Service, _ = license.NewService(license.DefaultConfig(""))
	}
	return opts
}

func WithCreatePath(path string) OptionFn {
	return func(o *Options) {
		o.CreatePath = path
	}
}

func WithWebhookPath(path string) OptionFn {
	return func(o *Options) {
		o.WebhookPath = path
	}
}

func WithGuard(guard httpapi.GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithService(s *license.Service) OptionFn {
	return func(o *Options) {
		o.Service = s
	}
}
