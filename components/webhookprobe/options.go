package webhookprobe

import (
	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

const DefaultRoutePath = "/api/test-webhook"

type Options struct {
	RoutePath string
	Guard     httpapi.GuardFunc
	Prober    *webhook.Prober
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{RoutePath: DefaultRoutePath}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.Prober == nil {
		opts.Prober = webhook.NewProber()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithGuard(guard httpapi.GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithProber(p *webhook.Prober) OptionFn {
	return func(o *Options) {
		o.Prober = p
	}
}
