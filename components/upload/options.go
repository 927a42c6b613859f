package upload

import (
	"github.com/goliatone/go-formbuilder/components/httpapi"
	"github.com/goliatone/go-formbuilder/pkg/publish"
)

const DefaultRoutePath = "/api/upload"

type Options struct {
	RoutePath string
	Guard     httpapi.GuardFunc
	Gateway   *publish.Gateway
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
	if opts.Gateway == nil {
		opts.Gateway = publish.NewGateway()
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

func WithGateway(g *publish.Gateway) OptionFn {
	return func(o *Options) {
		o.Gateway = g
	}
}
