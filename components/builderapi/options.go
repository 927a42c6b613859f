package builderapi

import "github.com/goliatone/go-formbuilder/components/httpapi"

const DefaultRoutePath = "/api/builder"

type Options struct {
	RoutePath string
	Guard     httpapi.GuardFunc
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
