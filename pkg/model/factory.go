package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// Factory creates fields with type specific defaults and fresh ids.
type Factory = internalmodel.Factory

// FactoryOption configures NewFactory.
type FactoryOption func(*internalmodel.Options)

// WithIDGenerator overrides the id source (uuid v4 by default). Tests use it
// to get stable names.
func WithIDGenerator(gen func() string) FactoryOption {
	return func(opts *internalmodel.Options) {
		opts.IDGenerator = gen
	}
}

// WithTranslator localizes default labels and placeholders.
func WithTranslator(translator Translator) FactoryOption {
	return func(opts *internalmodel.Options) {
		opts.Translator = translator
	}
}

// WithLocale selects the locale passed to the translator.
func WithLocale(locale string) FactoryOption {
	return func(opts *internalmodel.Options) {
		opts.Locale = locale
	}
}

// NewFactory returns a Factory configured by the supplied options.
func NewFactory(options ...FactoryOption) *Factory {
	cfg := internalmodel.Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return internalmodel.NewFactory(cfg)
}

// DefaultFields returns the three fields a new form starts with.
func DefaultFields(factory *Factory) []Field {
	if factory == nil {
		factory = NewFactory()
	}
	return factory.Seed()
}
