package model

import "github.com/google/uuid"

// Translator resolves localized strings. It matches render.Translator so the
// i18n catalogue can be shared without importing the render package here.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Options configures the Factory. Options are constructed by the public
// adapter in pkg/model and passed into NewFactory.
type Options struct {
	IDGenerator func() string
	Translator  Translator
	Locale      string
}

func defaultOptions() Options {
	return Options{
		IDGenerator: uuid.NewString,
	}
}
