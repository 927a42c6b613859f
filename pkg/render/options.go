package render

import "strings"

// DefaultLocale is the language of generated pages when no locale is given.
const DefaultLocale = "nl"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the field list.
type RenderOptions struct {
	// Locale selects the page language and the `lang` attribute.
	Locale string
	// Title overrides the translated page title.
	Title string
	// Translator resolves page strings. Nil keeps the Dutch defaults.
	Translator Translator
	// OnMissing decides the string used when a translation is missing.
	OnMissing MissingTranslationHandler
}

// ResolvedLocale returns the configured locale or DefaultLocale.
func (o RenderOptions) ResolvedLocale() string {
	if locale := strings.TrimSpace(o.Locale); locale != "" {
		return locale
	}
	return DefaultLocale
}
